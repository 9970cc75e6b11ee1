package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"lingodeck/internal/domain"
	"lingodeck/internal/repository/models"
	"lingodeck/internal/util"

	"github.com/jmoiron/sqlx"
)

// FlashcardDatabaseAdapter implements domain.FlashcardRepository using sqlx.DB
type FlashcardDatabaseAdapter struct {
	db *sqlx.DB
}

// NewFlashcardDatabaseAdapter creates a new instance of FlashcardDatabaseAdapter
func NewFlashcardDatabaseAdapter(db *sqlx.DB) domain.FlashcardRepository {
	return &FlashcardDatabaseAdapter{db: db}
}

// CreateFlashcard inserts the flashcard row and its ordered choices in one
// transaction, so a record either exists with all its choices or not at all.
func (a *FlashcardDatabaseAdapter) CreateFlashcard(ctx context.Context, card *domain.Flashcard) error {
	tx, err := a.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for CreateFlashcard: %w", err)
	}
	defer tx.Rollback()

	cardQuery := `INSERT INTO flashcards (id, lesson_id, audio_ref, correct_index, created_at, updated_at)
	              VALUES (:1, :2, :3, :4, :5, :6)`
	if _, err := tx.ExecContext(ctx, cardQuery,
		card.ID, card.LessonID, string(card.AudioRef), card.CorrectIndex, card.CreatedAt, card.UpdatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert flashcard: %w", err)
	}

	choiceQuery := `INSERT INTO flashcard_choices (id, flashcard_id, position, image_ref)
	                VALUES (:1, :2, :3, :4)`
	for i, ref := range card.ImageChoices {
		if _, err := tx.ExecContext(ctx, choiceQuery, util.NewULID(), card.ID, i, string(ref)); err != nil {
			return fmt.Errorf("failed to insert flashcard choice %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit CreateFlashcard: %w", err)
	}
	return nil
}

// GetFlashcardByID implements domain.FlashcardRepository
func (a *FlashcardDatabaseAdapter) GetFlashcardByID(ctx context.Context, id string) (*domain.Flashcard, error) {
	var model models.Flashcard
	query := `SELECT
		id "id",
		lesson_id "lesson_id",
		audio_ref "audio_ref",
		correct_index "correct_index",
		created_at "created_at",
		updated_at "updated_at",
		deleted_at "deleted_at"
	FROM flashcards
	WHERE id = :1
	AND deleted_at IS NULL`

	err := a.db.GetContext(ctx, &model, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get flashcard by id: %w", err)
	}

	choices, err := a.getChoices(ctx, model.ID)
	if err != nil {
		return nil, err
	}
	return toDomainFlashcard(&model, choices), nil
}

// GetFlashcardsByLesson implements domain.FlashcardRepository
func (a *FlashcardDatabaseAdapter) GetFlashcardsByLesson(ctx context.Context, lessonID string) ([]*domain.Flashcard, error) {
	var cardModels []models.Flashcard
	query := `SELECT
		id "id",
		lesson_id "lesson_id",
		audio_ref "audio_ref",
		correct_index "correct_index",
		created_at "created_at",
		updated_at "updated_at",
		deleted_at "deleted_at"
	FROM flashcards
	WHERE lesson_id = :1
	AND deleted_at IS NULL
	ORDER BY created_at`

	if err := a.db.SelectContext(ctx, &cardModels, query, lessonID); err != nil {
		return nil, fmt.Errorf("failed to get flashcards by lesson: %w", err)
	}

	cards := make([]*domain.Flashcard, 0, len(cardModels))
	for i := range cardModels {
		choices, err := a.getChoices(ctx, cardModels[i].ID)
		if err != nil {
			return nil, err
		}
		cards = append(cards, toDomainFlashcard(&cardModels[i], choices))
	}
	return cards, nil
}

// DeleteFlashcard soft-deletes a flashcard. Releasing the referenced blobs
// is the caller's responsibility; it needs the references before deletion.
func (a *FlashcardDatabaseAdapter) DeleteFlashcard(ctx context.Context, id string) error {
	query := `UPDATE flashcards SET deleted_at = :1 WHERE id = :2 AND deleted_at IS NULL`
	_, err := a.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete flashcard: %w", err)
	}
	return nil
}

func (a *FlashcardDatabaseAdapter) getChoices(ctx context.Context, flashcardID string) ([]models.FlashcardChoice, error) {
	return fetchChoices(ctx, a.db, flashcardID)
}

func fetchChoices(ctx context.Context, db *sqlx.DB, flashcardID string) ([]models.FlashcardChoice, error) {
	var choices []models.FlashcardChoice
	query := `SELECT
		id "id",
		flashcard_id "flashcard_id",
		position "position",
		image_ref "image_ref"
	FROM flashcard_choices
	WHERE flashcard_id = :1
	ORDER BY position`

	if err := db.SelectContext(ctx, &choices, query, flashcardID); err != nil {
		return nil, fmt.Errorf("failed to get flashcard choices: %w", err)
	}
	return choices, nil
}

func toDomainFlashcard(model *models.Flashcard, choices []models.FlashcardChoice) *domain.Flashcard {
	if model == nil {
		return nil
	}
	refs := make([]domain.BlobRef, len(choices))
	for _, c := range choices {
		if c.Position >= 0 && c.Position < len(refs) {
			refs[c.Position] = domain.BlobRef(c.ImageRef)
		}
	}
	return &domain.Flashcard{
		ID:           model.ID,
		LessonID:     model.LessonID,
		AudioRef:     domain.BlobRef(model.AudioRef),
		ImageChoices: refs,
		CorrectIndex: model.CorrectIndex,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}
