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

// ProgressDatabaseAdapter implements domain.ProgressRepository using sqlx.DB
type ProgressDatabaseAdapter struct {
	db *sqlx.DB
}

// NewProgressDatabaseAdapter creates a new instance of ProgressDatabaseAdapter
func NewProgressDatabaseAdapter(db *sqlx.DB) domain.ProgressRepository {
	return &ProgressDatabaseAdapter{db: db}
}

// GetProgress implements domain.ProgressRepository
func (a *ProgressDatabaseAdapter) GetProgress(ctx context.Context, userID, flashcardID string) (*domain.StudentProgress, error) {
	var model models.StudentProgress
	query := `SELECT
		id "id",
		user_id "user_id",
		flashcard_id "flashcard_id",
		lesson_id "lesson_id",
		correct_count "correct_count",
		incorrect_count "incorrect_count",
		interval_days "interval_days",
		next_review_at "next_review_at",
		last_reviewed_at "last_reviewed_at"
	FROM student_progress
	WHERE user_id = :1
	AND flashcard_id = :2`

	err := a.db.GetContext(ctx, &model, query, userID, flashcardID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get student progress: %w", err)
	}
	return toDomainProgress(&model), nil
}

// UpsertProgress updates the existing progress row for the user/flashcard
// pair, or inserts one when no row exists yet.
func (a *ProgressDatabaseAdapter) UpsertProgress(ctx context.Context, progress *domain.StudentProgress) error {
	updateQuery := `UPDATE student_progress SET
		correct_count = :1,
		incorrect_count = :2,
		interval_days = :3,
		next_review_at = :4,
		last_reviewed_at = :5
	WHERE user_id = :6
	AND flashcard_id = :7`

	result, err := a.db.ExecContext(ctx, updateQuery,
		progress.CorrectCount, progress.IncorrectCount, progress.IntervalDays,
		progress.NextReviewAt, util.TimeToNullTime(progress.LastReviewedAt),
		progress.UserID, progress.FlashcardID,
	)
	if err != nil {
		return fmt.Errorf("failed to update student progress: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected > 0 {
		return nil
	}

	if progress.ID == "" {
		progress.ID = util.NewULID()
	}
	insertQuery := `INSERT INTO student_progress
		(id, user_id, flashcard_id, lesson_id, correct_count, incorrect_count, interval_days, next_review_at, last_reviewed_at)
		VALUES (:1, :2, :3, :4, :5, :6, :7, :8, :9)`
	if _, err := a.db.ExecContext(ctx, insertQuery,
		progress.ID, progress.UserID, progress.FlashcardID, progress.LessonID,
		progress.CorrectCount, progress.IncorrectCount, progress.IntervalDays,
		progress.NextReviewAt, util.TimeToNullTime(progress.LastReviewedAt),
	); err != nil {
		return fmt.Errorf("failed to insert student progress: %w", err)
	}
	return nil
}

// GetDueFlashcards returns the flashcards of a lesson the student should
// review now: cards never reviewed, plus cards whose next review time has
// passed.
func (a *ProgressDatabaseAdapter) GetDueFlashcards(ctx context.Context, userID, lessonID string, now time.Time) ([]*domain.Flashcard, error) {
	var cardModels []models.Flashcard
	query := `SELECT
		f.id "id",
		f.lesson_id "lesson_id",
		f.audio_ref "audio_ref",
		f.correct_index "correct_index",
		f.created_at "created_at",
		f.updated_at "updated_at",
		f.deleted_at "deleted_at"
	FROM flashcards f
	LEFT JOIN student_progress sp ON sp.flashcard_id = f.id AND sp.user_id = :1
	WHERE f.lesson_id = :2
	AND f.deleted_at IS NULL
	AND (sp.id IS NULL OR sp.next_review_at <= :3)
	ORDER BY f.created_at`

	if err := a.db.SelectContext(ctx, &cardModels, query, userID, lessonID, now); err != nil {
		return nil, fmt.Errorf("failed to get due flashcards: %w", err)
	}

	cards := make([]*domain.Flashcard, 0, len(cardModels))
	for i := range cardModels {
		choices, err := fetchChoices(ctx, a.db, cardModels[i].ID)
		if err != nil {
			return nil, err
		}
		cards = append(cards, toDomainFlashcard(&cardModels[i], choices))
	}
	return cards, nil
}

// GetLessonSummary implements domain.ProgressRepository
func (a *ProgressDatabaseAdapter) GetLessonSummary(ctx context.Context, userID, lessonID string) (*domain.LessonProgressSummary, error) {
	var row struct {
		TotalCards     int `db:"total_cards"`
		ReviewedCards  int `db:"reviewed_cards"`
		CorrectCount   int `db:"correct_count"`
		IncorrectCount int `db:"incorrect_count"`
	}
	query := `SELECT
		COUNT(f.id) "total_cards",
		COUNT(sp.id) "reviewed_cards",
		COALESCE(SUM(sp.correct_count), 0) "correct_count",
		COALESCE(SUM(sp.incorrect_count), 0) "incorrect_count"
	FROM flashcards f
	LEFT JOIN student_progress sp ON sp.flashcard_id = f.id AND sp.user_id = :1
	WHERE f.lesson_id = :2
	AND f.deleted_at IS NULL`

	if err := a.db.GetContext(ctx, &row, query, userID, lessonID); err != nil {
		return nil, fmt.Errorf("failed to get lesson summary: %w", err)
	}
	return &domain.LessonProgressSummary{
		LessonID:       lessonID,
		TotalCards:     row.TotalCards,
		ReviewedCards:  row.ReviewedCards,
		CorrectCount:   row.CorrectCount,
		IncorrectCount: row.IncorrectCount,
	}, nil
}

func toDomainProgress(model *models.StudentProgress) *domain.StudentProgress {
	if model == nil {
		return nil
	}
	return &domain.StudentProgress{
		ID:             model.ID,
		UserID:         model.UserID,
		FlashcardID:    model.FlashcardID,
		LessonID:       model.LessonID,
		CorrectCount:   model.CorrectCount,
		IncorrectCount: model.IncorrectCount,
		IntervalDays:   model.IntervalDays,
		NextReviewAt:   model.NextReviewAt,
		LastReviewedAt: util.NullTimeToTime(model.LastReviewedAt),
	}
}
