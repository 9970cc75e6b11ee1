package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"lingodeck/internal/domain"
	"lingodeck/internal/repository/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupFlashcardTestDB creates a new sqlx.DB instance and sqlmock for flashcard repository testing.
func setupFlashcardTestDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")
	return sqlxDB, mock
}

func flashcardRows(model models.Flashcard) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "lesson_id", "audio_ref", "correct_index", "created_at", "updated_at", "deleted_at"}).
		AddRow(model.ID, model.LessonID, model.AudioRef, model.CorrectIndex, model.CreatedAt, model.UpdatedAt, nil)
}

func choiceRows(flashcardID string, refs ...string) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "flashcard_id", "position", "image_ref"})
	for i, ref := range refs {
		rows.AddRow("choice"+ref, flashcardID, i, ref)
	}
	return rows
}

func TestFlashcardDatabaseAdapter_CreateFlashcard(t *testing.T) {
	db, mock := setupFlashcardTestDB(t)
	repo := NewFlashcardDatabaseAdapter(db)
	defer db.Close()

	now := time.Now()
	card := &domain.Flashcard{
		ID:           "card1",
		LessonID:     "lesson1",
		AudioRef:     "lessons/lesson1/a.mp3",
		ImageChoices: []domain.BlobRef{"img0.png", "img1.png", "img2.png", "img3.png"},
		CorrectIndex: 2,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO flashcards`)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	for range card.ImageChoices {
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO flashcard_choices`)).
			WillReturnResult(sqlmock.NewResult(1, 1))
	}
	mock.ExpectCommit()

	err := repo.CreateFlashcard(context.Background(), card)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFlashcardDatabaseAdapter_CreateFlashcard_RollsBackOnChoiceFailure(t *testing.T) {
	db, mock := setupFlashcardTestDB(t)
	repo := NewFlashcardDatabaseAdapter(db)
	defer db.Close()

	now := time.Now()
	card := &domain.Flashcard{
		ID:           "card1",
		LessonID:     "lesson1",
		AudioRef:     "lessons/lesson1/a.mp3",
		ImageChoices: []domain.BlobRef{"img0.png", "img1.png"},
		CorrectIndex: 0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO flashcards`)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO flashcard_choices`)).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.CreateFlashcard(context.Background(), card)

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFlashcardDatabaseAdapter_GetFlashcardByID(t *testing.T) {
	db, mock := setupFlashcardTestDB(t)
	repo := NewFlashcardDatabaseAdapter(db)
	defer db.Close()

	now := time.Now()
	model := models.Flashcard{
		ID:           "card1",
		LessonID:     "lesson1",
		AudioRef:     "lessons/lesson1/a.mp3",
		CorrectIndex: 1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	mock.ExpectQuery(`SELECT(.|\n)+FROM flashcards(.|\n)+WHERE id = :1`).
		WithArgs(model.ID).
		WillReturnRows(flashcardRows(model))
	mock.ExpectQuery(`SELECT(.|\n)+FROM flashcard_choices(.|\n)+ORDER BY position`).
		WithArgs(model.ID).
		WillReturnRows(choiceRows(model.ID, "img0.png", "img1.png", "img2.png", "img3.png"))

	card, err := repo.GetFlashcardByID(context.Background(), model.ID)

	require.NoError(t, err)
	require.NotNil(t, card)
	assert.Equal(t, model.ID, card.ID)
	assert.Equal(t, domain.BlobRef(model.AudioRef), card.AudioRef)
	assert.Equal(t, 1, card.CorrectIndex)
	require.Len(t, card.ImageChoices, 4)
	assert.Equal(t, domain.BlobRef("img2.png"), card.ImageChoices[2])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFlashcardDatabaseAdapter_GetFlashcardByID_NotFound(t *testing.T) {
	db, mock := setupFlashcardTestDB(t)
	repo := NewFlashcardDatabaseAdapter(db)
	defer db.Close()

	mock.ExpectQuery(`SELECT(.|\n)+FROM flashcards(.|\n)+WHERE id = :1`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	card, err := repo.GetFlashcardByID(context.Background(), "missing")

	assert.NoError(t, err)
	assert.Nil(t, card)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFlashcardDatabaseAdapter_GetFlashcardsByLesson(t *testing.T) {
	db, mock := setupFlashcardTestDB(t)
	repo := NewFlashcardDatabaseAdapter(db)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "lesson_id", "audio_ref", "correct_index", "created_at", "updated_at", "deleted_at"}).
		AddRow("card1", "lesson1", "a1.mp3", 0, now, now, nil).
		AddRow("card2", "lesson1", "a2.mp3", 3, now, now, nil)

	mock.ExpectQuery(`SELECT(.|\n)+FROM flashcards(.|\n)+WHERE lesson_id = :1`).
		WithArgs("lesson1").
		WillReturnRows(rows)
	mock.ExpectQuery(`SELECT(.|\n)+FROM flashcard_choices`).
		WithArgs("card1").
		WillReturnRows(choiceRows("card1", "i0", "i1"))
	mock.ExpectQuery(`SELECT(.|\n)+FROM flashcard_choices`).
		WithArgs("card2").
		WillReturnRows(choiceRows("card2", "i2", "i3"))

	cards, err := repo.GetFlashcardsByLesson(context.Background(), "lesson1")

	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "card1", cards[0].ID)
	assert.Equal(t, []domain.BlobRef{"i2", "i3"}, cards[1].ImageChoices)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFlashcardDatabaseAdapter_DeleteFlashcard(t *testing.T) {
	db, mock := setupFlashcardTestDB(t)
	repo := NewFlashcardDatabaseAdapter(db)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE flashcards SET deleted_at`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.DeleteFlashcard(context.Background(), "card1")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestToDomainFlashcard_OrdersChoicesByPosition(t *testing.T) {
	now := time.Now()
	model := &models.Flashcard{
		ID:           "card1",
		LessonID:     "lesson1",
		AudioRef:     "a.mp3",
		CorrectIndex: 0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	// Positions arrive out of order; the mapper places each at its slot.
	choices := []models.FlashcardChoice{
		{ID: "c2", FlashcardID: "card1", Position: 2, ImageRef: "two"},
		{ID: "c0", FlashcardID: "card1", Position: 0, ImageRef: "zero"},
		{ID: "c1", FlashcardID: "card1", Position: 1, ImageRef: "one"},
	}

	card := toDomainFlashcard(model, choices)

	require.NotNil(t, card)
	assert.Equal(t, []domain.BlobRef{"zero", "one", "two"}, card.ImageChoices)
}
