package models

import (
	"database/sql"
	"time"
)

// Flashcard represents a flashcard row. The ordered image choices live in
// flashcard_choices, one row per position.
type Flashcard struct {
	ID           string       `db:"id"`
	LessonID     string       `db:"lesson_id"`
	AudioRef     string       `db:"audio_ref"`
	CorrectIndex int          `db:"correct_index"`
	CreatedAt    time.Time    `db:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at"`
	DeletedAt    sql.NullTime `db:"deleted_at"`
}

// FlashcardChoice is one image choice of a flashcard at a fixed position.
type FlashcardChoice struct {
	ID          string `db:"id"`
	FlashcardID string `db:"flashcard_id"`
	Position    int    `db:"position"`
	ImageRef    string `db:"image_ref"`
}
