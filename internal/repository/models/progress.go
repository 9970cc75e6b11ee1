package models

import (
	"database/sql"
	"time"
)

// StudentProgress represents one student's review state for one flashcard.
type StudentProgress struct {
	ID             string       `db:"id"`
	UserID         string       `db:"user_id"`
	FlashcardID    string       `db:"flashcard_id"`
	LessonID       string       `db:"lesson_id"`
	CorrectCount   int          `db:"correct_count"`
	IncorrectCount int          `db:"incorrect_count"`
	IntervalDays   int          `db:"interval_days"`
	NextReviewAt   time.Time    `db:"next_review_at"`
	LastReviewedAt sql.NullTime `db:"last_reviewed_at"`
}
