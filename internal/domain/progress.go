package domain

import (
	"context"
	"time"
)

// StudentProgress tracks one student's review state for one flashcard.
// IntervalDays doubles after each correct answer and resets to one after
// a miss; NextReviewAt schedules the card back into the review queue.
type StudentProgress struct {
	ID             string
	UserID         string
	FlashcardID    string
	LessonID       string
	CorrectCount   int
	IncorrectCount int
	IntervalDays   int
	NextReviewAt   time.Time
	LastReviewedAt time.Time
}

// LessonProgressSummary is the per-lesson aggregate shown on dashboards.
type LessonProgressSummary struct {
	LessonID       string
	TotalCards     int
	ReviewedCards  int
	CorrectCount   int
	IncorrectCount int
}

// ProgressRepository persists per-student review state.
type ProgressRepository interface {
	GetProgress(ctx context.Context, userID, flashcardID string) (*StudentProgress, error)
	UpsertProgress(ctx context.Context, progress *StudentProgress) error
	GetDueFlashcards(ctx context.Context, userID, lessonID string, now time.Time) ([]*Flashcard, error)
	GetLessonSummary(ctx context.Context, userID, lessonID string) (*LessonProgressSummary, error)
}
