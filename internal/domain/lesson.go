package domain

import (
	"context"
	"time"
)

// Lesson groups flashcards created by one administrator.
type Lesson struct {
	ID          string
	Title       string
	Description string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// LessonRepository persists lessons and their student assignments.
type LessonRepository interface {
	CreateLesson(ctx context.Context, lesson *Lesson) error
	GetLessonByID(ctx context.Context, id string) (*Lesson, error)
	ListLessons(ctx context.Context) ([]*Lesson, error)
	DeleteLesson(ctx context.Context, id string) error
	AssignLesson(ctx context.Context, lessonID, studentID string) error
	GetAssignedLessons(ctx context.Context, studentID string) ([]*Lesson, error)
}
