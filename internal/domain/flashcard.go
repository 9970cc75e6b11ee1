package domain

import (
	"context"
	"time"
)

// BlobRef is an opaque, retrievable handle returned by durable blob storage.
type BlobRef string

// Flashcard is one audio prompt with an ordered set of image choices.
// ImageChoices[CorrectIndex] is the image whose base name matched the
// audio file at import time. Flashcards are created only by the import
// pipeline and never mutated afterwards.
type Flashcard struct {
	ID           string
	LessonID     string
	AudioRef     BlobRef
	ImageChoices []BlobRef
	CorrectIndex int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FlashcardRepository persists flashcard records.
type FlashcardRepository interface {
	CreateFlashcard(ctx context.Context, card *Flashcard) error
	GetFlashcardByID(ctx context.Context, id string) (*Flashcard, error)
	GetFlashcardsByLesson(ctx context.Context, lessonID string) ([]*Flashcard, error)
	DeleteFlashcard(ctx context.Context, id string) error
}

// BlobStore durably stores named byte blobs. Put must return a reference
// that Get can resolve later; Delete is best-effort cleanup.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte) (BlobRef, error)
	Get(ctx context.Context, ref BlobRef) ([]byte, error)
	Delete(ctx context.Context, ref BlobRef) error
}
