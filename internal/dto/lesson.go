package dto

import (
	"time"

	"lingodeck/internal/domain"
)

// CreateLessonRequest represents the request body for creating a lesson.
type CreateLessonRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

// AssignLessonRequest represents the request body for assigning a lesson to a student.
type AssignLessonRequest struct {
	StudentID string `json:"student_id" validate:"required"`
}

// LessonResponse represents a lesson in the API response.
type LessonResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewLessonResponse converts a domain lesson to its API shape.
func NewLessonResponse(lesson *domain.Lesson) *LessonResponse {
	return &LessonResponse{
		ID:          lesson.ID,
		Title:       lesson.Title,
		Description: lesson.Description,
		CreatedBy:   lesson.CreatedBy,
		CreatedAt:   lesson.CreatedAt,
	}
}

// NewLessonResponses converts a slice of domain lessons.
func NewLessonResponses(lessons []*domain.Lesson) []*LessonResponse {
	responses := make([]*LessonResponse, 0, len(lessons))
	for _, lesson := range lessons {
		responses = append(responses, NewLessonResponse(lesson))
	}
	return responses
}

// FlashcardResponse is the full flashcard shape used by lesson content
// endpoints. Image choices are blob references in presentation order.
// The review queue serves ReviewCardResponse instead, which withholds
// the correct index.
type FlashcardResponse struct {
	ID           string    `json:"id"`
	LessonID     string    `json:"lesson_id"`
	AudioRef     string    `json:"audio_ref"`
	ImageChoices []string  `json:"image_choices"`
	CorrectIndex int       `json:"correct_index"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewFlashcardResponse converts a domain flashcard to its API shape.
func NewFlashcardResponse(card *domain.Flashcard) *FlashcardResponse {
	choices := make([]string, len(card.ImageChoices))
	for i, ref := range card.ImageChoices {
		choices[i] = string(ref)
	}
	return &FlashcardResponse{
		ID:           card.ID,
		LessonID:     card.LessonID,
		AudioRef:     string(card.AudioRef),
		ImageChoices: choices,
		CorrectIndex: card.CorrectIndex,
		CreatedAt:    card.CreatedAt,
	}
}

// NewFlashcardResponses converts a slice of domain flashcards.
func NewFlashcardResponses(cards []*domain.Flashcard) []*FlashcardResponse {
	responses := make([]*FlashcardResponse, 0, len(cards))
	for _, card := range cards {
		responses = append(responses, NewFlashcardResponse(card))
	}
	return responses
}
