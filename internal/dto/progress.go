package dto

import (
	"time"

	"lingodeck/internal/domain"
)

// RecordAnswerRequest represents a student's answer to a flashcard.
// The flashcard is addressed by the route path.
type RecordAnswerRequest struct {
	SelectedIndex int `json:"selected_index"`
}

// ReviewCardResponse is the flashcard shape served in the review queue.
// It withholds the correct index; the student only learns it from
// RecordAnswerResponse after answering.
type ReviewCardResponse struct {
	ID           string   `json:"id"`
	LessonID     string   `json:"lesson_id"`
	AudioRef     string   `json:"audio_ref"`
	ImageChoices []string `json:"image_choices"`
}

// NewReviewCardResponse converts a domain flashcard to its review shape.
func NewReviewCardResponse(card *domain.Flashcard) *ReviewCardResponse {
	choices := make([]string, len(card.ImageChoices))
	for i, ref := range card.ImageChoices {
		choices[i] = string(ref)
	}
	return &ReviewCardResponse{
		ID:           card.ID,
		LessonID:     card.LessonID,
		AudioRef:     string(card.AudioRef),
		ImageChoices: choices,
	}
}

// NewReviewCardResponses converts a slice of domain flashcards.
func NewReviewCardResponses(cards []*domain.Flashcard) []*ReviewCardResponse {
	responses := make([]*ReviewCardResponse, 0, len(cards))
	for _, card := range cards {
		responses = append(responses, NewReviewCardResponse(card))
	}
	return responses
}

// RecordAnswerResponse tells the student whether the answer was correct
// and when the card comes back for review.
type RecordAnswerResponse struct {
	Correct      bool      `json:"correct"`
	CorrectIndex int       `json:"correct_index"`
	IntervalDays int       `json:"interval_days"`
	NextReviewAt time.Time `json:"next_review_at"`
}

// LessonSummaryResponse represents a student's aggregate progress in a lesson.
type LessonSummaryResponse struct {
	LessonID       string `json:"lesson_id"`
	TotalCards     int    `json:"total_cards"`
	ReviewedCards  int    `json:"reviewed_cards"`
	CorrectCount   int    `json:"correct_count"`
	IncorrectCount int    `json:"incorrect_count"`
}

// NewLessonSummaryResponse converts a domain summary to its API shape.
func NewLessonSummaryResponse(summary *domain.LessonProgressSummary) *LessonSummaryResponse {
	return &LessonSummaryResponse{
		LessonID:       summary.LessonID,
		TotalCards:     summary.TotalCards,
		ReviewedCards:  summary.ReviewedCards,
		CorrectCount:   summary.CorrectCount,
		IncorrectCount: summary.IncorrectCount,
	}
}
