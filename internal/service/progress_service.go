package service

import (
	"context"
	"time"

	"lingodeck/internal/domain"
	"lingodeck/internal/dto"
	"lingodeck/internal/logger"
	"lingodeck/internal/util"

	"go.uber.org/zap"
)

const maxReviewIntervalDays = 64

// ProgressService records student answers and schedules reviews.
type ProgressService interface {
	RecordAnswer(ctx context.Context, userID, flashcardID string, selectedIndex int) (*dto.RecordAnswerResponse, error)
	GetReviewQueue(ctx context.Context, userID, lessonID string) ([]*dto.ReviewCardResponse, error)
	GetLessonSummary(ctx context.Context, userID, lessonID string) (*dto.LessonSummaryResponse, error)
}

type progressServiceImpl struct {
	progressRepo domain.ProgressRepository
	cardRepo     domain.FlashcardRepository
	now          func() time.Time
}

// NewProgressService creates a new instance of ProgressService.
func NewProgressService(progressRepo domain.ProgressRepository, cardRepo domain.FlashcardRepository) ProgressService {
	return &progressServiceImpl{
		progressRepo: progressRepo,
		cardRepo:     cardRepo,
		now:          time.Now,
	}
}

// RecordAnswer scores one answer and reschedules the card. A correct answer
// doubles the review interval up to a cap; a miss resets it to one day.
func (s *progressServiceImpl) RecordAnswer(ctx context.Context, userID, flashcardID string, selectedIndex int) (*dto.RecordAnswerResponse, error) {
	card, err := s.cardRepo.GetFlashcardByID(ctx, flashcardID)
	if err != nil {
		return nil, domain.NewInternalError("failed to get flashcard", err)
	}
	if card == nil {
		return nil, domain.NewFlashcardNotFoundError(flashcardID)
	}

	progress, err := s.progressRepo.GetProgress(ctx, userID, flashcardID)
	if err != nil {
		return nil, domain.NewInternalError("failed to get progress", err)
	}
	if progress == nil {
		progress = &domain.StudentProgress{
			ID:           util.NewULID(),
			UserID:       userID,
			FlashcardID:  flashcardID,
			LessonID:     card.LessonID,
			IntervalDays: 1,
		}
	}

	now := s.now()
	correct := selectedIndex == card.CorrectIndex
	if correct {
		progress.CorrectCount++
		if progress.LastReviewedAt.IsZero() {
			progress.IntervalDays = 1
		} else {
			progress.IntervalDays *= 2
			if progress.IntervalDays > maxReviewIntervalDays {
				progress.IntervalDays = maxReviewIntervalDays
			}
		}
	} else {
		progress.IncorrectCount++
		progress.IntervalDays = 1
	}
	progress.LastReviewedAt = now
	progress.NextReviewAt = now.Add(time.Duration(progress.IntervalDays) * 24 * time.Hour)

	if err := s.progressRepo.UpsertProgress(ctx, progress); err != nil {
		return nil, domain.NewInternalError("failed to save progress", err)
	}

	logger.Get().Debug("Answer recorded",
		zap.String("userID", userID),
		zap.String("flashcardID", flashcardID),
		zap.Bool("correct", correct),
		zap.Int("intervalDays", progress.IntervalDays),
	)

	return &dto.RecordAnswerResponse{
		Correct:      correct,
		CorrectIndex: card.CorrectIndex,
		IntervalDays: progress.IntervalDays,
		NextReviewAt: progress.NextReviewAt,
	}, nil
}

// GetReviewQueue returns the due cards without their correct index; the
// student learns it from RecordAnswer.
func (s *progressServiceImpl) GetReviewQueue(ctx context.Context, userID, lessonID string) ([]*dto.ReviewCardResponse, error) {
	cards, err := s.progressRepo.GetDueFlashcards(ctx, userID, lessonID, s.now())
	if err != nil {
		return nil, domain.NewInternalError("failed to get due flashcards", err)
	}
	return dto.NewReviewCardResponses(cards), nil
}

func (s *progressServiceImpl) GetLessonSummary(ctx context.Context, userID, lessonID string) (*dto.LessonSummaryResponse, error) {
	summary, err := s.progressRepo.GetLessonSummary(ctx, userID, lessonID)
	if err != nil {
		return nil, domain.NewInternalError("failed to get lesson summary", err)
	}
	return dto.NewLessonSummaryResponse(summary), nil
}
