package service

import (
	"context"
	"encoding/json"
	"time"

	"lingodeck/internal/domain"
	"lingodeck/internal/dto"
	"lingodeck/internal/logger"
	"lingodeck/internal/util"

	"go.uber.org/zap"
)

// LessonService manages lessons, their assignments and their flashcards.
type LessonService interface {
	CreateLesson(ctx context.Context, title, description, createdBy string) (*dto.LessonResponse, error)
	GetLesson(ctx context.Context, id string) (*dto.LessonResponse, error)
	ListLessons(ctx context.Context) ([]*dto.LessonResponse, error)
	DeleteLesson(ctx context.Context, id string) error
	AssignLesson(ctx context.Context, lessonID, studentID string) error
	GetAssignedLessons(ctx context.Context, studentID string) ([]*dto.LessonResponse, error)
	GetLessonFlashcards(ctx context.Context, lessonID string) ([]*dto.FlashcardResponse, error)
	DeleteFlashcard(ctx context.Context, flashcardID string) error
}

type lessonServiceImpl struct {
	lessonRepo   domain.LessonRepository
	cardRepo     domain.FlashcardRepository
	blobStore    domain.BlobStore
	cacheService *CacheService
}

// NewLessonService creates a new instance of LessonService.
func NewLessonService(lessonRepo domain.LessonRepository, cardRepo domain.FlashcardRepository, blobStore domain.BlobStore, cacheService *CacheService) LessonService {
	return &lessonServiceImpl{
		lessonRepo:   lessonRepo,
		cardRepo:     cardRepo,
		blobStore:    blobStore,
		cacheService: cacheService,
	}
}

func (s *lessonServiceImpl) CreateLesson(ctx context.Context, title, description, createdBy string) (*dto.LessonResponse, error) {
	now := time.Now()
	lesson := &domain.Lesson{
		ID:          util.NewULID(),
		Title:       title,
		Description: description,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.lessonRepo.CreateLesson(ctx, lesson); err != nil {
		return nil, domain.NewInternalError("failed to create lesson", err)
	}
	logger.Get().Info("Lesson created", zap.String("lessonID", lesson.ID), zap.String("createdBy", createdBy))
	return dto.NewLessonResponse(lesson), nil
}

func (s *lessonServiceImpl) GetLesson(ctx context.Context, id string) (*dto.LessonResponse, error) {
	lesson, err := s.lessonRepo.GetLessonByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("failed to get lesson", err)
	}
	if lesson == nil {
		return nil, domain.NewLessonNotFoundError(id)
	}
	return dto.NewLessonResponse(lesson), nil
}

func (s *lessonServiceImpl) ListLessons(ctx context.Context) ([]*dto.LessonResponse, error) {
	lessons, err := s.lessonRepo.ListLessons(ctx)
	if err != nil {
		return nil, domain.NewInternalError("failed to list lessons", err)
	}
	return dto.NewLessonResponses(lessons), nil
}

// DeleteLesson removes a lesson together with its flashcards. Blob
// releases are best effort; an orphaned blob is preferable to a card
// whose media is gone.
func (s *lessonServiceImpl) DeleteLesson(ctx context.Context, id string) error {
	lesson, err := s.lessonRepo.GetLessonByID(ctx, id)
	if err != nil {
		return domain.NewInternalError("failed to get lesson", err)
	}
	if lesson == nil {
		return domain.NewLessonNotFoundError(id)
	}

	cards, err := s.cardRepo.GetFlashcardsByLesson(ctx, id)
	if err != nil {
		return domain.NewInternalError("failed to list lesson flashcards", err)
	}
	for _, card := range cards {
		if err := s.cardRepo.DeleteFlashcard(ctx, card.ID); err != nil {
			return domain.NewInternalError("failed to delete flashcard", err)
		}
		s.releaseBlobs(ctx, card)
	}

	if err := s.lessonRepo.DeleteLesson(ctx, id); err != nil {
		return domain.NewInternalError("failed to delete lesson", err)
	}
	s.cacheService.InvalidateLessonFlashcards(ctx, id)
	logger.Get().Info("Lesson deleted", zap.String("lessonID", id), zap.Int("flashcards", len(cards)))
	return nil
}

func (s *lessonServiceImpl) AssignLesson(ctx context.Context, lessonID, studentID string) error {
	lesson, err := s.lessonRepo.GetLessonByID(ctx, lessonID)
	if err != nil {
		return domain.NewInternalError("failed to get lesson", err)
	}
	if lesson == nil {
		return domain.NewLessonNotFoundError(lessonID)
	}
	if err := s.lessonRepo.AssignLesson(ctx, lessonID, studentID); err != nil {
		return domain.NewInternalError("failed to assign lesson", err)
	}
	logger.Get().Info("Lesson assigned", zap.String("lessonID", lessonID), zap.String("studentID", studentID))
	return nil
}

func (s *lessonServiceImpl) GetAssignedLessons(ctx context.Context, studentID string) ([]*dto.LessonResponse, error) {
	lessons, err := s.lessonRepo.GetAssignedLessons(ctx, studentID)
	if err != nil {
		return nil, domain.NewInternalError("failed to get assigned lessons", err)
	}
	return dto.NewLessonResponses(lessons), nil
}

func (s *lessonServiceImpl) GetLessonFlashcards(ctx context.Context, lessonID string) ([]*dto.FlashcardResponse, error) {
	if cached := s.cacheService.GetLessonFlashcards(ctx, lessonID); cached != "" {
		var responses []*dto.FlashcardResponse
		if err := json.Unmarshal([]byte(cached), &responses); err == nil {
			return responses, nil
		}
		// A corrupt cache entry falls through to the database.
		s.cacheService.InvalidateLessonFlashcards(ctx, lessonID)
	}

	lesson, err := s.lessonRepo.GetLessonByID(ctx, lessonID)
	if err != nil {
		return nil, domain.NewInternalError("failed to get lesson", err)
	}
	if lesson == nil {
		return nil, domain.NewLessonNotFoundError(lessonID)
	}

	cards, err := s.cardRepo.GetFlashcardsByLesson(ctx, lessonID)
	if err != nil {
		return nil, domain.NewInternalError("failed to list lesson flashcards", err)
	}
	responses := dto.NewFlashcardResponses(cards)

	if encoded, err := json.Marshal(responses); err == nil {
		s.cacheService.SetLessonFlashcards(ctx, lessonID, string(encoded))
	}
	return responses, nil
}

func (s *lessonServiceImpl) DeleteFlashcard(ctx context.Context, flashcardID string) error {
	card, err := s.cardRepo.GetFlashcardByID(ctx, flashcardID)
	if err != nil {
		return domain.NewInternalError("failed to get flashcard", err)
	}
	if card == nil {
		return domain.NewFlashcardNotFoundError(flashcardID)
	}

	if err := s.cardRepo.DeleteFlashcard(ctx, flashcardID); err != nil {
		return domain.NewInternalError("failed to delete flashcard", err)
	}
	s.releaseBlobs(ctx, card)
	s.cacheService.InvalidateLessonFlashcards(ctx, card.LessonID)
	logger.Get().Info("Flashcard deleted", zap.String("flashcardID", flashcardID), zap.String("lessonID", card.LessonID))
	return nil
}

func (s *lessonServiceImpl) releaseBlobs(ctx context.Context, card *domain.Flashcard) {
	appLogger := logger.Get()
	refs := append([]domain.BlobRef{card.AudioRef}, card.ImageChoices...)
	for _, ref := range refs {
		if ref == "" {
			continue
		}
		if err := s.blobStore.Delete(ctx, ref); err != nil {
			appLogger.Warn("Failed to release blob",
				zap.String("flashcardID", card.ID),
				zap.String("ref", string(ref)),
				zap.Error(err))
		}
	}
}
