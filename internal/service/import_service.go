package service

import (
	"context"
	"errors"
	"time"

	"lingodeck/internal/cache"
	"lingodeck/internal/domain"
	"lingodeck/internal/dto"
	"lingodeck/internal/importer"
	"lingodeck/internal/logger"

	"go.uber.org/zap"
)

// BatchImporter runs the audio/image pairing pipeline for one upload batch.
type BatchImporter interface {
	ImportBatch(ctx context.Context, lessonID string, files []importer.UploadedFile, opts importer.Options) (*importer.BatchReport, error)
}

// ImportService coordinates bulk flashcard imports for a lesson.
type ImportService interface {
	ImportFlashcards(ctx context.Context, lessonID string, files []importer.UploadedFile, opts importer.Options) (*dto.BatchReportResponse, error)
}

type importServiceImpl struct {
	assembler    BatchImporter
	lessonRepo   domain.LessonRepository
	cacheService *CacheService
	batchTimeout time.Duration
}

// NewImportService creates a new instance of ImportService.
// batchTimeout bounds one whole batch; zero means no limit.
func NewImportService(assembler BatchImporter, lessonRepo domain.LessonRepository, cacheService *CacheService, batchTimeout time.Duration) ImportService {
	return &importServiceImpl{
		assembler:    assembler,
		lessonRepo:   lessonRepo,
		cacheService: cacheService,
		batchTimeout: batchTimeout,
	}
}

func (s *importServiceImpl) ImportFlashcards(ctx context.Context, lessonID string, files []importer.UploadedFile, opts importer.Options) (*dto.BatchReportResponse, error) {
	appLogger := logger.Get()

	lesson, err := s.lessonRepo.GetLessonByID(ctx, lessonID)
	if err != nil {
		return nil, domain.NewInternalError("failed to look up lesson", err)
	}
	if lesson == nil {
		return nil, domain.NewLessonNotFoundError(lessonID)
	}

	if s.batchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.batchTimeout)
		defer cancel()
	}

	report, err := s.assembler.ImportBatch(ctx, lessonID, files, opts)
	if err != nil {
		return nil, err
	}

	if report.Succeeded > 0 {
		// The batch deadline may already have expired; the stale cache
		// entry must still be dropped for the cards that did land.
		s.cacheService.InvalidateLessonFlashcards(context.WithoutCancel(ctx), lessonID)
	}

	appLogger.Info("Flashcard import finished",
		zap.String("lessonID", lessonID),
		zap.Int("totalPairs", report.TotalPairs),
		zap.Int("succeeded", report.Succeeded),
		zap.Int("failed", report.Failed),
	)

	return dto.NewBatchReportResponse(report), nil
}

// CacheService wraps the shared cache with lesson-scoped helpers.
type CacheService struct {
	cache domain.Cache
	ttl   time.Duration
}

// NewCacheService creates a new instance of CacheService.
func NewCacheService(cacheImpl domain.Cache, ttl time.Duration) *CacheService {
	return &CacheService{cache: cacheImpl, ttl: ttl}
}

// GetLessonFlashcards returns the cached flashcard list JSON for a lesson,
// or "" on a miss.
func (c *CacheService) GetLessonFlashcards(ctx context.Context, lessonID string) string {
	if c == nil || c.cache == nil {
		return ""
	}
	value, err := c.cache.Get(ctx, cache.LessonFlashcardsKey(lessonID))
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("Cache get failed", zap.String("lessonID", lessonID), zap.Error(err))
		}
		return ""
	}
	return value
}

// SetLessonFlashcards stores the flashcard list JSON for a lesson.
func (c *CacheService) SetLessonFlashcards(ctx context.Context, lessonID, value string) {
	if c == nil || c.cache == nil {
		return
	}
	if err := c.cache.Set(ctx, cache.LessonFlashcardsKey(lessonID), value, c.ttl); err != nil {
		logger.Get().Warn("Cache set failed", zap.String("lessonID", lessonID), zap.Error(err))
	}
}

// InvalidateLessonFlashcards drops the cached flashcard list for a lesson.
func (c *CacheService) InvalidateLessonFlashcards(ctx context.Context, lessonID string) {
	if c == nil || c.cache == nil {
		return
	}
	if err := c.cache.Delete(ctx, cache.LessonFlashcardsKey(lessonID)); err != nil {
		logger.Get().Warn("Cache invalidation failed", zap.String("lessonID", lessonID), zap.Error(err))
	}
}
