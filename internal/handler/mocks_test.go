package handler_test

import (
	"context"

	"lingodeck/internal/dto"
	"lingodeck/internal/importer"
)

// --- Manual Mocks ---

// MockLessonService
type MockLessonService struct {
	CreateLessonFunc        func(ctx context.Context, title, description, createdBy string) (*dto.LessonResponse, error)
	GetLessonFunc           func(ctx context.Context, id string) (*dto.LessonResponse, error)
	ListLessonsFunc         func(ctx context.Context) ([]*dto.LessonResponse, error)
	DeleteLessonFunc        func(ctx context.Context, id string) error
	AssignLessonFunc        func(ctx context.Context, lessonID, studentID string) error
	GetAssignedLessonsFunc  func(ctx context.Context, studentID string) ([]*dto.LessonResponse, error)
	GetLessonFlashcardsFunc func(ctx context.Context, lessonID string) ([]*dto.FlashcardResponse, error)
	DeleteFlashcardFunc     func(ctx context.Context, flashcardID string) error
}

func (m *MockLessonService) CreateLesson(ctx context.Context, title, description, createdBy string) (*dto.LessonResponse, error) {
	if m.CreateLessonFunc != nil {
		return m.CreateLessonFunc(ctx, title, description, createdBy)
	}
	panic("MockLessonService.CreateLessonFunc not implemented")
}
func (m *MockLessonService) GetLesson(ctx context.Context, id string) (*dto.LessonResponse, error) {
	if m.GetLessonFunc != nil {
		return m.GetLessonFunc(ctx, id)
	}
	panic("MockLessonService.GetLessonFunc not implemented")
}
func (m *MockLessonService) ListLessons(ctx context.Context) ([]*dto.LessonResponse, error) {
	if m.ListLessonsFunc != nil {
		return m.ListLessonsFunc(ctx)
	}
	panic("MockLessonService.ListLessonsFunc not implemented")
}
func (m *MockLessonService) DeleteLesson(ctx context.Context, id string) error {
	if m.DeleteLessonFunc != nil {
		return m.DeleteLessonFunc(ctx, id)
	}
	panic("MockLessonService.DeleteLessonFunc not implemented")
}
func (m *MockLessonService) AssignLesson(ctx context.Context, lessonID, studentID string) error {
	if m.AssignLessonFunc != nil {
		return m.AssignLessonFunc(ctx, lessonID, studentID)
	}
	panic("MockLessonService.AssignLessonFunc not implemented")
}
func (m *MockLessonService) GetAssignedLessons(ctx context.Context, studentID string) ([]*dto.LessonResponse, error) {
	if m.GetAssignedLessonsFunc != nil {
		return m.GetAssignedLessonsFunc(ctx, studentID)
	}
	panic("MockLessonService.GetAssignedLessonsFunc not implemented")
}
func (m *MockLessonService) GetLessonFlashcards(ctx context.Context, lessonID string) ([]*dto.FlashcardResponse, error) {
	if m.GetLessonFlashcardsFunc != nil {
		return m.GetLessonFlashcardsFunc(ctx, lessonID)
	}
	panic("MockLessonService.GetLessonFlashcardsFunc not implemented")
}
func (m *MockLessonService) DeleteFlashcard(ctx context.Context, flashcardID string) error {
	if m.DeleteFlashcardFunc != nil {
		return m.DeleteFlashcardFunc(ctx, flashcardID)
	}
	panic("MockLessonService.DeleteFlashcardFunc not implemented")
}

// MockImportService
type MockImportService struct {
	ImportFlashcardsFunc func(ctx context.Context, lessonID string, files []importer.UploadedFile, opts importer.Options) (*dto.BatchReportResponse, error)
}

func (m *MockImportService) ImportFlashcards(ctx context.Context, lessonID string, files []importer.UploadedFile, opts importer.Options) (*dto.BatchReportResponse, error) {
	if m.ImportFlashcardsFunc != nil {
		return m.ImportFlashcardsFunc(ctx, lessonID, files, opts)
	}
	panic("MockImportService.ImportFlashcardsFunc not implemented")
}

// MockProgressService
type MockProgressService struct {
	RecordAnswerFunc     func(ctx context.Context, userID, flashcardID string, selectedIndex int) (*dto.RecordAnswerResponse, error)
	GetReviewQueueFunc   func(ctx context.Context, userID, lessonID string) ([]*dto.ReviewCardResponse, error)
	GetLessonSummaryFunc func(ctx context.Context, userID, lessonID string) (*dto.LessonSummaryResponse, error)
}

func (m *MockProgressService) RecordAnswer(ctx context.Context, userID, flashcardID string, selectedIndex int) (*dto.RecordAnswerResponse, error) {
	if m.RecordAnswerFunc != nil {
		return m.RecordAnswerFunc(ctx, userID, flashcardID, selectedIndex)
	}
	panic("MockProgressService.RecordAnswerFunc not implemented")
}
func (m *MockProgressService) GetReviewQueue(ctx context.Context, userID, lessonID string) ([]*dto.ReviewCardResponse, error) {
	if m.GetReviewQueueFunc != nil {
		return m.GetReviewQueueFunc(ctx, userID, lessonID)
	}
	panic("MockProgressService.GetReviewQueueFunc not implemented")
}
func (m *MockProgressService) GetLessonSummary(ctx context.Context, userID, lessonID string) (*dto.LessonSummaryResponse, error) {
	if m.GetLessonSummaryFunc != nil {
		return m.GetLessonSummaryFunc(ctx, userID, lessonID)
	}
	panic("MockProgressService.GetLessonSummaryFunc not implemented")
}
