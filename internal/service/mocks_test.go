package service

import (
	"context"
	"time"

	"lingodeck/internal/domain"
	"lingodeck/internal/importer"

	"github.com/stretchr/testify/mock"
)

// --- MockLessonRepository ---
type MockLessonRepository struct {
	mock.Mock
}

func (m *MockLessonRepository) CreateLesson(ctx context.Context, lesson *domain.Lesson) error {
	args := m.Called(ctx, lesson)
	return args.Error(0)
}

func (m *MockLessonRepository) GetLessonByID(ctx context.Context, id string) (*domain.Lesson, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lesson), args.Error(1)
}

func (m *MockLessonRepository) ListLessons(ctx context.Context) ([]*domain.Lesson, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Lesson), args.Error(1)
}

func (m *MockLessonRepository) DeleteLesson(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLessonRepository) AssignLesson(ctx context.Context, lessonID, studentID string) error {
	args := m.Called(ctx, lessonID, studentID)
	return args.Error(0)
}

func (m *MockLessonRepository) GetAssignedLessons(ctx context.Context, studentID string) ([]*domain.Lesson, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Lesson), args.Error(1)
}

// --- MockFlashcardRepository ---
type MockFlashcardRepository struct {
	mock.Mock
}

func (m *MockFlashcardRepository) CreateFlashcard(ctx context.Context, card *domain.Flashcard) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockFlashcardRepository) GetFlashcardByID(ctx context.Context, id string) (*domain.Flashcard, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flashcard), args.Error(1)
}

func (m *MockFlashcardRepository) GetFlashcardsByLesson(ctx context.Context, lessonID string) ([]*domain.Flashcard, error) {
	args := m.Called(ctx, lessonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Flashcard), args.Error(1)
}

func (m *MockFlashcardRepository) DeleteFlashcard(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- MockProgressRepository ---
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) GetProgress(ctx context.Context, userID, flashcardID string) (*domain.StudentProgress, error) {
	args := m.Called(ctx, userID, flashcardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudentProgress), args.Error(1)
}

func (m *MockProgressRepository) UpsertProgress(ctx context.Context, progress *domain.StudentProgress) error {
	args := m.Called(ctx, progress)
	return args.Error(0)
}

func (m *MockProgressRepository) GetDueFlashcards(ctx context.Context, userID, lessonID string, now time.Time) ([]*domain.Flashcard, error) {
	args := m.Called(ctx, userID, lessonID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Flashcard), args.Error(1)
}

func (m *MockProgressRepository) GetLessonSummary(ctx context.Context, userID, lessonID string) (*domain.LessonProgressSummary, error) {
	args := m.Called(ctx, userID, lessonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LessonProgressSummary), args.Error(1)
}

// --- MockUserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	args := m.Called(ctx, googleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// --- MockBlobStore ---
type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) Put(ctx context.Context, key string, data []byte) (domain.BlobRef, error) {
	args := m.Called(ctx, key, data)
	return args.Get(0).(domain.BlobRef), args.Error(1)
}

func (m *MockBlobStore) Get(ctx context.Context, ref domain.BlobRef) ([]byte, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockBlobStore) Delete(ctx context.Context, ref domain.BlobRef) error {
	args := m.Called(ctx, ref)
	return args.Error(0)
}

// --- MockBatchImporter ---
type MockBatchImporter struct {
	mock.Mock
}

func (m *MockBatchImporter) ImportBatch(ctx context.Context, lessonID string, files []importer.UploadedFile, opts importer.Options) (*importer.BatchReport, error) {
	args := m.Called(ctx, lessonID, files, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*importer.BatchReport), args.Error(1)
}

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
