package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"lingodeck/internal/domain"
	"lingodeck/internal/dto"
	"lingodeck/internal/handler"
	"lingodeck/internal/middleware"
	"lingodeck/internal/util"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProgressTestApp(svc *MockProgressService, userID string) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	app.Use(func(c *fiber.Ctx) error {
		if userID != "" {
			c.Locals(middleware.UserIDKey, userID)
		}
		return c.Next()
	})

	h := handler.NewProgressHandler(svc)
	app.Post("/flashcards/:id/answer", setFlashcardIDLocal, h.RecordAnswer)
	app.Get("/lessons/:id/review", setLessonIDLocal, h.GetReviewQueue)
	app.Get("/lessons/:id/progress", setLessonIDLocal, h.GetLessonSummary)
	return app
}

func TestRecordAnswer_Success(t *testing.T) {
	userID := util.NewULID()
	flashcardID := util.NewULID()
	nextReview := time.Now().Add(48 * time.Hour)

	mockSvc := &MockProgressService{
		RecordAnswerFunc: func(ctx context.Context, gotUserID, gotFlashcardID string, selectedIndex int) (*dto.RecordAnswerResponse, error) {
			assert.Equal(t, userID, gotUserID)
			assert.Equal(t, flashcardID, gotFlashcardID)
			assert.Equal(t, 2, selectedIndex)
			return &dto.RecordAnswerResponse{
				Correct:      true,
				CorrectIndex: 2,
				IntervalDays: 2,
				NextReviewAt: nextReview,
			}, nil
		},
	}
	app := newProgressTestApp(mockSvc, userID)

	req := httptest.NewRequest("POST", "/flashcards/"+flashcardID+"/answer", jsonBody(t, dto.RecordAnswerRequest{
		SelectedIndex: 2,
	}))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got dto.RecordAnswerResponse
	body, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(body, &got))
	assert.True(t, got.Correct)
	assert.Equal(t, 2, got.IntervalDays)
}

func TestRecordAnswer_InvalidSelectedIndexRejected(t *testing.T) {
	app := newProgressTestApp(&MockProgressService{}, util.NewULID())

	req := httptest.NewRequest("POST", "/flashcards/"+util.NewULID()+"/answer", jsonBody(t, dto.RecordAnswerRequest{
		SelectedIndex: 42,
	}))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRecordAnswer_FlashcardNotFound(t *testing.T) {
	mockSvc := &MockProgressService{
		RecordAnswerFunc: func(ctx context.Context, userID, flashcardID string, selectedIndex int) (*dto.RecordAnswerResponse, error) {
			return nil, domain.NewFlashcardNotFoundError(flashcardID)
		},
	}
	app := newProgressTestApp(mockSvc, util.NewULID())

	req := httptest.NewRequest("POST", "/flashcards/"+util.NewULID()+"/answer", jsonBody(t, dto.RecordAnswerRequest{
		SelectedIndex: 1,
	}))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGetReviewQueue_Success(t *testing.T) {
	userID := util.NewULID()
	lessonID := util.NewULID()
	cards := []*dto.ReviewCardResponse{
		{ID: util.NewULID(), LessonID: lessonID, AudioRef: "audio/cat", ImageChoices: []string{"img/cat", "img/dog"}},
		{ID: util.NewULID(), LessonID: lessonID, AudioRef: "audio/dog", ImageChoices: []string{"img/dog", "img/cat"}},
	}

	mockSvc := &MockProgressService{
		GetReviewQueueFunc: func(ctx context.Context, gotUserID, gotLessonID string) ([]*dto.ReviewCardResponse, error) {
			assert.Equal(t, userID, gotUserID)
			assert.Equal(t, lessonID, gotLessonID)
			return cards, nil
		},
	}
	app := newProgressTestApp(mockSvc, userID)

	resp, err := app.Test(httptest.NewRequest("GET", "/lessons/"+lessonID+"/review", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.NotContains(t, string(body), "correct_index",
		"the review queue must not reveal the answer before the student responds")

	var got []*dto.ReviewCardResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Len(t, got, 2)
}

func TestGetLessonSummary_Success(t *testing.T) {
	userID := util.NewULID()
	lessonID := util.NewULID()

	mockSvc := &MockProgressService{
		GetLessonSummaryFunc: func(ctx context.Context, gotUserID, gotLessonID string) (*dto.LessonSummaryResponse, error) {
			assert.Equal(t, userID, gotUserID)
			assert.Equal(t, lessonID, gotLessonID)
			return &dto.LessonSummaryResponse{
				LessonID:       lessonID,
				TotalCards:     10,
				ReviewedCards:  6,
				CorrectCount:   14,
				IncorrectCount: 3,
			}, nil
		},
	}
	app := newProgressTestApp(mockSvc, userID)

	resp, err := app.Test(httptest.NewRequest("GET", "/lessons/"+lessonID+"/progress", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got dto.LessonSummaryResponse
	body, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, 10, got.TotalCards)
	assert.Equal(t, 6, got.ReviewedCards)
}
