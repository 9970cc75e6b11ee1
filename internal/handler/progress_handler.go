package handler

import (
	"lingodeck/internal/dto"
	"lingodeck/internal/middleware"
	"lingodeck/internal/service"
	"lingodeck/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ProgressHandler serves review and progress endpoints for students.
type ProgressHandler struct {
	progressService service.ProgressService
	validator       *validation.Validator
}

func NewProgressHandler(progressService service.ProgressService) *ProgressHandler {
	return &ProgressHandler{
		progressService: progressService,
		validator:       validation.NewValidator(),
	}
}

// RecordAnswer scores one answer and reschedules the card for review.
func (h *ProgressHandler) RecordAnswer(c *fiber.Ctx) error {
	flashcardID, _ := c.Locals(middleware.ValidatedFlashcardIDKey).(string)

	var req dto.RecordAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "INVALID_REQUEST_BODY", Message: "Invalid request body", Status: fiber.StatusBadRequest,
		})
	}
	if errs := h.validator.ValidateRecordAnswerRequest(flashcardID, req.SelectedIndex); len(errs) > 0 {
		return errs
	}

	userID, _ := c.Locals(middleware.UserIDKey).(string)
	resp, err := h.progressService.RecordAnswer(c.Context(), userID, flashcardID, req.SelectedIndex)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetReviewQueue returns the flashcards of a lesson due for review now.
func (h *ProgressHandler) GetReviewQueue(c *fiber.Ctx) error {
	lessonID, _ := c.Locals(middleware.ValidatedLessonIDKey).(string)
	userID, _ := c.Locals(middleware.UserIDKey).(string)

	cards, err := h.progressService.GetReviewQueue(c.Context(), userID, lessonID)
	if err != nil {
		return err
	}
	return c.JSON(cards)
}

// GetLessonSummary returns the student's aggregate progress for a lesson.
func (h *ProgressHandler) GetLessonSummary(c *fiber.Ctx) error {
	lessonID, _ := c.Locals(middleware.ValidatedLessonIDKey).(string)
	userID, _ := c.Locals(middleware.UserIDKey).(string)

	summary, err := h.progressService.GetLessonSummary(c.Context(), userID, lessonID)
	if err != nil {
		return err
	}
	return c.JSON(summary)
}
