package handler

import (
	"lingodeck/internal/dto"
	"lingodeck/internal/middleware"
	"lingodeck/internal/service"
	"lingodeck/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// LessonHandler serves lesson management and lesson content endpoints.
type LessonHandler struct {
	lessonService service.LessonService
	validator     *validation.Validator
}

func NewLessonHandler(lessonService service.LessonService) *LessonHandler {
	return &LessonHandler{
		lessonService: lessonService,
		validator:     validation.NewValidator(),
	}
}

// CreateLesson creates a new lesson owned by the authenticated admin.
func (h *LessonHandler) CreateLesson(c *fiber.Ctx) error {
	var req dto.CreateLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "INVALID_REQUEST_BODY", Message: "Invalid request body", Status: fiber.StatusBadRequest,
		})
	}
	if errs := h.validator.ValidateCreateLessonRequest(req.Title, req.Description); len(errs) > 0 {
		return errs
	}

	userID, _ := c.Locals(middleware.UserIDKey).(string)
	lesson, err := h.lessonService.CreateLesson(c.Context(), req.Title, req.Description, userID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(lesson)
}

// GetLesson returns one lesson by id.
func (h *LessonHandler) GetLesson(c *fiber.Ctx) error {
	lessonID, _ := c.Locals(middleware.ValidatedLessonIDKey).(string)
	lesson, err := h.lessonService.GetLesson(c.Context(), lessonID)
	if err != nil {
		return err
	}
	return c.JSON(lesson)
}

// ListLessons returns all lessons.
func (h *LessonHandler) ListLessons(c *fiber.Ctx) error {
	lessons, err := h.lessonService.ListLessons(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(lessons)
}

// DeleteLesson removes a lesson, its flashcards and their stored media.
func (h *LessonHandler) DeleteLesson(c *fiber.Ctx) error {
	lessonID, _ := c.Locals(middleware.ValidatedLessonIDKey).(string)
	if err := h.lessonService.DeleteLesson(c.Context(), lessonID); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Lesson deleted"})
}

// AssignLesson assigns a lesson to a student.
func (h *LessonHandler) AssignLesson(c *fiber.Ctx) error {
	lessonID, _ := c.Locals(middleware.ValidatedLessonIDKey).(string)

	var req dto.AssignLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "INVALID_REQUEST_BODY", Message: "Invalid request body", Status: fiber.StatusBadRequest,
		})
	}
	if errs := h.validator.ValidateIDParam("student_id", req.StudentID); len(errs) > 0 {
		return errs
	}

	if err := h.lessonService.AssignLesson(c.Context(), lessonID, req.StudentID); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Lesson assigned"})
}

// GetMyLessons returns the lessons assigned to the authenticated student.
func (h *LessonHandler) GetMyLessons(c *fiber.Ctx) error {
	userID, _ := c.Locals(middleware.UserIDKey).(string)
	lessons, err := h.lessonService.GetAssignedLessons(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(lessons)
}

// GetLessonFlashcards returns all flashcards of a lesson.
func (h *LessonHandler) GetLessonFlashcards(c *fiber.Ctx) error {
	lessonID, _ := c.Locals(middleware.ValidatedLessonIDKey).(string)
	cards, err := h.lessonService.GetLessonFlashcards(c.Context(), lessonID)
	if err != nil {
		return err
	}
	return c.JSON(cards)
}

// DeleteFlashcard removes a single flashcard and its stored media.
func (h *LessonHandler) DeleteFlashcard(c *fiber.Ctx) error {
	flashcardID, _ := c.Locals(middleware.ValidatedFlashcardIDKey).(string)
	if err := h.lessonService.DeleteFlashcard(c.Context(), flashcardID); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Flashcard deleted"})
}
