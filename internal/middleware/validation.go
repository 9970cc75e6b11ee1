package middleware

import (
	"strconv"
	"time"

	"lingodeck/internal/domain"
	"lingodeck/internal/importer"
	"lingodeck/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Keys for validated values stored in fiber.Ctx locals.
const (
	ValidatedLessonIDKey      = "validated_lesson_id"
	ValidatedImportOptionsKey = "validated_import_options"
	ValidatedImportTimeoutKey = "validated_import_timeout"
	ValidatedFlashcardIDKey   = "validated_flashcard_id"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateLessonID validates the :id path parameter of lesson routes.
func (vm *ValidationMiddleware) ValidateLessonID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		lessonID := c.Params("id")
		if errs := vm.validator.ValidateIDParam("lesson_id", lessonID); len(errs) > 0 {
			return errs // This will be handled by ErrorHandler middleware
		}
		c.Locals(ValidatedLessonIDKey, lessonID)
		return c.Next()
	}
}

// ValidateFlashcardID validates the :id path parameter of flashcard routes.
func (vm *ValidationMiddleware) ValidateFlashcardID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		flashcardID := c.Params("id")
		if errs := vm.validator.ValidateIDParam("flashcard_id", flashcardID); len(errs) > 0 {
			return errs
		}
		c.Locals(ValidatedFlashcardIDKey, flashcardID)
		return c.Next()
	}
}

// ValidateImportParams validates the optional query parameters of the bulk
// import endpoint and stores the resolved pipeline options in the context.
func (vm *ValidationMiddleware) ValidateImportParams() fiber.Handler {
	return func(c *fiber.Ctx) error {
		opts := importer.Options{
			ChoicesPerCard:    importer.DefaultChoicesPerCard,
			MaxImageDimension: importer.DefaultMaxImageDimension,
		}

		var errs domain.ValidationErrors
		if raw := c.Query("choices_per_card"); raw != "" {
			value, err := strconv.Atoi(raw)
			if err != nil {
				errs = append(errs, domain.NewInvalidFormatError("choices_per_card", raw))
			} else {
				opts.ChoicesPerCard = value
			}
		}
		if raw := c.Query("max_image_dimension"); raw != "" {
			value, err := strconv.Atoi(raw)
			if err != nil {
				errs = append(errs, domain.NewInvalidFormatError("max_image_dimension", raw))
			} else {
				opts.MaxImageDimension = value
			}
		}
		var timeoutSeconds int
		if raw := c.Query("timeout_seconds"); raw != "" {
			value, err := strconv.Atoi(raw)
			if err != nil {
				errs = append(errs, domain.NewInvalidFormatError("timeout_seconds", raw))
			} else {
				timeoutSeconds = value
			}
		}
		if len(errs) > 0 {
			return errs
		}

		if opts.ChoicesPerCard < 2 || opts.ChoicesPerCard > 10 {
			errs = append(errs, domain.NewOutOfRangeError("choices_per_card", opts.ChoicesPerCard, 2, 10))
		}
		if opts.MaxImageDimension < 50 || opts.MaxImageDimension > 4096 {
			errs = append(errs, domain.NewOutOfRangeError("max_image_dimension", opts.MaxImageDimension, 50, 4096))
		}
		if timeoutSeconds < 0 || timeoutSeconds > 600 {
			errs = append(errs, domain.NewOutOfRangeError("timeout_seconds", timeoutSeconds, 0, 600))
		}
		if len(errs) > 0 {
			return errs
		}

		c.Locals(ValidatedImportOptionsKey, opts)
		c.Locals(ValidatedImportTimeoutKey, time.Duration(timeoutSeconds)*time.Second)
		return c.Next()
	}
}
