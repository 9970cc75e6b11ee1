package validation

import (
	"regexp"
	"strings"

	"lingodeck/internal/domain"
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateImportRequest validates a bulk flashcard import request.
func (v *Validator) ValidateImportRequest(lessonID string, fileCount, choicesPerCard, maxImageDimension int) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(lessonID) == "" {
		errors = append(errors, domain.NewMissingFieldError("lesson_id"))
	} else if !isValidULID(lessonID) {
		errors = append(errors, domain.NewInvalidFormatError("lesson_id", lessonID))
	}

	if fileCount <= 0 {
		errors = append(errors, domain.NewMissingFieldError("files"))
	}

	if choicesPerCard < 2 || choicesPerCard > 10 {
		errors = append(errors, domain.NewOutOfRangeError("choices_per_card", choicesPerCard, 2, 10))
	}

	if maxImageDimension < 50 || maxImageDimension > 4096 {
		errors = append(errors, domain.NewOutOfRangeError("max_image_dimension", maxImageDimension, 50, 4096))
	}

	return errors
}

// ValidateCreateLessonRequest validates the create lesson request.
func (v *Validator) ValidateCreateLessonRequest(title, description string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(title) == "" {
		errors = append(errors, domain.NewMissingFieldError("title"))
	} else if len(title) > 255 {
		errors = append(errors, domain.NewOutOfRangeError("title", len(title), 1, 255))
	}

	if len(description) > 2000 {
		errors = append(errors, domain.NewOutOfRangeError("description", len(description), 0, 2000))
	}

	return errors
}

// ValidateRecordAnswerRequest validates a student's answer submission.
func (v *Validator) ValidateRecordAnswerRequest(flashcardID string, selectedIndex int) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(flashcardID) == "" {
		errors = append(errors, domain.NewMissingFieldError("flashcard_id"))
	} else if !isValidULID(flashcardID) {
		errors = append(errors, domain.NewInvalidFormatError("flashcard_id", flashcardID))
	}

	// Cards carry at most ten choices.
	if selectedIndex < 0 || selectedIndex > 9 {
		errors = append(errors, domain.NewOutOfRangeError("selected_index", selectedIndex, 0, 9))
	}

	return errors
}

// ValidateIDParam validates a path parameter expected to be a ULID.
func (v *Validator) ValidateIDParam(name, value string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(value) == "" {
		errors = append(errors, domain.NewMissingFieldError(name))
	} else if !isValidULID(value) {
		errors = append(errors, domain.NewInvalidFormatError(name, value))
	}

	return errors
}

// isValidULID checks if the string is a valid ULID format
func isValidULID(s string) bool {
	// ULID is 26 characters long, base32 encoded
	if len(s) != 26 {
		return false
	}
	// Check if all characters are valid base32 (Crockford's Base32)
	validULID := regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)
	return validULID.MatchString(s)
}
