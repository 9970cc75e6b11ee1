package domain

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	ErrInternal     ErrorCode = "INTERNAL_ERROR"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrForbidden    ErrorCode = "FORBIDDEN"
	CodeValidation  ErrorCode = "VALIDATION_ERROR"

	// Import pipeline errors, recorded per batch item
	ErrUnmatchedAudio          ErrorCode = "UNMATCHED_AUDIO"
	ErrImageProcessingFailure  ErrorCode = "IMAGE_PROCESSING_FAILURE"
	ErrInsufficientDistractors ErrorCode = "INSUFFICIENT_DISTRACTORS"
	ErrStorageFailure          ErrorCode = "STORAGE_FAILURE"
	ErrBatchTimeout            ErrorCode = "BATCH_TIMEOUT"

	// Lesson specific errors
	ErrLessonNotFound    ErrorCode = "LESSON_NOT_FOUND"
	ErrFlashcardNotFound ErrorCode = "FLASHCARD_NOT_FOUND"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Helper functions for common errors
func NewNotFoundError(message string) *DomainError {
	return NewError(ErrNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(ErrInvalidInput, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(ErrInternal, message, err)
}

func NewLessonNotFoundError(lessonID string) *DomainError {
	return NewError(ErrLessonNotFound, fmt.Sprintf("Lesson not found with ID: %s", lessonID), nil)
}

func NewFlashcardNotFoundError(flashcardID string) *DomainError {
	return NewError(ErrFlashcardNotFound, fmt.Sprintf("Flashcard not found with ID: %s", flashcardID), nil)
}

func NewUnmatchedAudioError(displayName string) *DomainError {
	return NewError(ErrUnmatchedAudio, fmt.Sprintf("no matching image found for %s", displayName), nil)
}

func NewImageProcessingError(displayName string, err error) *DomainError {
	return NewError(ErrImageProcessingFailure, fmt.Sprintf("failed to process image %s", displayName), err)
}

func NewInsufficientDistractorsError(needed, available int) *DomainError {
	return NewError(ErrInsufficientDistractors,
		fmt.Sprintf("not enough distinct images for choices: need %d, have %d", needed, available), nil)
}

func NewStorageFailureError(err error) *DomainError {
	return NewError(ErrStorageFailure, "failed to persist flashcard data", err)
}

func NewBatchTimeoutError() *DomainError {
	return NewError(ErrBatchTimeout, "batch deadline exceeded before pair was processed", nil)
}

// ValidationError describes a single invalid request field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates field-level validation failures for one request.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s", e[0].Error())
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{Field: field, Message: "is required"}
}

func NewInvalidFormatError(field, value string) ValidationError {
	return ValidationError{Field: field, Message: fmt.Sprintf("has invalid format: %q", value)}
}

func NewOutOfRangeError(field string, value, min, max int) ValidationError {
	return ValidationError{Field: field, Message: fmt.Sprintf("value %d is out of range [%d, %d]", value, min, max)}
}
