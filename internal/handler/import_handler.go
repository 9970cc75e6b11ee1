package handler

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"lingodeck/internal/importer"
	"lingodeck/internal/logger"
	"lingodeck/internal/middleware"
	"lingodeck/internal/service"
	"lingodeck/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ImportHandler serves the bulk flashcard import endpoint.
type ImportHandler struct {
	importService service.ImportService
	validator     *validation.Validator
}

func NewImportHandler(importService service.ImportService) *ImportHandler {
	return &ImportHandler{
		importService: importService,
		validator:     validation.NewValidator(),
	}
}

// ImportFlashcards accepts a multipart batch of audio and image files and
// turns them into flashcards for the lesson. The response reports one result
// per audio file, in upload order.
func (h *ImportHandler) ImportFlashcards(c *fiber.Ctx) error {
	appLogger := logger.Get()
	lessonID, _ := c.Locals(middleware.ValidatedLessonIDKey).(string)
	opts, _ := c.Locals(middleware.ValidatedImportOptionsKey).(importer.Options)

	form, err := c.MultipartForm()
	if err != nil {
		appLogger.Warn("Failed to parse multipart form", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "INVALID_MULTIPART_FORM", Message: "Request body must be multipart/form-data", Status: fiber.StatusBadRequest,
		})
	}

	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "NO_FILES", Message: "The form must carry at least one file under 'files'", Status: fiber.StatusBadRequest,
		})
	}
	if errs := h.validator.ValidateImportRequest(lessonID, len(fileHeaders), opts.ChoicesPerCard, opts.MaxImageDimension); len(errs) > 0 {
		return errs
	}

	files := make([]importer.UploadedFile, 0, len(fileHeaders))
	for _, header := range fileHeaders {
		file, err := readUpload(header)
		if err != nil {
			appLogger.Warn("Failed to read uploaded file",
				zap.String("filename", header.Filename),
				zap.Error(err))
			return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
				Code: "UNREADABLE_FILE", Message: "Could not read uploaded file: " + header.Filename, Status: fiber.StatusBadRequest,
			})
		}
		files = append(files, file)
	}

	var ctx context.Context = c.Context()
	if timeout, _ := c.Locals(middleware.ValidatedImportTimeoutKey).(time.Duration); timeout > 0 {
		// A per-request deadline on top of the configured batch timeout;
		// the earlier of the two wins.
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	report, err := h.importService.ImportFlashcards(ctx, lessonID, files, opts)
	if err != nil {
		return err // Handled by the error middleware.
	}

	return c.Status(fiber.StatusOK).JSON(report)
}

// readUpload loads one multipart file into memory. The declared Content-Type
// header is used when present; otherwise the type is sniffed from the bytes.
func readUpload(header *multipart.FileHeader) (importer.UploadedFile, error) {
	file, err := header.Open()
	if err != nil {
		return importer.UploadedFile{}, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return importer.UploadedFile{}, err
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(data)
	}

	return importer.UploadedFile{
		DisplayName: header.Filename,
		MIMEType:    mimeType,
		Bytes:       data,
	}, nil
}
