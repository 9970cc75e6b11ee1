package handler

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"lingodeck/internal/domain"
	"lingodeck/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// BlobHandler serves stored audio and image blobs.
type BlobHandler struct {
	blobStore domain.BlobStore
}

func NewBlobHandler(blobStore domain.BlobStore) *BlobHandler {
	return &BlobHandler{blobStore: blobStore}
}

// GetBlob streams one stored blob. The wildcard path is the blob reference
// as returned inside flashcard payloads.
func (h *BlobHandler) GetBlob(c *fiber.Ctx) error {
	ref := strings.TrimPrefix(c.Params("*"), "/")
	if ref == "" {
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "MISSING_BLOB_REF", Message: "Blob reference is missing", Status: fiber.StatusBadRequest,
		})
	}

	data, err := h.blobStore.Get(c.Context(), domain.BlobRef(ref))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c.Status(fiber.StatusNotFound).JSON(middleware.ErrorResponse{
				Code: "BLOB_NOT_FOUND", Message: "No blob stored under this reference", Status: fiber.StatusNotFound,
			})
		}
		return err
	}

	c.Set(fiber.HeaderContentType, http.DetectContentType(data))
	return c.Send(data)
}
