package handler

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/mas-patas/patitas/internal/domain"
	"github.com/mas-patas/patitas/internal/vision"
)

const maxUploadSize = 10 * 1024 * 1024 // 10MB

var validImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// PhotoHandler handles photo analysis requests
type PhotoHandler struct {
	detector vision.LabelDetector
	enabled  bool
	logger   *slog.Logger
}

func NewPhotoHandler(detector vision.LabelDetector, enabled bool, logger *slog.Logger) *PhotoHandler {
	return &PhotoHandler{
		detector: detector,
		enabled:  enabled,
		logger:   logger,
	}
}

// Analyze POST /v1/photos/analyze - suggest report fields from a photo
func (h *PhotoHandler) Analyze(c *fiber.Ctx) error {
	if !h.enabled || h.detector == nil {
		return domain.ErrVisionDisabled
	}

	imageBytes, err := extractAndValidateImage(c)
	if err != nil {
		return fmt.Errorf("analyze photo: %w", err)
	}

	suggestion, err := h.detector.Analyze(c.Context(), imageBytes)
	if err != nil {
		if errors.Is(err, vision.ErrInvalidImage) {
			return domain.ErrInvalidImage.WithError(err)
		}
		h.logger.Error("photo analysis failed", slog.Any("error", err))
		return domain.ErrInternal.WithError(err)
	}

	return c.JSON(suggestion)
}

// extractAndValidateImage pulls the "image" part out of a multipart form and
// enforces type and size limits before any bytes reach a provider.
func extractAndValidateImage(c *fiber.Ctx) ([]byte, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return nil, domain.ErrValidationFailed.WithError(errors.New("image file is required"))
	}

	if fileHeader.Size > maxUploadSize {
		return nil, domain.ErrValidationFailed.WithError(
			fmt.Errorf("image exceeds maximum size of %d bytes", maxUploadSize))
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !validImageTypes[contentType] {
		return nil, domain.ErrInvalidImage.WithError(
			fmt.Errorf("unsupported content type: %s", contentType))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, domain.ErrInternal.WithError(err)
	}
	defer file.Close()

	imageBytes, err := io.ReadAll(file)
	if err != nil {
		return nil, domain.ErrInternal.WithError(err)
	}

	return imageBytes, nil
}
