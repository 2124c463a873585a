package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mas-patas/patitas/internal/api/middleware"
	"github.com/mas-patas/patitas/internal/domain"
	"github.com/mas-patas/patitas/internal/vision"
)

type fakeDetector struct {
	analyzeFunc func(image []byte) (*vision.Suggestion, error)
}

func (f *fakeDetector) Analyze(_ context.Context, image []byte) (*vision.Suggestion, error) {
	return f.analyzeFunc(image)
}

func newPhotoTestApp(detector vision.LabelDetector, enabled bool) *fiber.App {
	logger := slog.New(slog.DiscardHandler)
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(logger),
	})

	h := NewPhotoHandler(detector, enabled, logger)
	app.Post("/v1/photos/analyze", h.Analyze)
	return app
}

func photoUpload(t *testing.T, contentType string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="image"; filename="pet.jpg"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return &body, writer.FormDataContentType()
}

func TestPhotoHandler_Analyze_ReturnsSuggestion(t *testing.T) {
	payload := []byte("jpeg-bytes")
	detector := &fakeDetector{
		analyzeFunc: func(image []byte) (*vision.Suggestion, error) {
			assert.Equal(t, payload, image)
			return &vision.Suggestion{
				Species:    domain.SpeciesDog,
				Colors:     []string{"black"},
				Labels:     []string{"Dog", "Black"},
				Confidence: 97.2,
			}, nil
		},
	}
	app := newPhotoTestApp(detector, true)

	body, contentType := photoUpload(t, "image/jpeg", payload)
	req := httptest.NewRequest("POST", "/v1/photos/analyze", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var suggestion vision.Suggestion
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &suggestion))
	assert.Equal(t, domain.SpeciesDog, suggestion.Species)
	assert.Equal(t, []string{"black"}, suggestion.Colors)
}

func TestPhotoHandler_Analyze_Disabled(t *testing.T) {
	app := newPhotoTestApp(nil, false)

	body, contentType := photoUpload(t, "image/jpeg", []byte("jpeg-bytes"))
	req := httptest.NewRequest("POST", "/v1/photos/analyze", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestPhotoHandler_Analyze_UnsupportedContentType(t *testing.T) {
	called := false
	detector := &fakeDetector{
		analyzeFunc: func(image []byte) (*vision.Suggestion, error) {
			called = true
			return nil, nil
		},
	}
	app := newPhotoTestApp(detector, true)

	body, contentType := photoUpload(t, "image/gif", []byte("gif-bytes"))
	req := httptest.NewRequest("POST", "/v1/photos/analyze", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.False(t, called, "detector should not be called for a rejected upload")
}
