package handler

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/mas-patas/patitas/internal/domain"
)

// SavedSearchStore is the persistence the saved-search endpoints need.
type SavedSearchStore interface {
	Create(ctx context.Context, search *domain.SavedSearch) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.SavedSearch, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// SavedSearchHandler handles saved search CRUD
type SavedSearchHandler struct {
	searches SavedSearchStore
	logger   *slog.Logger
}

func NewSavedSearchHandler(searches SavedSearchStore, logger *slog.Logger) *SavedSearchHandler {
	return &SavedSearchHandler{searches: searches, logger: logger}
}

// CreateSavedSearchRequest is the creation payload
type CreateSavedSearchRequest struct {
	UserID   string   `json:"user_id"`
	Species  string   `json:"species,omitempty"`
	Statuses []string `json:"statuses,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
}

// Create POST /v1/searches - create a saved search
func (h *SavedSearchHandler) Create(c *fiber.Ctx) error {
	var req CreateSavedSearchRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ErrBadRequest.WithError(err)
	}

	userID, err := uuid.Parse(strings.TrimSpace(req.UserID))
	if err != nil {
		return domain.ErrValidationFailed.WithError(errors.New("user_id must be a valid UUID"))
	}

	species := domain.Species(strings.TrimSpace(req.Species))
	if species != "" && !species.Valid() {
		return domain.ErrInvalidSpecies
	}

	statuses := make([]domain.Status, 0, len(req.Statuses))
	for _, raw := range req.Statuses {
		status := domain.Status(strings.TrimSpace(raw))
		if !status.Valid() {
			return domain.ErrInvalidStatus
		}
		statuses = append(statuses, status)
	}

	keywords := make([]string, 0, len(req.Keywords))
	for _, kw := range req.Keywords {
		if kw = strings.TrimSpace(kw); kw != "" {
			keywords = append(keywords, kw)
		}
	}

	search := &domain.SavedSearch{
		UserID:   userID,
		Species:  species,
		Statuses: statuses,
		Keywords: keywords,
		Enabled:  true,
	}

	if err := h.searches.Create(c.Context(), search); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(search)
}

// List GET /v1/searches?user_id= - list a user's saved searches
func (h *SavedSearchHandler) List(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Query("user_id"))
	if err != nil {
		return domain.ErrValidationFailed.WithError(errors.New("user_id must be a valid UUID"))
	}

	searches, err := h.searches.ListByUser(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"searches": searches})
}

// Delete DELETE /v1/searches/:id?user_id= - delete a saved search
func (h *SavedSearchHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return domain.ErrValidationFailed.WithError(errors.New("id must be a valid UUID"))
	}

	userID, err := uuid.Parse(c.Query("user_id"))
	if err != nil {
		return domain.ErrValidationFailed.WithError(errors.New("user_id must be a valid UUID"))
	}

	if err := h.searches.Delete(c.Context(), userID, id); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
