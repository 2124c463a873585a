package handler

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/mas-patas/patitas/internal/domain"
)

// NotificationReader serves a user's notification feed.
type NotificationReader interface {
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Notification, error)
}

// NotificationHandler handles notification feed requests
type NotificationHandler struct {
	notifications NotificationReader
	logger        *slog.Logger
}

func NewNotificationHandler(notifications NotificationReader, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{notifications: notifications, logger: logger}
}

// List GET /v1/notifications?user_id= - a user's notifications, newest first
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Query("user_id"))
	if err != nil {
		return domain.ErrValidationFailed.WithError(errors.New("user_id must be a valid UUID"))
	}

	limit := c.QueryInt("limit", 50)
	if limit < 1 || limit > 200 {
		limit = 50
	}

	notifications, err := h.notifications.ListByUser(c.Context(), userID, limit)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"notifications": notifications})
}
