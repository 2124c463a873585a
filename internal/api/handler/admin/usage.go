package admin

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mas-patas/patitas/internal/domain"
	"github.com/mas-patas/patitas/internal/usage"
)

// UsageReader serves daily usage records for a date range.
type UsageReader interface {
	GetDailyUsage(ctx context.Context, startDate, endDate time.Time) ([]usage.Record, error)
}

// UsageHandler serves the daily usage counters
type UsageHandler struct {
	usage  UsageReader
	logger *slog.Logger
}

func NewUsageHandler(reader UsageReader, logger *slog.Logger) *UsageHandler {
	return &UsageHandler{usage: reader, logger: logger}
}

// Get GET /v1/admin/usage?from=YYYY-MM-DD&to=YYYY-MM-DD
// Defaults to the last 30 days.
func (h *UsageHandler) Get(c *fiber.Ctx) error {
	now := time.Now().UTC()
	from := now.AddDate(0, 0, -30)
	to := now

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return domain.ErrValidationFailed.WithError(err)
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return domain.ErrValidationFailed.WithError(err)
		}
		to = parsed
	}

	records, err := h.usage.GetDailyUsage(c.Context(), from, to)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"usage": records})
}
