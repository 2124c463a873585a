package admin

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/mas-patas/patitas/internal/config"
	"github.com/mas-patas/patitas/internal/domain"
)

// FlagsHandler toggles runtime feature flags
type FlagsHandler struct {
	flags  *config.Flags
	logger *slog.Logger
}

func NewFlagsHandler(flags *config.Flags, logger *slog.Logger) *FlagsHandler {
	return &FlagsHandler{flags: flags, logger: logger}
}

// FlagsResponse is the current flag state
type FlagsResponse struct {
	MatchingEnabled bool `json:"matching_enabled"`
}

// SetMatchingRequest is the toggle payload
type SetMatchingRequest struct {
	Enabled *bool `json:"enabled"`
}

// Get GET /v1/admin/flags - current flag state
func (h *FlagsHandler) Get(c *fiber.Ctx) error {
	return c.JSON(FlagsResponse{
		MatchingEnabled: h.flags.MatchingEnabled(),
	})
}

// SetMatching PUT /v1/admin/flags/matching - flip the matching flag
func (h *FlagsHandler) SetMatching(c *fiber.Ctx) error {
	var req SetMatchingRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ErrBadRequest.WithError(err)
	}
	if req.Enabled == nil {
		return domain.ErrBadRequest
	}

	h.flags.SetMatchingEnabled(*req.Enabled)
	h.logger.Info("matching flag changed", slog.Bool("enabled", *req.Enabled))

	return c.JSON(FlagsResponse{
		MatchingEnabled: h.flags.MatchingEnabled(),
	})
}
