package handler

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/mas-patas/patitas/internal/audit"
	"github.com/mas-patas/patitas/internal/domain"
	"github.com/mas-patas/patitas/internal/submission"
)

// SubmissionGate drives the submit/confirm/abandon workflow.
type SubmissionGate interface {
	Submit(ctx context.Context, draft *domain.Report) (*submission.Result, error)
	Confirm(ctx context.Context, draftID uuid.UUID) (*submission.Result, error)
	Abandon(draftID uuid.UUID) error
}

// ReportReader serves the read side of the report feed.
type ReportReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Report, error)
	ListActive(ctx context.Context, status domain.Status, species domain.Species, limit, offset int) ([]domain.Report, error)
	MarkReunited(ctx context.Context, id uuid.UUID) error
}

// UsageTracker counts handler-level events (best-effort, async)
type UsageTracker interface {
	TrackAsync(field string)
}

// ReportHandler handles report submission and feed requests
type ReportHandler struct {
	gate        SubmissionGate
	reports     ReportReader
	usage       UsageTracker
	auditLogger audit.Logger
	logger      *slog.Logger
}

func NewReportHandler(gate SubmissionGate, reports ReportReader, usage UsageTracker, auditLogger audit.Logger, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{
		gate:        gate,
		reports:     reports,
		usage:       usage,
		auditLogger: auditLogger,
		logger:      logger,
	}
}

// SubmitReportRequest is the submit payload
type SubmitReportRequest struct {
	ReporterID  string   `json:"reporter_id"`
	Status      string   `json:"status"`
	Species     string   `json:"species"`
	Breed       string   `json:"breed,omitempty"`
	Color       string   `json:"color,omitempty"`
	Size        string   `json:"size,omitempty"`
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description"`
	Images      []string `json:"images,omitempty"`
}

// SubmitReportResponse is returned when matches paused the submission
type SubmitReportResponse struct {
	Outcome    string                  `json:"outcome"`
	DraftID    string                  `json:"draft_id,omitempty"`
	Candidates []domain.MatchCandidate `json:"candidates,omitempty"`
	Report     *domain.Report          `json:"report,omitempty"`
}

// ConfirmRequest is the confirm-anyway payload
type ConfirmRequest struct {
	DraftID string `json:"draft_id"`
}

func (r *SubmitReportRequest) toDraft() (*domain.Report, error) {
	reporterID, err := uuid.Parse(strings.TrimSpace(r.ReporterID))
	if err != nil {
		return nil, domain.ErrValidationFailed.WithError(errors.New("reporter_id must be a valid UUID"))
	}

	status := domain.Status(strings.TrimSpace(r.Status))
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	species := domain.Species(strings.TrimSpace(r.Species))
	if !species.Valid() {
		return nil, domain.ErrInvalidSpecies
	}

	size := domain.Size(strings.TrimSpace(r.Size))
	if !size.Valid() {
		return nil, domain.ErrValidationFailed.WithError(errors.New("size must be one of: small, medium, large"))
	}

	description := strings.TrimSpace(r.Description)
	if description == "" {
		return nil, domain.ErrValidationFailed.WithError(errors.New("description is required"))
	}

	return &domain.Report{
		ReporterID:  reporterID,
		Status:      status,
		Species:     species,
		Breed:       strings.TrimSpace(r.Breed),
		Color:       strings.TrimSpace(r.Color),
		Size:        size,
		Name:        strings.TrimSpace(r.Name),
		Description: description,
		Images:      r.Images,
	}, nil
}

// Submit POST /v1/reports - submit a new report draft
func (h *ReportHandler) Submit(c *fiber.Ctx) error {
	var req SubmitReportRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ErrBadRequest.WithError(err)
	}

	draft, err := req.toDraft()
	if err != nil {
		return err
	}

	result, err := h.gate.Submit(c.Context(), draft)
	if err != nil {
		return err
	}

	if result.MatchCheckRan {
		h.usage.TrackAsync("match_checks")
		h.logAudit(c, audit.EventMatchSearched, true, audit.Event{
			ReporterID: draft.ReporterID,
			Metadata:   map[string]string{"candidates": strconv.Itoa(len(result.Candidates))},
		})
	}

	if result.Outcome == submission.OutcomeAwaitingConfirmation {
		return c.JSON(SubmitReportResponse{
			Outcome:    string(result.Outcome),
			DraftID:    result.DraftID.String(),
			Candidates: result.Candidates,
		})
	}

	h.logAudit(c, audit.EventReportPublished, true, audit.Event{
		ReporterID: draft.ReporterID,
		ReportID:   result.Report.ID.String(),
	})

	return c.Status(fiber.StatusCreated).JSON(SubmitReportResponse{
		Outcome: string(result.Outcome),
		Report:  result.Report,
	})
}

// Confirm POST /v1/reports/confirm - publish a pending draft anyway
func (h *ReportHandler) Confirm(c *fiber.Ctx) error {
	var req ConfirmRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ErrBadRequest.WithError(err)
	}

	draftID, err := uuid.Parse(strings.TrimSpace(req.DraftID))
	if err != nil {
		return domain.ErrValidationFailed.WithError(errors.New("draft_id must be a valid UUID"))
	}

	result, err := h.gate.Confirm(c.Context(), draftID)
	if err != nil {
		return err
	}

	h.usage.TrackAsync("confirmations")
	h.logAudit(c, audit.EventMatchConfirmed, true, audit.Event{
		ReporterID: result.Report.ReporterID,
		ReportID:   result.Report.ID.String(),
		DraftID:    draftID.String(),
	})

	return c.Status(fiber.StatusCreated).JSON(SubmitReportResponse{
		Outcome: string(result.Outcome),
		Report:  result.Report,
	})
}

// Abandon DELETE /v1/submissions/:draft_id - discard a pending draft
func (h *ReportHandler) Abandon(c *fiber.Ctx) error {
	draftID, err := uuid.Parse(c.Params("draft_id"))
	if err != nil {
		return domain.ErrValidationFailed.WithError(errors.New("draft_id must be a valid UUID"))
	}

	if err := h.gate.Abandon(draftID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// List GET /v1/reports - active report feed with optional filters
func (h *ReportHandler) List(c *fiber.Ctx) error {
	status := domain.Status(c.Query("status"))
	if status != "" && !status.Valid() {
		return domain.ErrInvalidStatus
	}

	species := domain.Species(c.Query("species"))
	if species != "" && !species.Valid() {
		return domain.ErrInvalidSpecies
	}

	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	reports, err := h.reports.ListActive(c.Context(), status, species, limit, offset)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"reports": reports,
		"limit":   limit,
		"offset":  offset,
	})
}

// Get GET /v1/reports/:id - single report
func (h *ReportHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return domain.ErrValidationFailed.WithError(errors.New("id must be a valid UUID"))
	}

	report, err := h.reports.GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(report)
}

// Reunited POST /v1/reports/:id/reunited - close a report as reunited
func (h *ReportHandler) Reunited(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return domain.ErrValidationFailed.WithError(errors.New("id must be a valid UUID"))
	}

	if err := h.reports.MarkReunited(c.Context(), id); err != nil {
		return err
	}

	h.logAudit(c, audit.EventReportReunited, true, audit.Event{
		ReportID: id.String(),
	})

	return c.SendStatus(fiber.StatusNoContent)
}

// logAudit records an audit event, fire-and-forget
func (h *ReportHandler) logAudit(c *fiber.Ctx, eventType audit.EventType, success bool, event audit.Event) {
	if h.auditLogger == nil {
		return
	}
	event.EventType = eventType
	event.Success = success
	event.IPAddress = c.IP()
	event.UserAgent = c.Get("User-Agent")
	_ = h.auditLogger.Log(c.Context(), event)
}
