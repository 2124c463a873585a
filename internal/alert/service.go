package alert

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mas-patas/patitas/internal/domain"
)

// SearchLister loads the saved searches worth evaluating.
type SearchLister interface {
	ListEnabled(ctx context.Context) ([]domain.SavedSearch, error)
}

// Service evaluates every enabled saved search against a freshly published
// report and notifies the owners of the ones that hit. It runs as a
// post-commit task, so a failure here never affects the report itself.
type Service struct {
	searches SearchLister
	engine   *Engine
	notifier *Notifier
	logger   *slog.Logger
}

func NewService(searches SearchLister, engine *Engine, notifier *Notifier, logger *slog.Logger) *Service {
	return &Service{
		searches: searches,
		engine:   engine,
		notifier: notifier,
		logger:   logger,
	}
}

// Scan walks the enabled saved searches and notifies each owner whose
// criteria the report satisfies. Per-search notification failures are
// counted but do not stop the scan.
func (s *Service) Scan(ctx context.Context, report *domain.Report) error {
	searches, err := s.searches.ListEnabled(ctx)
	if err != nil {
		return fmt.Errorf("list saved searches: %w", err)
	}

	var hits, failed int
	for i := range searches {
		search := &searches[i]
		if !s.engine.Matches(search, report) {
			continue
		}
		hits++
		if err := s.notifier.Notify(ctx, search, report); err != nil {
			failed++
			s.logger.Warn("saved search notification failed",
				slog.String("saved_search_id", search.ID.String()),
				slog.String("report_id", report.ID.String()),
				slog.Any("error", err),
			)
		}
	}

	if hits > 0 {
		s.logger.Info("saved search scan complete",
			slog.String("report_id", report.ID.String()),
			slog.Int("hits", hits),
			slog.Int("failed", failed),
		)
	}

	if failed > 0 {
		return fmt.Errorf("failed to notify %d/%d saved searches", failed, hits)
	}
	return nil
}
