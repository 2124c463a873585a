package submission

import (
	"context"
	"log/slog"
	"time"
)

// ExpiredDeleter removes reports whose expiry has passed.
type ExpiredDeleter interface {
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// Sweeper periodically deletes expired reports so the feed and the match
// index only ever see active ones.
type Sweeper struct {
	reports  ExpiredDeleter
	logger   *slog.Logger
	interval time.Duration
	done     chan struct{}
}

func NewSweeper(reports ExpiredDeleter, logger *slog.Logger, interval time.Duration) *Sweeper {
	if interval == 0 {
		interval = time.Hour
	}

	return &Sweeper{
		reports:  reports,
		logger:   logger,
		interval: interval,
		done:     make(chan struct{}),
	}
}

func (s *Sweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("expiry sweeper started", "interval", s.interval)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("expiry sweeper stopped")
			return
		case <-s.done:
			s.logger.Info("expiry sweeper stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) Stop() {
	close(s.done)
}

func (s *Sweeper) sweep(ctx context.Context) {
	deleted, err := s.reports.DeleteExpired(ctx, time.Now())
	if err != nil {
		s.logger.Error("failed to delete expired reports", "error", err)
		return
	}
	if deleted > 0 {
		s.logger.Info("expired reports deleted", "count", deleted)
	}
}
