package usage

import (
	"context"
	"log/slog"
	"time"
)

// Incrementer bumps a daily counter by some amount.
type Incrementer interface {
	IncrementDaily(ctx context.Context, date time.Time, field string, amount int) error
}

// Tracker is the best-effort counting front. Nothing in the product depends
// on these counters, so failures are logged and dropped.
type Tracker struct {
	repo   Incrementer
	logger *slog.Logger
}

func NewTracker(repo Incrementer, logger *slog.Logger) *Tracker {
	return &Tracker{repo: repo, logger: logger}
}

// Increment bumps today's counter synchronously. Used from post-commit tasks
// which already run off the request's critical path.
func (t *Tracker) Increment(ctx context.Context, field string) error {
	return t.repo.IncrementDaily(ctx, time.Now().UTC(), field, 1)
}

// TrackAsync bumps today's counter from a detached goroutine with its own
// timeout, so a slow database write never holds up a request.
func (t *Tracker) TrackAsync(field string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := t.repo.IncrementDaily(ctx, time.Now().UTC(), field, 1); err != nil {
			t.logger.Warn("failed to track usage",
				"error", err,
				"field", field,
			)
		}
	}()
}
