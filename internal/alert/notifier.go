package alert

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mas-patas/patitas/internal/domain"
)

// NotificationStore persists in-app notifications.
type NotificationStore interface {
	Create(ctx context.Context, n *domain.Notification) error
}

// SearchToucher records when a saved search last produced a notification.
type SearchToucher interface {
	TouchNotified(ctx context.Context, id uuid.UUID, at time.Time) error
}

// Notifier turns a saved-search hit into a notification row for the search
// owner and stamps the search's last-notified time.
type Notifier struct {
	notifications NotificationStore
	searches      SearchToucher
	logger        *slog.Logger
}

func NewNotifier(notifications NotificationStore, searches SearchToucher, logger *slog.Logger) *Notifier {
	return &Notifier{
		notifications: notifications,
		searches:      searches,
		logger:        logger,
	}
}

func (n *Notifier) Notify(ctx context.Context, search *domain.SavedSearch, report *domain.Report) error {
	notification := &domain.Notification{
		UserID:   search.UserID,
		Type:     domain.NotificationSavedSearchHit,
		ReportID: &report.ID,
		Title:    "A report matches your saved search",
		Body:     fmt.Sprintf("New %s report: %s", report.Status, reportHeadline(report)),
	}

	if err := n.notifications.Create(ctx, notification); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}

	if err := n.searches.TouchNotified(ctx, search.ID, time.Now()); err != nil {
		// the notification already went out, a stale timestamp is tolerable
		n.logger.Warn("failed to stamp saved search",
			slog.String("saved_search_id", search.ID.String()),
			slog.Any("error", err),
		)
	}

	return nil
}

func reportHeadline(report *domain.Report) string {
	if report.Name != "" {
		return fmt.Sprintf("%s (%s)", report.Name, report.Species)
	}
	return string(report.Species)
}
