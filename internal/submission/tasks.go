package submission

import (
	"context"
	"fmt"

	"github.com/mas-patas/patitas/internal/domain"
)

// PostCommitTask is one named side effect to run after a report persists.
type PostCommitTask struct {
	Name string
	Run  func(ctx context.Context, report *domain.Report) error
}

// NotificationStore records user notifications.
type NotificationStore interface {
	Create(ctx context.Context, n *domain.Notification) error
}

// ActivityStore records activity log entries.
type ActivityStore interface {
	Create(ctx context.Context, entry *domain.ActivityEntry) error
}

// AlertScanner evaluates saved searches against a freshly published report.
type AlertScanner interface {
	Scan(ctx context.Context, report *domain.Report) error
}

// UsageCounter increments a daily usage counter.
type UsageCounter interface {
	Increment(ctx context.Context, field string) error
}

// NotifyReporterTask tells the reporter their report went live.
func NotifyReporterTask(notifications NotificationStore) PostCommitTask {
	return PostCommitTask{
		Name: "notify_reporter",
		Run: func(ctx context.Context, report *domain.Report) error {
			return notifications.Create(ctx, &domain.Notification{
				UserID:   report.ReporterID,
				Type:     domain.NotificationReportPublished,
				ReportID: &report.ID,
				Title:    "Report published",
				Body:     fmt.Sprintf("Your %s report for %q is now live.", report.Status, report.Name),
			})
		},
	}
}

// LogActivityTask appends the publication to the activity log.
func LogActivityTask(activity ActivityStore) PostCommitTask {
	return PostCommitTask{
		Name: "activity_log",
		Run: func(ctx context.Context, report *domain.Report) error {
			return activity.Create(ctx, &domain.ActivityEntry{
				UserID:   report.ReporterID,
				Action:   "report_published",
				ReportID: &report.ID,
			})
		},
	}
}

// ScanSavedSearchesTask fans the new report out to matching saved searches.
func ScanSavedSearchesTask(scanner AlertScanner) PostCommitTask {
	return PostCommitTask{
		Name: "saved_search_scan",
		Run: func(ctx context.Context, report *domain.Report) error {
			return scanner.Scan(ctx, report)
		},
	}
}

// CountReportTask bumps the daily reports_created counter.
func CountReportTask(usage UsageCounter) PostCommitTask {
	return PostCommitTask{
		Name: "usage_counter",
		Run: func(ctx context.Context, report *domain.Report) error {
			return usage.Increment(ctx, "reports_created")
		},
	}
}
