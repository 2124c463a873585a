package domain

import (
	"time"

	"github.com/google/uuid"
)

// SavedSearch is a persistent search that is evaluated against every newly
// published report. Empty Species means any species; empty Statuses means any
// status; Keywords are all-of, case-insensitive.
type SavedSearch struct {
	ID             uuid.UUID  `json:"id"`
	UserID         uuid.UUID  `json:"user_id"`
	Species        Species    `json:"species,omitempty"`
	Statuses       []Status   `json:"statuses,omitempty"`
	Keywords       []string   `json:"keywords,omitempty"`
	Enabled        bool       `json:"enabled"`
	LastNotifiedAt *time.Time `json:"last_notified_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// NotificationType distinguishes in-app notification kinds.
type NotificationType string

const (
	NotificationReportPublished NotificationType = "report_published"
	NotificationSavedSearchHit  NotificationType = "saved_search_hit"
	NotificationReportReunited  NotificationType = "report_reunited"
)

// Notification is an in-app notification row.
type Notification struct {
	ID        uuid.UUID        `json:"id"`
	UserID    uuid.UUID        `json:"user_id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Body      string           `json:"body"`
	ReportID  *uuid.UUID       `json:"report_id,omitempty"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}

// ActivityEntry is one row of the per-user activity log.
type ActivityEntry struct {
	ID        uuid.UUID      `json:"id"`
	UserID    uuid.UUID      `json:"user_id"`
	Action    string         `json:"action"`
	ReportID  *uuid.UUID     `json:"report_id,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
