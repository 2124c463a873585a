package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mas-patas/patitas/internal/domain"
)

// PgxPool is the subset of pgxpool.Pool the repositories use. pgxmock
// satisfies it, so every repository is testable without a database.
type PgxPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// SearchQuery describes one similarity query against the report index.
// Exactly one status per query: the index's filter model is single-status,
// and multi-status complements are issued as separate queries.
type SearchQuery struct {
	Embedding []float32
	Status    domain.Status
	Species   domain.Species
	Threshold float64
	Limit     int
}

// ReportRepositoryInterface defines operations for report data access
type ReportRepositoryInterface interface {
	Create(ctx context.Context, report *domain.Report) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Report, error)
	ListActive(ctx context.Context, status domain.Status, species domain.Species, limit, offset int) ([]domain.Report, error)
	SearchByEmbedding(ctx context.Context, q SearchQuery) ([]domain.MatchRow, error)
	MarkReunited(ctx context.Context, id uuid.UUID) error
	UpdateEmbedding(ctx context.Context, id uuid.UUID, embedding []float32) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// SavedSearchRepositoryInterface defines operations for saved search data access
type SavedSearchRepositoryInterface interface {
	Create(ctx context.Context, search *domain.SavedSearch) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SavedSearch, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.SavedSearch, error)
	ListEnabled(ctx context.Context) ([]domain.SavedSearch, error)
	TouchNotified(ctx context.Context, id uuid.UUID, at time.Time) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// NotificationRepositoryInterface defines operations for notification data access
type NotificationRepositoryInterface interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Notification, error)
}

// ActivityRepositoryInterface defines operations for the activity log
type ActivityRepositoryInterface interface {
	Create(ctx context.Context, entry *domain.ActivityEntry) error
}

// MatchAuditRepositoryInterface defines operations for match audit logging
type MatchAuditRepositoryInterface interface {
	Create(ctx context.Context, audit *domain.MatchAudit) error
}

var (
	_ ReportRepositoryInterface       = (*ReportRepository)(nil)
	_ SavedSearchRepositoryInterface  = (*SavedSearchRepository)(nil)
	_ NotificationRepositoryInterface = (*NotificationRepository)(nil)
	_ ActivityRepositoryInterface     = (*ActivityRepository)(nil)
	_ MatchAuditRepositoryInterface   = (*MatchAuditRepository)(nil)
)
