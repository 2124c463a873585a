package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mas-patas/patitas/internal/domain"
)

type ActivityRepository struct {
	pool PgxPool
}

func NewActivityRepository(pool PgxPool) *ActivityRepository {
	return &ActivityRepository{pool: pool}
}

func (r *ActivityRepository) Create(ctx context.Context, entry *domain.ActivityEntry) error {
	query := `
		INSERT INTO activity_log (id, user_id, action, report_id, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING created_at
	`

	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}

	err := r.pool.QueryRow(ctx, query,
		entry.ID,
		entry.UserID,
		entry.Action,
		entry.ReportID,
		entry.Metadata,
	).Scan(&entry.CreatedAt)

	if err != nil {
		return fmt.Errorf("create activity entry: %w", err)
	}

	return nil
}
