package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mas-patas/patitas/internal/domain"
)

type MatchAuditRepository struct {
	pool PgxPool
}

func NewMatchAuditRepository(pool PgxPool) *MatchAuditRepository {
	return &MatchAuditRepository{pool: pool}
}

// Create inserts a new match audit record
func (r *MatchAuditRepository) Create(ctx context.Context, audit *domain.MatchAudit) error {
	query := `
		INSERT INTO match_audits (
			id, species, statuses_queried, results_count,
			top_similarity, threshold, max_results, latency_ms, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING created_at
	`

	if audit.ID == uuid.Nil {
		audit.ID = uuid.New()
	}

	statuses := make([]string, len(audit.StatusesQueried))
	for i, s := range audit.StatusesQueried {
		statuses[i] = string(s)
	}

	err := r.pool.QueryRow(ctx, query,
		audit.ID,
		audit.Species,
		statuses,
		audit.ResultsCount,
		audit.TopSimilarity,
		audit.Threshold,
		audit.MaxResults,
		audit.LatencyMs,
	).Scan(&audit.CreatedAt)

	if err != nil {
		return fmt.Errorf("create match audit: %w", err)
	}

	return nil
}
