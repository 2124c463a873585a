package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pgvector/pgvector-go"

	"github.com/mas-patas/patitas/internal/domain"
)

type ReportRepository struct {
	pool PgxPool
}

func NewReportRepository(pool PgxPool) *ReportRepository {
	return &ReportRepository{pool: pool}
}

func (r *ReportRepository) Create(ctx context.Context, report *domain.Report) error {
	query := `
		INSERT INTO reports (id, reporter_id, status, species, breed, color, size, name, description, images, embedding, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}

	var embedding *pgvector.Vector
	if len(report.Embedding) > 0 {
		vec := pgvector.NewVector(report.Embedding)
		embedding = &vec
	}

	err := r.pool.QueryRow(ctx, query,
		report.ID,
		report.ReporterID,
		report.Status,
		report.Species,
		report.Breed,
		report.Color,
		report.Size,
		report.Name,
		report.Description,
		report.Images,
		embedding,
		report.ExpiresAt,
	).Scan(&report.CreatedAt, &report.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}

	return nil
}

func (r *ReportRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Report, error) {
	query := `
		SELECT id, reporter_id, status, species, breed, color, size, name, description, images, embedding, expires_at, created_at, updated_at
		FROM reports
		WHERE id = $1
	`

	var report domain.Report
	var embedding *pgvector.Vector

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&report.ID,
		&report.ReporterID,
		&report.Status,
		&report.Species,
		&report.Breed,
		&report.Color,
		&report.Size,
		&report.Name,
		&report.Description,
		&report.Images,
		&embedding,
		&report.ExpiresAt,
		&report.CreatedAt,
		&report.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrReportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get report by id: %w", err)
	}

	if embedding != nil && len(embedding.Slice()) > 0 {
		report.Embedding = embedding.Slice()
	}

	return &report, nil
}

func (r *ReportRepository) ListActive(ctx context.Context, status domain.Status, species domain.Species, limit, offset int) ([]domain.Report, error) {
	query := `
		SELECT id, reporter_id, status, species, breed, color, size, name, description, images, expires_at, created_at, updated_at
		FROM reports
		WHERE expires_at > NOW()
		  AND ($1 = '' OR status = $1)
		  AND ($2 = '' OR species = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := r.pool.Query(ctx, query, string(status), string(species), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list active reports: %w", err)
	}
	defer rows.Close()

	var reports []domain.Report
	for rows.Next() {
		var report domain.Report
		err := rows.Scan(
			&report.ID,
			&report.ReporterID,
			&report.Status,
			&report.Species,
			&report.Breed,
			&report.Color,
			&report.Size,
			&report.Name,
			&report.Description,
			&report.Images,
			&report.ExpiresAt,
			&report.CreatedAt,
			&report.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		reports = append(reports, report)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reports: %w", err)
	}

	return reports, nil
}

// SearchByEmbedding runs one approximate-nearest-neighbor query filtered by a
// single status and species. Cosine similarity is 1 - (embedding <=> query);
// the threshold is enforced here, server-side, not by callers. Results come
// back in the index's own relevance order.
func (r *ReportRepository) SearchByEmbedding(ctx context.Context, q SearchQuery) ([]domain.MatchRow, error) {
	query := `
		SELECT id, name, description, images, status, 1 - (embedding <=> $1) AS similarity
		FROM reports
		WHERE status = $2
		  AND species = $3
		  AND embedding IS NOT NULL
		  AND expires_at > NOW()
		  AND 1 - (embedding <=> $1) >= $4
		ORDER BY embedding <=> $1
		LIMIT $5
	`

	rows, err := r.pool.Query(ctx, query,
		pgvector.NewVector(q.Embedding),
		q.Status,
		q.Species,
		q.Threshold,
		q.Limit,
	)
	if err != nil {
		return nil, fmt.Errorf("search by embedding: %w", err)
	}
	defer rows.Close()

	var matches []domain.MatchRow
	for rows.Next() {
		var row domain.MatchRow
		err := rows.Scan(
			&row.ID,
			&row.Name,
			&row.Description,
			&row.Images,
			&row.Status,
			&row.Similarity,
		)
		if err != nil {
			return nil, fmt.Errorf("scan match row: %w", err)
		}
		matches = append(matches, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate match rows: %w", err)
	}

	return matches, nil
}

func (r *ReportRepository) MarkReunited(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE reports
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status <> $1
	`

	result, err := r.pool.Exec(ctx, query, domain.StatusReunited, id)
	if err != nil {
		return fmt.Errorf("mark reunited: %w", err)
	}

	if result.RowsAffected() == 0 {
		// Either absent or already reunited; disambiguate for the caller.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return domain.ErrReportAlreadyReunited
	}

	return nil
}

// UpdateEmbedding replaces a report's stored vector. No submission flow calls
// this today; it exists so a future edit flow can recompute stale embeddings.
func (r *ReportRepository) UpdateEmbedding(ctx context.Context, id uuid.UUID, embedding []float32) error {
	query := `
		UPDATE reports
		SET embedding = $1, updated_at = NOW()
		WHERE id = $2
	`

	var vec *pgvector.Vector
	if len(embedding) > 0 {
		v := pgvector.NewVector(embedding)
		vec = &v
	}

	result, err := r.pool.Exec(ctx, query, vec, id)
	if err != nil {
		return fmt.Errorf("update embedding: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrReportNotFound
	}

	return nil
}

func (r *ReportRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	query := `
		DELETE FROM reports
		WHERE expires_at <= $1 AND status <> $2
	`

	result, err := r.pool.Exec(ctx, query, before, domain.StatusReunited)
	if err != nil {
		return 0, fmt.Errorf("delete expired reports: %w", err)
	}

	return result.RowsAffected(), nil
}
