package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mas-patas/patitas/internal/domain"
)

type SavedSearchRepository struct {
	pool PgxPool
}

func NewSavedSearchRepository(pool PgxPool) *SavedSearchRepository {
	return &SavedSearchRepository{pool: pool}
}

func (r *SavedSearchRepository) Create(ctx context.Context, search *domain.SavedSearch) error {
	query := `
		INSERT INTO saved_searches (id, user_id, species, statuses, keywords, enabled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	if search.ID == uuid.Nil {
		search.ID = uuid.New()
	}

	statuses := make([]string, len(search.Statuses))
	for i, s := range search.Statuses {
		statuses[i] = string(s)
	}

	err := r.pool.QueryRow(ctx, query,
		search.ID,
		search.UserID,
		search.Species,
		statuses,
		search.Keywords,
		search.Enabled,
	).Scan(&search.CreatedAt, &search.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create saved search: %w", err)
	}

	return nil
}

func (r *SavedSearchRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SavedSearch, error) {
	query := `
		SELECT id, user_id, species, statuses, keywords, enabled, last_notified_at, created_at, updated_at
		FROM saved_searches
		WHERE id = $1
	`

	search, err := scanSavedSearch(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrSavedSearchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get saved search: %w", err)
	}

	return search, nil
}

func (r *SavedSearchRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.SavedSearch, error) {
	query := `
		SELECT id, user_id, species, statuses, keywords, enabled, last_notified_at, created_at, updated_at
		FROM saved_searches
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	return r.list(ctx, query, userID)
}

func (r *SavedSearchRepository) ListEnabled(ctx context.Context) ([]domain.SavedSearch, error) {
	query := `
		SELECT id, user_id, species, statuses, keywords, enabled, last_notified_at, created_at, updated_at
		FROM saved_searches
		WHERE enabled = TRUE
		ORDER BY created_at ASC
	`

	return r.list(ctx, query)
}

func (r *SavedSearchRepository) list(ctx context.Context, query string, args ...any) ([]domain.SavedSearch, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list saved searches: %w", err)
	}
	defer rows.Close()

	var searches []domain.SavedSearch
	for rows.Next() {
		search, err := scanSavedSearch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan saved search: %w", err)
		}
		searches = append(searches, *search)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate saved searches: %w", err)
	}

	return searches, nil
}

func (r *SavedSearchRepository) TouchNotified(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `
		UPDATE saved_searches
		SET last_notified_at = $1, updated_at = NOW()
		WHERE id = $2
	`

	if _, err := r.pool.Exec(ctx, query, at, id); err != nil {
		return fmt.Errorf("touch saved search: %w", err)
	}

	return nil
}

func (r *SavedSearchRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := `
		DELETE FROM saved_searches
		WHERE id = $1 AND user_id = $2
	`

	result, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete saved search: %w", err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrSavedSearchNotFound
	}

	return nil
}

func scanSavedSearch(row pgx.Row) (*domain.SavedSearch, error) {
	var search domain.SavedSearch
	var statuses []string

	err := row.Scan(
		&search.ID,
		&search.UserID,
		&search.Species,
		&statuses,
		&search.Keywords,
		&search.Enabled,
		&search.LastNotifiedAt,
		&search.CreatedAt,
		&search.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	search.Statuses = make([]domain.Status, len(statuses))
	for i, s := range statuses {
		search.Statuses[i] = domain.Status(s)
	}

	return &search, nil
}
