package usage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mas-patas/patitas/internal/repository"
)

// Record is one day of platform usage counters.
type Record struct {
	ID             uuid.UUID `json:"id"`
	Date           time.Time `json:"date"`
	ReportsCreated int       `json:"reports_created"`
	MatchChecks    int       `json:"match_checks"`
	Confirmations  int       `json:"confirmations"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

const (
	FieldReportsCreated = "reports_created"
	FieldMatchChecks    = "match_checks"
	FieldConfirmations  = "confirmations"
)

type Repository struct {
	pool repository.PgxPool
}

func NewRepository(pool repository.PgxPool) *Repository {
	return &Repository{pool: pool}
}

// IncrementDaily upserts one counter for the given day. The field name is
// validated against the known columns before it is interpolated.
func (r *Repository) IncrementDaily(ctx context.Context, date time.Time, field string, amount int) error {
	if field != FieldReportsCreated && field != FieldMatchChecks && field != FieldConfirmations {
		return fmt.Errorf("invalid field: %s", field)
	}

	query := fmt.Sprintf(`
		INSERT INTO usage_daily (date, %s)
		VALUES ($1, $2)
		ON CONFLICT (date)
		DO UPDATE SET %s = usage_daily.%s + EXCLUDED.%s, updated_at = NOW()
	`, field, field, field, field)

	_, err := r.pool.Exec(ctx, query, date, amount)
	if err != nil {
		return fmt.Errorf("increment daily %s: %w", field, err)
	}

	return nil
}

// GetDailyUsage returns the usage records for a date range, newest first.
func (r *Repository) GetDailyUsage(ctx context.Context, startDate, endDate time.Time) ([]Record, error) {
	query := `
		SELECT id, date, reports_created, match_checks, confirmations, created_at, updated_at
		FROM usage_daily
		WHERE date >= $1 AND date <= $2
		ORDER BY date DESC
	`

	rows, err := r.pool.Query(ctx, query, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("get daily usage: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var record Record
		err := rows.Scan(
			&record.ID,
			&record.Date,
			&record.ReportsCreated,
			&record.MatchChecks,
			&record.Confirmations,
			&record.CreatedAt,
			&record.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan usage record: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate usage records: %w", err)
	}

	return records, nil
}
