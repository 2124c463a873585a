package usage

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_IncrementDaily(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec(`INSERT INTO usage_daily \(date, match_checks\)`).
		WithArgs(day, 1).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := NewRepository(mock)
	require.NoError(t, repo.IncrementDaily(context.Background(), day, FieldMatchChecks, 1))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_IncrementDaily_RejectsUnknownField(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRepository(mock)
	err = repo.IncrementDaily(context.Background(), time.Now(), "registrations; DROP TABLE usage_daily", 1)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid field")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetDailyUsage(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	now := time.Now()

	rows := pgxmock.NewRows([]string{"id", "date", "reports_created", "match_checks", "confirmations", "created_at", "updated_at"}).
		AddRow(uuid.New(), start.AddDate(0, 0, 13), 12, 9, 3, now, now).
		AddRow(uuid.New(), start, 5, 4, 1, now, now)

	mock.ExpectQuery(`FROM usage_daily`).
		WithArgs(start, end).
		WillReturnRows(rows)

	repo := NewRepository(mock)
	records, err := repo.GetDailyUsage(context.Background(), start, end)

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 12, records[0].ReportsCreated)
	assert.Equal(t, 9, records[0].MatchChecks)
	assert.Equal(t, 1, records[1].Confirmations)
	assert.NoError(t, mock.ExpectationsWereMet())
}
