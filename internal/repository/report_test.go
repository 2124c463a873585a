package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mas-patas/patitas/internal/domain"
)

func TestReportRepository_Create(t *testing.T) {
	now := time.Now()
	expires := now.Add(60 * 24 * time.Hour)

	tests := []struct {
		name      string
		report    *domain.Report
		mockSetup func(mock pgxmock.PgxPoolIface)
		wantErr   bool
	}{
		{
			name: "with embedding",
			report: &domain.Report{
				ReporterID:  uuid.New(),
				Status:      domain.StatusLost,
				Species:     domain.SpeciesDog,
				Breed:       "labrador",
				Color:       "black",
				Description: "friendly, limps on left leg",
				Embedding:   []float32{0.1, 0.2, 0.3},
				ExpiresAt:   expires,
			},
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO reports`).
					WithArgs(
						pgxmock.AnyArg(), pgxmock.AnyArg(), domain.StatusLost, domain.SpeciesDog,
						"labrador", "black", domain.Size(""), "", "friendly, limps on left leg",
						[]string(nil), pgxmock.AnyArg(), expires,
					).
					WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
			},
		},
		{
			name: "without embedding passes null vector",
			report: &domain.Report{
				ReporterID:  uuid.New(),
				Status:      domain.StatusForAdoption,
				Species:     domain.SpeciesCat,
				Description: "gray tabby",
				ExpiresAt:   expires,
			},
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO reports`).
					WithArgs(
						pgxmock.AnyArg(), pgxmock.AnyArg(), domain.StatusForAdoption, domain.SpeciesCat,
						"", "", domain.Size(""), "", "gray tabby",
						[]string(nil), (*pgvector.Vector)(nil), expires,
					).
					WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
			},
		},
		{
			name: "database error",
			report: &domain.Report{
				ReporterID:  uuid.New(),
				Status:      domain.StatusLost,
				Species:     domain.SpeciesDog,
				Description: "x",
				ExpiresAt:   expires,
			},
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO reports`).
					WithArgs(
						pgxmock.AnyArg(), pgxmock.AnyArg(), domain.StatusLost, domain.SpeciesDog,
						"", "", domain.Size(""), "", "x",
						[]string(nil), (*pgvector.Vector)(nil), expires,
					).
					WillReturnError(errors.New("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.mockSetup(mock)

			repo := NewReportRepository(mock)
			err = repo.Create(context.Background(), tt.report)

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.NotEqual(t, uuid.Nil, tt.report.ID)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestReportRepository_SearchByEmbedding(t *testing.T) {
	embedding := []float32{0.5, 0.5, 0.5}
	idA := uuid.New()
	idB := uuid.New()

	tests := []struct {
		name      string
		query     SearchQuery
		mockSetup func(mock pgxmock.PgxPoolIface)
		want      []domain.MatchRow
		wantErr   bool
	}{
		{
			name: "returns rows in index order",
			query: SearchQuery{
				Embedding: embedding,
				Status:    domain.StatusFound,
				Species:   domain.SpeciesDog,
				Threshold: 0.70,
				Limit:     5,
			},
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{"id", "name", "description", "images", "status", "similarity"}).
					AddRow(idA, "Max", "black lab near the park", []string{"a.jpg"}, domain.StatusFound, 0.95).
					AddRow(idB, "", "dark dog, limping", []string(nil), domain.StatusFound, 0.81)

				mock.ExpectQuery(`SELECT id, name, description, images, status, 1 - \(embedding <=> \$1\) AS similarity`).
					WithArgs(pgvector.NewVector(embedding), domain.StatusFound, domain.SpeciesDog, 0.70, 5).
					WillReturnRows(rows)
			},
			want: []domain.MatchRow{
				{ID: idA, Name: "Max", Description: "black lab near the park", Images: []string{"a.jpg"}, Status: domain.StatusFound, Similarity: 0.95},
				{ID: idB, Description: "dark dog, limping", Status: domain.StatusFound, Similarity: 0.81},
			},
		},
		{
			name: "no rows above threshold",
			query: SearchQuery{
				Embedding: embedding,
				Status:    domain.StatusSighted,
				Species:   domain.SpeciesCat,
				Threshold: 0.70,
				Limit:     5,
			},
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT id, name, description, images, status`).
					WithArgs(pgvector.NewVector(embedding), domain.StatusSighted, domain.SpeciesCat, 0.70, 5).
					WillReturnRows(pgxmock.NewRows([]string{"id", "name", "description", "images", "status", "similarity"}))
			},
			want: nil,
		},
		{
			name: "index unavailable",
			query: SearchQuery{
				Embedding: embedding,
				Status:    domain.StatusLost,
				Species:   domain.SpeciesDog,
				Threshold: 0.70,
				Limit:     5,
			},
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`SELECT id, name, description, images, status`).
					WithArgs(pgvector.NewVector(embedding), domain.StatusLost, domain.SpeciesDog, 0.70, 5).
					WillReturnError(errors.New("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.mockSetup(mock)

			repo := NewReportRepository(mock)
			got, err := repo.SearchByEmbedding(context.Background(), tt.query)

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestReportRepository_GetByID(t *testing.T) {
	id := uuid.New()
	now := time.Now()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	vec := pgvector.NewVector([]float32{0.1, 0.2})
	rows := pgxmock.NewRows([]string{
		"id", "reporter_id", "status", "species", "breed", "color", "size",
		"name", "description", "images", "embedding", "expires_at", "created_at", "updated_at",
	}).AddRow(
		id, uuid.New(), domain.StatusLost, domain.SpeciesDog, "labrador", "black", domain.Size(""),
		"Max", "friendly", []string{"a.jpg"}, &vec, now.Add(time.Hour), now, now,
	)

	mock.ExpectQuery(`SELECT id, reporter_id, status, species`).
		WithArgs(id).
		WillReturnRows(rows)

	repo := NewReportRepository(mock)
	report, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, id, report.ID)
	assert.Equal(t, domain.StatusLost, report.Status)
	assert.Equal(t, []float32{0.1, 0.2}, report.Embedding)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepository_GetByID_NotFound(t *testing.T) {
	id := uuid.New()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, reporter_id, status, species`).
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)

	repo := NewReportRepository(mock)
	_, err = repo.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrReportNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepository_MarkReunited_Already(t *testing.T) {
	id := uuid.New()
	now := time.Now()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`UPDATE reports`).
		WithArgs(domain.StatusReunited, id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	rows := pgxmock.NewRows([]string{
		"id", "reporter_id", "status", "species", "breed", "color", "size",
		"name", "description", "images", "embedding", "expires_at", "created_at", "updated_at",
	}).AddRow(
		id, uuid.New(), domain.StatusReunited, domain.SpeciesCat, "", "", domain.Size(""),
		"", "already home", []string(nil), (*pgvector.Vector)(nil), now, now, now,
	)
	mock.ExpectQuery(`SELECT id, reporter_id, status, species`).
		WithArgs(id).
		WillReturnRows(rows)

	repo := NewReportRepository(mock)
	err = repo.MarkReunited(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrReportAlreadyReunited)
	assert.NoError(t, mock.ExpectationsWereMet())
}
