package matching

import (
	"context"
	"log/slog"
	"time"

	"github.com/mas-patas/patitas/internal/domain"
	"github.com/mas-patas/patitas/internal/embedding"
	"github.com/mas-patas/patitas/internal/repository"
)

// Searcher is the vector index the orchestrator queries, one status per call.
type Searcher interface {
	SearchByEmbedding(ctx context.Context, q repository.SearchQuery) ([]domain.MatchRow, error)
}

// AuditStore records matching passes; failures are logged and swallowed.
type AuditStore interface {
	Create(ctx context.Context, audit *domain.MatchAudit) error
}

type Service struct {
	embedder  embedding.Embedder
	searcher  Searcher
	audits    AuditStore
	threshold float64
	topK      int
	logger    *slog.Logger
}

func NewService(embedder embedding.Embedder, searcher Searcher, audits AuditStore, threshold float64, topK int, logger *slog.Logger) *Service {
	return &Service{
		embedder:  embedder,
		searcher:  searcher,
		audits:    audits,
		threshold: threshold,
		topK:      topK,
		logger:    logger,
	}
}

// FindMatches searches previously reported animals of the complementary
// statuses for likely matches to the draft. It never returns an error: any
// failure inside the matching pass degrades to fewer (or zero) candidates,
// and the submission flow proceeds regardless.
func (s *Service) FindMatches(ctx context.Context, draft *domain.Report) []domain.MatchCandidate {
	candidates, _ := s.FindMatchesWithEmbedding(ctx, draft)
	return candidates
}

// FindMatchesWithEmbedding is FindMatches plus the embedding it computed, so
// the submission gate can persist the draft later without re-embedding. The
// returned vector is nil whenever the embedding step was skipped or failed.
func (s *Service) FindMatchesWithEmbedding(ctx context.Context, draft *domain.Report) ([]domain.MatchCandidate, []float32) {
	complements := domain.ComplementStatuses(draft.Status)
	if len(complements) == 0 {
		return nil, nil
	}

	vector, err := s.embedder.Generate(ctx, draft.EmbeddingText())
	if err != nil {
		s.logger.Warn("embedding unavailable, skipping match check",
			slog.String("species", string(draft.Species)),
			slog.String("status", string(draft.Status)),
			slog.Any("error", err),
		)
		return nil, nil
	}

	start := time.Now()

	var rows []domain.MatchRow
	for _, status := range complements {
		statusRows, err := s.searcher.SearchByEmbedding(ctx, repository.SearchQuery{
			Embedding: vector,
			Status:    status,
			Species:   draft.Species,
			Threshold: s.threshold,
			Limit:     s.topK,
		})
		if err != nil {
			// One status failing must not starve the others.
			s.logger.Warn("similarity search failed for status",
				slog.String("status", string(status)),
				slog.Any("error", err),
			)
			continue
		}
		rows = append(rows, statusRows...)
	}

	candidates := rank(rows)
	s.recordAudit(ctx, draft, complements, candidates, time.Since(start))

	return candidates, vector
}

func (s *Service) recordAudit(ctx context.Context, draft *domain.Report, statuses []domain.Status, candidates []domain.MatchCandidate, latency time.Duration) {
	audit := &domain.MatchAudit{
		Species:         draft.Species,
		StatusesQueried: statuses,
		ResultsCount:    len(candidates),
		Threshold:       s.threshold,
		MaxResults:      s.topK,
		LatencyMs:       latency.Milliseconds(),
	}
	if len(candidates) > 0 {
		top := float64(candidates[0].Score) / 100
		audit.TopSimilarity = &top
	}

	if err := s.audits.Create(ctx, audit); err != nil {
		s.logger.Warn("failed to record match audit", slog.Any("error", err))
	}
}
