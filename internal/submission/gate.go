package submission

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mas-patas/patitas/internal/config"
	"github.com/mas-patas/patitas/internal/domain"
)

// reportTTL is how long a published report stays active before expiry.
const reportTTL = 60 * 24 * time.Hour

// Matcher runs the match check for a draft and hands back the embedding it
// computed so publication never re-embeds.
type Matcher interface {
	FindMatchesWithEmbedding(ctx context.Context, draft *domain.Report) ([]domain.MatchCandidate, []float32)
}

// ReportStore persists published reports.
type ReportStore interface {
	Create(ctx context.Context, report *domain.Report) error
}

// Outcome says how a submission attempt resolved.
type Outcome string

const (
	// OutcomePublished means the report was persisted directly.
	OutcomePublished Outcome = "published"
	// OutcomeAwaitingConfirmation means likely matches were found and the
	// flow paused for a human decision.
	OutcomeAwaitingConfirmation Outcome = "awaiting_confirmation"
)

// Result is the outcome of one Submit call. MatchCheckRan reports whether
// the matcher was actually consulted, which the flag or the status table can
// both prevent.
type Result struct {
	Outcome       Outcome
	Report        *domain.Report
	DraftID       uuid.UUID
	Candidates    []domain.MatchCandidate
	MatchCheckRan bool
}

type pendingDraft struct {
	draft     *domain.Report
	embedding []float32
	createdAt time.Time
}

// Gate controls the report submission workflow: it decides whether a draft
// publishes immediately or pauses behind a confirmation step, and owns the
// draft until one of those happens. Pending drafts wait indefinitely; there
// is no timeout on a human decision.
type Gate struct {
	matcher Matcher
	reports ReportStore
	flags   *config.Flags
	tasks   []PostCommitTask
	logger  *slog.Logger

	mu      sync.Mutex
	pending map[uuid.UUID]pendingDraft
}

func NewGate(matcher Matcher, reports ReportStore, flags *config.Flags, tasks []PostCommitTask, logger *slog.Logger) *Gate {
	return &Gate{
		matcher: matcher,
		reports: reports,
		flags:   flags,
		tasks:   tasks,
		logger:  logger,
		pending: make(map[uuid.UUID]pendingDraft),
	}
}

// Submit runs the match check for the draft and either publishes it or
// parks it pending confirmation. The match check runs only when matching is
// enabled and the draft's status has a nonempty complement set; in every
// other case the draft publishes straight away, without an embedding.
func (g *Gate) Submit(ctx context.Context, draft *domain.Report) (*Result, error) {
	if !g.flags.MatchingEnabled() || len(domain.ComplementStatuses(draft.Status)) == 0 {
		report, err := g.persist(ctx, draft, nil)
		if err != nil {
			return nil, err
		}
		return &Result{Outcome: OutcomePublished, Report: report}, nil
	}

	candidates, embedding := g.matcher.FindMatchesWithEmbedding(ctx, draft)
	if len(candidates) == 0 {
		report, err := g.persist(ctx, draft, embedding)
		if err != nil {
			return nil, err
		}
		return &Result{Outcome: OutcomePublished, Report: report, MatchCheckRan: true}, nil
	}

	draftID := uuid.New()
	g.mu.Lock()
	g.pending[draftID] = pendingDraft{
		draft:     draft,
		embedding: embedding,
		createdAt: time.Now(),
	}
	g.mu.Unlock()

	return &Result{
		Outcome:       OutcomeAwaitingConfirmation,
		DraftID:       draftID,
		Candidates:    candidates,
		MatchCheckRan: true,
	}, nil
}

// Confirm publishes a pending draft anyway, reusing the embedding computed
// during the match check.
func (g *Gate) Confirm(ctx context.Context, draftID uuid.UUID) (*Result, error) {
	g.mu.Lock()
	entry, ok := g.pending[draftID]
	if ok {
		delete(g.pending, draftID)
	}
	g.mu.Unlock()

	if !ok {
		return nil, domain.ErrDraftNotFound
	}

	report, err := g.persist(ctx, entry.draft, entry.embedding)
	if err != nil {
		return nil, err
	}

	return &Result{Outcome: OutcomePublished, Report: report}, nil
}

// Abandon discards a pending draft. Nothing was persisted, so there is
// nothing to roll back.
func (g *Gate) Abandon(draftID uuid.UUID) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.pending[draftID]; !ok {
		return domain.ErrDraftNotFound
	}
	delete(g.pending, draftID)
	return nil
}

// PendingCount reports how many drafts are waiting on confirmation.
func (g *Gate) PendingCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.pending)
}

func (g *Gate) persist(ctx context.Context, draft *domain.Report, embedding []float32) (*domain.Report, error) {
	draft.Embedding = embedding
	draft.ExpiresAt = time.Now().Add(reportTTL)

	if err := g.reports.Create(ctx, draft); err != nil {
		return nil, err
	}

	g.runPostCommit(ctx, draft)

	return draft, nil
}

// runPostCommit runs the ordered side-effect tasks after the primary write.
// Each task is independently fallible: a failure is logged and the next task
// still runs. Nothing here can undo the persisted report.
func (g *Gate) runPostCommit(ctx context.Context, report *domain.Report) {
	for _, task := range g.tasks {
		if err := task.Run(ctx, report); err != nil {
			g.logger.Warn("post-commit task failed",
				slog.String("task", task.Name),
				slog.String("report_id", report.ID.String()),
				slog.Any("error", err),
			)
		}
	}
}
