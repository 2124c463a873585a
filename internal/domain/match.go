package domain

import (
	"time"

	"github.com/google/uuid"
)

// MatchRow is a raw similarity hit returned by the vector index. Similarity
// is the normalized cosine score in [0,1], already filtered by the index's
// own threshold.
type MatchRow struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Images      []string  `json:"images"`
	Status      Status    `json:"status"`
	Similarity  float64   `json:"similarity"`
}

// MatchCandidate is one ranked match surfaced to the user before their draft
// is persisted. Candidates are ephemeral: they live only for the duration of
// a single submission attempt.
type MatchCandidate struct {
	ReportID    uuid.UUID `json:"report_id"`
	Status      Status    `json:"status"`
	Name        string    `json:"name,omitempty"`
	Excerpt     string    `json:"excerpt"`
	Images      []string  `json:"images,omitempty"`
	Score       int       `json:"score"`
	Explanation string    `json:"explanation"`
}

// MatchAudit records one matching pass for observability.
type MatchAudit struct {
	ID              uuid.UUID `json:"id"`
	Species         Species   `json:"species"`
	StatusesQueried []Status  `json:"statuses_queried"`
	ResultsCount    int       `json:"results_count"`
	TopSimilarity   *float64  `json:"top_similarity,omitempty"`
	Threshold       float64   `json:"threshold"`
	MaxResults      int       `json:"max_results"`
	LatencyMs       int64     `json:"latency_ms"`
	CreatedAt       time.Time `json:"created_at"`
}
