package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status describes the lifecycle stage of an animal report. A report has
// exactly one status at a time.
type Status string

const (
	StatusLost        Status = "lost"
	StatusFound       Status = "found"
	StatusSighted     Status = "sighted"
	StatusForAdoption Status = "for_adoption"
	StatusReunited    Status = "reunited"
)

func (s Status) Valid() bool {
	switch s {
	case StatusLost, StatusFound, StatusSighted, StatusForAdoption, StatusReunited:
		return true
	}
	return false
}

// Species is the closed classification set used to prune cross-species matches.
type Species string

const (
	SpeciesDog   Species = "dog"
	SpeciesCat   Species = "cat"
	SpeciesOther Species = "other"
)

func (s Species) Valid() bool {
	switch s {
	case SpeciesDog, SpeciesCat, SpeciesOther:
		return true
	}
	return false
}

// Size is an optional classification field; empty means unspecified.
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

func (s Size) Valid() bool {
	switch s {
	case "", SizeSmall, SizeMedium, SizeLarge:
		return true
	}
	return false
}

// Report is an animal report. ID is uuid.Nil until the report is persisted;
// Embedding is nil when the embeddings model was unavailable at submission
// time or matching was disabled, and is never a non-nil empty slice.
type Report struct {
	ID          uuid.UUID `json:"id"`
	ReporterID  uuid.UUID `json:"reporter_id"`
	Status      Status    `json:"status"`
	Species     Species   `json:"species"`
	Breed       string    `json:"breed,omitempty"`
	Color       string    `json:"color,omitempty"`
	Size        Size      `json:"size,omitempty"`
	Name        string    `json:"name,omitempty"`
	Description string    `json:"description"`
	Images      []string  `json:"images,omitempty"`
	Embedding   []float32 `json:"-"`
	ExpiresAt   time.Time `json:"expires_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EmbeddingText builds the input for the embeddings model: species, breed,
// color and description, in that order, space-joined. Empty fields are
// skipped so the text carries no stray whitespace.
func (r *Report) EmbeddingText() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{string(r.Species), r.Breed, r.Color, r.Description} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// ComplementStatuses returns the statuses worth searching for a report of the
// given status. The table is fixed and total: statuses with no matching logic
// map to an empty set.
func ComplementStatuses(s Status) []Status {
	switch s {
	case StatusLost:
		return []Status{StatusFound, StatusSighted}
	case StatusFound:
		return []Status{StatusLost}
	case StatusSighted:
		return []Status{StatusLost}
	default:
		return nil
	}
}
