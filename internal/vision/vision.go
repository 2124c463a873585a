package vision

import (
	"context"
	"errors"

	"github.com/mas-patas/patitas/internal/domain"
)

var (
	// ErrInvalidImage indicates the uploaded bytes cannot be analyzed
	ErrInvalidImage = errors.New("invalid image for analysis")

	// ErrInvalidCredentials indicates AWS credentials are invalid or missing
	ErrInvalidCredentials = errors.New("invalid or missing AWS credentials")
)

// Suggestion is what the label detector inferred from a photo. It pre-fills
// the report form; the reporter can override everything.
type Suggestion struct {
	Species    domain.Species `json:"species"`
	Colors     []string       `json:"colors,omitempty"`
	Labels     []string       `json:"labels"`
	Confidence float64        `json:"confidence"`
}

// LabelDetector analyzes an uploaded photo and suggests report fields.
type LabelDetector interface {
	Analyze(ctx context.Context, image []byte) (*Suggestion, error)
}
