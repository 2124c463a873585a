package embedding

import "context"

// Embedder turns a short textual animal profile into a fixed-length vector.
//
// Generate makes exactly one attempt; callers treat any error as "skip
// matching" and never retry. The returned slice is plain float32s so it can
// be serialized into a query body without loss, and is never non-nil empty.
type Embedder interface {
	Generate(ctx context.Context, text string) ([]float32, error)

	// Available reports whether the embedder was configured with everything
	// it needs at construction time. When false, Generate always fails fast.
	Available() bool
}
