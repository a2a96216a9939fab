package triplify

import "context"

// OutputStore persists the serialized output of a batch run. Output is
// staged and only becomes visible when Commit succeeds.
type OutputStore interface {
	// Save stages the output extracted from the document at uri.
	Save(ctx context.Context, uri string, content []byte) error

	// Commit publishes everything saved so far, replacing earlier output.
	Commit() error

	// Abort discards everything saved so far.
	Abort() error
}
