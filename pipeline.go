package triplify

import (
	"context"
	"fmt"
	"io"
)

// RunOptions selects how a document is extracted and serialized.
type RunOptions struct {
	// Format is the output writer identifier, e.g. "nt" or "turtle".
	Format string

	// Extractors restricts extraction to the named extractors. When empty,
	// extractors are negotiated from the document's media type.
	Extractors []string

	// AutoDetect allows guessing the media type from content when the source
	// declares none or the declared type matches no extractor.
	AutoDetect bool
}

// Pipeline acquires, parses, extracts and serializes one document.
type Pipeline interface {
	// Run extracts src and writes the serialized triples to w. The returned
	// result is closed and reports whether any triple was produced and which
	// extractors failed. Terminal failures are returned as *PipelineError.
	Run(ctx context.Context, src DocumentSource, opts RunOptions, w io.Writer) (*ExtractionResult, error)
}

// State is a step of the extraction pipeline.
type State int

// Pipeline states. The last three are terminal failure states.
const (
	StateAcquire State = iota
	StateParse
	StateMatch
	StateExtract
	StateSerialize
	StateDone
	StateAcquireFailed
	StateParseFailed
	StateFormatUnsupported
)

var stateNames = map[State]string{
	StateAcquire:           "ACQUIRE",
	StateParse:             "PARSE",
	StateMatch:             "MATCH",
	StateExtract:           "EXTRACT",
	StateSerialize:         "SERIALIZE",
	StateDone:              "DONE",
	StateAcquireFailed:     "ACQUIRE_FAILED",
	StateParseFailed:       "PARSE_FAILED",
	StateFormatUnsupported: "FORMAT_UNSUPPORTED",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// PipelineError is a terminal pipeline failure. It carries what the HTTP
// boundary needs to choose a status code.
type PipelineError struct {
	State       State
	DocumentURI string
	ContentType string

	// Code is the application error code for the failure.
	Code string

	// Err is the underlying cause.
	Err error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: uri=%s content-type=%q: %v", e.State, e.DocumentURI, e.ContentType, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}
