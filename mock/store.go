package mock

import (
	"context"

	"github.com/fwojciec/triplify"
)

var _ triplify.OutputStore = (*OutputStore)(nil)

// OutputStore is a mock implementation of triplify.OutputStore.
type OutputStore struct {
	SaveFn   func(ctx context.Context, uri string, content []byte) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *OutputStore) Save(ctx context.Context, uri string, content []byte) error {
	return s.SaveFn(ctx, uri, content)
}

func (s *OutputStore) Commit() error {
	return s.CommitFn()
}

func (s *OutputStore) Abort() error {
	return s.AbortFn()
}
