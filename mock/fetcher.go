package mock

import (
	"context"

	"github.com/fwojciec/triplify"
)

var _ triplify.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of triplify.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, req *triplify.FetchRequest) (*triplify.FetchResponse, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, req *triplify.FetchRequest) (*triplify.FetchResponse, error) {
	return f.FetchFn(ctx, req)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ triplify.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of triplify.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
