// Package rod provides a triplify.Fetcher that renders pages in headless
// Chrome, so markup produced by JavaScript is visible to extractors.
package rod

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/fwojciec/triplify"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds a single page render.
const DefaultFetchTimeout = 10 * time.Second

// renderedContentType is reported for every rendered page, since the
// serialized DOM is HTML whatever the server declared.
const renderedContentType = "text/html; charset=utf-8"

// Ensure Fetcher implements triplify.Fetcher at compile time.
var _ triplify.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	pool     *browserPool
	timeout  time.Duration
	maxPages int
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the time allowed for one page to load and render.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxPages sets how many pages are rendered before the browser is
// restarted.
func WithMaxPages(n int) Option {
	return func(f *Fetcher) {
		f.maxPages = n
	}
}

// NewFetcher launches a headless browser. Close must be called when the
// Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:  DefaultFetchTimeout,
		maxPages: DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(f)
	}

	pool, err := newBrowserPool(f.maxPages)
	if err != nil {
		return nil, err
	}
	f.pool = pool
	return f, nil
}

// Fetch navigates to the request URI and returns the rendered DOM. Only GET
// requests can be rendered. Failures are EACQUISITION errors that also wrap
// the underlying cause, so context errors remain detectable with errors.Is.
func (f *Fetcher) Fetch(ctx context.Context, req *triplify.FetchRequest) (*triplify.FetchResponse, error) {
	if req.Method != "" && req.Method != http.MethodGet {
		return nil, triplify.Errorf(triplify.EACQUISITION, "cannot render %s request for %s", req.Method, req.URI)
	}
	if err := ctx.Err(); err != nil {
		return nil, acquisitionError(req.URI, err)
	}

	inst, ok := f.pool.acquire()
	if !ok {
		return nil, triplify.Errorf(triplify.EACQUISITION, "fetcher closed")
	}
	defer f.pool.release(inst)

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := inst.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, acquisitionError(req.URI, err)
	}
	defer page.Close()
	page = page.Context(ctx)

	if err := page.Navigate(req.URI); err != nil {
		return nil, acquisitionError(req.URI, contextCause(ctx, err))
	}
	if err := page.WaitLoad(); err != nil {
		return nil, acquisitionError(req.URI, contextCause(ctx, err))
	}

	html, err := page.HTML()
	if err != nil {
		return nil, acquisitionError(req.URI, contextCause(ctx, err))
	}

	return &triplify.FetchResponse{
		Content:     []byte(html),
		ContentType: renderedContentType,
	}, nil
}

// Close shuts the browser down. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	return f.pool.close()
}

// LauncherPID returns the process id of the running browser launcher.
func (f *Fetcher) LauncherPID() int {
	return f.pool.launcherPID()
}

func acquisitionError(uri string, err error) error {
	return fmt.Errorf("%w: %w", triplify.Errorf(triplify.EACQUISITION, "rendering %s: %v", uri, err), err)
}

// contextCause prefers the context error when rod reports a generic failure
// after the deadline passed.
func contextCause(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
		return fmt.Errorf("%w: %v", ctxErr, err)
	}
	return err
}
