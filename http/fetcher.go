// Package http provides the HTTP front end for triplify and an HTTP-based
// triplify.Fetcher for retrieving remote documents.
package http

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fwojciec/triplify"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
// Kept consistent with rod.DefaultFetchTimeout (10s).
const DefaultFetchTimeout = 10 * time.Second

// DefaultMaxContentSize bounds the size of a fetched document.
const DefaultMaxContentSize = 10 << 20

// DefaultUserAgent identifies the fetcher to remote servers.
const DefaultUserAgent = "triplify/1.0"

// acceptHeader prefers the formats extractors are registered for.
const acceptHeader = "text/html;q=0.9, application/xhtml+xml;q=0.9, application/n-triples;q=0.8, application/n-quads;q=0.8, text/plain;q=0.1, */*;q=0.05"

// Ensure Fetcher implements triplify.Fetcher at compile time.
var _ triplify.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves documents using plain HTTP requests.
// Unlike rod.Fetcher, this does not execute JavaScript.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	maxSize   int64
	limiter   triplify.DomainLimiter
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxContentSize sets the largest response body accepted, in bytes.
func WithMaxContentSize(n int64) Option {
	return func(f *Fetcher) {
		f.maxSize = n
	}
}

// WithRateLimiter throttles requests per host.
func WithRateLimiter(l triplify.DomainLimiter) Option {
	return func(f *Fetcher) {
		f.limiter = l
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
		maxSize:   DefaultMaxContentSize,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch performs the request. Every failure, including a non-2xx status or
// an oversized body, is returned as an EACQUISITION error.
func (f *Fetcher) Fetch(ctx context.Context, r *triplify.FetchRequest) (*triplify.FetchResponse, error) {
	u, err := url.Parse(r.URI)
	if err != nil {
		return nil, triplify.Errorf(triplify.EACQUISITION, "invalid URI %q: %v", r.URI, err)
	}

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, u.Hostname()); err != nil {
			return nil, triplify.Errorf(triplify.EACQUISITION, "rate limit wait for %s: %v", u.Hostname(), err)
		}
	}

	method := r.Method
	if method == "" {
		method = http.MethodGet
	}
	var body io.Reader
	if len(r.Body) > 0 {
		body = bytes.NewReader(r.Body)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.URI, body)
	if err != nil {
		return nil, triplify.Errorf(triplify.EACQUISITION, "creating request: %v", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", acceptHeader)
	if r.ContentType != "" {
		req.Header.Set("Content-Type", r.ContentType)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, triplify.Errorf(triplify.EACQUISITION, "fetching %s: %v", r.URI, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, triplify.Errorf(triplify.EACQUISITION, "HTTP %d for %s", resp.StatusCode, r.URI)
	}

	content, err := io.ReadAll(io.LimitReader(resp.Body, f.maxSize+1))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, triplify.Errorf(triplify.EACQUISITION, "timeout reading %s", r.URI)
		}
		return nil, triplify.Errorf(triplify.EACQUISITION, "reading %s: %v", r.URI, err)
	}
	if int64(len(content)) > f.maxSize {
		return nil, triplify.Errorf(triplify.EACQUISITION, "%s exceeds %d bytes", r.URI, f.maxSize)
	}

	return &triplify.FetchResponse{
		Content:     content,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
