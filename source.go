package triplify

import (
	"context"
	"net/http"
	"sync"
)

// DocumentSource provides uniform access to a document regardless of where
// its content came from. The document URI is fixed at construction and
// anchors relative-URI resolution for the whole extraction pass.
type DocumentSource interface {
	// DocumentURI returns the resolved base URI of the document.
	DocumentURI() string

	// ContentType returns the declared media type, or "" if none was declared.
	// Remote sources only know their type after Content has been called.
	ContentType() string

	// Content returns the document bytes. Remote sources fetch on the first
	// call and return EACQUISITION errors on failure.
	Content(ctx context.Context) ([]byte, error)
}

// Ensure MemorySource implements DocumentSource at compile time.
var _ DocumentSource = (*MemorySource)(nil)

// MemorySource is a DocumentSource over content already held in memory,
// such as a string supplied by a library caller or a POSTed body.
type MemorySource struct {
	content     []byte
	contentType string
	documentURI string
}

// NewStringSource returns a source over a string. An empty documentURI
// falls back to DefaultBaseURI.
func NewStringSource(content, documentURI, contentType string) *MemorySource {
	return NewBytesSource([]byte(content), documentURI, contentType)
}

// NewBytesSource returns a source over a byte slice. The slice is not copied.
func NewBytesSource(content []byte, documentURI, contentType string) *MemorySource {
	if documentURI == "" {
		documentURI = DefaultBaseURI
	}
	return &MemorySource{
		content:     content,
		contentType: contentType,
		documentURI: documentURI,
	}
}

func (s *MemorySource) DocumentURI() string { return s.documentURI }
func (s *MemorySource) ContentType() string { return s.contentType }

func (s *MemorySource) Content(ctx context.Context) ([]byte, error) {
	return s.content, nil
}

// FetchRequest describes a single remote retrieval.
type FetchRequest struct {
	// Method is http.MethodGet when empty.
	Method string
	URI    string

	// Body and ContentType are sent with POST requests.
	Body        []byte
	ContentType string
}

// FetchResponse holds the content of a successful retrieval.
type FetchResponse struct {
	Content     []byte
	ContentType string
}

// Fetcher retrieves remote documents.
type Fetcher interface {
	// Fetch performs the request and returns the response body.
	// Network errors, non-2xx statuses and timeouts are returned as
	// EACQUISITION errors. The context controls cancellation; no
	// retries are attempted.
	Fetch(ctx context.Context, req *FetchRequest) (*FetchResponse, error)

	// Close releases resources held by the fetcher.
	Close() error
}

// DomainLimiter throttles requests per domain.
type DomainLimiter interface {
	// Wait blocks until a request to domain is allowed or ctx is done.
	Wait(ctx context.Context, domain string) error
}

// Ensure RemoteSource implements DocumentSource at compile time.
var _ DocumentSource = (*RemoteSource)(nil)

// RemoteSource is a DocumentSource fetched through a Fetcher. The document is
// retrieved once, on the first call to Content.
type RemoteSource struct {
	fetcher Fetcher
	req     FetchRequest

	mu   sync.Mutex
	resp *FetchResponse
	err  error
}

// NewRemoteSource returns a lazily fetched source for req. The request URI
// becomes the document URI.
func NewRemoteSource(fetcher Fetcher, req FetchRequest) *RemoteSource {
	if req.Method == "" {
		req.Method = http.MethodGet
	}
	return &RemoteSource{fetcher: fetcher, req: req}
}

func (s *RemoteSource) DocumentURI() string { return s.req.URI }

func (s *RemoteSource) ContentType() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.resp == nil {
		return ""
	}
	return s.resp.ContentType
}

func (s *RemoteSource) Content(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.resp == nil && s.err == nil {
		req := s.req
		s.resp, s.err = s.fetcher.Fetch(ctx, &req)
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.resp.Content, nil
}
