package http

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/triplify"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ShutdownTimeout is the time given for outstanding requests to finish
// before the server is shut down.
const ShutdownTimeout = 5 * time.Second

// DefaultMaxBodySize bounds POSTed request bodies.
const DefaultMaxBodySize = 10 << 20

const formContentType = "application/x-www-form-urlencoded"

// Server is the HTTP front end. It translates requests into pipeline runs
// and maps pipeline outcomes to status codes.
//
// Server implements http.Handler with its own routing on the escaped path:
// http.ServeMux cleans paths, which would collapse the "//" in targets
// such as /nt/http://foo.com.
type Server struct {
	ln     net.Listener
	server *http.Server

	pipeline triplify.Pipeline
	fetcher  triplify.Fetcher
	writers  *triplify.WriterRegistry
	logger   *slog.Logger

	registry *prometheus.Registry
	metrics  http.Handler
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec

	maxBodySize int64
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithLogger sets the request logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) ServerOption {
	return func(s *Server) {
		s.logger = l
	}
}

// WithMaxBodySize sets the largest POST body accepted, in bytes.
func WithMaxBodySize(n int64) ServerOption {
	return func(s *Server) {
		s.maxBodySize = n
	}
}

// NewServer returns a Server that runs pipeline, fetching remote targets
// with fetcher and validating output formats against writers.
func NewServer(pipeline triplify.Pipeline, fetcher triplify.Fetcher, writers *triplify.WriterRegistry, opts ...ServerOption) *Server {
	s := &Server{
		pipeline:    pipeline,
		fetcher:     fetcher,
		writers:     writers,
		logger:      slog.Default(),
		registry:    prometheus.NewRegistry(),
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.requests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "triplify_http_requests_total",
		Help: "HTTP requests by method and status code.",
	}, []string{"method", "status"})
	s.duration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "triplify_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})
	s.registry.MustRegister(s.requests, s.duration)
	s.metrics = promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})

	s.server = &http.Server{Handler: s}
	return s
}

// Registry returns the Prometheus registry the server reports to, so
// callers can add their own collectors.
func (s *Server) Registry() *prometheus.Registry {
	return s.registry
}

// Open starts listening on addr and serves requests in the background.
func (s *Server) Open(addr string) (err error) {
	if s.ln, err = net.Listen("tcp", addr); err != nil {
		return err
	}
	go s.server.Serve(s.ln)
	return nil
}

// URL returns the base URL of the running server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// ServeHTTP routes a request and records metrics and a log line for it.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.EscapedPath() == "/metrics" && r.Method == http.MethodGet {
		s.metrics.ServeHTTP(w, r)
		return
	}

	start := time.Now()
	requestID := uuid.NewString()
	w.Header().Set("X-Request-Id", requestID)
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

	switch r.Method {
	case http.MethodGet, http.MethodHead:
		s.handleGet(rec, r)
	case http.MethodPost:
		s.handlePost(rec, r)
	default:
		s.writeError(rec, r, http.StatusMethodNotAllowed, "Method not allowed", nil)
	}

	elapsed := time.Since(start)
	s.requests.WithLabelValues(r.Method, strconv.Itoa(rec.status)).Inc()
	s.duration.WithLabelValues(r.Method).Observe(elapsed.Seconds())
	s.logger.Info("request",
		"request_id", requestID,
		"method", r.Method,
		"path", r.URL.RequestURI(),
		"status", rec.status,
		"duration", elapsed,
	)
}

// handleGet serves GET /{format}/{target}, GET /{format}?uri= and
// GET /?format=&uri=.
func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	format, target := splitPath(r.URL.EscapedPath())
	query := r.URL.Query()
	if format == "" {
		format = query.Get("format")
	}

	var uri string
	if target != "" {
		decoded, err := url.PathUnescape(target)
		if err != nil {
			s.writeError(w, r, http.StatusBadRequest, "Invalid input URI", err)
			return
		}
		uri = decoded
		if r.URL.RawQuery != "" {
			uri += "?" + r.URL.RawQuery
		}
	} else {
		uri = query.Get("uri")
	}
	if uri == "" {
		s.writeError(w, r, http.StatusNotFound, "Invalid GET request", nil)
		return
	}

	wf, err := s.writers.Lookup(format)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, "Invalid format", err)
		return
	}

	documentURI, err := triplify.ResolveDocumentURI(uri)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, "Invalid input URI", err)
		return
	}

	opts := triplify.RunOptions{Format: format}
	if target == "" {
		// With a path target the query string belongs to the document URI.
		opts.Extractors = splitList(query["extractors"])
	}
	src := triplify.NewRemoteSource(s.fetcher, triplify.FetchRequest{URI: documentURI})
	s.run(w, r, src, opts, wf)
}

// handlePost serves form-encoded POST / and raw-body POST /{format}.
func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, s.maxBodySize+1))
	if err != nil || len(body) == 0 {
		s.writeError(w, r, http.StatusBadRequest, "Invalid POST request", err)
		return
	}
	if int64(len(body)) > s.maxBodySize {
		s.writeError(w, r, http.StatusRequestEntityTooLarge, "Request body too large", nil)
		return
	}

	format, _ := splitPath(r.URL.EscapedPath())
	contentType := r.Header.Get("Content-Type")

	if triplify.BaseMediaType(contentType) == formContentType {
		s.handleForm(w, r, format, body)
		return
	}

	if format == "" {
		s.writeError(w, r, http.StatusBadRequest, "Missing format in request path", nil)
		return
	}
	wf, err := s.writers.Lookup(format)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, "Invalid format", err)
		return
	}
	if contentType == "" {
		s.writeError(w, r, http.StatusBadRequest, "Missing Content-Type header", nil)
		return
	}

	query := r.URL.Query()
	documentURI := triplify.DefaultBaseURI
	if base := query.Get("uri"); base != "" {
		if documentURI, err = triplify.ResolveDocumentURI(base); err != nil {
			s.writeError(w, r, http.StatusBadRequest, "Invalid input URI", err)
			return
		}
	}

	src := triplify.NewBytesSource(body, documentURI, contentType)
	s.run(w, r, src, triplify.RunOptions{
		Format:     format,
		Extractors: splitList(query["extractors"]),
	}, wf)
}

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request, format string, body []byte) {
	values, err := url.ParseQuery(string(body))
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, "Invalid POST request", err)
		return
	}

	if format == "" {
		format = values.Get("format")
	}
	if format == "" {
		s.writeError(w, r, http.StatusBadRequest, "Missing format parameter", nil)
		return
	}
	wf, err := s.writers.Lookup(format)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, "Invalid format", err)
		return
	}

	uri, text := values.Get("uri"), values.Get("body")
	if uri == "" && text == "" {
		s.writeError(w, r, http.StatusBadRequest, "Missing uri or body parameter", nil)
		return
	}

	opts := triplify.RunOptions{
		Format:     format,
		Extractors: splitList(values["extractors"]),
	}

	if text != "" {
		typ := values.Get("type")
		opts.AutoDetect = typ == ""
		documentURI := triplify.DefaultBaseURI
		if uri != "" {
			if documentURI, err = triplify.ResolveDocumentURI(uri); err != nil {
				s.writeError(w, r, http.StatusBadRequest, "Invalid input URI", err)
				return
			}
		}
		s.run(w, r, triplify.NewStringSource(text, documentURI, typ), opts, wf)
		return
	}

	documentURI, err := triplify.ResolveDocumentURI(uri)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, "Invalid input URI", err)
		return
	}
	s.run(w, r, triplify.NewRemoteSource(s.fetcher, triplify.FetchRequest{URI: documentURI}), opts, wf)
}

// run executes the pipeline and writes the response. Output is buffered so
// a document without triples gets a 204 with an empty body.
func (s *Server) run(w http.ResponseWriter, r *http.Request, src triplify.DocumentSource, opts triplify.RunOptions, wf triplify.WriterFactory) {
	var buf bytes.Buffer
	result, err := s.pipeline.Run(r.Context(), src, opts, &buf)
	if err != nil {
		s.writePipelineError(w, r, err)
		return
	}

	// Extractor failures never change the status code.
	if !result.HasResult() {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", wf.Description().MIMEType)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		_, _ = w.Write(buf.Bytes())
	}
}

// writePipelineError is the only place application error codes become
// HTTP status codes.
func (s *Server) writePipelineError(w http.ResponseWriter, r *http.Request, err error) {
	switch triplify.ErrorCode(err) {
	case triplify.EINVALID:
		s.writeError(w, r, http.StatusBadRequest, "Invalid request: "+triplify.ErrorMessage(err), err)
	case triplify.EUNSUPPORTED:
		s.writeError(w, r, http.StatusBadRequest, "Invalid format: "+triplify.ErrorMessage(err), err)
	case triplify.EMEDIATYPE:
		s.writeError(w, r, http.StatusUnsupportedMediaType, "Unsupported media type: "+triplify.ErrorMessage(err), err)
	case triplify.ENOTFOUND:
		s.writeError(w, r, http.StatusNotFound, triplify.ErrorMessage(err), err)
	case triplify.EACQUISITION:
		s.writeError(w, r, http.StatusBadGateway, "Could not fetch input: "+triplify.ErrorMessage(err), err)
	case triplify.EPARSE:
		s.writeError(w, r, http.StatusUnprocessableEntity, "Could not parse input: "+triplify.ErrorMessage(err), err)
	default:
		s.writeError(w, r, http.StatusInternalServerError, "Internal error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.RequestURI(), "status", status, "err", err)
	} else if err != nil {
		s.logger.Debug("request rejected", "path", r.URL.RequestURI(), "status", status, "err", err)
	}
	http.Error(w, message, status)
}

// splitPath splits an escaped request path into its first segment and the
// still-escaped remainder.
func splitPath(escaped string) (format, rest string) {
	format, rest, _ = strings.Cut(strings.TrimPrefix(escaped, "/"), "/")
	return format, rest
}

// splitList flattens repeated and comma-separated values.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, item := range strings.Split(v, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
