package http_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/triplify"
	triplifyhttp "github.com/fwojciec/triplify/http"
	"github.com/fwojciec/triplify/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns body and content type", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "triplify-test", r.Header.Get("User-Agent"))
			assert.Contains(t, r.Header.Get("Accept"), "text/html")
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte("<html><body>Hello World</body></html>"))
		}))
		defer server.Close()

		fetcher := triplifyhttp.NewFetcher(triplifyhttp.WithUserAgent("triplify-test"))
		defer fetcher.Close()

		resp, err := fetcher.Fetch(context.Background(), &triplify.FetchRequest{URI: server.URL})
		require.NoError(t, err)
		assert.Equal(t, "<html><body>Hello World</body></html>", string(resp.Content))
		assert.Equal(t, "text/html; charset=utf-8", resp.ContentType)
	})

	t.Run("posts body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
			body, _ := io.ReadAll(r.Body)
			_, _ = w.Write(body)
		}))
		defer server.Close()

		fetcher := triplifyhttp.NewFetcher()
		resp, err := fetcher.Fetch(context.Background(), &triplify.FetchRequest{
			Method:      http.MethodPost,
			URI:         server.URL,
			Body:        []byte("a=1"),
			ContentType: "application/x-www-form-urlencoded",
		})
		require.NoError(t, err)
		assert.Equal(t, "a=1", string(resp.Content))
	})

	t.Run("respects custom timeout option", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := triplifyhttp.NewFetcher(triplifyhttp.WithTimeout(10 * time.Millisecond))

		_, err := fetcher.Fetch(context.Background(), &triplify.FetchRequest{URI: server.URL})
		require.Error(t, err)
		assert.Equal(t, triplify.EACQUISITION, triplify.ErrorCode(err))
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := triplifyhttp.NewFetcher().Fetch(ctx, &triplify.FetchRequest{URI: server.URL})
		assert.Equal(t, triplify.EACQUISITION, triplify.ErrorCode(err))
	})

	t.Run("non-2xx status is an acquisition error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		_, err := triplifyhttp.NewFetcher().Fetch(context.Background(), &triplify.FetchRequest{URI: server.URL})
		require.Error(t, err)
		assert.Equal(t, triplify.EACQUISITION, triplify.ErrorCode(err))
		assert.Contains(t, err.Error(), "404")
	})

	t.Run("rejects oversized content", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(strings.Repeat("x", 100)))
		}))
		defer server.Close()

		fetcher := triplifyhttp.NewFetcher(triplifyhttp.WithMaxContentSize(10))
		_, err := fetcher.Fetch(context.Background(), &triplify.FetchRequest{URI: server.URL})
		assert.Equal(t, triplify.EACQUISITION, triplify.ErrorCode(err))
	})

	t.Run("waits on the rate limiter for the host", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		defer server.Close()

		var domains []string
		limiter := &mock.DomainLimiter{
			WaitFn: func(_ context.Context, domain string) error {
				domains = append(domains, domain)
				return nil
			},
		}

		fetcher := triplifyhttp.NewFetcher(triplifyhttp.WithRateLimiter(limiter))
		_, err := fetcher.Fetch(context.Background(), &triplify.FetchRequest{URI: server.URL})
		require.NoError(t, err)
		assert.Equal(t, []string{"127.0.0.1"}, domains)
	})
}
