package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/triplify"
	"github.com/fwojciec/triplify/mock"
	tslog "github.com/fwojciec/triplify/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs fetch with bytes and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, req *triplify.FetchRequest) (*triplify.FetchResponse, error) {
				return &triplify.FetchResponse{Content: []byte("<html>content</html>"), ContentType: "text/html"}, nil
			},
		}

		fetcher := tslog.NewLoggingFetcher(inner, logger)
		resp, err := fetcher.Fetch(context.Background(), &triplify.FetchRequest{Method: "GET", URI: "https://example.com/docs"})

		require.NoError(t, err)
		assert.Equal(t, "<html>content</html>", string(resp.Content))
		output := buf.String()
		assert.Contains(t, output, "msg=fetch")
		assert.Contains(t, output, "method=GET")
		assert.Contains(t, output, "url=https://example.com/docs")
		assert.Contains(t, output, "bytes=20")
		assert.Contains(t, output, "content_type=text/html")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, req *triplify.FetchRequest) (*triplify.FetchResponse, error) {
				return nil, triplify.Errorf(triplify.EACQUISITION, "network error")
			},
		}

		fetcher := tslog.NewLoggingFetcher(inner, logger)
		_, err := fetcher.Fetch(context.Background(), &triplify.FetchRequest{URI: "https://example.com/docs"})

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "msg=fetch")
		assert.Contains(t, output, "bytes=0")
		assert.Contains(t, output, "network error")
	})
}

func TestLoggingFetcher_Close(t *testing.T) {
	t.Parallel()

	t.Run("delegates to inner fetcher", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		closeCalled := false
		inner := &mock.Fetcher{
			CloseFn: func() error {
				closeCalled = true
				return nil
			},
		}

		fetcher := tslog.NewLoggingFetcher(inner, logger)
		err := fetcher.Close()

		require.NoError(t, err)
		assert.True(t, closeCalled)
	})
}
