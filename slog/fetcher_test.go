package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/appcat"
	"github.com/fwojciec/appcat/mock"
	appslog "github.com/fwojciec/appcat/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		html     string
		err      error
		contains []string
		excludes []string
	}{
		{
			name:     "page",
			html:     "<html>content</html>",
			contains: []string{"level=DEBUG", `msg="fetch page"`, "url=https://setapp.com/apps/paste", "bytes=20", "duration="},
			excludes: []string{"err=", "code="},
		},
		{
			name:     "missing page",
			err:      appcat.Errorf(appcat.ENOTFOUND, "page not found: https://setapp.com/apps/paste"),
			contains: []string{"level=DEBUG", "code=not_found", "bytes=0"},
			excludes: []string{"err="},
		},
		{
			name:     "network failure",
			err:      errors.New("connection reset"),
			contains: []string{"level=WARN", `err="connection reset"`},
			excludes: []string{"code="},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			inner := &mock.Fetcher{
				FetchFn: func(context.Context, string) (string, error) {
					return tt.html, tt.err
				},
			}

			fetcher := appslog.NewLoggingFetcher(inner, debugLogger(&buf))
			html, err := fetcher.Fetch(context.Background(), "https://setapp.com/apps/paste")

			assert.Equal(t, tt.html, html)
			assert.Equal(t, tt.err, err)
			for _, s := range tt.contains {
				assert.Contains(t, buf.String(), s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, buf.String(), s)
			}
		})
	}

	t.Run("quiet at info level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				return "", appcat.Errorf(appcat.ENOTFOUND, "gone")
			},
		}

		fetcher := appslog.NewLoggingFetcher(inner, slog.New(slog.NewTextHandler(&buf, nil)))
		_, err := fetcher.Fetch(context.Background(), "https://setapp.com/apps/gone")

		require.Error(t, err)
		assert.Empty(t, buf.String())
	})
}

func TestLoggingFetcher_Close(t *testing.T) {
	t.Parallel()

	closed := 0
	inner := &mock.Fetcher{
		CloseFn: func() error {
			closed++
			return errors.New("browser gone")
		},
	}

	fetcher := appslog.NewLoggingFetcher(inner, slog.New(slog.DiscardHandler))

	require.EqualError(t, fetcher.Close(), "browser gone")
	assert.Equal(t, 1, closed)
}
