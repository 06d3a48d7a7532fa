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

func debugLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLoggingPageParser_Parse(t *testing.T) {
	t.Parallel()

	t.Run("logs extracted fields", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.PageParser{
			ParseFn: func(context.Context, string, string, string) (*appcat.PageDetails, error) {
				return &appcat.PageDetails{
					Title:           "Paste",
					Description:     "Clipboard manager",
					Platforms:       []string{"Mac", "iOS"},
					OfficialWebsite: "https://pasteapp.io",
				}, nil
			},
		}

		parser := appslog.NewLoggingPageParser(inner, debugLogger(&buf))
		details, err := parser.Parse(context.Background(), "https://setapp.com/apps/paste", "<html/>", "Paste")

		require.NoError(t, err)
		assert.Equal(t, "Paste", details.Title)
		output := buf.String()
		assert.Contains(t, output, "parse page")
		assert.Contains(t, output, "url=https://setapp.com/apps/paste")
		assert.Contains(t, output, "title=Paste")
		assert.Contains(t, output, "description=true")
		assert.Contains(t, output, `platforms="Mac, iOS"`)
		assert.Contains(t, output, "website=https://pasteapp.io")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.PageParser{
			ParseFn: func(context.Context, string, string, string) (*appcat.PageDetails, error) {
				return nil, errors.New("bad markup")
			},
		}

		parser := appslog.NewLoggingPageParser(inner, debugLogger(&buf))
		_, err := parser.Parse(context.Background(), "https://setapp.com/apps/paste", "", "Paste")

		require.Error(t, err)
		assert.Contains(t, buf.String(), `err="bad markup"`)
		assert.NotContains(t, buf.String(), "title=")
	})
}

func TestLoggingExportExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("logs counts and skipped candidates", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.ExportExtractor{
			ExtractFn: func(context.Context, string) (*appcat.ExportResult, error) {
				return &appcat.ExportResult{
					Records:    []*appcat.Record{{Name: "A"}, {Name: "B"}},
					Candidates: 3,
					Skipped:    []appcat.Skip{{Index: 1, Reason: "missing or misplaced required attributes"}},
				}, nil
			},
		}

		extractor := appslog.NewLoggingExportExtractor(inner, debugLogger(&buf))
		result, err := extractor.Extract(context.Background(), "<app-details>")

		require.NoError(t, err)
		assert.Len(t, result.Records, 2)
		output := buf.String()
		assert.Contains(t, output, "level=WARN")
		assert.Contains(t, output, "index=1")
		assert.Contains(t, output, "candidates=3")
		assert.Contains(t, output, "records=2")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.ExportExtractor{
			ExtractFn: func(context.Context, string) (*appcat.ExportResult, error) {
				return nil, appcat.Errorf(appcat.EINVALID, "empty catalog markup")
			},
		}

		extractor := appslog.NewLoggingExportExtractor(inner, debugLogger(&buf))
		_, err := extractor.Extract(context.Background(), "")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=")
	})
}
