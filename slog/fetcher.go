// Package slog provides log/slog decorators for appcat services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/appcat"
)

// Ensure LoggingFetcher implements appcat.Fetcher.
var _ appcat.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher and logs every page request. Missing
// pages are routine for a catalog and log at debug level with their error
// code; any other failure logs at warn level.
type LoggingFetcher struct {
	next   appcat.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next appcat.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the outcome.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
		}
		switch {
		case err == nil:
			f.logger.Debug("fetch page", attrs...)
		case appcat.ErrorCode(err) == appcat.ENOTFOUND:
			f.logger.Debug("fetch page", append(attrs, "code", appcat.ENOTFOUND)...)
		default:
			f.logger.Warn("fetch page", append(attrs, "err", err)...)
		}
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
