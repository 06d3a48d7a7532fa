package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/appcat"
)

// Ensure LoggingPageParser implements appcat.PageParser.
var _ appcat.PageParser = (*LoggingPageParser)(nil)

// LoggingPageParser wraps a PageParser with debug logging of what each
// page yielded.
type LoggingPageParser struct {
	next   appcat.PageParser
	logger *slog.Logger
}

// NewLoggingPageParser creates a new LoggingPageParser.
func NewLoggingPageParser(next appcat.PageParser, logger *slog.Logger) *LoggingPageParser {
	return &LoggingPageParser{next: next, logger: logger}
}

// Parse delegates to the wrapped parser and logs the extracted fields.
func (p *LoggingPageParser) Parse(ctx context.Context, pageURL, html, name string) (details *appcat.PageDetails, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", pageURL,
			"duration", time.Since(begin),
			"err", err,
		}
		if details != nil {
			attrs = append(attrs,
				"title", details.Title,
				"description", len(details.Description) > 0,
				"platforms", appcat.JoinPlatforms(details.Platforms),
				"website", details.OfficialWebsite,
			)
		}
		p.logger.Debug("parse page", attrs...)
	}(time.Now())
	return p.next.Parse(ctx, pageURL, html, name)
}

// Ensure LoggingExportExtractor implements appcat.ExportExtractor.
var _ appcat.ExportExtractor = (*LoggingExportExtractor)(nil)

// LoggingExportExtractor wraps an ExportExtractor and logs each skipped
// candidate as a warning.
type LoggingExportExtractor struct {
	next   appcat.ExportExtractor
	logger *slog.Logger
}

// NewLoggingExportExtractor creates a new LoggingExportExtractor.
func NewLoggingExportExtractor(next appcat.ExportExtractor, logger *slog.Logger) *LoggingExportExtractor {
	return &LoggingExportExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the outcome.
func (e *LoggingExportExtractor) Extract(ctx context.Context, markup string) (result *appcat.ExportResult, err error) {
	defer func(begin time.Time) {
		if result == nil {
			e.logger.Debug("extract", "bytes", len(markup), "duration", time.Since(begin), "err", err)
			return
		}
		for _, s := range result.Skipped {
			e.logger.Warn("skipped candidate", "index", s.Index, "reason", s.Reason)
		}
		e.logger.Debug("extract",
			"bytes", len(markup),
			"candidates", result.Candidates,
			"records", len(result.Records),
			"skipped", len(result.Skipped),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return e.next.Extract(ctx, markup)
}
