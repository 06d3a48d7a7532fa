package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/appcat"
)

// Ensure LoggingSitemapService implements appcat.SitemapService.
var _ appcat.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService wraps a SitemapService and logs each discovery
// with the number of application pages among the URLs found.
type LoggingSitemapService struct {
	next   appcat.SitemapService
	logger *slog.Logger
}

// NewLoggingSitemapService creates a new LoggingSitemapService.
func NewLoggingSitemapService(next appcat.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

// DiscoverURLs delegates to the wrapped service. Failures log at warn
// level since discovery degrades to the other app sources.
func (s *LoggingSitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *appcat.URLFilter) (urls []string, err error) {
	defer func(begin time.Time) {
		if err != nil {
			s.logger.Warn("sitemap discovery", "site", baseURL, "duration", time.Since(begin), "err", err)
			return
		}

		apps := 0
		for _, u := range urls {
			if _, ok := appcat.AppSlug(u); ok {
				apps++
			}
		}
		s.logger.Debug("sitemap discovery",
			"site", baseURL,
			"urls", len(urls),
			"apps", apps,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return s.next.DiscoverURLs(ctx, baseURL, filter)
}
