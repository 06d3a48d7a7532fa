package mock

import (
	"context"

	"github.com/fwojciec/appcat"
)

var _ appcat.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of appcat.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *appcat.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *appcat.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}

var _ appcat.AppSource = (*AppSource)(nil)

// AppSource is a mock implementation of appcat.AppSource.
type AppSource struct {
	DiscoverFn func(ctx context.Context) ([]appcat.AppRef, error)
}

func (s *AppSource) Discover(ctx context.Context) ([]appcat.AppRef, error) {
	return s.DiscoverFn(ctx)
}
