package mock

import (
	"context"

	"github.com/fwojciec/appcat"
)

var _ appcat.ExportExtractor = (*ExportExtractor)(nil)

// ExportExtractor is a mock implementation of appcat.ExportExtractor.
type ExportExtractor struct {
	ExtractFn func(ctx context.Context, markup string) (*appcat.ExportResult, error)
}

func (e *ExportExtractor) Extract(ctx context.Context, markup string) (*appcat.ExportResult, error) {
	return e.ExtractFn(ctx, markup)
}

var _ appcat.PageParser = (*PageParser)(nil)

// PageParser is a mock implementation of appcat.PageParser.
type PageParser struct {
	ParseFn func(ctx context.Context, pageURL, html, name string) (*appcat.PageDetails, error)
}

func (p *PageParser) Parse(ctx context.Context, pageURL, html, name string) (*appcat.PageDetails, error) {
	return p.ParseFn(ctx, pageURL, html, name)
}

var _ appcat.MainContentExtractor = (*MainContentExtractor)(nil)

// MainContentExtractor is a mock implementation of appcat.MainContentExtractor.
type MainContentExtractor struct {
	ExtractMainFn func(html string) (string, error)
}

func (e *MainContentExtractor) ExtractMain(html string) (string, error) {
	return e.ExtractMainFn(html)
}

var _ appcat.ListingParser = (*ListingParser)(nil)

// ListingParser is a mock implementation of appcat.ListingParser.
type ListingParser struct {
	ParseListingFn func(html string, baseURL string) ([]string, error)
}

func (p *ListingParser) ParseListing(html string, baseURL string) ([]string, error) {
	return p.ParseListingFn(html, baseURL)
}
