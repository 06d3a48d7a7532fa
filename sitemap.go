package appcat

import (
	"context"
	"regexp"
	"slices"
)

// AppRef identifies one application profile page to scrape.
type AppRef struct {
	Slug string
	Name string
	URL  string
}

// AppSource discovers the applications listed by the catalog site.
// Implementations hide whether slugs come from a built-in list, listing
// pages or sitemaps.
type AppSource interface {
	Discover(ctx context.Context) ([]AppRef, error)
}

// SitemapService lists the page URLs published in a site's sitemaps.
type SitemapService interface {
	// DiscoverURLs returns the URLs of baseURL's host that pass filter, in
	// sitemap order. A nil filter passes every URL. A site without a
	// readable sitemap yields an empty result, not an error.
	DiscoverURLs(ctx context.Context, baseURL string, filter *URLFilter) ([]string, error)
}

// URLFilter selects URLs by pattern. A URL passes when it matches at least
// one Include pattern (or Include is empty) and no Exclude pattern.
type URLFilter struct {
	Include []*regexp.Regexp
	Exclude []*regexp.Regexp
}

// Match reports whether url passes the filter. A nil filter passes
// everything.
func (f *URLFilter) Match(url string) bool {
	if f == nil {
		return true
	}
	matches := func(re *regexp.Regexp) bool { return re.MatchString(url) }

	if len(f.Include) > 0 && !slices.ContainsFunc(f.Include, matches) {
		return false
	}
	return !slices.ContainsFunc(f.Exclude, matches)
}

// appPathRe matches an application profile path and captures its slug.
var appPathRe = regexp.MustCompile(`/apps/([a-zA-Z0-9-]+)/?$`)

// AppSlug extracts the slug from an application profile URL or path such as
// https://setapp.com/apps/cleanmymac. The bool result is false when the
// path is not an application profile.
func AppSlug(rawURL string) (string, bool) {
	m := appPathRe.FindStringSubmatch(rawURL)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// AppsFilter returns a URLFilter that only admits application profile URLs.
func AppsFilter() *URLFilter {
	return &URLFilter{Include: []*regexp.Regexp{appPathRe}}
}
