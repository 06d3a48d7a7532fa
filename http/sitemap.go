package http

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/appcat"
)

// Ensure SitemapService implements appcat.SitemapService.
var _ appcat.SitemapService = (*SitemapService)(nil)

// DefaultMaxSitemaps bounds the number of sitemap documents read by one
// discovery.
const DefaultMaxSitemaps = 50

// wellKnownSitemaps are tried when robots.txt names no sitemap.
var wellKnownSitemaps = []string{"/sitemap.xml", "/sitemap_index.xml"}

// SitemapService discovers page URLs from a site's XML sitemaps.
type SitemapService struct {
	client      *http.Client
	header      http.Header
	maxSitemaps int
}

// SitemapOption configures a SitemapService.
type SitemapOption func(*SitemapService)

// WithMaxSitemaps sets how many sitemap documents one discovery may read.
func WithMaxSitemaps(n int) SitemapOption {
	return func(s *SitemapService) {
		s.maxSitemaps = n
	}
}

// NewSitemapService creates a SitemapService. A nil client means
// http.DefaultClient. Requests carry the browser header set.
func NewSitemapService(client *http.Client, opts ...SitemapOption) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	s := &SitemapService{
		client:      client,
		header:      BrowserHeader(),
		maxSitemaps: DefaultMaxSitemaps,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// sitemap is one parsed sitemap document: either an index of child
// sitemaps or a set of page URLs.
type sitemap struct {
	children []string
	pages    []string
}

// DiscoverURLs walks the sitemaps of baseURL's host breadth first and
// returns the page URLs passing filter, in discovery order without
// duplicates. Sitemaps that cannot be fetched or parsed are skipped, so a
// site without sitemaps yields an empty, non-nil slice.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *appcat.URLFilter) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return nil, appcat.Errorf(appcat.EINVALID, "invalid base URL %q", baseURL)
	}
	root := &url.URL{Scheme: base.Scheme, Host: base.Host}

	queue, err := s.entryPoints(ctx, root)
	if err != nil {
		return nil, err
	}

	urls := []string{}
	seen := make(map[string]bool)
	visited := make(map[string]bool)

	for len(queue) > 0 && len(visited) < s.maxSitemaps {
		next := queue[0]
		queue = queue[1:]
		if visited[next] {
			continue
		}
		visited[next] = true

		sm, err := s.readSitemap(ctx, next)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}

		queue = append(queue, sm.children...)
		for _, u := range sm.pages {
			if seen[u] || !filter.Match(u) {
				continue
			}
			seen[u] = true
			urls = append(urls, u)
		}
	}

	return urls, nil
}

// entryPoints returns the sitemaps named by robots.txt, or the well-known
// sitemap locations when it names none.
func (s *SitemapService) entryPoints(ctx context.Context, root *url.URL) ([]string, error) {
	robots := root.ResolveReference(&url.URL{Path: "/robots.txt"}).String()
	listed, err := s.robotsSitemaps(ctx, robots)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err == nil && len(listed) > 0 {
		return listed, nil
	}

	out := make([]string, 0, len(wellKnownSitemaps))
	for _, p := range wellKnownSitemaps {
		out = append(out, root.ResolveReference(&url.URL{Path: p}).String())
	}
	return out, nil
}

func (s *SitemapService) robotsSitemaps(ctx context.Context, robotsURL string) ([]string, error) {
	body, err := s.get(ctx, robotsURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	const directive = "sitemap:"

	var out []string
	sc := bufio.NewScanner(body)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if len(line) <= len(directive) || !strings.EqualFold(line[:len(directive)], directive) {
			continue
		}
		if u := strings.TrimSpace(line[len(directive):]); u != "" {
			out = append(out, u)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", robotsURL, err)
	}
	return out, nil
}

// readSitemap fetches and parses one sitemap document. Gzip-compressed
// sitemaps are detected by their magic bytes.
func (s *SitemapService) readSitemap(ctx context.Context, sitemapURL string) (*sitemap, error) {
	body, err := s.get(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	r := bufio.NewReader(body)
	var src io.Reader = r
	if magic, _ := r.Peek(2); len(magic) == 2 && magic[0] == 0x1f && magic[1] == 0x8b {
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("decompressing sitemap %s: %w", sitemapURL, err)
		}
		defer zr.Close()
		src = zr
	}

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(src); err != nil {
		return nil, fmt.Errorf("parsing sitemap %s: %w", sitemapURL, err)
	}

	el := doc.Root()
	if el == nil {
		return nil, fmt.Errorf("empty sitemap %s", sitemapURL)
	}

	switch el.Tag {
	case "sitemapindex":
		return &sitemap{children: locs(el, "sitemap")}, nil
	case "urlset":
		return &sitemap{pages: locs(el, "url")}, nil
	default:
		return nil, fmt.Errorf("sitemap %s: unexpected root element <%s>", sitemapURL, el.Tag)
	}
}

// locs returns the trimmed <loc> text of every child element named tag.
func locs(el *etree.Element, tag string) []string {
	var out []string
	for _, child := range el.SelectElements(tag) {
		loc := child.SelectElement("loc")
		if loc == nil {
			continue
		}
		if u := strings.TrimSpace(loc.Text()); u != "" {
			out = append(out, u)
		}
	}
	return out
}

func (s *SitemapService) get(ctx context.Context, target string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	setHeader(req, s.header)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, target)
	}
	return resp.Body, nil
}
