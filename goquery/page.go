// Package goquery parses application profile and listing pages with
// github.com/PuerkitoBio/goquery.
package goquery

import (
	"context"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/appcat"
)

// Ensure PageParser implements appcat.PageParser at compile time.
var _ appcat.PageParser = (*PageParser)(nil)

var ratingRe = regexp.MustCompile(`\d+(?:\.\d+)?`)

// titleSeparators cut site suffixes such as "Bartender - Setapp".
var titleSeparators = []string{" - ", " | "}

// PageParser extracts application fields from profile pages using the
// ordered selector strategies of an appcat.ParserConfig.
type PageParser struct {
	config appcat.ParserConfig
	main   appcat.MainContentExtractor
}

// Option configures a PageParser.
type Option func(*PageParser)

// WithConfig replaces the default parser configuration.
func WithConfig(cfg appcat.ParserConfig) Option {
	return func(p *PageParser) {
		p.config = cfg
	}
}

// WithMainContentExtractor enables the last description tier: paragraphs
// of the main content isolated by e.
func WithMainContentExtractor(e appcat.MainContentExtractor) Option {
	return func(p *PageParser) {
		p.main = e
	}
}

// NewPageParser creates a PageParser using appcat.DefaultParserConfig
// unless configured otherwise.
func NewPageParser(opts ...Option) *PageParser {
	p := &PageParser{config: appcat.DefaultParserConfig()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse extracts title, description, platforms, official website and
// rating from a profile page.
func (p *PageParser) Parse(ctx context.Context, pageURL, html, name string) (*appcat.PageDetails, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, appcat.Errorf(appcat.EINVALID, "failed to parse HTML: %v", err)
	}

	if p.isNotFound(doc) {
		return nil, appcat.Errorf(appcat.ENOTFOUND, "app page not found: %s", pageURL)
	}

	details := &appcat.PageDetails{
		Title:     p.title(doc),
		Platforms: p.platforms(doc),
		Rating:    p.rating(doc),
	}

	details.Description = p.description(doc)
	if details.Description == "" && p.main != nil {
		details.Description = p.mainContentDescription(html)
	}

	displayName := name
	if details.Title != "" {
		displayName = details.Title
	}
	details.OfficialWebsite = p.website(doc, displayName)

	return details, nil
}

func (p *PageParser) isNotFound(doc *goquery.Document) bool {
	var text string
	if len(p.config.NotFoundSelectors) == 0 {
		text = doc.Text()
	} else {
		var sb strings.Builder
		for _, sel := range p.config.NotFoundSelectors {
			doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
				sb.WriteString(s.Text())
				sb.WriteByte('\n')
			})
		}
		text = sb.String()
	}

	for _, marker := range p.config.NotFoundMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

// title returns the first heading that is not the site's own name, with
// any " - Site" or " | Site" suffix removed.
func (p *PageParser) title(doc *goquery.Document) string {
	reject := strings.ToLower(p.config.TitleRejectPrefix)

	for _, sel := range p.config.TitleSelectors {
		text := strings.TrimSpace(doc.Find(sel).First().Text())
		if text == "" {
			continue
		}
		if reject != "" && strings.HasPrefix(strings.ToLower(text), reject) {
			continue
		}
		for _, sep := range titleSeparators {
			text, _, _ = strings.Cut(text, sep)
		}
		if text = strings.TrimSpace(text); text != "" {
			return text
		}
	}
	return ""
}

func (p *PageParser) description(doc *goquery.Document) string {
	for _, tier := range p.config.DescriptionTiers {
		if desc := firstQualifying(doc.Selection, tier); desc != "" {
			return desc
		}
	}
	return ""
}

// mainContentDescription applies MainContentTier to the paragraphs of the
// extracted main content. Extraction failures yield no description.
func (p *PageParser) mainContentDescription(html string) string {
	content, err := p.main.ExtractMain(html)
	if err != nil || strings.TrimSpace(content) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return ""
	}
	return firstQualifying(doc.Selection, p.config.MainContentTier)
}

// firstQualifying returns the first candidate in tier order that passes
// the tier's length and content rules.
func firstQualifying(root *goquery.Selection, tier appcat.DescriptionTier) string {
	var found string
	for _, sel := range tier.Selectors {
		root.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			var text string
			if goquery.NodeName(s) == "meta" {
				text, _ = s.Attr("content")
			} else {
				text = s.Text()
			}
			text = collapseSpace(text)
			if qualifies(text, tier) {
				found = text
				return false
			}
			return true
		})
		if found != "" {
			return found
		}
	}
	return ""
}

func qualifies(text string, tier appcat.DescriptionTier) bool {
	n := utf8.RuneCountInString(text)
	if n <= tier.MinLength {
		return false
	}
	if tier.MaxLength > 0 && n >= tier.MaxLength {
		return false
	}
	for _, prefix := range tier.RejectPrefixes {
		if strings.HasPrefix(text, prefix) {
			return false
		}
	}
	lower := strings.ToLower(text)
	for _, word := range tier.RejectWords {
		if strings.Contains(lower, word) {
			return false
		}
	}
	return true
}

// platforms scans the structural platform elements first and the full page
// text when they name no platform.
func (p *PageParser) platforms(doc *goquery.Document) []string {
	var sb strings.Builder
	for _, sel := range p.config.PlatformSelectors {
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			sb.WriteString(s.Text())
			sb.WriteByte('\n')
		})
	}

	if found := appcat.MatchPlatforms(sb.String(), p.config.PlatformKeywords); len(found) > 0 {
		return found
	}
	return appcat.DetectPlatforms(doc.Text(), p.config.PlatformKeywords)
}

// website returns the first acceptable official link, falling back to a
// URL guessed from name.
func (p *PageParser) website(doc *goquery.Document, name string) string {
	for _, sel := range p.config.WebsiteSelectors {
		var found string
		doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			href, _ := s.Attr("href")
			if p.isOfficialWebsite(href) {
				found = href
				return false
			}
			return true
		})
		if found != "" {
			return found
		}
	}

	var found string
	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		if !p.isOfficialWebsite(href) {
			return true
		}
		text := strings.ToLower(s.Text())
		for _, word := range p.config.WebsiteLinkWords {
			if strings.Contains(text, word) {
				found = href
				return false
			}
		}
		return true
	})
	if found != "" {
		return found
	}

	return appcat.GuessWebsite(name)
}

// isOfficialWebsite accepts absolute http(s) links whose host is not on
// the exclusion list.
func (p *PageParser) isOfficialWebsite(href string) bool {
	if !strings.HasPrefix(href, "http") {
		return false
	}
	u, err := url.Parse(href)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Host)
	for _, excluded := range p.config.ExcludedDomains {
		if strings.Contains(host, excluded) {
			return false
		}
	}
	return true
}

func (p *PageParser) rating(doc *goquery.Document) string {
	for _, sel := range p.config.RatingSelectors {
		text := doc.Find(sel).First().Text()
		if m := ratingRe.FindString(text); m != "" {
			return m
		}
	}
	return ""
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
