package appcat

import "context"

// Skip describes one candidate that extraction dropped.
type Skip struct {
	// Index is the zero-based position of the candidate in the input.
	Index  int
	Reason string
}

// ExportResult holds the records extracted from a catalog export.
type ExportResult struct {
	Records []*Record

	// Candidates is the number of catalog entries seen in the input,
	// including the ones that were dropped.
	Candidates int

	// Skipped lists the dropped candidates in input order.
	Skipped []Skip
}

// ExportExtractor turns a saved catalog page into records.
type ExportExtractor interface {
	// Extract scans markup for catalog entries. A malformed entry is
	// reported in ExportResult.Skipped and never stops the scan.
	// Returns EINVALID for empty input.
	Extract(ctx context.Context, markup string) (*ExportResult, error)
}

// PageDetails holds the fields parsed from one application profile page.
type PageDetails struct {
	// Title is the cleaned page heading, empty if none qualified.
	Title           string
	Description     string
	Platforms       []string
	OfficialWebsite string
	Rating          string
}

// PageParser extracts application fields from a profile page.
type PageParser interface {
	// Parse analyzes the page HTML. name is the display name known so far;
	// it seeds the synthesized website when no official link survives.
	// Returns ENOTFOUND if the page signals that the app does not exist.
	Parse(ctx context.Context, pageURL, html, name string) (*PageDetails, error)
}

// MainContentExtractor isolates the main article content of a page,
// dropping navigation and other boilerplate.
type MainContentExtractor interface {
	// ExtractMain returns the main content as HTML.
	ExtractMain(html string) (string, error)
}

// ListingParser finds application profile links on listing pages.
type ListingParser interface {
	// ParseListing returns the application slugs linked from html in
	// document order, without duplicates.
	ParseListing(html string, baseURL string) ([]string, error)
}

// DescriptionTier is one ordered description strategy for profile pages.
type DescriptionTier struct {
	// Selectors are tried in order. Meta elements yield their content
	// attribute, other elements their text.
	Selectors []string

	// MinLength is the exclusive lower bound on description length.
	MinLength int

	// MaxLength is the exclusive upper bound; zero means unbounded.
	MaxLength int

	// RejectPrefixes drops candidates starting with any of these.
	RejectPrefixes []string

	// RejectWords drops candidates containing any of these, compared
	// case-insensitively.
	RejectWords []string
}

// ParserConfig configures profile page parsing.
type ParserConfig struct {
	// NotFoundMarkers flag a missing app when they occur in the text of
	// NotFoundSelectors, or anywhere in the page text when no selectors
	// are configured.
	NotFoundMarkers   []string
	NotFoundSelectors []string

	TitleSelectors []string

	// TitleRejectPrefix drops headings that start with it
	// (case-insensitive), e.g. the site's own name.
	TitleRejectPrefix string

	DescriptionTiers []DescriptionTier

	// MainContentTier filters paragraphs produced by a MainContentExtractor.
	MainContentTier DescriptionTier

	PlatformSelectors []string
	PlatformKeywords  []PlatformKeyword

	WebsiteSelectors []string

	// WebsiteLinkWords qualify any anchor as a website candidate when its
	// text contains one of them.
	WebsiteLinkWords []string

	// ExcludedDomains rejects website candidates whose host contains any.
	ExcludedDomains []string

	RatingSelectors []string
}

// DefaultParserConfig returns the selector, keyword and threshold
// configuration tuned for Setapp profile pages.
func DefaultParserConfig() ParserConfig {
	paragraphTier := DescriptionTier{
		Selectors: []string{"main p", ".main p", ".content p", ".app-page p"},
		MinLength: 30,
		MaxLength: 500,
		RejectWords: []string{
			"download", "install", "get it", "try it", "subscribe", "pricing",
		},
	}

	return ParserConfig{
		NotFoundMarkers:   []string{"404", "Page not found", "Not Found"},
		NotFoundSelectors: []string{"title", "h1"},
		TitleSelectors:    []string{"h1", ".app-title", ".hero-title", "title"},
		TitleRejectPrefix: "setapp",
		DescriptionTiers: []DescriptionTier{
			{
				Selectors: []string{
					`meta[name="description"]`,
					`meta[property="og:description"]`,
				},
				MinLength: 20,
			},
			{
				Selectors: []string{
					".app-description",
					".app-overview",
					".app-details p",
					".description",
					".overview",
					`[data-testid="app-description"]`,
					".hero-description",
					".app-hero p",
					".product-description",
					`p[class*="description"]`,
					".app-summary",
				},
				MinLength:      20,
				RejectPrefixes: []string{"Download", "Get"},
			},
			paragraphTier,
		},
		MainContentTier: DescriptionTier{
			Selectors:   []string{"p"},
			MinLength:   paragraphTier.MinLength,
			MaxLength:   paragraphTier.MaxLength,
			RejectWords: paragraphTier.RejectWords,
		},
		PlatformSelectors: []string{
			".platform-badge",
			".compatibility",
			".system-requirements",
			".platform-info",
			".supported-platforms",
			".app-platforms",
			`[data-testid="platforms"]`,
			`[class*="platform"]`,
		},
		PlatformKeywords: DefaultPlatformKeywords(),
		WebsiteSelectors: []string{
			`a[href*="official"]`,
			`a[href*="website"]`,
			`a[href*="homepage"]`,
			`a[href*="developer"]`,
			`a[class*="official"]`,
			`a[class*="website"]`,
			`a[class*="external"]`,
			".official-link a",
			".website-link a",
			".developer-link a",
		},
		WebsiteLinkWords: []string{"官网", "website", "official", "homepage", "visit", "download"},
		ExcludedDomains: []string{
			"setapp.com", "apple.com", "appstore.com", "itunes.apple.com",
			"facebook.com", "twitter.com", "instagram.com", "linkedin.com",
			"youtube.com", "github.com", "gitlab.com", "bitbucket.org",
		},
		RatingSelectors: []string{".rating", ".score", `[class*="rating"]`, `[class*="score"]`},
	}
}
