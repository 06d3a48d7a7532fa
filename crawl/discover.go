package crawl

import (
	"context"
	"strings"

	"github.com/fwojciec/appcat"
	"github.com/fwojciec/appcat/bloom"
)

var _ appcat.AppSource = (*Discoverer)(nil)

// DefaultBaseURL is the catalog site scraped by default.
const DefaultBaseURL = "https://setapp.com"

// Discoverer finds the applications a catalog site lists by combining a
// built-in slug list, the /apps listing page, category pages and the
// sitemap. Each source is optional; a source that fails is logged and
// skipped.
type Discoverer struct {
	// BaseURL is the site root, e.g. https://setapp.com.
	BaseURL string

	// KnownSlugs are emitted first, before anything is fetched.
	KnownSlugs []string

	// Categories name the category pages below /apps. Category slugs are
	// never reported as apps.
	Categories []string

	Fetcher     appcat.Fetcher
	Listing     appcat.ListingParser
	Sitemaps    appcat.SitemapService
	RateLimiter appcat.DomainLimiter
	Retry       RetryPolicy
	Logger      LogFunc
}

// expectedApps sizes the deduplication filter.
const expectedApps = 2000

// Discover returns every distinct app in discovery order.
func (d *Discoverer) Discover(ctx context.Context) ([]appcat.AppRef, error) {
	base := strings.TrimRight(d.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}

	categories := make(map[string]struct{}, len(d.Categories))
	for _, c := range d.Categories {
		categories[c] = struct{}{}
	}

	seen := bloom.NewFilter(expectedApps, 1e-6)
	var refs []appcat.AppRef
	add := func(slugs []string) {
		for _, slug := range slugs {
			if slug == "" {
				continue
			}
			if _, ok := categories[slug]; ok {
				continue
			}
			if seen.TestAndAdd(slug) {
				continue
			}
			refs = append(refs, AppRefFromSlug(base, slug))
		}
	}

	add(d.KnownSlugs)

	if d.Fetcher != nil && d.Listing != nil {
		pages := []string{base + "/apps"}
		for _, c := range d.Categories {
			pages = append(pages, base+"/apps/"+c)
		}
		for _, page := range pages {
			slugs, err := d.listing(ctx, page)
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				d.logf("listing %s: %v", page, err)
				continue
			}
			add(slugs)
		}
	}

	if d.Sitemaps != nil {
		urls, err := d.Sitemaps.DiscoverURLs(ctx, base, appcat.AppsFilter())
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			d.logf("sitemap %s: %v", base, err)
		}
		for _, u := range urls {
			if slug, ok := appcat.AppSlug(u); ok {
				add([]string{slug})
			}
		}
	}

	return refs, nil
}

func (d *Discoverer) listing(ctx context.Context, page string) ([]string, error) {
	if d.RateLimiter != nil {
		if err := d.RateLimiter.Wait(ctx, host(page)); err != nil {
			return nil, err
		}
	}

	fetch := func(ctx context.Context, url string) (string, error) {
		return d.Fetcher.Fetch(ctx, url)
	}
	html, err := FetchWithRetry(ctx, page, fetch, d.Logger, d.Retry)
	if err != nil {
		return nil, err
	}
	return d.Listing.ParseListing(html, page)
}

func (d *Discoverer) logf(format string, args ...any) {
	if d.Logger != nil {
		d.Logger(format, args...)
	}
}

// AppRefFromSlug builds the reference for the profile page of slug below
// base, naming the app after its slug.
func AppRefFromSlug(base, slug string) appcat.AppRef {
	return appcat.AppRef{
		Slug: slug,
		Name: appcat.NameFromSlug(slug),
		URL:  strings.TrimRight(base, "/") + "/apps/" + slug,
	}
}

// AppRefsFromSlugs is AppRefFromSlug for each slug, dropping duplicates.
func AppRefsFromSlugs(base string, slugs []string) []appcat.AppRef {
	seen := make(map[string]struct{}, len(slugs))
	refs := make([]appcat.AppRef, 0, len(slugs))
	for _, slug := range slugs {
		slug = strings.Trim(strings.TrimSpace(slug), "/")
		if slug == "" {
			continue
		}
		if _, ok := seen[slug]; ok {
			continue
		}
		seen[slug] = struct{}{}
		refs = append(refs, AppRefFromSlug(base, slug))
	}
	return refs
}

// DefaultCategories returns the category pages listed below /apps.
func DefaultCategories() []string {
	return []string{
		"optimize", "work", "create", "develop", "solve-with-ai",
		"productivity", "design", "utilities", "developer-tools", "media",
		"business", "education", "lifestyle",
	}
}

// KnownSlugs returns the built-in list of application slugs. It may
// contain duplicates; Discover removes them.
func KnownSlugs() []string {
	return []string{
		// Productivity
		"2do", "awesome-habits", "be-focused", "busycal", "busycontacts", "calendars",
		"chronicle", "clariti", "craft", "daily", "dato", "due", "focus", "goodtask",
		"keep-it", "marginnote", "mindnode", "moment", "noteplan", "paper",
		"paste", "studies", "subjects", "taskpaper", "taskheat", "timing", "ulysses",

		// Maintenance
		"adlock", "airbuddy", "aldente-pro", "app-tamer", "bartender", "batteries",
		"bettertouchtool", "cleanmymac", "cleanmyphone", "clearvpn", "commander-one",
		"default-folder-x", "displaybuddy", "endurance", "forklift", "gemini",
		"hand-mirror", "hazeover", "istat-menus", "lungo", "mosaic", "one-switch",
		"pareto-security", "path-finder", "proxyman", "simon", "toothfairy", "tripmode",
		"unclutter", "usage", "wifi-explorer", "wifi-signal",

		// Design
		"asset-catalog-creator-pro", "bydesign", "camerabag-pro", "capto", "cleanshot-x",
		"coherence-x", "diagrams", "expressions", "filmage-editor", "flinto", "gifox",
		"glue-motion", "glyphs-mini", "hype", "iconjar", "luminar-neo", "marked",
		"meta", "metaimage", "mockuuups-studio", "photobulk", "photosrevive", "pixelsnap",
		"presentify", "prizmo", "sip", "snapmotion", "swift-publisher", "touchretouch",
		"typeface", "vivid", "xnapper",

		// Development
		"buildwatch", "code-snippets-ai", "coderunner", "core-shell", "dash", "devutils",
		"gitfox", "proxyman", "sqlpro-studio", "sqlpro-for-sqlite", "ssh-config-editor",
		"tableplus", "xcorganizer",

		// Media
		"boom-3d", "boom", "downie", "elmedia-player", "freeyourmusic", "getsound",
		"juststream", "lofi-garden", "movie-explorer-pro", "movist-pro", "noizio",
		"permute", "pulltube", "transloader", "vidcap", "voice-dream-reader",

		// Business
		"base", "expenses", "greenbooks", "invoice-rex", "merlin-project-express",
		"moneywiz", "numerics", "pagico", "receipts", "sheetplanner",

		// Communication
		"canary-mail", "chatmate-for-whatsapp", "im-plus", "mail", "spark-mail",

		// AI
		"boltai", "elephas", "typingmind", "spellar-ai", "code-snippets-ai",

		// Utilities
		"almighty", "antinote", "anydroid", "anytrans-for-ios", "archiver", "backtrack",
		"betterzip", "bike", "chimeful", "chronosync-express", "clop", "cloud-outliner",
		"cloudmounter", "dcommander", "deskminder", "diarly", "dropshare", "dropzone",
		"eter", "euclid", "folx", "forecast-bar", "get-backup-pro", "godspeed",
		"goldie-app", "headway", "hookmark", "houdahspot", "hustl", "in-your-face",
		"keycue", "keykey-typing-tutor", "keysmith", "lacona", "launcher-with-multiple-widgets",
		"leave-me-alone", "magic-window-air", "marsedit", "mate-translate", "mental-walk",
		"menubarx", "mimir", "mission-control-plus", "monsterwriter", "moonitor",
		"murmurtype", "muse", "netspot", "news-explorer", "nitro-pdf-pro", "notchnook",
		"novabench", "numi", "openin", "paletro", "pdf-pals", "pdf-search", "pdf-squeezer",
		"pie-menu", "pliimpro", "plus", "pocketcas", "popclip", "quitall", "ready-to-send",
		"remote-mouse", "renamer", "rocket-typist", "screenfloat", "secrets", "session",
		"sidenotes", "sidebar", "silenz", "slidepad", "small-cloud", "snippetslab",
		"soulver", "speeko", "spotless", "squash", "step-two", "substage",
		"supercharge", "swiftlylaunch", "swish", "tab-finder", "taogit", "teacode",
		"teleprompter-app", "textsniper", "textsoap", "time-out", "timemator",
		"trickster", "tripsy", "unite", "uplife", "wallcal", "whisk",
		"whispertranscribe", "widgetwall", "workspaces", "world-clock-pro", "yoink",
	}
}
