package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/appcat"
	"github.com/fwojciec/appcat/cache"
	"github.com/fwojciec/appcat/crawl"
	"github.com/fwojciec/appcat/csv"
	"github.com/fwojciec/appcat/gemini"
	"github.com/fwojciec/appcat/goquery"
	"github.com/fwojciec/appcat/html"
	apphttp "github.com/fwojciec/appcat/http"
	"github.com/fwojciec/appcat/matchr"
	"github.com/fwojciec/appcat/readability"
	"github.com/fwojciec/appcat/rod"
	appslog "github.com/fwojciec/appcat/slog"
	"github.com/fwojciec/appcat/sqlite"
	"github.com/fwojciec/appcat/trafilatura"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Overrides --db when set before calling Run().
	DBPath string

	// SQLite database used by the snapshot store. Nil unless a database
	// path is configured.
	DB *sqlite.DB

	// Fetcher, if set, replaces the HTTP or browser fetcher. Used for
	// end-to-end testing.
	Fetcher appcat.Fetcher

	closers []io.Closer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var firstErr error
	for i := len(m.closers) - 1; i >= 0; i-- {
		if err := m.closers[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	m.closers = nil
	return firstErr
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("appcat"),
		kong.Description("Build CSV catalogs of the applications offered by Setapp."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'appcat --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	defer m.Close()

	logger := newLogger(stderr, cli.Verbose)
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
		Reader: csv.NewReader(),
		Writer: csv.NewWriter(),
	}

	dbPath := cli.DB
	if m.DBPath != "" {
		dbPath = m.DBPath
	}
	if dbPath != "" {
		m.DB = sqlite.NewDB(dbPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set APPCAT_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", dbPath, err)
		}
		m.closers = append(m.closers, m.DB)

		snapshots := sqlite.NewSnapshotService(m.DB)
		deps.Snapshots = snapshots
		deps.History = snapshots
	}

	// Wire command-specific dependencies based on command
	switch strings.Fields(kongCtx.Command())[0] {
	case "parse":
		extractor, err := m.newExportExtractor(ctx, &cli.Parse, logger, stderr)
		if err != nil {
			return err
		}
		deps.Extractor = extractor

	case "scrape":
		fetcher, err := m.newFetcher(cli.Scrape.Browser, stderr, logger)
		if err != nil {
			return err
		}

		rateLimiter := crawl.NewDomainLimiter(cli.Scrape.Rate, 1)
		retry := crawl.DefaultRetryPolicy()
		retry.Attempts = cli.Scrape.Retries
		logf := logFunc(logger)

		deps.Scraper = &crawl.Scraper{
			Fetcher:     fetcher,
			Parser:      newPageParser(cli.Scrape.Extractor, logger),
			RateLimiter: rateLimiter,
			Placeholder: appcat.NewPlaceholder(newRand(cli.Scrape.Seed)),
			Retry:       retry,
			Concurrency: cli.Scrape.Concurrency,
			Logger:      logf,
		}

		if cli.Scrape.Discover {
			deps.Apps = &crawl.Discoverer{
				BaseURL:     cli.Scrape.Host,
				KnownSlugs:  crawl.KnownSlugs(),
				Categories:  crawl.DefaultCategories(),
				Fetcher:     fetcher,
				Listing:     goquery.NewListingParser(),
				Sitemaps:    appslog.NewLoggingSitemapService(apphttp.NewSitemapService(nil), logger),
				RateLimiter: rateLimiter,
				Retry:       retry,
				Logger:      logf,
			}
		}

	case "enhance":
		fetcher, err := m.newFetcher(cli.Enhance.Browser, stderr, logger)
		if err != nil {
			return err
		}

		retry := crawl.DefaultRetryPolicy()
		retry.Attempts = cli.Enhance.Retries

		deps.Enhancer = &crawl.Enhancer{
			Fetcher:     fetcher,
			Parser:      newPageParser(cli.Enhance.Extractor, logger),
			RateLimiter: crawl.NewDomainLimiter(cli.Enhance.Rate, 1),
			Retry:       retry,
			Logger:      logFunc(logger),
		}

	case "merge":
		deps.NearMisses = matchr.NewNearMissFinder()
	}

	return kongCtx.Run(deps)
}

// newExportExtractor builds the static-export extractor with the
// translators requested on the command line.
func (m *Main) newExportExtractor(ctx context.Context, c *ParseCmd, logger *slog.Logger, stderr io.Writer) (appcat.ExportExtractor, error) {
	var opts []html.Option
	if c.TwoPhase {
		opts = append(opts, html.WithTwoPhase())
	}

	if c.Translate || c.Gemini {
		chain := appcat.ChainTranslator{appcat.DefaultTranslations()}
		if c.Gemini {
			t, err := newGeminiTranslator(ctx, stderr)
			if err != nil {
				return nil, err
			}
			chain = append(chain, t)
		}
		opts = append(opts, html.WithTranslator(chain))
	}

	return appslog.NewLoggingExportExtractor(html.NewExtractor(opts...), logger), nil
}

// newFetcher returns the page fetcher for live commands: an HTTP client or
// a headless browser, behind a per-run page cache.
func (m *Main) newFetcher(browser bool, stderr io.Writer, logger *slog.Logger) (appcat.Fetcher, error) {
	base := m.Fetcher
	if base == nil {
		if browser {
			f, err := rod.NewFetcher(rod.WithBrowserRecycleHook(func(pages int64, err error) {
				if err != nil {
					logger.Warn("browser recycle failed", "pages", pages, "err", err)
					return
				}
				logger.Debug("browser recycled", "pages", pages)
			}))
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
				return nil, fmt.Errorf("failed to start browser: %w", err)
			}
			base = f
		} else {
			base = apphttp.NewFetcher()
		}
	}

	fetcher := appslog.NewLoggingFetcher(cache.NewFetcher(base), logger)
	m.closers = append(m.closers, fetcher)
	return fetcher, nil
}

func newPageParser(extractor string, logger *slog.Logger) appcat.PageParser {
	var content appcat.MainContentExtractor = trafilatura.NewExtractor()
	if extractor == "readability" {
		content = readability.NewExtractor()
	}
	return appslog.NewLoggingPageParser(goquery.NewPageParser(goquery.WithMainContentExtractor(content)), logger)
}

// maxTranslationTokens bounds the prompt size of one Gemini translation.
const maxTranslationTokens = 2048

func newGeminiTranslator(ctx context.Context, stderr io.Writer) (appcat.Translator, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
		return nil, fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}

	counter, err := gemini.NewTokenCounter(gemini.TokenizerModel)
	if err != nil {
		return nil, fmt.Errorf("failed to create token counter: %w", err)
	}

	return gemini.NewTranslator(client, gemini.WithTokenLimit(counter, maxTranslationTokens)), nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// logFunc adapts logger to the printf-style hook used by crawl.
func logFunc(logger *slog.Logger) crawl.LogFunc {
	return func(format string, args ...any) {
		logger.Info(fmt.Sprintf(format, args...))
	}
}

// newRand seeds placeholder values. A zero seed draws a random one.
func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed))
}
