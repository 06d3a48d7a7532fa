// Package crawl scrapes application profile pages: it discovers the apps a
// catalog site lists, fetches their pages politely with retries, and turns
// them into records.
package crawl

import (
	"context"
	"errors"
	"net/url"
	"sync"

	"github.com/fwojciec/appcat"
	"golang.org/x/sync/errgroup"
)

// Scraper turns application profile pages into records.
type Scraper struct {
	Fetcher     appcat.Fetcher
	Parser      appcat.PageParser
	RateLimiter appcat.DomainLimiter

	// Placeholder, if set, fills ratings and prices the pages lack.
	Placeholder *appcat.Placeholder

	Retry RetryPolicy

	// Concurrency is the number of pages fetched at once. Values below 2
	// scrape sequentially.
	Concurrency int

	Logger LogFunc
}

// Result holds the outcome of a scrape.
type Result struct {
	// Records are in input order.
	Records []*appcat.Record

	// Skipped lists apps whose page signalled that it does not exist.
	Skipped []appcat.AppRef

	// Fallbacks lists apps whose records were synthesized from the name
	// because their page could not be fetched or parsed.
	Fallbacks []appcat.AppRef

	// Failed counts apps whose fetch attempts were all exhausted.
	Failed int
}

// ProgressEvent reports progress during a scrape.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	App       appcat.AppRef
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressSkipped
	ProgressFallback
	ProgressFinished
)

// ProgressFunc is a callback for reporting scrape progress.
type ProgressFunc func(event ProgressEvent)

type outcomeKind int

const (
	outcomeRecord outcomeKind = iota
	outcomeSkipped
	outcomeFallback
)

// outcome holds the result of scraping a single app.
type outcome struct {
	kind       outcomeKind
	record     *appcat.Record
	fetchError bool
	err        error
}

// Scrape fetches and parses every app page. A page signalling "not found"
// is skipped; a page that cannot be fetched or parsed yields a fallback
// record. Records are returned in input order regardless of Concurrency.
//
// Returns EUNAVAILABLE when every fetch failed.
func (s *Scraper) Scrape(ctx context.Context, apps []appcat.AppRef, progress ProgressFunc) (*Result, error) {
	total := len(apps)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	outcomes := make([]outcome, total)

	var mu sync.Mutex
	completed := 0
	report := func(i int, o outcome) {
		if progress == nil {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		completed++

		event := ProgressEvent{Completed: completed, Total: total, App: apps[i], Error: o.err}
		switch o.kind {
		case outcomeSkipped:
			event.Type = ProgressSkipped
		case outcomeFallback:
			event.Type = ProgressFallback
		default:
			event.Type = ProgressCompleted
		}
		progress(event)
	}

	if s.Concurrency < 2 {
		for i, app := range apps {
			o, err := s.scrapeOne(ctx, app)
			if err != nil {
				return nil, err
			}
			outcomes[i] = o
			report(i, o)
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.Concurrency)
		for i, app := range apps {
			g.Go(func() error {
				o, err := s.scrapeOne(gctx, app)
				if err != nil {
					return err
				}
				outcomes[i] = o
				report(i, o)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	result := &Result{}
	for i, o := range outcomes {
		if o.fetchError {
			result.Failed++
		}
		switch o.kind {
		case outcomeSkipped:
			result.Skipped = append(result.Skipped, apps[i])
			continue
		case outcomeFallback:
			result.Fallbacks = append(result.Fallbacks, apps[i])
		}
		// Placeholders are drawn in input order so that concurrent and
		// sequential scrapes with the same seed produce identical output.
		if s.Placeholder != nil {
			s.Placeholder.Fill(o.record)
		}
		result.Records = append(result.Records, o.record)
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	if total > 0 && result.Failed == total {
		return result, appcat.Errorf(appcat.EUNAVAILABLE, "all %d app pages failed to fetch", total)
	}
	return result, nil
}

// scrapeOne returns an error only when ctx is done; every other failure is
// folded into the outcome.
func (s *Scraper) scrapeOne(ctx context.Context, app appcat.AppRef) (outcome, error) {
	if s.RateLimiter != nil {
		if err := s.RateLimiter.Wait(ctx, host(app.URL)); err != nil {
			return outcome{}, err
		}
	}

	fetch := func(ctx context.Context, url string) (string, error) {
		return s.Fetcher.Fetch(ctx, url)
	}
	html, err := FetchWithRetry(ctx, app.URL, fetch, s.Logger, s.Retry)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return outcome{}, ctxErr
		}
		if appcat.ErrorCode(err) == appcat.ENOTFOUND {
			return outcome{kind: outcomeSkipped, err: err}, nil
		}
		s.logf("fetch %s failed, using fallback: %v", app.URL, err)
		return outcome{kind: outcomeFallback, record: appcat.FallbackRecord(app), fetchError: true, err: err}, nil
	}

	details, err := s.Parser.Parse(ctx, app.URL, html, app.Name)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return outcome{}, err
		}
		if appcat.ErrorCode(err) == appcat.ENOTFOUND {
			return outcome{kind: outcomeSkipped, err: err}, nil
		}
		s.logf("parse %s failed, using fallback: %v", app.URL, err)
		return outcome{kind: outcomeFallback, record: appcat.FallbackRecord(app), err: err}, nil
	}

	return outcome{kind: outcomeRecord, record: recordFromDetails(app, details)}, nil
}

func (s *Scraper) logf(format string, args ...any) {
	if s.Logger != nil {
		s.Logger(format, args...)
	}
}

// recordFromDetails builds a record from parsed page details, preferring
// the page title over the name derived from the slug.
func recordFromDetails(app appcat.AppRef, d *appcat.PageDetails) *appcat.Record {
	name := app.Name
	if d.Title != "" {
		name = d.Title
	}

	platforms := appcat.JoinPlatforms(d.Platforms)
	if platforms == "" {
		platforms = appcat.DefaultPlatform
	}

	return &appcat.Record{
		Name:            name,
		Platforms:       platforms,
		Description:     d.Description,
		Rating:          d.Rating,
		OfficialWebsite: d.OfficialWebsite,
		SourceLink:      app.URL,
	}
}

// host returns the host of rawURL, or rawURL itself when it does not parse.
func host(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}
