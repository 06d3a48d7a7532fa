package main

import (
	"fmt"

	"github.com/fwojciec/appcat"
	"github.com/fwojciec/appcat/crawl"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	apps, err := c.apps(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", appcat.ErrorMessage(err))
		return err
	}

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Scraping %d apps\n", event.Total)
		case crawl.ProgressSkipped:
			fmt.Fprintf(deps.Stderr, "  skip %s: not found\n", event.App.Slug)
		case crawl.ProgressFallback:
			fmt.Fprintf(deps.Stderr, "  fallback %s: %v\n", event.App.Slug, event.Error)
		}
	}

	result, err := deps.Scraper.Scrape(deps.Ctx, apps, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error scraping: %s\n", appcat.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Scraped %d apps (%d not found, %d fallbacks, %d failed fetches)\n",
		len(result.Records), len(result.Skipped), len(result.Fallbacks), result.Failed)

	return saveCatalog(deps, c.Output, appcat.Layout(c.Layout), "scrape", c.Host, result.Records)
}

// apps returns the apps to scrape: discovered ones when discovery is
// wired, else the slugs given on the command line, else the built-in list.
func (c *ScrapeCmd) apps(deps *Dependencies) ([]appcat.AppRef, error) {
	if deps.Apps != nil {
		return deps.Apps.Discover(deps.Ctx)
	}

	slugs := c.Slugs
	if len(slugs) == 0 {
		slugs = crawl.KnownSlugs()
	}
	return crawl.AppRefsFromSlugs(c.Host, slugs), nil
}
