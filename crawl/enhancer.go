package crawl

import (
	"context"
	"strings"

	"github.com/fwojciec/appcat"
)

// Enhancer completes records from an earlier run by revisiting their
// source pages: empty descriptions are filled and platforms recorded as
// the bare default ("Mac") are detected again.
type Enhancer struct {
	Fetcher     appcat.Fetcher
	Parser      appcat.PageParser
	RateLimiter appcat.DomainLimiter
	Retry       RetryPolicy
	Logger      LogFunc
}

// EnhanceResult holds the enhanced records and what changed.
type EnhanceResult struct {
	// Records are copies of the input in input order.
	Records []*appcat.Record

	// Descriptions counts records that gained a description.
	Descriptions int

	// Platforms counts records whose platforms changed.
	Platforms int

	// Failed counts records whose source page could not be used.
	Failed int
}

// Enhance returns enhanced copies of records. Records needing nothing, or
// without a source link, are copied unchanged. A failed page leaves its
// record as it was. The input is never modified.
func (e *Enhancer) Enhance(ctx context.Context, records []*appcat.Record) (*EnhanceResult, error) {
	result := &EnhanceResult{Records: make([]*appcat.Record, 0, len(records))}

	for _, r := range records {
		rec := r.Clone()
		result.Records = append(result.Records, rec)

		needsDescription := strings.TrimSpace(rec.Description) == ""
		needsPlatforms := rec.Platforms == appcat.DefaultPlatform
		if (!needsDescription && !needsPlatforms) || rec.SourceLink == "" {
			continue
		}

		details, err := e.page(ctx, rec)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			if e.Logger != nil {
				e.Logger("enhance %s: %v", rec.Name, err)
			}
			result.Failed++
			continue
		}

		if needsDescription && details.Description != "" {
			rec.Description = details.Description
			result.Descriptions++
		}
		if needsPlatforms {
			if platforms := appcat.JoinPlatforms(details.Platforms); platforms != "" && platforms != appcat.DefaultPlatform {
				rec.Platforms = platforms
				result.Platforms++
			}
		}
	}

	return result, nil
}

func (e *Enhancer) page(ctx context.Context, rec *appcat.Record) (*appcat.PageDetails, error) {
	if e.RateLimiter != nil {
		if err := e.RateLimiter.Wait(ctx, host(rec.SourceLink)); err != nil {
			return nil, err
		}
	}

	fetch := func(ctx context.Context, url string) (string, error) {
		return e.Fetcher.Fetch(ctx, url)
	}
	html, err := FetchWithRetry(ctx, rec.SourceLink, fetch, e.Logger, e.Retry)
	if err != nil {
		return nil, err
	}

	return e.Parser.Parse(ctx, rec.SourceLink, html, rec.Name)
}
