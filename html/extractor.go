// Package html extracts application records from saved catalog exports:
// HTML pages in which every application is rendered as an <app-details>
// element carrying its fields as attributes.
package html

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/fwojciec/appcat"
	xhtml "golang.org/x/net/html"
)

// Ensure Extractor implements appcat.ExportExtractor at compile time.
var _ appcat.ExportExtractor = (*Extractor)(nil)

// tagRe finds every <app-details> start tag. Quoted attribute values may
// contain '>'.
var tagRe = regexp.MustCompile(`<app-details\s(?:[^>"]|"[^"]*")*>`)

// strictRe requires name and description to be the first two attributes,
// followed somewhere by url and platforms in that order.
var strictRe = regexp.MustCompile(`^<app-details\s+name="([^"]+)"\s+description="([^"]+)"[^>]*?\burl=([^\s>]+)[^>]*?\bplatforms=([^\s>]+)[^>]*?>$`)

// Attribute patterns used by two-phase extraction.
var (
	nameAttrRe        = regexp.MustCompile(`\sname="([^"]*)"`)
	descriptionAttrRe = regexp.MustCompile(`\sdescription="([^"]*)"`)
	urlAttrRe         = regexp.MustCompile(`\surl=([^\s>]+)`)
	platformsAttrRe   = regexp.MustCompile(`\splatforms=([^\s>]+)`)
	ratingAttrRe      = regexp.MustCompile(`\srating=([^\s>]+)`)
)

// defaultRating is used in two-phase mode when a tag carries no rating.
const defaultRating = "0"

// Extractor implements appcat.ExportExtractor with regular expressions.
type Extractor struct {
	twoPhase   bool
	translator appcat.Translator
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithTwoPhase switches to attribute-order-insensitive extraction: each
// tag is matched coarsely and its attributes are then looked up one by
// one. Only the name is required; platforms default to "Mac" and rating
// to "0".
func WithTwoPhase() Option {
	return func(e *Extractor) {
		e.twoPhase = true
	}
}

// WithTranslator rewrites every description through t.
func WithTranslator(t appcat.Translator) Option {
	return func(e *Extractor) {
		e.translator = t
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract scans markup for <app-details> tags and returns one record per
// well-formed tag, in document order.
func (e *Extractor) Extract(ctx context.Context, markup string) (*appcat.ExportResult, error) {
	if strings.TrimSpace(markup) == "" {
		return nil, appcat.Errorf(appcat.EINVALID, "empty catalog markup")
	}

	tags := tagRe.FindAllString(markup, -1)
	result := &appcat.ExportResult{Candidates: len(tags)}

	for i, tag := range tags {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var (
			rec    *appcat.Record
			reason string
		)
		if e.twoPhase {
			rec = parseAttributes(tag)
		} else {
			rec, reason = parseStrict(tag)
		}
		if rec == nil {
			if reason != "" {
				result.Skipped = append(result.Skipped, appcat.Skip{Index: i, Reason: reason})
			}
			continue
		}

		if err := rec.Validate(); err != nil {
			continue
		}

		if e.translator != nil && rec.Description != "" {
			translated, err := e.translator.Translate(ctx, rec.Description)
			if err != nil {
				result.Skipped = append(result.Skipped, appcat.Skip{
					Index:  i,
					Reason: fmt.Sprintf("translate description of %q: %v", rec.Name, err),
				})
				continue
			}
			rec.Description = translated
		}

		result.Records = append(result.Records, rec)
	}

	return result, nil
}

// parseStrict applies the attribute-order-sensitive pattern. A tag without
// a name yields no record and no reason.
func parseStrict(tag string) (*appcat.Record, string) {
	m := strictRe.FindStringSubmatch(tag)
	if m == nil {
		if clean(submatch(nameAttrRe, tag)) == "" {
			return nil, ""
		}
		return nil, "missing or misplaced required attributes"
	}

	return &appcat.Record{
		Name:            clean(m[1]),
		Description:     clean(m[2]),
		OfficialWebsite: cleanToken(m[3]),
		Platforms:       appcat.NormalizePlatform(m[4]),
	}, ""
}

// parseAttributes looks up each attribute independently. It returns nil
// when the tag has no name.
func parseAttributes(tag string) *appcat.Record {
	name := submatch(nameAttrRe, tag)
	if name == "" {
		return nil
	}

	rating := cleanToken(submatch(ratingAttrRe, tag))
	if rating == "" {
		rating = defaultRating
	}

	return &appcat.Record{
		Name:            clean(name),
		Description:     clean(submatch(descriptionAttrRe, tag)),
		OfficialWebsite: cleanToken(submatch(urlAttrRe, tag)),
		Platforms:       appcat.NormalizePlatform(submatch(platformsAttrRe, tag)),
		Rating:          rating,
	}
}

func submatch(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return m[1]
}

// clean decodes entities in a quoted attribute value and trims it.
func clean(s string) string {
	return strings.TrimSpace(xhtml.UnescapeString(s))
}

// cleanToken is clean for unquoted values, which may still carry stray
// quote characters when the export quoted them after all.
func cleanToken(s string) string {
	return strings.Trim(clean(s), `"'`)
}
