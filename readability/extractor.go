// Package readability isolates the main content of application pages with
// go-readability.
package readability

import (
	"strings"

	"github.com/fwojciec/appcat"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements appcat.MainContentExtractor at compile time.
var _ appcat.MainContentExtractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractMain returns the readable article content of rawHTML as HTML.
func (e *Extractor) ExtractMain(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", appcat.Errorf(appcat.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return "", err
	}

	return article.Content, nil
}
