// Package trafilatura isolates the main content of application pages with
// go-trafilatura.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/appcat"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements appcat.MainContentExtractor at compile time.
var _ appcat.MainContentExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct {
	opts trafilatura.Options
}

// NewExtractor creates a new Extractor. Fallback extractors are enabled
// since application pages are short and often marketing-heavy.
func NewExtractor() *Extractor {
	return &Extractor{
		opts: trafilatura.Options{
			EnableFallback: true,
		},
	}
}

// ExtractMain returns the main content of rawHTML as HTML, without
// navigation, sidebars and footers.
func (e *Extractor) ExtractMain(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", appcat.Errorf(appcat.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), e.opts)
	if err != nil {
		return "", err
	}
	if result == nil || result.ContentNode == nil {
		return "", nil
	}

	return renderNode(result.ContentNode)
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
