package readability_test

import (
	"testing"

	"github.com/fwojciec/appcat"
	"github.com/fwojciec/appcat/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_ExtractMain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		body     string
		contains []string
		excludes []string
	}{
		{
			name: "drops site navigation",
			body: `<nav><a href="/home">Home Nav Link</a><a href="/apps">Apps Nav Link</a></nav>
<article><p>Yoink is a shelf for the files you drag around, waiting until you drop them somewhere else.</p></article>`,
			contains: []string{"shelf for the files you drag around"},
			excludes: []string{"Home Nav Link", "Apps Nav Link"},
		},
		{
			name: "keeps overview paragraphs as markup",
			body: `<nav><a href="/home">Home</a></nav>
<article>
<p>Dash gives your Mac instant offline access to API documentation sets.</p>
<p>Search over two hundred docsets and snippets without leaving the keyboard.</p>
</article>
<footer><p>Footer</p></footer>`,
			contains: []string{"<p", "instant offline access to API documentation", "two hundred docsets"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			page := "<!DOCTYPE html><html><head><title>App on Setapp</title></head><body>" + tt.body + "</body></html>"

			content, err := readability.NewExtractor().ExtractMain(page)

			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, content, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, content, s)
			}
		})
	}

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		_, err := readability.NewExtractor().ExtractMain(" \n")

		assert.Equal(t, appcat.EINVALID, appcat.ErrorCode(err))
	})
}
