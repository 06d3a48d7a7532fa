package goquery_test

import (
	"testing"

	"github.com/fwojciec/appcat"
	"github.com/fwojciec/appcat/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListingParser_ParseListing(t *testing.T) {
	t.Parallel()

	t.Run("collects app slugs in document order", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<body>
<ul class="apps">
	<li><a href="/apps/cleanmymac">CleanMyMac</a></li>
	<li><a href="https://setapp.com/apps/bartender/">Bartender</a></li>
	<li><a href="apps/boom-3d">Boom 3D</a></li>
</ul>
</body>
</html>`

		slugs, err := goquery.NewListingParser().ParseListing(html, "https://setapp.com/")

		require.NoError(t, err)
		assert.Equal(t, []string{"cleanmymac", "bartender", "boom-3d"}, slugs)
	})

	t.Run("deduplicates repeated links", func(t *testing.T) {
		t.Parallel()

		html := `<a href="/apps/yoink">Yoink</a>
<a href="/apps/yoink#reviews">Reviews</a>
<a href="/apps/yoink?ref=footer">Footer</a>`

		slugs, err := goquery.NewListingParser().ParseListing(html, "https://setapp.com/apps")

		require.NoError(t, err)
		assert.Equal(t, []string{"yoink"}, slugs)
	})

	t.Run("ignores external and non-app links", func(t *testing.T) {
		t.Parallel()

		html := `<a href="https://other.example/apps/fake">Fake</a>
<a href="/pricing">Pricing</a>
<a href="/apps/paste/reviews">Reviews</a>
<a href="mailto:hi@setapp.com">Mail</a>
<a href="javascript:void(0)">JS</a>
<a href="/apps/paste">Paste</a>`

		slugs, err := goquery.NewListingParser().ParseListing(html, "https://setapp.com/apps")

		require.NoError(t, err)
		assert.Equal(t, []string{"paste"}, slugs)
	})

	t.Run("returns empty for page without links", func(t *testing.T) {
		t.Parallel()

		slugs, err := goquery.NewListingParser().ParseListing("<p>No apps</p>", "https://setapp.com/apps")

		require.NoError(t, err)
		assert.Empty(t, slugs)
	})

	t.Run("returns EINVALID for bad base URL", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewListingParser().ParseListing("<a href='/apps/x'>x</a>", "://bad")

		require.Error(t, err)
		assert.Equal(t, appcat.EINVALID, appcat.ErrorCode(err))
	})
}
