package matchr_test

import (
	"testing"

	"github.com/fwojciec/appcat"
	"github.com/fwojciec/appcat/matchr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func records(names ...string) []*appcat.Record {
	rs := make([]*appcat.Record, len(names))
	for i, n := range names {
		rs[i] = &appcat.Record{Name: n}
	}
	return rs
}

func TestNearMissFinder_Find(t *testing.T) {
	t.Parallel()

	t.Run("pairs names differing only in case or spacing", func(t *testing.T) {
		t.Parallel()

		f := matchr.NewNearMissFinder()

		got := f.Find(records("CleanShot X", "Paste"), records("Cleanshot X", "Paste"))

		require.Len(t, got, 1)
		assert.Equal(t, matchr.NearMiss{Refresh: "Cleanshot X", Baseline: "CleanShot X", Similarity: 1}, got[0])
	})

	t.Run("ignores exact matches", func(t *testing.T) {
		t.Parallel()

		f := matchr.NewNearMissFinder()

		got := f.Find(records("Paste", "Craft"), records("Paste", "Craft"))

		assert.Empty(t, got)
	})

	t.Run("reports very similar names", func(t *testing.T) {
		t.Parallel()

		f := matchr.NewNearMissFinder()

		got := f.Find(records("iStatistica Pro"), records("iStatistica Pro."))

		require.Len(t, got, 1)
		assert.Equal(t, "iStatistica Pro", got[0].Baseline)
		assert.GreaterOrEqual(t, got[0].Similarity, matchr.DefaultThreshold)
	})

	t.Run("ignores dissimilar names", func(t *testing.T) {
		t.Parallel()

		f := matchr.NewNearMissFinder()

		got := f.Find(records("Bartender"), records("Yoink"))

		assert.Empty(t, got)
	})

	t.Run("uses each baseline name once", func(t *testing.T) {
		t.Parallel()

		f := matchr.NewNearMissFinder()

		got := f.Find(records("Boom 3D"), records("boom 3d", "Boom3D"))

		require.Len(t, got, 1)
		assert.Equal(t, "boom 3d", got[0].Refresh)
	})

	t.Run("zero threshold falls back to default", func(t *testing.T) {
		t.Parallel()

		f := &matchr.NearMissFinder{}

		got := f.Find(records("Bartender"), records("Yoink"))

		assert.Empty(t, got)
	})
}
