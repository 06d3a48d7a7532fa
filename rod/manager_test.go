//go:build integration

package rod_test

import (
	"testing"

	"github.com/fwojciec/appcat/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowserManager_Browser(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		maxPages    int64
		rendered    int
		wantRecycle bool
	}{
		{name: "below the limit", maxPages: 5, rendered: 2},
		{name: "at the limit", maxPages: 3, rendered: 3, wantRecycle: true},
		{name: "recycling disabled", maxPages: 0, rendered: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var reported []int64
			manager, err := rod.NewBrowserManager(
				rod.WithMaxPages(tt.maxPages),
				rod.WithRecycleHook(func(pages int64, err error) {
					assert.NoError(t, err)
					reported = append(reported, pages)
				}),
			)
			require.NoError(t, err)
			t.Cleanup(func() { manager.Close() })

			before := manager.Browser()
			for range tt.rendered {
				manager.IncrementPageCount()
			}
			after := manager.Browser()

			if tt.wantRecycle {
				assert.NotSame(t, before, after)
				assert.Equal(t, int64(1), manager.Recycles())
				assert.Equal(t, []int64{int64(tt.rendered)}, reported)
				return
			}
			assert.Same(t, before, after)
			assert.Zero(t, manager.Recycles())
			assert.Empty(t, reported)
		})
	}
}

func TestBrowserManager_CountRestartsAfterRecycle(t *testing.T) {
	t.Parallel()

	manager, err := rod.NewBrowserManager(rod.WithMaxPages(2))
	require.NoError(t, err)
	t.Cleanup(func() { manager.Close() })

	manager.IncrementPageCount()
	manager.IncrementPageCount()
	fresh := manager.Browser()
	manager.IncrementPageCount()

	assert.Same(t, fresh, manager.Browser())
	assert.Equal(t, int64(1), manager.Recycles())
}

func TestBrowserManager_Close(t *testing.T) {
	t.Parallel()

	manager, err := rod.NewBrowserManager()
	require.NoError(t, err)
	require.NotZero(t, manager.LauncherPID())

	require.NoError(t, manager.Close())
	require.NoError(t, manager.Close())

	assert.Zero(t, manager.LauncherPID())
}
