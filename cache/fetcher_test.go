package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/appcat"
	"github.com/fwojciec/appcat/cache"
	"github.com/fwojciec/appcat/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countingFetcher(calls *int, fn func(url string) (string, error)) *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			*calls++
			return fn(url)
		},
		CloseFn: func() error { return nil },
	}
}

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("fetches each page once", func(t *testing.T) {
		t.Parallel()

		var calls int
		f := cache.NewFetcher(countingFetcher(&calls, func(url string) (string, error) {
			return "<html>" + url + "</html>", nil
		}))

		first, err := f.Fetch(context.Background(), "https://setapp.com/apps/paste")
		require.NoError(t, err)
		second, err := f.Fetch(context.Background(), "https://setapp.com/apps/paste")
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, 1, calls)
		assert.Equal(t, 1, f.Len())
	})

	t.Run("caches not found", func(t *testing.T) {
		t.Parallel()

		var calls int
		f := cache.NewFetcher(countingFetcher(&calls, func(string) (string, error) {
			return "", appcat.Errorf(appcat.ENOTFOUND, "HTTP 404")
		}))

		_, err1 := f.Fetch(context.Background(), "https://setapp.com/apps/gone")
		_, err2 := f.Fetch(context.Background(), "https://setapp.com/apps/gone")

		assert.Equal(t, appcat.ENOTFOUND, appcat.ErrorCode(err1))
		assert.Equal(t, appcat.ENOTFOUND, appcat.ErrorCode(err2))
		assert.Equal(t, 1, calls)
	})

	t.Run("does not cache transient errors", func(t *testing.T) {
		t.Parallel()

		var calls int
		f := cache.NewFetcher(countingFetcher(&calls, func(string) (string, error) {
			if calls == 1 {
				return "", errors.New("connection reset")
			}
			return "ok", nil
		}))

		_, err := f.Fetch(context.Background(), "https://setapp.com/apps/craft")
		require.Error(t, err)

		html, err := f.Fetch(context.Background(), "https://setapp.com/apps/craft")

		require.NoError(t, err)
		assert.Equal(t, "ok", html)
		assert.Equal(t, 2, calls)
	})

	t.Run("refetches after expiration", func(t *testing.T) {
		t.Parallel()

		var calls int
		f := cache.NewFetcher(countingFetcher(&calls, func(string) (string, error) {
			return "ok", nil
		}), cache.WithExpiration(time.Millisecond))

		_, err := f.Fetch(context.Background(), "https://setapp.com/apps/dash")
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)
		_, err = f.Fetch(context.Background(), "https://setapp.com/apps/dash")
		require.NoError(t, err)

		assert.Equal(t, 2, calls)
	})
}

func TestFetcher_Close(t *testing.T) {
	t.Parallel()

	var closed bool
	f := cache.NewFetcher(&mock.Fetcher{
		FetchFn: func(context.Context, string) (string, error) { return "ok", nil },
		CloseFn: func() error {
			closed = true
			return nil
		},
	})

	_, err := f.Fetch(context.Background(), "https://setapp.com/apps/dash")
	require.NoError(t, err)

	require.NoError(t, f.Close())
	assert.True(t, closed)
	assert.Equal(t, 0, f.Len())
}
