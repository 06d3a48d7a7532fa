package crawl

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/fwojciec/appcat"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (string, error)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// Backoff returns the wait before retry n, counting from zero.
type Backoff func(n int) time.Duration

// RetryPolicy bounds fetch attempts for one page.
type RetryPolicy struct {
	// Attempts is the total number of tries, including the first.
	Attempts int
	Backoff  Backoff
}

// DefaultRetryPolicy tries three times, waiting a uniformly random
// duration in [2s, 5s) between attempts.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		Attempts: 3,
		Backoff:  RandomBackoff(2*time.Second, 5*time.Second),
	}
}

// RandomBackoff waits a uniformly random duration in [lo, hi).
func RandomBackoff(lo, hi time.Duration) Backoff {
	return func(int) time.Duration {
		if hi <= lo {
			return lo
		}
		return lo + rand.N(hi-lo)
	}
}

// FixedBackoff waits delays[n], repeating the last delay once the list is
// exhausted. No delays means no waiting.
func FixedBackoff(delays ...time.Duration) Backoff {
	return func(n int) time.Duration {
		if len(delays) == 0 {
			return 0
		}
		if n >= len(delays) {
			return delays[len(delays)-1]
		}
		return delays[n]
	}
}

// FetchWithRetry fetches url, retrying failed attempts per policy.
// ENOTFOUND is returned immediately since retrying cannot change it.
// The logger, if provided, is called before each retry.
func FetchWithRetry(ctx context.Context, url string, fetch FetchFunc, logger LogFunc, policy RetryPolicy) (string, error) {
	attempts := policy.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		html, err := fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		if appcat.ErrorCode(err) == appcat.ENOTFOUND {
			return "", err
		}
		lastErr = err

		// Don't retry after the last attempt
		if attempt >= attempts-1 {
			break
		}

		if err := ctx.Err(); err != nil {
			return "", err
		}

		var delay time.Duration
		if policy.Backoff != nil {
			delay = policy.Backoff(attempt)
		}

		if logger != nil {
			logger("retry %s (attempt %d/%d) in %s: %v", url, attempt+2, attempts, delay.Round(time.Millisecond), err)
		}

		if err := sleep(ctx, delay); err != nil {
			return "", err
		}
	}

	return "", lastErr
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
