// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the HTTP client and retry helpers used by the fetcher.
package httputil

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"
)

const defaultMaxAttempts = 3

// Policy configures Retry. Attempt n (zero-based) that fails is followed by
// a wait of BaseDelay*2^n plus a uniform jitter in [0, MaxJitter).
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxJitter   time.Duration

	// OnRetry is called after a failed attempt that will be retried, with
	// the zero-based attempt number, its error, and the wait that follows.
	OnRetry func(attempt int, err error, wait time.Duration)
}

// Backoff returns the wait that follows failed attempt n, without jitter.
func (p Policy) Backoff(attempt int) time.Duration {
	return time.Duration(math.Pow(2, float64(attempt))) * p.BaseDelay
}

func (p Policy) jitter() time.Duration {
	if p.MaxJitter <= 0 {
		return 0
	}
	return time.Duration(rand.Int63n(int64(p.MaxJitter)))
}

// Retry calls fn until it succeeds or MaxAttempts attempts have failed
// (default 3 when MaxAttempts is 0). fn receives the zero-based attempt
// number. The last error is returned wrapped with the attempt count. If the
// context is cancelled during a backoff wait Retry returns ctx.Err().
func Retry(ctx context.Context, p Policy, fn func(attempt int) error) error {
	maxAttempts := p.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}

	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err = fn(attempt); err == nil {
			return nil
		}

		// No wait after the final attempt.
		if attempt == maxAttempts-1 {
			break
		}

		wait := p.Backoff(attempt) + p.jitter()
		if p.OnRetry != nil {
			p.OnRetry(attempt, err, wait)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	return fmt.Errorf("giving up after %d attempts: %w", maxAttempts, err)
}
