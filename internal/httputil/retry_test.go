// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fastPolicy uses tiny delays so tests finish quickly.
func fastPolicy(attempts int) Policy {
	return Policy{MaxAttempts: attempts, BaseDelay: time.Millisecond}
}

func TestRetry_ImmediateSuccess(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), fastPolicy(3), func(int) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetry_FailsThenSucceeds(t *testing.T) {
	var attempts []int
	err := Retry(context.Background(), fastPolicy(3), func(attempt int) error {
		attempts = append(attempts, attempt)
		if attempt < 2 {
			return errors.New("transient")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, attempts)
}

func TestRetry_ExhaustsAttempts(t *testing.T) {
	calls := 0
	boom := errors.New("boom")
	var retried []int
	p := fastPolicy(3)
	p.OnRetry = func(attempt int, err error, _ time.Duration) {
		retried = append(retried, attempt)
		assert.ErrorIs(t, err, boom)
	}

	err := Retry(context.Background(), p, func(int) error {
		calls++
		return boom
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "3 attempts")
	assert.Equal(t, 3, calls)
	// No wait is scheduled after the final attempt.
	assert.Equal(t, []int{0, 1}, retried)
}

func TestRetry_DefaultMaxAttempts(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), fastPolicy(0), func(int) error {
		calls++
		return errors.New("boom")
	})
	require.Error(t, err)
	assert.Equal(t, defaultMaxAttempts, calls)
}

func TestRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	p := Policy{MaxAttempts: 5, BaseDelay: time.Second}
	err := Retry(ctx, p, func(int) error { return errors.New("boom") })
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPolicyBackoff(t *testing.T) {
	p := Policy{BaseDelay: 5 * time.Second}
	assert.Equal(t, 5*time.Second, p.Backoff(0))
	assert.Equal(t, 10*time.Second, p.Backoff(1))
	assert.Equal(t, 20*time.Second, p.Backoff(2))
}

func TestRetry_WaitIncludesBoundedJitter(t *testing.T) {
	p := Policy{MaxAttempts: 4, BaseDelay: time.Millisecond, MaxJitter: 2 * time.Millisecond}
	var waits []time.Duration
	p.OnRetry = func(_ int, _ error, wait time.Duration) { waits = append(waits, wait) }

	_ = Retry(context.Background(), p, func(int) error { return errors.New("boom") })

	require.Len(t, waits, 3)
	for i, w := range waits {
		base := p.Backoff(i)
		assert.GreaterOrEqual(t, w, base)
		assert.Less(t, w, base+p.MaxJitter)
	}
}
