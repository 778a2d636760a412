package ratelimiter

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock は待機で時間が進む疑似時計です。
type fakeClock struct {
	mu     sync.Mutex
	t      time.Time
	waited []time.Duration
}

func (f *fakeClock) now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeClock) advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.t = f.t.Add(d)
}

func (f *fakeClock) after(d time.Duration) <-chan time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.waited = append(f.waited, d)
	f.t = f.t.Add(d)
	ch := make(chan time.Time, 1)
	ch <- f.t
	return ch
}

func newTestLimiter(limit int, interval time.Duration) (*RateLimiter, *fakeClock) {
	clk := &fakeClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	rl := NewRateLimiter(limit, interval)
	rl.now = clk.now
	rl.after = clk.after
	rl.lastReset = clk.t
	return rl, clk
}

func TestRateLimiter_UnderLimitDoesNotWait(t *testing.T) {
	rl, clk := newTestLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		require.NoError(t, rl.WaitIfNeeded(context.Background()))
	}
	assert.Empty(t, clk.waited)
}

func TestRateLimiter_WaitsUntilWindowEnds(t *testing.T) {
	rl, clk := newTestLimiter(2, time.Minute)
	ctx := context.Background()

	require.NoError(t, rl.WaitIfNeeded(ctx))
	clk.advance(20 * time.Second) // 時間経過
	require.NoError(t, rl.WaitIfNeeded(ctx))
	require.NoError(t, rl.WaitIfNeeded(ctx)) // 3回目で上限超過

	assert.Equal(t, []time.Duration{40 * time.Second}, clk.waited)
	assert.Equal(t, 1, rl.count)
}

func TestRateLimiter_ResetsAfterInterval(t *testing.T) {
	rl, clk := newTestLimiter(1, time.Second)
	ctx := context.Background()

	require.NoError(t, rl.WaitIfNeeded(ctx))
	clk.advance(time.Second)
	require.NoError(t, rl.WaitIfNeeded(ctx))

	assert.Empty(t, clk.waited)
}

func TestRateLimiter_Unlimited(t *testing.T) {
	rl, clk := newTestLimiter(0, time.Second)

	for i := 0; i < 100; i++ {
		require.NoError(t, rl.WaitIfNeeded(context.Background()))
	}
	assert.Empty(t, clk.waited)
}

func TestRateLimiter_CanceledWhileWaiting(t *testing.T) {
	rl, _ := newTestLimiter(1, time.Minute)
	entered := make(chan struct{})
	rl.after = func(time.Duration) <-chan time.Time {
		close(entered)
		return make(chan time.Time) // 発火しない
	}

	require.NoError(t, rl.WaitIfNeeded(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- rl.WaitIfNeeded(ctx) }()

	<-entered
	// 待機中でもロックは解放されている
	require.True(t, rl.mu.TryLock())
	rl.mu.Unlock()

	cancel()
	select {
	case err := <-done:
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(time.Second):
		t.Fatal("WaitIfNeeded did not return after cancel")
	}
}

func TestRateLimiter_Concurrent(t *testing.T) {
	rl, _ := newTestLimiter(1000, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = rl.WaitIfNeeded(context.Background())
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, rl.count)
}
