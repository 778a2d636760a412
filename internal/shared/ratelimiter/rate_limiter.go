// Package ratelimiter は上流APIへの呼び出し頻度を制限します。
package ratelimiter

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// RateLimiterInterface は、API呼び出しなどの操作の頻度を制限するインターフェースです。
type RateLimiterInterface interface {
	WaitIfNeeded(ctx context.Context) error
}

// RateLimiterは、API呼び出しなどの操作の頻度を制限します。
// 複数のゴルーチンから安全に呼び出せます。
type RateLimiter struct {
	mu        sync.Mutex
	limit     int           // interval あたりの上限
	interval  time.Duration // どの単位でリセットするか
	count     int
	lastReset time.Time

	now   func() time.Time
	after func(time.Duration) <-chan time.Time
}

// NewRateLimiterは新しいRateLimiterのインスタンスを生成します。
// limit <= 0 の場合は制限しません。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:     limit,
		interval:  interval,
		lastReset: time.Now(),
		now:       time.Now,
		after:     time.After,
	}
}

// WaitIfNeededはレートリミットの上限に達しているかを確認し、必要であれば待機します。
// 待機中はロックを保持せず、ctx がキャンセルされると ctx.Err() を返します。
func (rl *RateLimiter) WaitIfNeeded(ctx context.Context) error {
	if rl.limit <= 0 {
		return ctx.Err()
	}
	wait := rl.reserve()
	if wait <= 0 {
		return ctx.Err()
	}
	zap.S().Infow("rate limit reached, waiting", "limit", rl.limit, "wait", wait)
	select {
	case <-rl.after(wait):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// reserve は1回分の枠を確保し、その枠が使えるまでの待ち時間を返します。
// 上限超過時は次のウィンドウの先頭枠を確保します。
func (rl *RateLimiter) reserve() time.Duration {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	// interval を過ぎたらカウントリセット
	if now.Sub(rl.lastReset) >= rl.interval {
		rl.count = 0
		rl.lastReset = now
	}

	rl.count++
	if rl.count <= rl.limit {
		return 0
	}
	// 次のウィンドウへ
	rl.lastReset = rl.lastReset.Add(rl.interval)
	rl.count = 1
	return rl.lastReset.Sub(now)
}
