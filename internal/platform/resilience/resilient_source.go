// Package resilience wraps candle sources with retries, a circuit breaker and
// upstream metrics.
package resilience

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"crypto_dashboard/internal/feature/candles/domain/entity"
	"crypto_dashboard/internal/feature/candles/usecase"
	"crypto_dashboard/internal/platform/externalapi"
	"crypto_dashboard/internal/platform/metrics"
)

// Settings tunes one ResilientSource.
type Settings struct {
	MaxRetries       uint64        // retries after the first attempt
	InitialInterval  time.Duration // first backoff wait
	MaxInterval      time.Duration
	MaxElapsedTime   time.Duration // total retry budget
	FailureThreshold uint32        // consecutive transient failures that open the breaker
	OpenTimeout      time.Duration // how long the breaker stays open
}

// DefaultSettings are sized for interactive requests: a handful of quick
// retries rather than the long reconnect loops used for streaming feeds.
func DefaultSettings() Settings {
	return Settings{
		MaxRetries:       3,
		InitialInterval:  300 * time.Millisecond,
		MaxInterval:      3 * time.Second,
		MaxElapsedTime:   10 * time.Second,
		FailureThreshold: 5,
		OpenTimeout:      30 * time.Second,
	}
}

// ResilientSource decorates a CandleSource.
type ResilientSource struct {
	name     string
	inner    usecase.CandleSource
	settings Settings
	breaker  *gobreaker.CircuitBreaker
}

var _ usecase.CandleSource = (*ResilientSource)(nil)

// NewResilientSource wraps inner; name labels metrics and logs.
func NewResilientSource(name string, inner usecase.CandleSource, s Settings) *ResilientSource {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     s.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= s.FailureThreshold
		},
		// 4xx やドメインエラーは上流の不調ではない
		IsSuccessful: func(err error) bool {
			return err == nil || !externalapi.IsRetryable(err)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			zap.S().Warnw("circuit breaker state changed",
				"source", name,
				"from", from.String(),
				"to", to.String())
		},
	})
	return &ResilientSource{name: name, inner: inner, settings: s, breaker: cb}
}

func (r *ResilientSource) state() gobreaker.State { return r.breaker.State() }

func (r *ResilientSource) newBackOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.settings.InitialInterval
	b.MaxInterval = r.settings.MaxInterval
	b.MaxElapsedTime = r.settings.MaxElapsedTime
	b.Multiplier = 2.0
	b.RandomizationFactor = 0.1
	return backoff.WithContext(backoff.WithMaxRetries(b, r.settings.MaxRetries), ctx)
}

// GetTimeSeries calls the inner source through the breaker, retrying
// transient failures with exponential backoff.
func (r *ResilientSource) GetTimeSeries(ctx context.Context, q entity.SeriesQuery) ([]entity.Candle, error) {
	start := time.Now()
	var out []entity.Candle

	op := func() error {
		res, err := r.breaker.Execute(func() (interface{}, error) {
			return r.inner.GetTimeSeries(ctx, q)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) || !externalapi.IsRetryable(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		out, _ = res.([]entity.Candle)
		return nil
	}

	err := backoff.RetryNotify(op, r.newBackOff(ctx), func(err error, wait time.Duration) {
		metrics.UpstreamRetry(r.name)
		zap.S().Warnw("upstream fetch failed, retrying",
			"source", r.name,
			"symbol", q.Symbol,
			"interval", q.Interval,
			"wait", wait,
			"error", err)
	})

	outcome := metrics.OutcomeOK
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		outcome = metrics.OutcomeBreakerOpen
	case err != nil:
		outcome = metrics.OutcomeError
	}
	metrics.ObserveUpstream(r.name, outcome, time.Since(start))

	if err != nil {
		return nil, err
	}
	return out, nil
}
