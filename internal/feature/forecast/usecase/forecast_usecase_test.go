package usecase

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crypto_dashboard/internal/feature/candles/domain"
	candleentity "crypto_dashboard/internal/feature/candles/domain/entity"
	candles "crypto_dashboard/internal/feature/candles/usecase"
	"crypto_dashboard/internal/feature/forecast/domain/entity"
)

type mockSeriesGetter struct {
	GetSeriesFunc func(ctx context.Context, q candles.CandleQuery) (candleentity.Series, error)
	calls         int
}

func (m *mockSeriesGetter) GetSeries(ctx context.Context, q candles.CandleQuery) (candleentity.Series, error) {
	m.calls++
	return m.GetSeriesFunc(ctx, q)
}

var fixedNow = time.Date(2025, 3, 10, 15, 4, 5, 0, time.UTC)

func growingSeries(n int) candleentity.Series {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cs := make([]candleentity.Candle, n)
	for i := range cs {
		cs[i] = candleentity.Candle{Time: start.AddDate(0, 0, i), Close: 100 * math.Exp(0.002*float64(i))}
	}
	return candleentity.Series{Ticker: "BTCUSDT", ProviderSymbol: "BTC-USD", Source: "yahoo", Interval: "1day", Candles: cs}
}

func newUsecase(m *mockSeriesGetter) *ForecastUsecase {
	uc := NewForecastUsecase(m)
	uc.now = func() time.Time { return fixedNow }
	return uc
}

func TestHorizonDays(t *testing.T) {
	tests := []struct {
		horizon string
		periods int
		want    int
		wantErr bool
	}{
		{"years", 1, 365, false},
		{"years", 10, 3650, false},
		{"years", 0, 0, true},
		{"years", 11, 0, true},
		{"days", 7, 7, false},
		{"days", 90, 90, false},
		{"days", 6, 0, true},
		{"days", 91, 0, true},
		{"weeks", 2, 0, true},
	}
	for _, tt := range tests {
		got, err := HorizonDays(tt.horizon, tt.periods)
		if tt.wantErr {
			assert.ErrorIs(t, err, domain.ErrInvalidHorizon, "%s=%d", tt.horizon, tt.periods)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestForecast_Defaults(t *testing.T) {
	var got candles.CandleQuery
	m := &mockSeriesGetter{GetSeriesFunc: func(ctx context.Context, q candles.CandleQuery) (candleentity.Series, error) {
		got = q
		return growingSeries(60), nil
	}}

	f, err := newUsecase(m).Forecast(context.Background(), ForecastQuery{Ticker: "BTCUSDT"})
	require.NoError(t, err)

	assert.Equal(t, candles.CandleQuery{
		Ticker:     "BTCUSDT",
		Interval:   candleentity.Interval1Day,
		Start:      DefaultStart,
		End:        time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		OutputSize: candles.MaxOutputSize,
	}, got)

	assert.Equal(t, entity.HorizonYears, f.Horizon)
	assert.Equal(t, 365, f.Periods)
	assert.Equal(t, "BTC-USD", f.ProviderSymbol)
	assert.Len(t, f.History, 60)
	require.Len(t, f.Points, 60+365)
	assert.True(t, f.Points[len(f.Points)-1].Ds.Equal(f.History[59].Ds.AddDate(0, 0, 365)))
}

func TestForecast_Days(t *testing.T) {
	m := &mockSeriesGetter{GetSeriesFunc: func(ctx context.Context, q candles.CandleQuery) (candleentity.Series, error) {
		assert.Equal(t, "twelvedata", q.Source)
		return growingSeries(40), nil
	}}

	f, err := newUsecase(m).Forecast(context.Background(), ForecastQuery{
		Ticker: "ETHUSDT", Horizon: entity.HorizonDays, Periods: 30, Source: "twelvedata",
	})
	require.NoError(t, err)
	assert.Equal(t, 30, f.Periods)
	assert.Len(t, f.Points, 70)

	// a rising history extrapolates upward
	last := f.Points[len(f.Points)-1]
	assert.Greater(t, last.Yhat, f.History[39].Y)
	assert.LessOrEqual(t, last.YhatLower, last.Yhat)
	assert.GreaterOrEqual(t, last.YhatUpper, last.Yhat)
}

func TestForecast_DropsUnusableRows(t *testing.T) {
	m := &mockSeriesGetter{GetSeriesFunc: func(ctx context.Context, q candles.CandleQuery) (candleentity.Series, error) {
		s := growingSeries(10)
		s.Candles[2].Close = 0
		s.Candles[5].Close = -3
		s.Candles[7].Close = math.Inf(1)
		return s, nil
	}}

	f, err := newUsecase(m).Forecast(context.Background(), ForecastQuery{Ticker: "BTCUSDT", Horizon: "days", Periods: 7})
	require.NoError(t, err)
	assert.Len(t, f.History, 7)
	for _, o := range f.History {
		assert.Greater(t, o.Y, 0.0)
	}
}

func TestForecast_Errors(t *testing.T) {
	upstream := errors.New("boom")

	tests := []struct {
		name       string
		q          ForecastQuery
		series     candleentity.Series
		fetchErr   error
		wantErr    error
		wantFetch  bool
	}{
		{
			name:    "invalid years",
			q:       ForecastQuery{Ticker: "BTCUSDT", Horizon: "years", Periods: 11},
			wantErr: domain.ErrInvalidHorizon,
		},
		{
			name:    "invalid days",
			q:       ForecastQuery{Ticker: "BTCUSDT", Horizon: "days", Periods: 3},
			wantErr: domain.ErrInvalidHorizon,
		},
		{
			name:    "unknown horizon",
			q:       ForecastQuery{Ticker: "BTCUSDT", Horizon: "months", Periods: 3},
			wantErr: domain.ErrInvalidHorizon,
		},
		{
			name: "start after end",
			q: ForecastQuery{
				Ticker: "BTCUSDT",
				Start:  time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
				End:    time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
			},
			wantErr: domain.ErrInvalidRange,
		},
		{
			name:      "single row",
			q:         ForecastQuery{Ticker: "BTCUSDT"},
			series:    growingSeries(1),
			wantErr:   domain.ErrInsufficientData,
			wantFetch: true,
		},
		{
			name:      "fetch error",
			q:         ForecastQuery{Ticker: "BTCUSDT"},
			fetchErr:  upstream,
			wantErr:   upstream,
			wantFetch: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &mockSeriesGetter{GetSeriesFunc: func(ctx context.Context, q candles.CandleQuery) (candleentity.Series, error) {
				return tt.series, tt.fetchErr
			}}
			_, err := newUsecase(m).Forecast(context.Background(), tt.q)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantFetch, m.calls > 0)
		})
	}
}
