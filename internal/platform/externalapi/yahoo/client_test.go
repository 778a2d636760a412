package yahoo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crypto_dashboard/internal/feature/candles/domain"
	"crypto_dashboard/internal/feature/candles/domain/entity"
	"crypto_dashboard/internal/platform/externalapi"
)

const chartBody = `{
  "chart": {
    "result": [{
      "meta": {"symbol": "BTC-USD"},
      "timestamp": [1736899200, 1736812800, 1736985600],
      "indicators": {"quote": [{
        "open":   [96000.5, 94500.0, null],
        "high":   [100100.0, 97000.0, null],
        "low":    [95800.0, 94300.0, null],
        "close":  [99990.25, 96000.5, null],
        "volume": [123456789, null, null]
      }]}
    }],
    "error": null
  }
}`

func newTestClient(t *testing.T, h http.HandlerFunc) *ChartClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c := NewChartClient(Config{BaseURL: srv.URL, UserAgent: "Mozilla/5.0"}, srv.Client())
	c.now = func() time.Time { return time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC) }
	return c
}

func TestChartClient_GetTimeSeries_Success(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v8/finance/chart/BTC-USD", r.URL.Path)
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))
		assert.Equal(t, "1735689600", r.URL.Query().Get("period1"))
		assert.Equal(t, "1737331200", r.URL.Query().Get("period2"))
		assert.Empty(t, r.URL.Query().Get("range"))
		assert.Equal(t, "Mozilla/5.0", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(chartBody))
	})

	bars, err := c.GetTimeSeries(context.Background(), entity.SeriesQuery{
		Symbol:   "BTC-USD",
		Interval: entity.Interval1Day,
		Start:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	// null バーは除外、昇順
	require.Len(t, bars, 2)
	assert.True(t, entity.IsAscending(bars))
	assert.Equal(t, 96000.5, bars[0].Close)
	assert.Equal(t, 0.0, bars[0].Volume)
	assert.Equal(t, 99990.25, bars[1].Close)
	assert.Equal(t, 123456789.0, bars[1].Volume)
	assert.Equal(t, "BTC-USD", bars[1].Symbol)
	assert.Equal(t, time.UTC, bars[1].Time.Location())
}

func TestChartClient_GetTimeSeries_RangeAndTrim(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1d", r.URL.Query().Get("range"))
		assert.Empty(t, r.URL.Query().Get("period1"))
		_, _ = w.Write([]byte(chartBody))
	})

	bars, err := c.GetTimeSeries(context.Background(), entity.SeriesQuery{
		Symbol:     "BTC-USD",
		Interval:   entity.Interval1Day,
		OutputSize: 1,
	})
	require.NoError(t, err)
	require.Len(t, bars, 1)
	assert.Equal(t, 99990.25, bars[0].Close)
}

func TestChartClient_GetTimeSeries_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		checkFn func(t *testing.T, err error)
	}{
		{
			name:   "404 is a status error",
			status: http.StatusNotFound,
			body:   `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`,
			checkFn: func(t *testing.T, err error) {
				var se *externalapi.StatusError
				require.ErrorAs(t, err, &se)
				assert.Equal(t, http.StatusNotFound, se.Code)
				assert.False(t, externalapi.IsRetryable(err))
			},
		},
		{
			name:   "502 is retryable",
			status: http.StatusBadGateway,
			checkFn: func(t *testing.T, err error) {
				assert.True(t, externalapi.IsRetryable(err))
			},
		},
		{
			name:   "api error on 200",
			status: http.StatusOK,
			body:   `{"chart":{"result":null,"error":{"code":"Bad Request","description":"Invalid input"}}}`,
			checkFn: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, "Invalid input")
			},
		},
		{
			name:   "broken json",
			status: http.StatusOK,
			body:   `{"chart":`,
			checkFn: func(t *testing.T, err error) {
				assert.ErrorContains(t, err, "yahoo decode")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := c.GetTimeSeries(context.Background(), entity.SeriesQuery{Symbol: "NOPE-USD", Interval: entity.Interval1Day})
			require.Error(t, err)
			tt.checkFn(t, err)
		})
	}
}

func TestChartClient_GetTimeSeries_EmptyResult(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"chart":{"result":[],"error":null}}`))
	})

	bars, err := c.GetTimeSeries(context.Background(), entity.SeriesQuery{Symbol: "BTC-USD", Interval: entity.Interval1Day})
	require.NoError(t, err)
	assert.Empty(t, bars)
}

func TestChartClient_GetTimeSeries_UnsupportedInterval(t *testing.T) {
	t.Parallel()

	c := NewChartClient(Config{BaseURL: "http://127.0.0.1:0"}, http.DefaultClient)
	_, err := c.GetTimeSeries(context.Background(), entity.SeriesQuery{Symbol: "BTC-USD", Interval: "2h"})
	assert.True(t, errors.Is(err, domain.ErrUnsupportedInterval))
}

func TestRangeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		interval string
		n        int
		want     string
	}{
		{entity.Interval1Min, 1440, "1d"},
		{entity.Interval1Day, 0, "1y"},
		{entity.Interval1Day, 30, "1mo"},
		{entity.Interval1Day, 200, "1y"},
		{entity.Interval1Day, 730, "2y"},
		{entity.Interval1Week, 520, "10y"},
		{entity.Interval1Month, 200, "max"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, rangeFor(tt.interval, tt.n), "%s x %d", tt.interval, tt.n)
	}
}
