package handler_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"crypto_dashboard/internal/api"
	"crypto_dashboard/internal/feature/candles/domain"
	"crypto_dashboard/internal/feature/candles/domain/entity"
	"crypto_dashboard/internal/feature/candles/transport/handler"
	"crypto_dashboard/internal/feature/candles/usecase"
	"crypto_dashboard/internal/shared/apierror"
)

// mockCandlesUsecase はCandlesUsecaseインターフェースのモック実装です。
type mockCandlesUsecase struct {
	GetCandlesFunc func(ctx context.Context, q usecase.CandleQuery) ([]entity.Candle, error)
}

func (m *mockCandlesUsecase) GetCandles(ctx context.Context, q usecase.CandleQuery) ([]entity.Candle, error) {
	return m.GetCandlesFunc(ctx, q)
}

// candlesOnly は GetCandles だけを実装した ServerInterface です。
type candlesOnly struct {
	api.ServerInterface
	h *handler.CandlesHandler
}

func (s candlesOnly) GetCandles(c *gin.Context, ticker api.Ticker, params api.GetCandlesParams) {
	s.h.GetCandles(c, ticker, params)
}

// TestCandlesHandler_GetCandles はGetCandlesのHTTPリクエスト/レスポンス処理をテストします。
func TestCandlesHandler_GetCandles(t *testing.T) {
	gin.SetMode(gin.TestMode)

	testTime := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		url            string
		mockGetCandles func(ctx context.Context, q usecase.CandleQuery) ([]entity.Candle, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success: all parameters specified",
			url:  "/candles/BTCUSDT?interval=1day&outputsize=10&start=2022-12-01&end=2023-01-02&source=twelvedata",
			mockGetCandles: func(ctx context.Context, q usecase.CandleQuery) ([]entity.Candle, error) {
				assert.Equal(t, "BTCUSDT", q.Ticker)
				assert.Equal(t, "1day", q.Interval)
				assert.Equal(t, 10, q.OutputSize)
				assert.Equal(t, "twelvedata", q.Source)
				assert.True(t, q.Start.Equal(time.Date(2022, 12, 1, 0, 0, 0, 0, time.UTC)))
				assert.True(t, q.End.Equal(time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)))
				return []entity.Candle{
					{Interval: "1day", Time: testTime, Open: 100, High: 110, Low: 90, Close: 105, Volume: 1000.5},
				}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[{"time":"2023-01-01","open":100,"high":110,"low":90,"close":105,"volume":1000.5}]`,
		},
		{
			name: "success: defaults are left to the usecase",
			url:  "/candles/BTCUSDT",
			mockGetCandles: func(ctx context.Context, q usecase.CandleQuery) ([]entity.Candle, error) {
				assert.Equal(t, usecase.CandleQuery{Ticker: "BTCUSDT"}, q)
				return []entity.Candle{}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[]`,
		},
		{
			name: "success: intraday timestamps keep the time",
			url:  "/candles/BTCUSDT?interval=1min",
			mockGetCandles: func(ctx context.Context, q usecase.CandleQuery) ([]entity.Candle, error) {
				return []entity.Candle{{Interval: "1min", Time: testTime.Add(90 * time.Second), Close: 1}}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[{"time":"2023-01-01T00:01:30Z","open":0,"high":0,"low":0,"close":1,"volume":0}]`,
		},
		{
			name: "error: unknown symbol is 404",
			url:  "/candles/NOPE",
			mockGetCandles: func(ctx context.Context, q usecase.CandleQuery) ([]entity.Candle, error) {
				return nil, fmt.Errorf("resolve %q: %w", q.Ticker, domain.ErrSymbolNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"resolve \"NOPE\": symbol not found"}`,
		},
		{
			name: "error: upstream failure is 502",
			url:  "/candles/BTCUSDT",
			mockGetCandles: func(ctx context.Context, q usecase.CandleQuery) ([]entity.Candle, error) {
				return nil, errors.New("internal server error")
			},
			expectedStatus: http.StatusBadGateway,
			expectedBody:   `{"error":"internal server error"}`,
		},
		{
			name: "error: invalid outputsize is rejected at binding",
			url:  "/candles/BTCUSDT?outputsize=invalid",
			mockGetCandles: func(ctx context.Context, q usecase.CandleQuery) ([]entity.Candle, error) {
				t.Error("usecase should not be called")
				return nil, nil
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handler.NewCandlesHandler(&mockCandlesUsecase{GetCandlesFunc: tt.mockGetCandles})

			router := gin.New()
			api.RegisterHandlersWithOptions(router, candlesOnly{h: h}, api.GinServerOptions{ErrorHandler: apierror.BadRequest})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
			}
		})
	}
}

func TestFormatTime(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, 5, 6, 7, 8, 9, 0, time.FixedZone("JST", 9*3600))
	assert.Equal(t, "2024-05-05T22:08:09Z", handler.FormatTime(ts, "1h"))
	assert.Equal(t, "2024-05-05", handler.FormatTime(ts, "1day"))
	assert.Equal(t, "2024-05-05", handler.FormatTime(ts, ""))
}
