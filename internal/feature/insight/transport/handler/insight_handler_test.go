package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"crypto_dashboard/internal/api"
	"crypto_dashboard/internal/feature/candles/domain"
	"crypto_dashboard/internal/feature/insight/domain/entity"
)

type mockInsightUsecase struct {
	GenerateFunc func(ctx context.Context, ticker, source string) (entity.Insight, error)
}

func (m *mockInsightUsecase) Generate(ctx context.Context, ticker, source string) (entity.Insight, error) {
	return m.GenerateFunc(ctx, ticker, source)
}

func TestInsightHandler_GetInsight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	src := "twelvedata"

	tests := []struct {
		name           string
		params         api.GetInsightParams
		mockFunc       func(ctx context.Context, ticker, source string) (entity.Insight, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "success",
			params: api.GetInsightParams{Source: &src},
			mockFunc: func(ctx context.Context, ticker, source string) (entity.Insight, error) {
				if source != "twelvedata" {
					t.Errorf("source = %q, want twelvedata", source)
				}
				return entity.Insight{Ticker: ticker, Summary: "steady"}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"summary":"steady","ticker":"BTCUSDT"}`,
		},
		{
			name: "disabled",
			mockFunc: func(ctx context.Context, ticker, source string) (entity.Insight, error) {
				return entity.Insight{}, domain.ErrFeatureDisabled
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   `{"error":"feature disabled"}`,
		},
		{
			name: "analyzer failure",
			mockFunc: func(ctx context.Context, ticker, source string) (entity.Insight, error) {
				return entity.Insight{}, errors.New("gemini API request failed")
			},
			expectedStatus: http.StatusBadGateway,
			expectedBody:   `{"error":"gemini API request failed"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewInsightHandler(&mockInsightUsecase{GenerateFunc: tt.mockFunc})

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/insights/BTCUSDT", nil)

			h.GetInsight(c, "BTCUSDT", tt.params)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if w.Body.String() != tt.expectedBody {
				t.Errorf("expected body %s, got %s", tt.expectedBody, w.Body.String())
			}
		})
	}
}
