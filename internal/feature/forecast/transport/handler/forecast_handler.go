// Package handler はforecastフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"crypto_dashboard/internal/api"
	candlehandler "crypto_dashboard/internal/feature/candles/transport/handler"
	"crypto_dashboard/internal/feature/forecast/domain/entity"
	"crypto_dashboard/internal/feature/forecast/usecase"
	"crypto_dashboard/internal/shared/apierror"
)

// ForecastUsecase は価格予測のユースケースインターフェースです。
type ForecastUsecase interface {
	Forecast(ctx context.Context, q usecase.ForecastQuery) (entity.Forecast, error)
}

// ForecastHandler は予測のHTTPリクエストを処理します。
type ForecastHandler struct {
	uc ForecastUsecase
}

// NewForecastHandler は新しい ForecastHandler を作成します。
func NewForecastHandler(uc ForecastUsecase) *ForecastHandler {
	return &ForecastHandler{uc: uc}
}

// GetForecast は学習に使った履歴と、予測値・予測区間・成分を返します。
//
// エンドポイント例:
// GET /forecasts/BTCUSDT?horizon=years&periods=2&start=2016-01-01&end=2025-03-10
func (h *ForecastHandler) GetForecast(c *gin.Context, ticker api.Ticker, params api.GetForecastParams) {
	q := usecase.ForecastQuery{
		Ticker: ticker,
		Start:  candlehandler.DateOrZero(params.Start),
		End:    candlehandler.DateOrZero(params.End),
	}
	if params.Horizon != nil {
		q.Horizon = string(*params.Horizon)
	}
	if params.Periods != nil {
		q.Periods = *params.Periods
	}
	if params.Source != nil {
		q.Source = *params.Source
	}

	f, err := h.uc.Forecast(c.Request.Context(), q)
	if err != nil {
		apierror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, ToResponse(f))
}

// ToResponse converts a forecast to its JSON shape.
func ToResponse(f entity.Forecast) api.ForecastResponse {
	out := api.ForecastResponse{
		Ticker:         f.Ticker,
		ProviderSymbol: f.ProviderSymbol,
		Horizon:        f.Horizon,
		Periods:        f.Periods,
		History:        make([]api.HistoryPoint, len(f.History)),
		Forecast:       make([]api.ForecastPoint, len(f.Points)),
	}
	for i, o := range f.History {
		out.History[i] = api.HistoryPoint{Ds: o.Ds.Format("2006-01-02"), Y: o.Y}
	}
	for i, p := range f.Points {
		out.Forecast[i] = api.ForecastPoint{
			Ds:        p.Ds.Format("2006-01-02"),
			Yhat:      p.Yhat,
			YhatLower: p.YhatLower,
			YhatUpper: p.YhatUpper,
			Trend:     p.Trend,
			Yearly:    p.Yearly,
			Weekly:    p.Weekly,
		}
	}
	return out
}
