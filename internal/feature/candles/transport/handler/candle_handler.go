// Package handler はcandlesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"crypto_dashboard/internal/api"
	"crypto_dashboard/internal/feature/candles/domain/entity"
	"crypto_dashboard/internal/feature/candles/usecase"
	"crypto_dashboard/internal/shared/apierror"
)

// CandlesUsecase はローソク足データ操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type CandlesUsecase interface {
	GetCandles(ctx context.Context, q usecase.CandleQuery) ([]entity.Candle, error)
}

// CandlesHandler はローソク足データのHTTPリクエストを処理します。
type CandlesHandler struct {
	uc CandlesUsecase
}

// NewCandlesHandler は指定されたusecaseでCandlesHandlerの新しいインスタンスを生成します。
func NewCandlesHandler(uc CandlesUsecase) *CandlesHandler {
	return &CandlesHandler{uc: uc}
}

// GetCandles は銘柄コードと時間間隔を受け取り、ローソク足データを古い順のJSONで返します。
//
// エンドポイント例:
// GET /candles/BTCUSDT?interval=1day&outputsize=200&source=yahoo
func (h *CandlesHandler) GetCandles(c *gin.Context, ticker api.Ticker, params api.GetCandlesParams) {
	q := usecase.CandleQuery{
		Ticker: ticker,
		Start:  DateOrZero(params.Start),
		End:    DateOrZero(params.End),
	}
	if params.Interval != nil {
		q.Interval = *params.Interval
	}
	if params.Outputsize != nil {
		q.OutputSize = *params.Outputsize
	}
	if params.Source != nil {
		q.Source = *params.Source
	}

	candles, err := h.uc.GetCandles(c.Request.Context(), q)
	if err != nil {
		apierror.Respond(c, err)
		return
	}

	// データをフォーマット
	out := make([]api.CandleResponse, 0, len(candles))
	for _, x := range candles {
		out = append(out, api.CandleResponse{
			Time:   FormatTime(x.Time, x.Interval),
			Open:   x.Open,
			High:   x.High,
			Low:    x.Low,
			Close:  x.Close,
			Volume: x.Volume,
		})
	}

	c.JSON(http.StatusOK, out)
}

// DateOrZero converts an optional OpenAPI date into a UTC midnight.
func DateOrZero(d *openapi_types.Date) time.Time {
	if d == nil {
		return time.Time{}
	}
	t := d.Time
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatTime は日足以上なら日付のみ、日中足ならRFC3339で返します。
func FormatTime(t time.Time, interval string) string {
	if d, ok := entity.IntervalDuration(interval); ok && d < 24*time.Hour {
		return t.UTC().Format(time.RFC3339)
	}
	return t.UTC().Format("2006-01-02")
}
