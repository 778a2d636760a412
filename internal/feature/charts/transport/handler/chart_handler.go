// Package handler はchartsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"math"
	"net/http"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"

	"crypto_dashboard/internal/api"
	"crypto_dashboard/internal/feature/charts/domain/entity"
	"crypto_dashboard/internal/shared/apierror"
)

// ChartsUsecase はチャート組み立てのユースケースインターフェースです。
type ChartsUsecase interface {
	BuildCharts(ctx context.Context, ticker string, kinds []string, source string) (entity.Charts, error)
}

// ChartsHandler はチャートのHTTPリクエストを処理します。
type ChartsHandler struct {
	uc ChartsUsecase
}

// NewChartsHandler は新しい ChartsHandler を作成します。
func NewChartsHandler(uc ChartsUsecase) *ChartsHandler {
	return &ChartsHandler{uc: uc}
}

// GetCharts は選択されたチャートの描画データと価格テーブルを返します。
//
// エンドポイント例:
// GET /charts/BTCUSDT?kinds=log,raw,bb_ema&source=yahoo
func (h *ChartsHandler) GetCharts(c *gin.Context, ticker api.Ticker, params api.GetChartsParams) {
	var kinds []string
	if params.Kinds != nil {
		for _, k := range *params.Kinds {
			// "kinds=" や末尾のカンマは無視
			if s := strings.TrimSpace(string(k)); s != "" {
				kinds = append(kinds, s)
			}
		}
	}
	var source string
	if params.Source != nil {
		source = *params.Source
	}

	charts, err := h.uc.BuildCharts(c.Request.Context(), ticker, kinds, source)
	if err != nil {
		apierror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(charts))
}

// FormatUSD renders a price like "$1,234.56".
func FormatUSD(v float64) string {
	if v < 0 {
		return "-$" + humanize.FormatFloat("#,###.##", -v)
	}
	return "$" + humanize.FormatFloat("#,###.##", v)
}

func toResponse(ch entity.Charts) api.ChartsResponse {
	out := api.ChartsResponse{
		Ticker:  ch.Ticker,
		Table:   make([]api.PriceRow, 0, len(ch.Table)),
		Figures: make([]api.ChartFigure, 0, len(ch.Figures)),
	}
	for _, r := range ch.Table {
		out.Table = append(out.Table, api.PriceRow{
			Date:   r.Date.UTC().Format("2006-01-02"),
			Open:   FormatUSD(r.Open),
			High:   FormatUSD(r.High),
			Low:    FormatUSD(r.Low),
			Close:  FormatUSD(r.Close),
			Volume: humanize.FormatFloat("#,###.", r.Volume),
		})
	}
	for _, f := range ch.Figures {
		fig := api.ChartFigure{
			Kind:        f.Kind,
			Title:       f.Title,
			YAxisType:   api.ChartFigureYAxisType(f.YAxisType),
			RangeSlider: f.RangeSlider,
			Series:      make([]api.ChartSeries, 0, len(f.Traces)),
		}
		for _, tr := range f.Traces {
			fig.Series = append(fig.Series, toSeries(tr))
		}
		out.Figures = append(out.Figures, fig)
	}
	return out
}

func toSeries(tr entity.Trace) api.ChartSeries {
	x := make([]string, len(tr.X))
	for i, t := range tr.X {
		x[i] = t.UTC().Format("2006-01-02")
	}
	s := api.ChartSeries{
		Name: tr.Name,
		Type: api.ChartSeriesType(tr.Type),
		Axis: tr.Axis,
		X:    x,
	}
	if tr.Type == entity.TraceCandlestick {
		s.Open, s.High, s.Low, s.Close = &tr.Open, &tr.High, &tr.Low, &tr.Close
		return s
	}
	y := nullable(tr.Y)
	s.Y = &y
	return s
}

// nullable maps NaN (indicator warm-up) to JSON null.
func nullable(vs []float64) []*float64 {
	out := make([]*float64, len(vs))
	for i := range vs {
		if math.IsNaN(vs[i]) || math.IsInf(vs[i], 0) {
			continue
		}
		out[i] = &vs[i]
	}
	return out
}
