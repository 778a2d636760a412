// Package usecase はチャート（面グラフ / ライン / 対数 / BB+EMA）の組み立てを実装します。
package usecase

import (
	"context"
	"fmt"
	"time"

	"crypto_dashboard/internal/feature/candles/domain"
	candleentity "crypto_dashboard/internal/feature/candles/domain/entity"
	candles "crypto_dashboard/internal/feature/candles/usecase"
	"crypto_dashboard/internal/feature/charts/domain/entity"
	"crypto_dashboard/internal/feature/charts/indicator"
)

const (
	// TableRows は価格テーブルに表示する直近の行数です。
	TableRows = 5

	bollingerPeriod = 20
	bollingerWidth  = 2.0
)

// emaPeriods are the EMA overlays of the bb_ema chart.
var emaPeriods = []int{12, 26, 200}

// SeriesGetter は解決済みのローソク足系列を返します。
type SeriesGetter interface {
	GetSeries(ctx context.Context, q candles.CandleQuery) (candleentity.Series, error)
}

// ChartsUsecase builds chart descriptions from two years of daily candles.
type ChartsUsecase struct {
	candles SeriesGetter
	now     func() time.Time
}

// NewChartsUsecase はChartsUsecaseの新しいインスタンスを生成します。
func NewChartsUsecase(c SeriesGetter) *ChartsUsecase {
	return &ChartsUsecase{candles: c, now: time.Now}
}

// NormalizeKinds validates kinds and removes duplicates, keeping request
// order. An empty selection becomes the area chart.
func NormalizeKinds(kinds []string) ([]string, error) {
	if len(kinds) == 0 {
		return []string{entity.KindArea}, nil
	}
	seen := make(map[string]bool, len(kinds))
	out := make([]string, 0, len(kinds))
	for _, k := range kinds {
		switch k {
		case entity.KindRaw, entity.KindLog, entity.KindBBEMA:
		default:
			return nil, fmt.Errorf("%q: %w", k, domain.ErrUnknownChartKind)
		}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out, nil
}

// BuildCharts は選択されたチャートと直近5行の価格テーブルを返します。
func (u *ChartsUsecase) BuildCharts(ctx context.Context, ticker string, kinds []string, source string) (entity.Charts, error) {
	kinds, err := NormalizeKinds(kinds)
	if err != nil {
		return entity.Charts{}, err
	}

	s, err := u.candles.GetSeries(ctx, candles.RecentDaily(ticker, source, u.now()))
	if err != nil {
		return entity.Charts{}, err
	}
	if len(s.Candles) == 0 {
		return entity.Charts{}, fmt.Errorf("charts %s: no daily bars: %w", ticker, domain.ErrInsufficientData)
	}

	out := entity.Charts{
		Ticker:  s.Ticker,
		Table:   priceTable(s.Candles, TableRows),
		Figures: make([]entity.Figure, 0, len(kinds)),
	}
	for _, k := range kinds {
		out.Figures = append(out.Figures, buildFigure(k, s.Ticker, s.Candles))
	}
	return out, nil
}

func priceTable(cs []candleentity.Candle, n int) []entity.PriceRow {
	if len(cs) > n {
		cs = cs[len(cs)-n:]
	}
	rows := make([]entity.PriceRow, len(cs))
	for i, c := range cs {
		rows[i] = entity.PriceRow{Date: c.Time, Open: c.Open, High: c.High, Low: c.Low, Close: c.Close, Volume: c.Volume}
	}
	return rows
}

func times(cs []candleentity.Candle) []time.Time {
	out := make([]time.Time, len(cs))
	for i, c := range cs {
		out[i] = c.Time
	}
	return out
}

func buildFigure(kind, ticker string, cs []candleentity.Candle) entity.Figure {
	x := times(cs)
	closes := candleentity.Closes(cs)

	switch kind {
	case entity.KindRaw, entity.KindLog:
		f := entity.Figure{
			Kind:        kind,
			Title:       ticker + " Close Price",
			YAxisType:   entity.AxisLinear,
			RangeSlider: true,
			Traces:      []entity.Trace{{Name: "Close", Type: entity.TraceLine, Axis: "y", X: x, Y: closes}},
		}
		if kind == entity.KindLog {
			f.Title = ticker + " Close Price (log scale)"
			f.YAxisType = entity.AxisLog
		}
		return f

	case entity.KindBBEMA:
		return bbEMAFigure(ticker, x, cs, closes)

	default:
		return entity.Figure{
			Kind:      entity.KindArea,
			Title:     ticker + " Price Area Chart",
			YAxisType: entity.AxisLinear,
			Traces:    []entity.Trace{{Name: "Close", Type: entity.TraceArea, Axis: "y", X: x, Y: closes}},
		}
	}
}

func bbEMAFigure(ticker string, x []time.Time, cs []candleentity.Candle, closes []float64) entity.Figure {
	n := len(cs)
	open, high, low, vol := make([]float64, n), make([]float64, n), make([]float64, n), make([]float64, n)
	for i, c := range cs {
		open[i], high[i], low[i], vol[i] = c.Open, c.High, c.Low, c.Volume
	}

	traces := []entity.Trace{
		{Name: ticker, Type: entity.TraceCandlestick, Axis: "y", X: x, Open: open, High: high, Low: low, Close: closes},
	}

	bands := indicator.Bollinger(closes, bollingerPeriod, bollingerWidth)
	label := fmt.Sprintf("BOLL(%d,%g)", bollingerPeriod, bollingerWidth)
	traces = append(traces,
		entity.Trace{Name: label + " upper", Type: entity.TraceLine, Axis: "y", X: x, Y: bands.Upper},
		entity.Trace{Name: label + " middle", Type: entity.TraceLine, Axis: "y", X: x, Y: bands.Middle},
		entity.Trace{Name: label + " lower", Type: entity.TraceLine, Axis: "y", X: x, Y: bands.Lower},
	)
	for _, p := range emaPeriods {
		traces = append(traces, entity.Trace{
			Name: fmt.Sprintf("EMA(%d)", p), Type: entity.TraceLine, Axis: "y", X: x, Y: indicator.EMA(closes, p),
		})
	}
	traces = append(traces, entity.Trace{Name: "Volume", Type: entity.TraceBar, Axis: "y2", X: x, Y: vol})

	return entity.Figure{
		Kind:        entity.KindBBEMA,
		Title:       ticker + " Bollinger Bands & EMA",
		YAxisType:   entity.AxisLinear,
		RangeSlider: false,
		Traces:      traces,
	}
}
