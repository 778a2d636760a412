// Package usecase は価格予測のビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"crypto_dashboard/internal/feature/candles/domain"
	candleentity "crypto_dashboard/internal/feature/candles/domain/entity"
	candles "crypto_dashboard/internal/feature/candles/usecase"
	"crypto_dashboard/internal/feature/forecast/domain/entity"
	"crypto_dashboard/internal/feature/forecast/model"
)

// スライダーの範囲
const (
	MinYears = 1
	MaxYears = 10
	MinDays  = 7
	MaxDays  = 90

	daysPerYear = 365
)

// DefaultStart is the first training day when the request names none.
var DefaultStart = time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC)

// SeriesGetter は解決済みのローソク足系列を返します。
type SeriesGetter interface {
	GetSeries(ctx context.Context, q candles.CandleQuery) (candleentity.Series, error)
}

// ForecastQuery is the input of Forecast. Zero values take defaults:
// years horizon, the slider minimum, DefaultStart and today.
type ForecastQuery struct {
	Ticker  string
	Horizon string
	Periods int // years or days, depending on Horizon
	Start   time.Time
	End     time.Time // exclusive
	Source  string
}

// ForecastUsecase fits the forecast model to daily closes.
type ForecastUsecase struct {
	candles SeriesGetter
	opts    model.Options
	now     func() time.Time
}

// NewForecastUsecase はForecastUsecaseの新しいインスタンスを生成します。
func NewForecastUsecase(c SeriesGetter) *ForecastUsecase {
	return &ForecastUsecase{candles: c, opts: model.DefaultOptions(), now: time.Now}
}

// HorizonDays converts a horizon selection into forecast days.
func HorizonDays(horizon string, periods int) (int, error) {
	switch horizon {
	case entity.HorizonYears:
		if periods < MinYears || periods > MaxYears {
			return 0, fmt.Errorf("years=%d not in [%d,%d]: %w", periods, MinYears, MaxYears, domain.ErrInvalidHorizon)
		}
		return periods * daysPerYear, nil
	case entity.HorizonDays:
		if periods < MinDays || periods > MaxDays {
			return 0, fmt.Errorf("days=%d not in [%d,%d]: %w", periods, MinDays, MaxDays, domain.ErrInvalidHorizon)
		}
		return periods, nil
	default:
		return 0, fmt.Errorf("horizon %q: %w", horizon, domain.ErrInvalidHorizon)
	}
}

func (u *ForecastUsecase) normalize(q ForecastQuery) (ForecastQuery, error) {
	if q.Horizon == "" {
		q.Horizon = entity.HorizonYears
	}
	if q.Periods == 0 {
		switch q.Horizon {
		case entity.HorizonYears:
			q.Periods = MinYears
		case entity.HorizonDays:
			q.Periods = MinDays
		}
	}
	if q.Start.IsZero() {
		q.Start = DefaultStart
	}
	if q.End.IsZero() {
		q.End = u.now().UTC().Truncate(24 * time.Hour)
	}
	if !q.Start.Before(q.End) {
		return q, fmt.Errorf("%s..%s: %w", q.Start.Format("2006-01-02"), q.End.Format("2006-01-02"), domain.ErrInvalidRange)
	}
	return q, nil
}

// Forecast は日足終値でモデルを学習し、履歴と予測期間の推定値を返します。
func (u *ForecastUsecase) Forecast(ctx context.Context, q ForecastQuery) (entity.Forecast, error) {
	q, err := u.normalize(q)
	if err != nil {
		return entity.Forecast{}, err
	}
	horizonDays, err := HorizonDays(q.Horizon, q.Periods)
	if err != nil {
		return entity.Forecast{}, err
	}

	s, err := u.candles.GetSeries(ctx, candles.CandleQuery{
		Ticker:     q.Ticker,
		Interval:   candleentity.Interval1Day,
		Start:      q.Start,
		End:        q.End,
		OutputSize: candles.MaxOutputSize,
		Source:     q.Source,
	})
	if err != nil {
		return entity.Forecast{}, err
	}

	history := trainingFrame(s.Candles)
	if len(history) < 2 {
		return entity.Forecast{}, fmt.Errorf("forecast %s: %d usable rows: %w", q.Ticker, len(history), domain.ErrInsufficientData)
	}

	ds := make([]time.Time, len(history))
	y := make([]float64, len(history))
	for i, o := range history {
		ds[i], y[i] = o.Ds, o.Y
	}

	started := time.Now()
	m, err := model.Fit(ds, y, u.opts)
	if err != nil {
		return entity.Forecast{}, fmt.Errorf("forecast %s: %w", q.Ticker, err)
	}
	points := m.Predict(horizonDays)

	zap.S().Debugw("forecast fitted",
		"ticker", s.Ticker,
		"rows", len(history),
		"horizon_days", horizonDays,
		"residual_sd", m.ResidualSD(),
		"elapsed", time.Since(started),
	)

	return entity.Forecast{
		Ticker:         s.Ticker,
		ProviderSymbol: s.ProviderSymbol,
		Horizon:        q.Horizon,
		Periods:        horizonDays,
		History:        history,
		Points:         points,
	}, nil
}

// trainingFrame keeps one positive, finite close per UTC day.
func trainingFrame(cs []candleentity.Candle) []entity.Observation {
	out := make([]entity.Observation, 0, len(cs))
	for _, c := range cs {
		if c.Close <= 0 || math.IsNaN(c.Close) || math.IsInf(c.Close, 0) {
			continue
		}
		d := c.Time.UTC().Truncate(24 * time.Hour)
		if n := len(out); n > 0 && out[n-1].Ds.Equal(d) {
			// 同じ日の足は後勝ち
			out[n-1].Y = c.Close
			continue
		}
		out = append(out, entity.Observation{Ds: d, Y: c.Close})
	}
	return out
}
