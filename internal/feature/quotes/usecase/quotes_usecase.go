// Package usecase はクォート（直近価格と前足比）のビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"crypto_dashboard/internal/feature/candles/domain"
	candleentity "crypto_dashboard/internal/feature/candles/domain/entity"
	candles "crypto_dashboard/internal/feature/candles/usecase"
	"crypto_dashboard/internal/feature/quotes/domain/entity"
)

// SeriesGetter は解決済みのローソク足系列を返します。
type SeriesGetter interface {
	GetSeries(ctx context.Context, q candles.CandleQuery) (candleentity.Series, error)
}

// QuotesUsecase computes quotes from the last day of one-minute bars.
type QuotesUsecase struct {
	candles SeriesGetter
	now     func() time.Time
}

// NewQuotesUsecase はQuotesUsecaseの新しいインスタンスを生成します。
func NewQuotesUsecase(c SeriesGetter) *QuotesUsecase {
	return &QuotesUsecase{candles: c, now: time.Now}
}

var hundred = decimal.NewFromInt(100)

// GetQuote は最終足の終値と、その一つ前の足との差分を返します。
// 足が2本未満の場合は domain.ErrInsufficientData を返します。
func (u *QuotesUsecase) GetQuote(ctx context.Context, ticker, source string) (entity.Quote, error) {
	s, err := u.candles.GetSeries(ctx, candles.LastDayMinutes(ticker, source, u.now()))
	if err != nil {
		return entity.Quote{}, err
	}
	n := len(s.Candles)
	if n < 2 {
		return entity.Quote{}, fmt.Errorf("quote %s: %d bars: %w", ticker, n, domain.ErrInsufficientData)
	}

	last, prev := s.Candles[n-1], s.Candles[n-2]
	price := decimal.NewFromFloat(last.Close)
	previous := decimal.NewFromFloat(prev.Close)
	delta := price.Sub(previous)

	pct := decimal.Zero
	if !previous.IsZero() {
		pct = delta.Div(previous).Mul(hundred).Round(4)
	}

	return entity.Quote{
		Ticker:         s.Ticker,
		ProviderSymbol: s.ProviderSymbol,
		Source:         s.Source,
		Price:          price,
		PreviousClose:  previous,
		Delta:          delta,
		DeltaPercent:   pct,
		AsOf:           last.Time,
	}, nil
}
