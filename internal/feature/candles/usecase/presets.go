package usecase

import (
	"time"

	"crypto_dashboard/internal/feature/candles/domain/entity"
)

// 画面ごとの取得ウィンドウ。キャッシュキーを揃えるため、ウォームアップも同じ関数を使う。

// RecentDaily is the two-year daily window behind the price table and charts.
// The start is aligned to a UTC day boundary.
func RecentDaily(ticker, source string, now time.Time) CandleQuery {
	today := now.UTC().Truncate(24 * time.Hour)
	return CandleQuery{
		Ticker:   ticker,
		Interval: entity.Interval1Day,
		Start:    today.AddDate(-2, 0, 0),
		Source:   source,
	}
}

// LastDayMinutes is the one-day, one-minute window behind the quote widget.
func LastDayMinutes(ticker, source string, now time.Time) CandleQuery {
	end := now.UTC().Truncate(time.Minute)
	return CandleQuery{
		Ticker:   ticker,
		Interval: entity.Interval1Min,
		Start:    end.Add(-24 * time.Hour),
		Source:   source,
	}
}
