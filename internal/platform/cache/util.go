package cache

import (
	"time"

	"crypto_dashboard/internal/feature/candles/domain/entity"
)

// TimeUntilNextUTCMidnight は次のUTC 0時までの期間を返します。
// 日足はUTC 0時で確定するため、確定済みの期間のキャッシュはそこまで有効です。
func TimeUntilNextUTCMidnight(now time.Time) time.Duration {
	now = now.UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).Add(24 * time.Hour)
	return next.Sub(now)
}

// TTLFor はクエリに応じたキャッシュ期間を返します。
//   - 足の長さが base より短い場合は足の長さ（1分足なら1分）
//   - 終了日が今日より前（確定済みの過去データ）なら次のUTC 0時まで
//   - それ以外は base
func TTLFor(interval string, end time.Time, base time.Duration, now time.Time) time.Duration {
	if d, ok := entity.IntervalDuration(interval); ok && d < base {
		return d
	}
	today := now.UTC().Truncate(24 * time.Hour)
	if !end.IsZero() && end.Before(today) {
		if ttl := TimeUntilNextUTCMidnight(now); ttl > base {
			return ttl
		}
	}
	return base
}
