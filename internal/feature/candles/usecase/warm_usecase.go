package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"crypto_dashboard/internal/feature/candles/domain/entity"
	"crypto_dashboard/internal/shared/ratelimiter"
)

// SeriesGetter はキャッシュ経由でシリーズを取得するインターフェイスです。
type SeriesGetter interface {
	GetSeries(ctx context.Context, q CandleQuery) (entity.Series, error)
}

// WarmUsecase は画面で使う時系列を事前に取得し、キャッシュを温めるユースケースです。
type WarmUsecase struct {
	candles     SeriesGetter
	source      string
	rateLimiter ratelimiter.RateLimiterInterface
	now         func() time.Time
}

// NewWarmUsecase は新しい WarmUsecase を作成します。source が空ならデフォルトのソースを使います。
func NewWarmUsecase(candles SeriesGetter, source string, rateLimiter ratelimiter.RateLimiterInterface) *WarmUsecase {
	return &WarmUsecase{candles: candles, source: source, rateLimiter: rateLimiter, now: time.Now}
}

// warmQueries は1銘柄あたりの取得対象（日足2年分）を返します。
// 1分足はキーが毎分変わり TTL も1分なので温めません。
func (wu *WarmUsecase) warmQueries(ticker string) []CandleQuery {
	return []CandleQuery{RecentDaily(ticker, wu.source, wu.now())}
}

// WarmAll は指定された全銘柄の時系列を取得します。APIのレートリミットを考慮して、
// リクエスト間に適切な待機時間を設けます。取得に成功した件数を返します。
func (wu *WarmUsecase) WarmAll(ctx context.Context, tickers []string) (int, error) {
	warmed := 0
	for _, t := range tickers {
		for _, q := range wu.warmQueries(t) {
			if err := ctx.Err(); err != nil {
				return warmed, err
			}
			if err := wu.rateLimiter.WaitIfNeeded(ctx); err != nil {
				return warmed, err
			}
			s, err := wu.candles.GetSeries(ctx, q)
			if err != nil {
				// 1つの銘柄でエラーが発生しても処理を止めずにログに出力し、次の処理を続ける
				zap.S().Errorw("failed to warm series", "ticker", t, "interval", q.Interval, "error", err)
				continue
			}
			warmed++
			zap.S().Debugw("warmed series", "ticker", t, "interval", q.Interval, "rows", len(s.Candles))
		}
	}
	zap.S().Infow("cache warm-up finished", "tickers", len(tickers), "warmed", warmed)
	return warmed, nil
}
