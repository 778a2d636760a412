package di

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"crypto_dashboard/internal/feature/candles/domain/entity"
	candlehandler "crypto_dashboard/internal/feature/candles/transport/handler"
	candleusecase "crypto_dashboard/internal/feature/candles/usecase"
	chartshandler "crypto_dashboard/internal/feature/charts/transport/handler"
	chartsusecase "crypto_dashboard/internal/feature/charts/usecase"
	dashboardhandler "crypto_dashboard/internal/feature/dashboard/transport/handler"
	forecasthandler "crypto_dashboard/internal/feature/forecast/transport/handler"
	forecastusecase "crypto_dashboard/internal/feature/forecast/usecase"
	insighthandler "crypto_dashboard/internal/feature/insight/transport/handler"
	insightusecase "crypto_dashboard/internal/feature/insight/usecase"
	quoteshandler "crypto_dashboard/internal/feature/quotes/transport/handler"
	quotesusecase "crypto_dashboard/internal/feature/quotes/usecase"
	symboladapters "crypto_dashboard/internal/feature/symbols/adapters"
	"crypto_dashboard/internal/feature/symbols/seed"
	symbolhandler "crypto_dashboard/internal/feature/symbols/transport/handler"
	symbolusecase "crypto_dashboard/internal/feature/symbols/usecase"
	"crypto_dashboard/internal/platform/config"
	platformdb "crypto_dashboard/internal/platform/db"
	"crypto_dashboard/internal/shared/ratelimiter"
)

// Usecases holds the application's usecases.
type Usecases struct {
	Sources  map[string]candleusecase.CandleSource
	Symbols  *symbolusecase.SymbolUsecase
	Candles  *candleusecase.CandlesUsecase
	Quotes   *quotesusecase.QuotesUsecase
	Charts   *chartsusecase.ChartsUsecase
	Forecast *forecastusecase.ForecastUsecase
	Insight  *insightusecase.InsightUsecase
	Warm     *candleusecase.WarmUsecase
}

// NewUsecases wires repositories, sources and usecases.
func NewUsecases(ctx context.Context, cfg *config.AppConfig, db *gorm.DB, rdb *redis.Client) *Usecases {
	symbolUC := symbolusecase.NewSymbolUsecase(symboladapters.NewSymbolRepository(db))
	sources := NewSources(cfg, rdb)
	candlesUC := candleusecase.NewCandlesUsecase(symbolUC, sources, cfg.DataSource)
	quotesUC := quotesusecase.NewQuotesUsecase(candlesUC)
	forecastUC := forecastusecase.NewForecastUsecase(candlesUC)

	return &Usecases{
		Sources:  sources,
		Symbols:  symbolUC,
		Candles:  candlesUC,
		Quotes:   quotesUC,
		Charts:   chartsusecase.NewChartsUsecase(candlesUC),
		Forecast: forecastUC,
		Insight:  insightusecase.NewInsightUsecase(quotesUC, forecastUC, NewAnalyzer(ctx, cfg.Gemini)),
		Warm:     candleusecase.NewWarmUsecase(candlesUC, "", ratelimiter.NewRateLimiter(cfg.WarmRequestsPerMin, time.Minute)),
	}
}

// Handlers holds the HTTP handlers of every feature.
type Handlers struct {
	Candles   *candlehandler.CandlesHandler
	Charts    *chartshandler.ChartsHandler
	Forecast  *forecasthandler.ForecastHandler
	Insight   *insighthandler.InsightHandler
	Quotes    *quoteshandler.QuotesHandler
	Symbols   *symbolhandler.SymbolHandler
	Dashboard *dashboardhandler.DashboardHandler
}

// NewHandlers creates the handlers for uc.
func NewHandlers(cfg *config.AppConfig, uc *Usecases) Handlers {
	return Handlers{
		Candles:   candlehandler.NewCandlesHandler(uc.Candles),
		Charts:    chartshandler.NewChartsHandler(uc.Charts),
		Forecast:  forecasthandler.NewForecastHandler(uc.Forecast),
		Insight:   insighthandler.NewInsightHandler(uc.Insight),
		Quotes:    quoteshandler.NewQuotesHandler(uc.Quotes, cfg.QuoteStreamInterval),
		Symbols:   symbolhandler.NewSymbolHandler(uc.Symbols),
		Dashboard: dashboardhandler.NewDashboardHandler(uc.Symbols, cfg.DataSource, cfg.Gemini.Enabled()),
	}
}

// WarmCache fetches the dashboard's series of every active ticker through
// the cache. Used by the cron job and cmd/warm.
func (u *Usecases) WarmCache(ctx context.Context) error {
	tickers, err := u.Symbols.ListActiveTickers(ctx)
	if err != nil {
		return fmt.Errorf("list tickers: %w", err)
	}
	_, err = u.Warm.WarmAll(ctx, tickers)
	return err
}

// cacheInvalidator is implemented by the Redis-backed sources.
type cacheInvalidator interface {
	Invalidate(ctx context.Context, symbol, interval string) error
}

// InvalidateCache drops the cached dashboard series (daily and minute bars)
// of every active symbol in every cached source.
func (u *Usecases) InvalidateCache(ctx context.Context) error {
	symbols, err := u.Symbols.ListActiveSymbols(ctx)
	if err != nil {
		return fmt.Errorf("list symbols: %w", err)
	}
	for name, src := range u.Sources {
		inv, ok := src.(cacheInvalidator)
		if !ok {
			continue
		}
		for _, sym := range symbols {
			for _, interval := range []string{entity.Interval1Day, entity.Interval1Min} {
				if err := inv.Invalidate(ctx, sym.CodeFor(name), interval); err != nil {
					return fmt.Errorf("invalidate %s %s on %s: %w", sym.Ticker, interval, name, err)
				}
			}
		}
	}
	return nil
}

// SeedSymbols migrates the schema and upserts the symbol table from path
// (embedded default when empty). It returns the number of rows.
func SeedSymbols(ctx context.Context, gdb *gorm.DB, uc *symbolusecase.SymbolUsecase, path string) (int, error) {
	if err := platformdb.Migrate(gdb); err != nil {
		return 0, err
	}
	symbols, err := seed.Load(path)
	if err != nil {
		return 0, err
	}
	if err := uc.Seed(ctx, symbols); err != nil {
		return 0, err
	}
	return len(symbols), nil
}
