// Package usecase はinsightフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"strings"

	"crypto_dashboard/internal/feature/candles/domain"
	forecastentity "crypto_dashboard/internal/feature/forecast/domain/entity"
	forecast "crypto_dashboard/internal/feature/forecast/usecase"
	"crypto_dashboard/internal/feature/insight/domain/entity"
	quoteentity "crypto_dashboard/internal/feature/quotes/domain/entity"
)

const (
	// OutlookDays は解説に含める予測日数です。
	OutlookDays = 30

	// PromptTemplate は解説生成のプロンプトテンプレートです。
	PromptTemplate = "You are a crypto market analyst. In at most five sentences, describe the situation of %s.\n" +
		"Latest price: %s USD (change vs previous bar: %s USD, %s%%).\n" +
		"A trend and seasonality model forecasts %.2f USD on %s, with an 80%% interval of %.2f to %.2f USD.\n" +
		"Mention the uncertainty and do not give investment advice."
)

// Analyzer は解説文を生成するインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type Analyzer interface {
	Analyze(ctx context.Context, prompt string) (string, error)
}

// QuoteGetter returns the latest quote of a ticker.
type QuoteGetter interface {
	GetQuote(ctx context.Context, ticker, source string) (quoteentity.Quote, error)
}

// Forecaster runs the forecast model.
type Forecaster interface {
	Forecast(ctx context.Context, q forecast.ForecastQuery) (forecastentity.Forecast, error)
}

// InsightUsecase combines a quote and a 30-day forecast into an LLM prompt.
type InsightUsecase struct {
	quotes    QuoteGetter
	forecasts Forecaster
	analyzer  Analyzer
}

// NewInsightUsecase はInsightUsecaseの新しいインスタンスを生成します。
// analyzer が nil の場合、Generate は domain.ErrFeatureDisabled を返します。
func NewInsightUsecase(q QuoteGetter, f Forecaster, a Analyzer) *InsightUsecase {
	return &InsightUsecase{quotes: q, forecasts: f, analyzer: a}
}

// Generate builds the prompt for ticker and returns the analyzer's summary.
func (u *InsightUsecase) Generate(ctx context.Context, ticker, source string) (entity.Insight, error) {
	if u.analyzer == nil {
		return entity.Insight{}, domain.ErrFeatureDisabled
	}

	q, err := u.quotes.GetQuote(ctx, ticker, source)
	if err != nil {
		return entity.Insight{}, err
	}
	f, err := u.forecasts.Forecast(ctx, forecast.ForecastQuery{
		Ticker:  ticker,
		Horizon: forecastentity.HorizonDays,
		Periods: OutlookDays,
		Source:  source,
	})
	if err != nil {
		return entity.Insight{}, err
	}
	if len(f.Points) == 0 {
		return entity.Insight{}, fmt.Errorf("insight %s: empty forecast: %w", ticker, domain.ErrInsufficientData)
	}

	summary, err := u.analyzer.Analyze(ctx, BuildPrompt(q, f.Points[len(f.Points)-1]))
	if err != nil {
		return entity.Insight{}, fmt.Errorf("analyzer failed for %q: %w", ticker, err)
	}
	return entity.Insight{Ticker: q.Ticker, Summary: strings.TrimSpace(summary)}, nil
}

// BuildPrompt renders PromptTemplate for a quote and the last forecast point.
func BuildPrompt(q quoteentity.Quote, last forecastentity.Point) string {
	return fmt.Sprintf(PromptTemplate,
		q.Ticker,
		q.Price.StringFixed(2),
		q.Delta.StringFixed(2),
		q.DeltaPercent.StringFixed(2),
		last.Yhat,
		last.Ds.Format("2006-01-02"),
		last.YhatLower,
		last.YhatUpper,
	)
}
