// Package usecase はローソク足データ取得のビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"crypto_dashboard/internal/feature/candles/domain"
	"crypto_dashboard/internal/feature/candles/domain/entity"
	symbolentity "crypto_dashboard/internal/feature/symbols/domain/entity"
)

const (
	// DefaultInterval はローソク足クエリのデフォルト時間間隔です。
	DefaultInterval = entity.Interval1Day
	// DefaultOutputSize はデフォルトのローソク足返却件数です。
	DefaultOutputSize = 200
	// MaxOutputSize はローソク足の最大返却件数です。
	MaxOutputSize = 5000
)

// CandleSource は外部の価格データ提供元を抽象化します。
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type CandleSource interface {
	GetTimeSeries(ctx context.Context, q entity.SeriesQuery) ([]entity.Candle, error)
}

// SymbolResolver はティッカーまたはプロバイダコードから銘柄を引きます。
type SymbolResolver interface {
	Resolve(ctx context.Context, code string) (symbolentity.Symbol, error)
}

// CandleQuery は GetCandles / GetSeries の入力です。ゼロ値の項目はデフォルトを使います。
type CandleQuery struct {
	Ticker     string
	Interval   string
	Start      time.Time
	End        time.Time
	OutputSize int
	Source     string
}

// CandlesUsecase はローソク足データ取得のユースケースです。
type CandlesUsecase struct {
	symbols       SymbolResolver
	sources       map[string]CandleSource
	defaultSource string
}

// NewCandlesUsecase はCandlesUsecaseの新しいインスタンスを生成します。
// defaultSource は sources のキーのいずれかである必要があります。
func NewCandlesUsecase(symbols SymbolResolver, sources map[string]CandleSource, defaultSource string) *CandlesUsecase {
	return &CandlesUsecase{symbols: symbols, sources: sources, defaultSource: defaultSource}
}

// DefaultSource returns the source used when a query names none.
func (cu *CandlesUsecase) DefaultSource() string { return cu.defaultSource }

// Sources returns the configured source names in alphabetical order.
func (cu *CandlesUsecase) Sources() []string {
	out := make([]string, 0, len(cu.sources))
	for name := range cu.sources {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// GetCandles は指定された銘柄のローソク足を古い順で返します。
func (cu *CandlesUsecase) GetCandles(ctx context.Context, q CandleQuery) ([]entity.Candle, error) {
	s, err := cu.GetSeries(ctx, q)
	if err != nil {
		return nil, err
	}
	return s.Candles, nil
}

// GetSeries resolves the ticker, fetches from the selected source and returns
// the series sorted ascending with non-finite closes removed.
func (cu *CandlesUsecase) GetSeries(ctx context.Context, q CandleQuery) (entity.Series, error) {
	q, err := cu.normalize(q)
	if err != nil {
		return entity.Series{}, err
	}

	src, ok := cu.sources[q.Source]
	if !ok {
		return entity.Series{}, fmt.Errorf("%q: %w", q.Source, domain.ErrUnknownSource)
	}

	sym, err := cu.symbols.Resolve(ctx, q.Ticker)
	if err != nil {
		return entity.Series{}, fmt.Errorf("resolve %q: %w", q.Ticker, err)
	}
	code := sym.CodeFor(q.Source)

	cs, err := src.GetTimeSeries(ctx, entity.SeriesQuery{
		Symbol:     code,
		Interval:   q.Interval,
		Start:      q.Start,
		End:        q.End,
		OutputSize: q.OutputSize,
	})
	if err != nil {
		return entity.Series{}, fmt.Errorf("fetch %s from %s: %w", code, q.Source, err)
	}

	// 取得したデータに銘柄コードと時間足を設定
	for i := range cs {
		cs[i].Symbol = code
		cs[i].Interval = q.Interval
	}
	cs = entity.DropInvalid(cs)
	entity.SortAscending(cs)

	return entity.Series{
		Ticker:         sym.Ticker,
		ProviderSymbol: code,
		Source:         q.Source,
		Interval:       q.Interval,
		Candles:        cs,
	}, nil
}

func (cu *CandlesUsecase) normalize(q CandleQuery) (CandleQuery, error) {
	if q.Interval == "" {
		q.Interval = DefaultInterval
	}
	if !entity.IsValidInterval(q.Interval) {
		return q, fmt.Errorf("%q: %w", q.Interval, domain.ErrUnsupportedInterval)
	}
	if !q.Start.IsZero() && !q.End.IsZero() && !q.Start.Before(q.End) {
		return q, domain.ErrInvalidRange
	}
	switch {
	case q.OutputSize <= 0 && !q.Start.IsZero():
		// 期間指定時は期間で絞る
		q.OutputSize = MaxOutputSize
	case q.OutputSize <= 0 || q.OutputSize > MaxOutputSize:
		q.OutputSize = DefaultOutputSize
	}
	if q.Source == "" {
		q.Source = cu.defaultSource
	}
	return q, nil
}
