package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"

	"crypto_dashboard/internal/feature/candles/domain"
	"crypto_dashboard/internal/feature/candles/domain/entity"
	"crypto_dashboard/internal/feature/candles/usecase"
	"crypto_dashboard/internal/platform/externalapi"
)

// intervals maps canonical intervals to the chart API vocabulary.
var intervals = map[string]string{
	entity.Interval1Min:   "1m",
	entity.Interval5Min:   "5m",
	entity.Interval1Hour:  "60m",
	entity.Interval1Day:   "1d",
	entity.Interval1Week:  "1wk",
	entity.Interval1Month: "1mo",
}

// ranges are the fixed lookback windows accepted by the chart API, shortest first.
var ranges = []struct {
	name string
	span time.Duration
}{
	{"1d", 24 * time.Hour},
	{"5d", 5 * 24 * time.Hour},
	{"1mo", 31 * 24 * time.Hour},
	{"3mo", 92 * 24 * time.Hour},
	{"6mo", 183 * 24 * time.Hour},
	{"1y", 366 * 24 * time.Hour},
	{"2y", 731 * 24 * time.Hour},
	{"5y", 5 * 366 * 24 * time.Hour},
	{"10y", 10 * 366 * 24 * time.Hour},
}

// chartResponse is the subset of /v8/finance/chart used here.
// Quote arrays contain null for bars without trades.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol string `json:"symbol"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// ChartClient implements CandleSource on top of the Yahoo chart endpoint.
type ChartClient struct {
	cfg    Config
	client *http.Client
	now    func() time.Time
}

var _ usecase.CandleSource = (*ChartClient)(nil)

// NewChartClient creates a ChartClient.
func NewChartClient(cfg Config, client *http.Client) *ChartClient {
	return &ChartClient{cfg: cfg, client: client, now: time.Now}
}

// GetTimeSeries fetches bars for q. Without q.Start the smallest range covering
// OutputSize bars is requested; the result is trimmed to the last OutputSize bars.
func (y *ChartClient) GetTimeSeries(ctx context.Context, q entity.SeriesQuery) ([]entity.Candle, error) {
	iv, ok := intervals[q.Interval]
	if !ok {
		return nil, fmt.Errorf("yahoo %q: %w", q.Interval, domain.ErrUnsupportedInterval)
	}

	v := url.Values{}
	v.Set("interval", iv)
	v.Set("includePrePost", "false")
	if !q.Start.IsZero() {
		end := q.End
		if end.IsZero() {
			end = y.now()
		}
		v.Set("period1", strconv.FormatInt(q.Start.Unix(), 10))
		v.Set("period2", strconv.FormatInt(end.Unix(), 10))
	} else {
		v.Set("range", rangeFor(q.Interval, q.OutputSize))
	}

	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", y.cfg.BaseURL, url.PathEscape(q.Symbol), v.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", y.cfg.UserAgent)

	resp, err := y.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			zap.S().Warnw("failed to close response body", "source", entity.SourceYahoo, "error", err)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, externalapi.NewStatusError(entity.SourceYahoo, resp.StatusCode, body)
	}

	var chart chartResponse
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return []entity.Candle{}, nil
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	bars := make([]entity.Candle, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		c := at(quote.Close, i)
		if c == nil {
			continue // 取引のないバー
		}
		bars = append(bars, entity.Candle{
			Symbol:   q.Symbol,
			Interval: q.Interval,
			Time:     time.Unix(ts, 0).UTC(),
			Open:     valueOr(at(quote.Open, i), *c),
			High:     valueOr(at(quote.High, i), *c),
			Low:      valueOr(at(quote.Low, i), *c),
			Close:    *c,
			Volume:   valueOr(at(quote.Volume, i), 0),
		})
	}

	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	if q.OutputSize > 0 && len(bars) > q.OutputSize {
		bars = bars[len(bars)-q.OutputSize:]
	}
	return bars, nil
}

// rangeFor picks the shortest chart range that covers n bars of interval.
func rangeFor(interval string, n int) string {
	if n <= 0 {
		return "1y"
	}
	d, _ := entity.IntervalDuration(interval)
	want := time.Duration(n) * d
	for _, r := range ranges {
		if r.span >= want {
			return r.name
		}
	}
	return "max"
}

func at(xs []*float64, i int) *float64 {
	if i < len(xs) {
		return xs[i]
	}
	return nil
}

func valueOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}
