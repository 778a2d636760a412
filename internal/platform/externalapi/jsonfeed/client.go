package jsonfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"crypto_dashboard/internal/feature/candles/domain"
	"crypto_dashboard/internal/feature/candles/domain/entity"
	"crypto_dashboard/internal/feature/candles/usecase"
	"crypto_dashboard/internal/platform/externalapi"
)

// Document is the body of one feed file.
type Document struct {
	Symbol   string `json:"symbol"`
	Interval string `json:"interval"`
	Candles  []Row  `json:"candles"`
}

// Row is one candle; T is a unix timestamp in seconds.
type Row struct {
	T int64   `json:"t"`
	O float64 `json:"o"`
	H float64 `json:"h"`
	L float64 `json:"l"`
	C float64 `json:"c"`
	V float64 `json:"v"`
}

// FeedClient implements CandleSource for the static feed.
type FeedClient struct {
	cfg    Config
	client *http.Client
}

var _ usecase.CandleSource = (*FeedClient)(nil)

// NewFeedClient creates a FeedClient.
func NewFeedClient(cfg Config, client *http.Client) *FeedClient {
	return &FeedClient{cfg: cfg, client: client}
}

// GetTimeSeries downloads the whole file for (symbol, interval) and filters it
// to [q.Start, q.End], keeping the last q.OutputSize rows.
func (f *FeedClient) GetTimeSeries(ctx context.Context, q entity.SeriesQuery) ([]entity.Candle, error) {
	if !entity.IsValidInterval(q.Interval) {
		return nil, fmt.Errorf("jsonfeed %q: %w", q.Interval, domain.ErrUnsupportedInterval)
	}

	u := fmt.Sprintf("%s/%s/%s.json", strings.TrimRight(f.cfg.BaseURL, "/"), url.PathEscape(q.Symbol), q.Interval)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("jsonfeed fetch: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			zap.S().Warnw("failed to close response body", "source", entity.SourceJSONFeed, "error", err)
		}
	}()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, externalapi.NewStatusError(entity.SourceJSONFeed, resp.StatusCode, body)
	}

	var doc Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("jsonfeed decode: %w", err)
	}

	out := make([]entity.Candle, 0, len(doc.Candles))
	for _, r := range doc.Candles {
		tm := time.Unix(r.T, 0).UTC()
		if !q.Start.IsZero() && tm.Before(q.Start) {
			continue
		}
		if !q.End.IsZero() && !tm.Before(q.End) {
			continue
		}
		out = append(out, entity.Candle{
			Symbol:   q.Symbol,
			Interval: q.Interval,
			Time:     tm,
			Open:     r.O,
			High:     r.H,
			Low:      r.L,
			Close:    r.C,
			Volume:   r.V,
		})
	}

	entity.SortAscending(out)
	if q.OutputSize > 0 && len(out) > q.OutputSize {
		out = out[len(out)-q.OutputSize:]
	}
	return out, nil
}
