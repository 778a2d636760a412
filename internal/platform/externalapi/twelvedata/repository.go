package twelvedata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"crypto_dashboard/internal/feature/candles/domain"
	"crypto_dashboard/internal/feature/candles/domain/entity"
	"crypto_dashboard/internal/feature/candles/usecase"
	"crypto_dashboard/internal/platform/externalapi"
	"crypto_dashboard/internal/platform/externalapi/twelvedata/dto"
)

const dateTimeLayout = "2006-01-02 15:04:05"

// intervals は正規化された時間足から Twelve Data の interval 文字列への対応表です。
var intervals = map[string]string{
	entity.Interval1Min:   "1min",
	entity.Interval5Min:   "5min",
	entity.Interval1Hour:  "1h",
	entity.Interval1Day:   "1day",
	entity.Interval1Week:  "1week",
	entity.Interval1Month: "1month",
}

// TwelveDataMarket はTwelve Data外部APIから価格データを取得するCandleSource実装です。
type TwelveDataMarket struct {
	cfg    Config
	client *http.Client
}

// TwelveDataMarketがCandleSourceを実装していることをコンパイル時に検証します。
var _ usecase.CandleSource = (*TwelveDataMarket)(nil)

// NewTwelveDataMarket は指定された設定とHTTPクライアントでTwelveDataMarketの新しいインスタンスを生成します。
func NewTwelveDataMarket(cfg Config, client *http.Client) *TwelveDataMarket {
	return &TwelveDataMarket{cfg: cfg, client: client}
}

// GetTimeSeries はTwelve Data APIから時系列データを取得し、
// entity.Candleのスライスとして返します。時刻はUTCで要求します。
func (t *TwelveDataMarket) GetTimeSeries(ctx context.Context, q entity.SeriesQuery) ([]entity.Candle, error) {
	iv, ok := intervals[q.Interval]
	if !ok {
		return nil, fmt.Errorf("twelvedata %q: %w", q.Interval, domain.ErrUnsupportedInterval)
	}

	v := url.Values{}
	// クエリパラメータを追加
	v.Set("symbol", q.Symbol)
	v.Set("interval", iv)
	v.Set("timezone", "UTC")
	if q.OutputSize > 0 {
		v.Set("outputsize", strconv.Itoa(q.OutputSize))
	}
	if !q.Start.IsZero() {
		v.Set("start_date", q.Start.UTC().Format(dateTimeLayout))
	}
	if !q.End.IsZero() {
		v.Set("end_date", q.End.UTC().Format(dateTimeLayout))
	}
	v.Set("apikey", t.cfg.TwelveDataAPIKey)

	u := fmt.Sprintf("%s/time_series?%s", t.cfg.BaseURL, v.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	res, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			zap.S().Warnw("failed to close response body", "source", entity.SourceTwelveData, "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
		return nil, externalapi.NewStatusError(entity.SourceTwelveData, res.StatusCode, body)
	}

	// JSONレスポンスをDTOにデコード
	var body dto.TimeSeriesResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("twelvedata decode: %w", err)
	}
	if body.Status == "error" {
		// API はエラーでも HTTP 200 を返し、code に本来のステータスを載せる
		if body.Code == http.StatusTooManyRequests || body.Code >= 500 {
			return nil, externalapi.NewStatusError(entity.SourceTwelveData, body.Code, []byte(body.Message))
		}
		return nil, fmt.Errorf("twelvedata: %s", body.Message)
	}

	candles := make([]entity.Candle, 0, len(body.Values))
	for _, row := range body.Values {
		c, err := toCandle(row)
		if err != nil {
			return nil, err
		}
		c.Symbol = q.Symbol
		c.Interval = q.Interval
		candles = append(candles, c)
	}
	return candles, nil
}

// toCandle は文字列で表現された1行をパースします。出来高が空の場合は0とします。
func toCandle(v dto.Value) (entity.Candle, error) {
	tm, err := time.ParseInLocation(dateTimeLayout, v.Datetime, time.UTC)
	if err != nil {
		tm, err = time.ParseInLocation("2006-01-02", v.Datetime, time.UTC)
		if err != nil {
			return entity.Candle{}, fmt.Errorf("parse time %q: %w", v.Datetime, err)
		}
	}
	o, err := strconv.ParseFloat(v.Open, 64)
	if err != nil {
		return entity.Candle{}, fmt.Errorf("parse open %q: %w", v.Open, err)
	}
	h, err := strconv.ParseFloat(v.High, 64)
	if err != nil {
		return entity.Candle{}, fmt.Errorf("parse high %q: %w", v.High, err)
	}
	l, err := strconv.ParseFloat(v.Low, 64)
	if err != nil {
		return entity.Candle{}, fmt.Errorf("parse low %q: %w", v.Low, err)
	}
	c, err := strconv.ParseFloat(v.Close, 64)
	if err != nil {
		return entity.Candle{}, fmt.Errorf("parse close %q: %w", v.Close, err)
	}
	var vol float64
	if v.Volume != "" {
		vol, err = strconv.ParseFloat(v.Volume, 64)
		if err != nil {
			return entity.Candle{}, fmt.Errorf("parse volume %q: %w", v.Volume, err)
		}
	}
	return entity.Candle{Time: tm, Open: o, High: h, Low: l, Close: c, Volume: vol}, nil
}
