// Package handler はquotesフィーチャーのHTTP / WebSocketハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"crypto_dashboard/internal/api"
	"crypto_dashboard/internal/feature/quotes/domain/entity"
	"crypto_dashboard/internal/shared/apierror"
)

// QuotesUsecase はクォート取得のユースケースインターフェースです。
type QuotesUsecase interface {
	GetQuote(ctx context.Context, ticker, source string) (entity.Quote, error)
}

const writeWait = 10 * time.Second

// QuotesHandler はクォートのHTTPリクエストとストリームを処理します。
type QuotesHandler struct {
	uc       QuotesUsecase
	interval time.Duration
	upgrader websocket.Upgrader
}

// NewQuotesHandler creates a handler; interval is the push period of the
// WebSocket stream.
func NewQuotesHandler(uc QuotesUsecase, interval time.Duration) *QuotesHandler {
	if interval <= 0 {
		interval = time.Minute
	}
	return &QuotesHandler{
		uc:       uc,
		interval: interval,
		upgrader: websocket.Upgrader{
			// ダッシュボードは同一オリジンから配信されるが、開発時のプロキシも許可する
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ToResponse converts a quote to its JSON shape.
func ToResponse(q entity.Quote) api.QuoteResponse {
	return api.QuoteResponse{
		Ticker:        q.Ticker,
		Price:         q.Price.InexactFloat64(),
		PreviousClose: q.PreviousClose.InexactFloat64(),
		Delta:         q.Delta.InexactFloat64(),
		DeltaPercent:  q.DeltaPercent.InexactFloat64(),
		AsOf:          q.AsOf.UTC(),
	}
}

// GetQuote は最新価格と前足比を返します。
//
// エンドポイント例:
// GET /quotes/BTCUSDT?source=yahoo
func (h *QuotesHandler) GetQuote(c *gin.Context, ticker api.Ticker, params api.GetQuoteParams) {
	var source string
	if params.Source != nil {
		source = *params.Source
	}
	q, err := h.uc.GetQuote(c.Request.Context(), ticker, source)
	if err != nil {
		apierror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, ToResponse(q))
}

// streamError is pushed instead of a quote when a refresh fails; the stream
// stays open.
type streamError struct {
	Ticker string `json:"ticker"`
	Error  string `json:"error"`
	Status int    `json:"status"`
}

// Stream は WebSocket にアップグレードし、クォートを即時に1回、その後
// interval ごとに送信します。クライアント切断かリクエスト終了で停止します。
//
// エンドポイント例:
// GET /ws/quotes/BTCUSDT?source=yahoo
func (h *QuotesHandler) Stream(c *gin.Context) {
	ticker := c.Param("ticker")
	source := c.Query("source")

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade がエラーレスポンスを書き込み済み
		zap.S().Warnw("websocket upgrade failed", "ticker", ticker, "error", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	// 読み取りループ: close フレームや切断を検知する
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	zap.S().Infow("quote stream opened", "ticker", ticker, "source", source, "interval", h.interval)
	defer zap.S().Infow("quote stream closed", "ticker", ticker)

	tick := time.NewTicker(h.interval)
	defer tick.Stop()

	for {
		if err := h.push(ctx, conn, ticker, source); err != nil {
			return
		}
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		case <-tick.C:
		}
	}
}

func (h *QuotesHandler) push(ctx context.Context, conn *websocket.Conn, ticker, source string) error {
	var payload any
	q, err := h.uc.GetQuote(ctx, ticker, source)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		payload = streamError{Ticker: ticker, Error: err.Error(), Status: apierror.Status(err)}
	} else {
		payload = ToResponse(q)
	}

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(payload)
}
