// Package handler はダッシュボード画面（単一ページ）を配信します。
package handler

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	charts "crypto_dashboard/internal/feature/charts/domain/entity"
	forecast "crypto_dashboard/internal/feature/forecast/usecase"
	"crypto_dashboard/internal/feature/symbols/domain/entity"
)

//go:embed templates/index.html
var templates embed.FS

var pageTemplate = template.Must(template.ParseFS(templates, "templates/index.html"))

// SymbolLister はティッカー一覧を返します。
type SymbolLister interface {
	ListActiveSymbols(ctx context.Context) ([]entity.Symbol, error)
}

type symbolOption struct {
	Ticker string
	Name   string
	Code   string // 予測セレクタに表示するプロバイダーコード
}

type pageData struct {
	Symbols        []symbolOption
	ChartKinds     []string
	Source         string
	DefaultStart   string
	DefaultEnd     string
	MinYears       int
	MaxYears       int
	MinDays        int
	MaxDays        int
	InsightEnabled bool
}

// DashboardHandler renders the dashboard page. All data is loaded by the page
// itself from the JSON endpoints.
type DashboardHandler struct {
	symbols        SymbolLister
	source         string
	insightEnabled bool
	now            func() time.Time
}

// NewDashboardHandler は新しい DashboardHandler を作成します。
// source は予測ティッカーの表示に使うデータソースです。
func NewDashboardHandler(symbols SymbolLister, source string, insightEnabled bool) *DashboardHandler {
	return &DashboardHandler{symbols: symbols, source: source, insightEnabled: insightEnabled, now: time.Now}
}

// Index は GET / のハンドラーです。
func (h *DashboardHandler) Index(c *gin.Context) {
	syms, err := h.symbols.ListActiveSymbols(c.Request.Context())
	if err != nil {
		zap.S().Errorw("failed to list symbols for dashboard", "error", err)
		c.String(http.StatusBadGateway, "symbols unavailable")
		return
	}

	data := pageData{
		Symbols:        make([]symbolOption, len(syms)),
		ChartKinds:     []string{charts.KindLog, charts.KindRaw, charts.KindBBEMA},
		Source:         h.source,
		DefaultStart:   forecast.DefaultStart.Format("2006-01-02"),
		DefaultEnd:     h.now().UTC().Format("2006-01-02"),
		MinYears:       forecast.MinYears,
		MaxYears:       forecast.MaxYears,
		MinDays:        forecast.MinDays,
		MaxDays:        forecast.MaxDays,
		InsightEnabled: h.insightEnabled,
	}
	for i, s := range syms {
		data.Symbols[i] = symbolOption{Ticker: s.Ticker, Name: s.Name, Code: s.CodeFor(h.source)}
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		zap.S().Errorw("failed to render dashboard", "error", err)
		c.String(http.StatusInternalServerError, "render failed")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
