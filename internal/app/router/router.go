// Package router assembles the gin engine.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"crypto_dashboard/internal/api"
	"crypto_dashboard/internal/app/di"
	candlehandler "crypto_dashboard/internal/feature/candles/transport/handler"
	chartshandler "crypto_dashboard/internal/feature/charts/transport/handler"
	forecasthandler "crypto_dashboard/internal/feature/forecast/transport/handler"
	insighthandler "crypto_dashboard/internal/feature/insight/transport/handler"
	quoteshandler "crypto_dashboard/internal/feature/quotes/transport/handler"
	symbolhandler "crypto_dashboard/internal/feature/symbols/transport/handler"
	platformhandler "crypto_dashboard/internal/platform/http/handler"
	"crypto_dashboard/internal/platform/http/middleware"
	"crypto_dashboard/internal/platform/metrics"
	"crypto_dashboard/internal/shared/apierror"
)

// Server implements the generated api.ServerInterface by embedding the
// feature handlers.
type Server struct {
	*candlehandler.CandlesHandler
	*chartshandler.ChartsHandler
	*forecasthandler.ForecastHandler
	*insighthandler.InsightHandler
	*quoteshandler.QuotesHandler
	*symbolhandler.SymbolHandler
}

var _ api.ServerInterface = (*Server)(nil)

// NewRouter は全ルートを登録した gin.Engine を返します。
func NewRouter(h di.Handlers, health *platformhandler.HealthHandler) *gin.Engine {
	r := gin.New()
	// Twelve Data のコード（BTC/USD）は %2F でパスに入るため、エスケープ済みパスで照合する
	r.UseEscapedPath = true
	r.UnescapePathValues = true
	r.Use(middleware.Recovery(), middleware.RequestLogger(), middleware.Metrics())

	// 導通確認用
	r.GET("/healthz", health.Health)
	r.HEAD("/healthz", health.Health)
	r.OPTIONS("/healthz", health.Health)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// 画面
	r.GET("/", h.Dashboard.Index)
	r.GET("/ws/quotes/:ticker", h.Quotes.Stream)

	// JSON API（openapi.yaml から生成）
	api.RegisterHandlersWithOptions(r, &Server{
		CandlesHandler:  h.Candles,
		ChartsHandler:   h.Charts,
		ForecastHandler: h.Forecast,
		InsightHandler:  h.Insight,
		QuotesHandler:   h.Quotes,
		SymbolHandler:   h.Symbols,
	}, api.GinServerOptions{ErrorHandler: apierror.BadRequest})

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "not found"})
	})
	return r
}
