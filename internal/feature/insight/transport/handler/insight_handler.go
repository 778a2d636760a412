// Package handler はinsightフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"crypto_dashboard/internal/api"
	"crypto_dashboard/internal/feature/insight/domain/entity"
	"crypto_dashboard/internal/shared/apierror"
)

// InsightUsecase は解説生成のユースケースインターフェースです。
type InsightUsecase interface {
	Generate(ctx context.Context, ticker, source string) (entity.Insight, error)
}

// InsightHandler は解説のHTTPリクエストを処理します。
type InsightHandler struct {
	uc InsightUsecase
}

// NewInsightHandler は新しい InsightHandler を作成します。
func NewInsightHandler(uc InsightUsecase) *InsightHandler {
	return &InsightHandler{uc: uc}
}

// GetInsight は現在値と30日予測の解説文を返します。
// Gemini の認証情報が無い場合は 503 を返します。
//
// エンドポイント例:
// GET /insights/BTCUSDT
func (h *InsightHandler) GetInsight(c *gin.Context, ticker api.Ticker, params api.GetInsightParams) {
	var source string
	if params.Source != nil {
		source = *params.Source
	}
	in, err := h.uc.Generate(c.Request.Context(), ticker, source)
	if err != nil {
		apierror.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, api.InsightResponse{Ticker: in.Ticker, Summary: in.Summary})
}
