// Package handler はsymbolsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"crypto_dashboard/internal/api"
	"crypto_dashboard/internal/feature/symbols/domain/entity"
	"crypto_dashboard/internal/shared/apierror"
)

// SymbolUsecase は銘柄情報に関するユースケースのインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type SymbolUsecase interface {
	ListActiveSymbols(ctx context.Context) ([]entity.Symbol, error)
}

// SymbolHandler は銘柄情報に関するHTTPリクエストを処理します。
type SymbolHandler struct {
	uc SymbolUsecase
}

// NewSymbolHandler は新しい SymbolHandler を作成します。
func NewSymbolHandler(uc SymbolUsecase) *SymbolHandler {
	return &SymbolHandler{uc: uc}
}

// ListSymbols は有効な銘柄の一覧と各データソースのコードを返すAPIです。
// Usecaseでエラーが発生した場合は apierror の対応表に従います。
func (h *SymbolHandler) ListSymbols(c *gin.Context) {
	symbols, err := h.uc.ListActiveSymbols(c.Request.Context())
	if err != nil {
		apierror.Respond(c, err)
		return
	}
	out := make([]api.SymbolItem, 0, len(symbols))
	for _, s := range symbols {
		out = append(out, api.SymbolItem{
			Ticker:         s.Ticker,
			Name:           s.Name,
			YahooCode:      s.YahooCode,
			TwelvedataCode: s.TwelveDataCode,
			FeedCode:       s.FeedCode,
		})
	}
	c.JSON(http.StatusOK, out)
}
