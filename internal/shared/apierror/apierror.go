// Package apierror はドメインエラーをHTTPステータスに対応付けます。
package apierror

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"crypto_dashboard/internal/api"
	"crypto_dashboard/internal/feature/candles/domain"
)

// Status returns the HTTP status for err. Anything unrecognised is treated as
// an upstream failure (502).
func Status(err error) int {
	switch {
	case errors.Is(err, domain.ErrSymbolNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnknownSource),
		errors.Is(err, domain.ErrUnsupportedInterval),
		errors.Is(err, domain.ErrInvalidRange),
		errors.Is(err, domain.ErrUnknownChartKind),
		errors.Is(err, domain.ErrInvalidHorizon):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInsufficientData):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrFeatureDisabled),
		errors.Is(err, gobreaker.ErrOpenState),
		errors.Is(err, gobreaker.ErrTooManyRequests):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

// Respond writes err as an api.ErrorResponse with the mapped status.
func Respond(c *gin.Context, err error) {
	status := Status(err)
	if status >= 500 {
		zap.S().Warnw("request failed",
			"path", c.FullPath(),
			"status", status,
			"error", err,
		)
	}
	c.JSON(status, api.ErrorResponse{Error: err.Error()})
}

// BadRequest is the ErrorHandler used for parameter binding failures.
func BadRequest(c *gin.Context, err error, status int) {
	c.JSON(status, api.ErrorResponse{Error: err.Error()})
}
