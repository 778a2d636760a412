// Package externalapi holds what the upstream market data clients share.
package externalapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// StatusError は外部APIが 4xx/5xx を返したことを表します。
type StatusError struct {
	Source string // "twelvedata", "yahoo", "jsonfeed"
	Code   int
	Body   string // 先頭のみ（ログ用）
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s http %d", e.Source, e.Code)
	}
	return fmt.Sprintf("%s http %d: %s", e.Source, e.Code, e.Body)
}

// Retryable は再試行で回復しうるステータスかどうかを返します（429 と 5xx）。
func (e *StatusError) Retryable() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= 500
}

// IsRetryable reports whether err is a transient upstream failure.
// Context cancellation is never retryable.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Retryable()
	}
	var ne net.Error
	return errors.As(err, &ne)
}

// maxBodyPreview はエラーに含めるレスポンスボディの最大長です。
const maxBodyPreview = 256

// NewStatusError builds a StatusError, trimming body to a short preview.
func NewStatusError(source string, code int, body []byte) *StatusError {
	b := string(body)
	if len(b) > maxBodyPreview {
		b = b[:maxBodyPreview]
	}
	return &StatusError{Source: source, Code: code, Body: b}
}
