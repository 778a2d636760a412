package di

import (
	"context"

	"go.uber.org/zap"

	"crypto_dashboard/internal/feature/insight/adapters/gemini"
	"crypto_dashboard/internal/feature/insight/usecase"
)

// NewAnalyzer returns the Gemini analyzer, or nil when no credentials are
// configured (the insight endpoint then answers 503).
func NewAnalyzer(ctx context.Context, cfg gemini.Config) usecase.Analyzer {
	if !cfg.Enabled() {
		zap.S().Infow("insight disabled", "reason", "no Gemini credentials")
		return nil
	}
	a, err := gemini.NewGeminiAnalyzer(ctx, cfg)
	if err != nil {
		zap.S().Warnw("gemini unavailable, insight disabled", "error", err)
		return nil
	}
	return a
}
