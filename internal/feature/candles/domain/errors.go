// Package domain defines domain-level errors shared by the market data features.
package domain

import "errors"

// Domain errors for candle retrieval and the views built on top of it.
// Upper layers map them to HTTP status codes.
var (
	// ErrSymbolNotFound indicates that the ticker (or provider code) is not in the symbol table.
	ErrSymbolNotFound = errors.New("symbol not found")

	// ErrUnknownSource indicates that the requested candle source is not configured.
	ErrUnknownSource = errors.New("unknown data source")

	// ErrUnsupportedInterval indicates that the interval is not canonical or not served by the source.
	ErrUnsupportedInterval = errors.New("unsupported interval")

	// ErrInvalidRange indicates a start date that is not before the end date.
	ErrInvalidRange = errors.New("start must be before end")

	// ErrInsufficientData indicates that the upstream returned too few rows for the computation.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrUnknownChartKind indicates a chart kind outside log/raw/bb_ema.
	ErrUnknownChartKind = errors.New("unknown chart kind")

	// ErrInvalidHorizon indicates a forecast horizon outside the allowed slider range.
	ErrInvalidHorizon = errors.New("invalid forecast horizon")

	// ErrFeatureDisabled indicates an optional feature without configuration (e.g. no LLM credentials).
	ErrFeatureDisabled = errors.New("feature disabled")
)
