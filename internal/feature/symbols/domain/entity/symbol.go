// Package entity defines the domain models for the symbols feature.
package entity

import (
	"time"

	candle "crypto_dashboard/internal/feature/candles/domain/entity"
)

// Symbol maps an exchange ticker (e.g. "BTCUSDT") to the identifiers each
// data source uses for the same pair.
type Symbol struct {
	ID             uint      `gorm:"primaryKey" yaml:"-"`
	Ticker         string    `gorm:"size:32;not null;uniqueIndex" yaml:"ticker"`
	Name           string    `gorm:"size:255;not null" yaml:"name"`
	YahooCode      string    `gorm:"size:32;not null;index" yaml:"yahoo"`
	TwelveDataCode string    `gorm:"size:32;not null;index" yaml:"twelvedata"`
	FeedCode       string    `gorm:"size:32;not null;index" yaml:"feed"`
	IsActive       bool      `gorm:"not null" yaml:"active"`
	SortKey        int       `gorm:"not null;default:0" yaml:"sort_key"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" yaml:"-"`
}

// CodeFor returns the provider identifier of the symbol for the given source.
// The exchange ticker is used when the source has no dedicated code.
func (s Symbol) CodeFor(source string) string {
	var code string
	switch source {
	case candle.SourceYahoo:
		code = s.YahooCode
	case candle.SourceTwelveData:
		code = s.TwelveDataCode
	case candle.SourceJSONFeed:
		code = s.FeedCode
	}
	if code == "" {
		return s.Ticker
	}
	return code
}
