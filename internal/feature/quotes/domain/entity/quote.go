// Package entity defines the domain models for the quotes feature.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote is the latest price of a ticker and its change against the
// previous bar.
type Quote struct {
	Ticker         string
	ProviderSymbol string
	Source         string
	Price          decimal.Decimal
	PreviousClose  decimal.Decimal
	Delta          decimal.Decimal
	DeltaPercent   decimal.Decimal // zero when PreviousClose is zero
	AsOf           time.Time       // time of the newest bar
}
