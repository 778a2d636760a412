// Package entity defines the domain models for the candles feature.
package entity

import (
	"math"
	"sort"
	"time"
)

// Candle represents OHLCV (Open, High, Low, Close, Volume) candlestick data
// for a crypto pair at a specific time interval.
type Candle struct {
	Symbol   string    // Provider symbol (e.g., "BTC-USD", "BTC/USD")
	Interval string    // Canonical interval (e.g., "1min", "1day", "1week")
	Time     time.Time // Timestamp for the start of this candle period
	Open     float64   // Opening price
	High     float64   // Highest price during this period
	Low      float64   // Lowest price during this period
	Close    float64   // Closing price
	Volume   float64   // Traded volume (base asset)
}

// SeriesQuery describes one time-series request against a candle source.
// The range is [Start, End). Zero Start/End mean "unbounded"; OutputSize <= 0
// means "source default".
type SeriesQuery struct {
	Symbol     string
	Interval   string
	Start      time.Time
	End        time.Time
	OutputSize int
}

// SortAscending orders candles by time, oldest first. Candles sharing a
// timestamp keep their relative order.
func SortAscending(cs []Candle) {
	sort.SliceStable(cs, func(i, j int) bool { return cs[i].Time.Before(cs[j].Time) })
}

// IsAscending reports whether timestamps are monotonically non-decreasing.
func IsAscending(cs []Candle) bool {
	for i := 1; i < len(cs); i++ {
		if cs[i].Time.Before(cs[i-1].Time) {
			return false
		}
	}
	return true
}

// DropInvalid removes candles whose close is NaN or infinite.
func DropInvalid(cs []Candle) []Candle {
	out := cs[:0]
	for _, c := range cs {
		if math.IsNaN(c.Close) || math.IsInf(c.Close, 0) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Closes extracts the close prices in order.
func Closes(cs []Candle) []float64 {
	out := make([]float64, len(cs))
	for i, c := range cs {
		out[i] = c.Close
	}
	return out
}
