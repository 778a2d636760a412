// Package entity defines the chart descriptions returned to the dashboard.
package entity

import "time"

// Chart kinds selectable in the "Customize Charts" widget. KindArea is drawn
// when nothing is selected.
const (
	KindArea  = "area"
	KindRaw   = "raw"
	KindLog   = "log"
	KindBBEMA = "bb_ema"
)

// Trace types understood by the page's plotting code.
const (
	TraceArea        = "area"
	TraceLine        = "line"
	TraceCandlestick = "candlestick"
	TraceBar         = "bar"
)

// Axis scales.
const (
	AxisLinear = "linear"
	AxisLog    = "log"
)

// Trace is one plotted series. Line-like traces use Y; candlesticks use
// Open/High/Low/Close. NaN in Y marks an undefined point.
type Trace struct {
	Name  string
	Type  string
	Axis  string // "y" or "y2"
	X     []time.Time
	Y     []float64
	Open  []float64
	High  []float64
	Low   []float64
	Close []float64
}

// Figure is one chart on the page.
type Figure struct {
	Kind        string
	Title       string
	YAxisType   string
	RangeSlider bool
	Traces      []Trace
}

// PriceRow is one line of the recent-prices table.
type PriceRow struct {
	Date                   time.Time
	Open, High, Low, Close float64
	Volume                 float64
}

// Charts is everything the price section of the page draws.
type Charts struct {
	Ticker  string
	Table   []PriceRow
	Figures []Figure
}
