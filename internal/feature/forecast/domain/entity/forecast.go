// Package entity defines the domain models for the forecast feature.
package entity

import "time"

// Horizon units selectable on the page.
const (
	HorizonYears = "years"
	HorizonDays  = "days"
)

// Observation is one training row: a day and its close.
type Observation struct {
	Ds time.Time
	Y  float64
}

// Point is one fitted or predicted day. Yearly and Weekly are fractional
// multipliers: the prediction is Trend * (1 + Yearly + Weekly).
type Point struct {
	Ds        time.Time
	Yhat      float64
	YhatLower float64
	YhatUpper float64
	Trend     float64
	Yearly    float64
	Weekly    float64
}

// Forecast is the history used for fitting plus the fitted and future points.
type Forecast struct {
	Ticker         string
	ProviderSymbol string
	Horizon        string
	Periods        int
	History        []Observation
	Points         []Point
}
