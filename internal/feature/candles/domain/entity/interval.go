package entity

import "time"

// Canonical intervals accepted by every candle source.
const (
	Interval1Min   = "1min"
	Interval5Min   = "5min"
	Interval1Hour  = "1h"
	Interval1Day   = "1day"
	Interval1Week  = "1week"
	Interval1Month = "1month"
)

var intervalDurations = map[string]time.Duration{
	Interval1Min:   time.Minute,
	Interval5Min:   5 * time.Minute,
	Interval1Hour:  time.Hour,
	Interval1Day:   24 * time.Hour,
	Interval1Week:  7 * 24 * time.Hour,
	Interval1Month: 30 * 24 * time.Hour,
}

// IsValidInterval reports whether s is one of the canonical intervals.
func IsValidInterval(s string) bool {
	_, ok := intervalDurations[s]
	return ok
}

// IntervalDuration returns the nominal length of one candle.
// Months are approximated as 30 days.
func IntervalDuration(s string) (time.Duration, bool) {
	d, ok := intervalDurations[s]
	return d, ok
}
