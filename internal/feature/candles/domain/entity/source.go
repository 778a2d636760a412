package entity

// Names of the upstream candle sources.
const (
	SourceTwelveData = "twelvedata" // market-data pricing API
	SourceYahoo      = "yahoo"      // historical OHLC provider
	SourceJSONFeed   = "jsonfeed"   // static JSON feed
)

// IsKnownSource reports whether s names one of the built-in sources.
func IsKnownSource(s string) bool {
	switch s {
	case SourceTwelveData, SourceYahoo, SourceJSONFeed:
		return true
	}
	return false
}
