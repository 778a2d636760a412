package entity

// Series is a resolved, ordered candle series for one exchange ticker.
type Series struct {
	Ticker         string // exchange ticker, e.g. "BTCUSDT"
	ProviderSymbol string // code used at the source, e.g. "BTC-USD"
	Source         string
	Interval       string
	Candles        []Candle
}
