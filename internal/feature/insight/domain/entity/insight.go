package entity

// Insight is an LLM-written narrative of a ticker's quote and short-term forecast.
type Insight struct {
	Ticker  string
	Summary string
}
