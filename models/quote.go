package models

// Quote is a point-in-time snapshot of a stock's trading state as returned
// by the quote endpoint. Numeric fields the backend omits decode to zero,
// which is what the display layer renders.
type Quote struct {
	Symbol            string  `json:"symbol"`
	Price             float64 `json:"price"`
	Change            float64 `json:"change"`
	ChangesPercentage float64 `json:"changesPercentage"`
	Volume            int64   `json:"volume"`
	DayHigh           float64 `json:"dayHigh"`
	DayLow            float64 `json:"dayLow"`
	MarketCap         int64   `json:"marketCap"`
}

// IsUp reports whether the quote should be styled as a gain. A flat change
// counts as up, matching the leading "+" display convention.
func (q Quote) IsUp() bool {
	return q.Change >= 0
}
