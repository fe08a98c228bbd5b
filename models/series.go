package models

// SeriesPoint is one historical or intraday sample.
type SeriesPoint struct {
	Date  string  `json:"date"`
	Close float64 `json:"close"`
}

// Series is an ordered run of samples. The backend returns series
// newest-first; callers must normalize with Chronological before handing
// points to a renderer.
type Series []SeriesPoint

// Trend labels the overall direction of a chronological series.
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
)

// Chronological returns a copy of the series in ascending time order.
// Dates are ISO-formatted, so lexical comparison of the endpoints is enough
// to detect a newest-first series.
func (s Series) Chronological() Series {
	out := make(Series, len(s))
	copy(out, s)
	if len(s) >= 2 && s[0].Date > s[len(s)-1].Date {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

// TrendDirection returns the trend of a chronological series: up when the
// last close is at or above the first. An empty series trends up.
func (s Series) TrendDirection() Trend {
	if len(s) == 0 || s[len(s)-1].Close >= s[0].Close {
		return TrendUp
	}
	return TrendDown
}
