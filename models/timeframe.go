package models

import (
	"fmt"
	"strings"
)

// Timeframe selects which chart horizon is displayed. Each timeframe has
// exactly one cache slot in a session and one axis granularity hint.
type Timeframe int

const (
	TimeframeIntraday Timeframe = iota
	TimeframeDaily
)

// Timeframes lists every selectable timeframe in tab order.
var Timeframes = []Timeframe{TimeframeIntraday, TimeframeDaily}

func (tf Timeframe) String() string {
	switch tf {
	case TimeframeIntraday:
		return "intraday"
	case TimeframeDaily:
		return "daily"
	default:
		return fmt.Sprintf("timeframe(%d)", int(tf))
	}
}

// TimeUnit returns the axis granularity hint passed to the chart renderer.
func (tf Timeframe) TimeUnit() string {
	if tf == TimeframeDaily {
		return "month"
	}
	return "hour"
}

// ParseTimeframe maps a tab identifier to its Timeframe.
func ParseTimeframe(s string) (Timeframe, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "intraday":
		return TimeframeIntraday, nil
	case "daily":
		return TimeframeDaily, nil
	default:
		return 0, fmt.Errorf("unknown timeframe %q", s)
	}
}

// NormalizeTicker trims and uppercases user ticker input. An empty result
// means the input should be ignored.
func NormalizeTicker(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
