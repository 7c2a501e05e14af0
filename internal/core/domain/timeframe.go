package domain

import "time"

// Timeframe selects the revenue aggregation window.
type Timeframe string

const (
	TimeframeWeek  Timeframe = "week"
	TimeframeMonth Timeframe = "month"
	TimeframeYear  Timeframe = "year"
)

// ParseTimeframe validates a timeframe value.
func ParseTimeframe(s string) (Timeframe, error) {
	switch Timeframe(s) {
	case TimeframeWeek, TimeframeMonth, TimeframeYear:
		return Timeframe(s), nil
	}
	return "", &UnknownEnumError{Kind: "timeframe", Value: s}
}

// WindowStart returns the inclusive lower bound of the aggregation window
// ending at now. Week is a 7-day inclusive window (today plus the previous
// six days), not a calendar week.
func (tf Timeframe) WindowStart(now time.Time) time.Time {
	switch tf {
	case TimeframeWeek:
		return now.AddDate(0, 0, -6)
	case TimeframeMonth:
		return now.AddDate(0, -1, 0)
	case TimeframeYear:
		return now.AddDate(-1, 0, 0)
	}
	return now
}
