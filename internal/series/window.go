package series

import (
	"time"

	"StockCharter/internal/model"
)

// defaultSpanDays is the width of the default display window.
const defaultSpanDays = 30

// DefaultWindow picks the default display range over all available series:
// the last 30 calendar days of the overall data span, clamped so it never
// starts before the earliest observed date. ok is false when no series has
// any data.
func DefaultWindow(byTicker map[string]model.Series) (model.Window, bool) {
	var earliest, latest time.Time
	seen := false
	for _, s := range byTicker {
		for _, p := range s.Points {
			if !seen {
				earliest, latest = p.Date, p.Date
				seen = true
				continue
			}
			if p.Date.Before(earliest) {
				earliest = p.Date
			}
			if p.Date.After(latest) {
				latest = p.Date
			}
		}
	}
	if !seen {
		return model.Window{}, false
	}

	start := latest.AddDate(0, 0, -defaultSpanDays)
	if start.Before(earliest) {
		start = earliest
	}
	return model.Window{Start: start, End: latest}, true
}
