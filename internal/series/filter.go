package series

import (
	"StockCharter/internal/model"
)

// Slice returns the points of s whose date falls inside w, inclusive on both
// ends. The input is never mutated; the result has fresh backing storage.
// A window with Start after End selects nothing.
func Slice(s model.Series, w model.Window) model.Series {
	out := model.Series{Ticker: s.Ticker, HasClose: s.HasClose}
	if s.Empty() {
		return out
	}
	for _, p := range s.Points {
		if p.Date.Before(w.Start) || p.Date.After(w.End) {
			continue
		}
		out.Points = append(out.Points, p)
	}
	return out
}
