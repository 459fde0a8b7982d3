package model

import "time"

// PricePoint is one daily observation. A nil Close means the cache had no
// usable price for that day; such points survive filtering but are excluded
// from statistics.
type PricePoint struct {
	Date  time.Time
	Close *float64
}

// Series holds the cached daily history for one ticker, sorted ascending by
// date with unique dates. HasClose records whether the cached source carried
// a close-price field at all.
type Series struct {
	Ticker   string
	Points   []PricePoint
	HasClose bool
}

// Empty reports whether the series has no rows.
func (s Series) Empty() bool {
	return len(s.Points) == 0
}

// Window is an inclusive date range. Start after End selects nothing.
type Window struct {
	Start time.Time
	End   time.Time
}

// ClosePrice wraps a value as an optional close price.
func ClosePrice(v float64) *float64 {
	return &v
}
