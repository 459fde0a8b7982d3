package model

import "time"

// Bar represents a single daily candlestick as fetched upstream and cached on
// disk. The serving core only reads Date and Close; the remaining fields ride
// along in the cache.
type Bar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}
