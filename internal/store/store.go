package store

import (
	"errors"
	"log"
	"math"
	"sort"
	"time"

	"StockCharter/internal/model"
)

// ErrNotCached is returned by a CacheReader when a ticker has no cached record.
var ErrNotCached = errors.New("no cached data")

// Row is one raw cached row before date parsing.
type Row struct {
	Date  string
	Close *float64
}

// CacheReader reads the raw cached rows for one ticker from durable storage.
// hasClose reports whether the record carried a close-price field at all.
type CacheReader interface {
	Read(ticker string) (rows []Row, hasClose bool, err error)
}

// CacheWriter replaces the cached history for one ticker.
type CacheWriter interface {
	Write(ticker string, bars []model.Bar) error
}

// Store loads per-ticker series from the durable cache. It never caches in
// memory: every Load re-reads storage, so a refresh lands on the next request.
type Store struct {
	tickers []string
	reader  CacheReader
}

// NewStore creates a Store over the configured ticker registry.
func NewStore(tickers []string, reader CacheReader) *Store {
	return &Store{tickers: tickers, reader: reader}
}

// Load reads a ticker's cached series. Missing or unreadable records yield an
// empty series, never an error. Rows whose date fails to parse are dropped;
// the result is sorted ascending with unique dates.
func (s *Store) Load(ticker string) model.Series {
	rows, hasClose, err := s.reader.Read(ticker)
	if err != nil {
		if !errors.Is(err, ErrNotCached) {
			log.Printf("[WARN] read cache for %s: %v", ticker, err)
		}
		return model.Series{Ticker: ticker, HasClose: hasClose}
	}

	points := make([]model.PricePoint, 0, len(rows))
	for _, r := range rows {
		d, ok := ParseDate(r.Date)
		if !ok {
			continue
		}
		price := r.Close
		if price != nil && (math.IsNaN(*price) || math.IsInf(*price, 0)) {
			price = nil
		}
		points = append(points, model.PricePoint{Date: d, Close: price})
	}

	sort.SliceStable(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	points = dedupeDates(points)

	return model.Series{Ticker: ticker, Points: points, HasClose: hasClose}
}

// Available returns the subset of the registry with a non-empty cached series,
// recomputed on every call.
func (s *Store) Available() []string {
	var out []string
	for _, t := range s.tickers {
		if !s.Load(t).Empty() {
			out = append(out, t)
		}
	}
	return out
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// ParseDate parses a cached date string and truncates it to a UTC calendar day.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

func dedupeDates(points []model.PricePoint) []model.PricePoint {
	if len(points) < 2 {
		return points
	}
	out := points[:1]
	for _, p := range points[1:] {
		if p.Date.Equal(out[len(out)-1].Date) {
			continue
		}
		out = append(out, p)
	}
	return out
}
