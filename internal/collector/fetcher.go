package collector

import "StockCharter/internal/model"

// Fetcher defines the interface for fetching daily price history upstream.
type Fetcher interface {
	FetchDailyHistory(symbol string, days int) ([]model.Bar, error)
	Name() string
}
