package collector

import (
	"context"
	"log"
	"time"

	"StockCharter/internal/model"
	"StockCharter/internal/store"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price     float64
	DailyData []model.Bar
	Err       error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyHistory(_ string, days int) ([]model.Bar, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.DailyData != nil {
		return m.DailyData, nil
	}
	return generateMockBars(m.Price, days), nil
}

func generateMockBars(basePrice float64, count int) []model.Bar {
	bars := make([]model.Bar, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.Bar{
			Date:   time.Now().UTC().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}

// Collector populates the durable cache from the upstream data source.
type Collector struct {
	Fetcher     Fetcher
	Writer      store.CacheWriter
	Tickers     []string
	HistoryDays int
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, writer store.CacheWriter, tickers []string, historyDays int) *Collector {
	return &Collector{Fetcher: fetcher, Writer: writer, Tickers: tickers, HistoryDays: historyDays}
}

// RefreshAll downloads history for every configured ticker and writes it to
// the cache. One failing ticker never aborts the rest; empty fetch results
// are skipped so the last good cache survives.
func (c *Collector) RefreshAll(ctx context.Context) {
	for _, ticker := range c.Tickers {
		select {
		case <-ctx.Done():
			log.Println("[WARN] cache refresh cancelled")
			return
		default:
		}

		bars, err := c.Fetcher.FetchDailyHistory(ticker, c.HistoryDays)
		if err != nil {
			log.Printf("[WARN] fetch %s: %v, skipping", ticker, err)
			continue
		}
		if len(bars) == 0 {
			log.Printf("[WARN] no data for %s, skipping", ticker)
			continue
		}
		if err := c.Writer.Write(ticker, bars); err != nil {
			log.Printf("[ERROR] write cache for %s: %v", ticker, err)
			continue
		}
		log.Printf("[INFO] cached %d bars for %s", len(bars), ticker)
	}
}
