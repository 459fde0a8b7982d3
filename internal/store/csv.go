package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"StockCharter/internal/model"
)

// CSVCache stores one <TICKER>.csv per ticker under a data directory, with a
// yfinance-style header (Date,Open,High,Low,Close,Volume). Columns are looked
// up by header name, so extra or reordered columns are fine.
type CSVCache struct {
	Dir string
}

// NewCSVCache creates the cache and ensures the data directory exists.
func NewCSVCache(dir string) (*CSVCache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &CSVCache{Dir: dir}, nil
}

func (c *CSVCache) path(ticker string) string {
	return filepath.Join(c.Dir, ticker+".csv")
}

// Read loads the raw rows for a ticker. A missing file is ErrNotCached.
func (c *CSVCache) Read(ticker string) ([]Row, bool, error) {
	f, err := os.Open(c.path(ticker))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, ErrNotCached
		}
		return nil, false, fmt.Errorf("open cache file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, false, fmt.Errorf("read cache file: %w", err)
	}
	if len(records) == 0 {
		return nil, false, nil
	}

	dateIdx, closeIdx := -1, -1
	for i, name := range records[0] {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "date":
			dateIdx = i
		case "close":
			closeIdx = i
		}
	}
	hasClose := closeIdx >= 0
	if dateIdx < 0 {
		// No date column: nothing survives filtering anyway.
		return nil, hasClose, nil
	}

	rows := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		if dateIdx >= len(rec) {
			continue
		}
		row := Row{Date: rec[dateIdx]}
		if hasClose && closeIdx < len(rec) {
			if v, err := strconv.ParseFloat(strings.TrimSpace(rec[closeIdx]), 64); err == nil {
				row.Close = model.ClosePrice(v)
			}
		}
		rows = append(rows, row)
	}
	return rows, hasClose, nil
}

// Write replaces a ticker's cache file with the given bars.
func (c *CSVCache) Write(ticker string, bars []model.Bar) error {
	f, err := os.Create(c.path(ticker))
	if err != nil {
		return fmt.Errorf("create cache file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Date", "Open", "High", "Low", "Close", "Volume"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, b := range bars {
		rec := []string{
			b.Date.Format("2006-01-02"),
			formatPrice(b.Open),
			formatPrice(b.High),
			formatPrice(b.Low),
			formatPrice(b.Close),
			formatPrice(b.Volume),
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush cache file: %w", err)
	}
	return nil
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
