package store

import (
	"database/sql"
	"fmt"
	"log"
	"math"
	"sync"

	_ "modernc.org/sqlite"

	"StockCharter/internal/model"
)

// SQLiteCache stores all tickers' daily bars in a single SQLite database.
type SQLiteCache struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteCache opens (or creates) the SQLite database and runs migrations.
func NewSQLiteCache(dbPath string) (*SQLiteCache, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so request reads don't block on a refresh write.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	c := &SQLiteCache{db: db}
	if err := c.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite cache opened: %s", dbPath)
	return c, nil
}

func (c *SQLiteCache) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS daily_bars (
			ticker TEXT NOT NULL,
			date   TEXT NOT NULL,
			open   REAL,
			high   REAL,
			low    REAL,
			close  REAL,
			volume REAL,
			PRIMARY KEY (ticker, date)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_bars_ticker ON daily_bars(ticker)`,
	}
	for _, s := range stmts {
		if _, err := c.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// Read loads the raw rows for a ticker. No rows is ErrNotCached, matching the
// per-ticker-file semantics of the CSV backend.
func (c *SQLiteCache) Read(ticker string) ([]Row, bool, error) {
	rows, err := c.db.Query(
		`SELECT date, close FROM daily_bars WHERE ticker = ? ORDER BY date`, ticker)
	if err != nil {
		return nil, true, fmt.Errorf("query bars: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var date string
		var price sql.NullFloat64
		if err := rows.Scan(&date, &price); err != nil {
			return nil, true, fmt.Errorf("scan bar: %w", err)
		}
		r := Row{Date: date}
		if price.Valid && !math.IsNaN(price.Float64) && !math.IsInf(price.Float64, 0) {
			r.Close = model.ClosePrice(price.Float64)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, true, fmt.Errorf("iterate bars: %w", err)
	}
	if len(out) == 0 {
		return nil, true, ErrNotCached
	}
	return out, true, nil
}

// Write replaces a ticker's cached history inside a single transaction.
func (c *SQLiteCache) Write(ticker string, bars []model.Bar) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM daily_bars WHERE ticker = ?`, ticker); err != nil {
		return fmt.Errorf("clear bars: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO daily_bars
		(ticker, date, open, high, low, close, volume)
		VALUES (?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, b := range bars {
		if _, err := stmt.Exec(ticker, b.Date.Format("2006-01-02"),
			b.Open, b.High, b.Low, b.Close, b.Volume); err != nil {
			return fmt.Errorf("insert bar: %w", err)
		}
	}
	return tx.Commit()
}

// Close closes the underlying database.
func (c *SQLiteCache) Close() error {
	log.Println("[INFO] closing sqlite cache")
	return c.db.Close()
}
