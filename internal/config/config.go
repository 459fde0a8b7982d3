package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Port      int    `yaml:"port"`
		StaticDir string `yaml:"static_dir"`
	} `yaml:"server"`
	Data struct {
		Tickers      []string `yaml:"tickers"`
		Backend      string   `yaml:"backend"` // "csv" or "sqlite"
		Dir          string   `yaml:"dir"`
		SQLitePath   string   `yaml:"sqlite_path"`
		HistoryDays  int      `yaml:"history_days"`
		RefreshCron  string   `yaml:"refresh_cron"`
		FetchOnStart bool     `yaml:"fetch_on_start"`
	} `yaml:"data"`
	Source struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
	} `yaml:"source"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("TICKERS"); v != "" {
		cfg.Data.Tickers = splitSymbols(v)
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.Data.Dir = v
	}
	if v := os.Getenv("DATA_BACKEND"); v != "" {
		cfg.Data.Backend = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Data.SQLitePath = v
	}
	if v := os.Getenv("SOURCE_BASE_URL"); v != "" {
		cfg.Source.BaseURL = v
	}
	if v := os.Getenv("SOURCE_API_KEY"); v != "" {
		cfg.Source.APIKey = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("FETCH_ON_START"); v != "" {
		cfg.Data.FetchOnStart = v == "true" || v == "1"
	}

	// Defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8300
	}
	if len(cfg.Data.Tickers) == 0 {
		cfg.Data.Tickers = []string{"AAPL", "MSFT", "IBM"}
	}
	if cfg.Data.Backend == "" {
		cfg.Data.Backend = "csv"
	}
	if cfg.Data.Dir == "" {
		cfg.Data.Dir = "data"
	}
	if cfg.Data.SQLitePath == "" {
		cfg.Data.SQLitePath = "data/bars.db"
	}
	if cfg.Data.HistoryDays == 0 {
		cfg.Data.HistoryDays = 365
	}
	if cfg.Data.RefreshCron == "" {
		// Weekday mornings, after the previous close is final.
		cfg.Data.RefreshCron = "0 30 6 * * 1-5"
	}

	return cfg, nil
}

// Validate checks that all required fields are consistent.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535, got %d", c.Server.Port)
	}
	if len(c.Data.Tickers) == 0 {
		return fmt.Errorf("data.tickers must not be empty")
	}
	switch c.Data.Backend {
	case "csv", "sqlite":
	default:
		return fmt.Errorf("data.backend must be csv or sqlite, got %q", c.Data.Backend)
	}
	if c.Data.HistoryDays <= 0 {
		return fmt.Errorf("data.history_days must be positive")
	}
	return nil
}

func splitSymbols(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if sym := strings.ToUpper(strings.TrimSpace(part)); sym != "" {
			out = append(out, sym)
		}
	}
	return out
}
