package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"StockCharter/internal/collector"
	"StockCharter/internal/config"
	"StockCharter/internal/scheduler"
	"StockCharter/internal/server"
	"StockCharter/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] StockCharter starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init cache backend
	var (
		reader store.CacheReader
		writer store.CacheWriter
	)
	switch cfg.Data.Backend {
	case "sqlite":
		sc, err := store.NewSQLiteCache(cfg.Data.SQLitePath)
		if err != nil {
			log.Fatalf("[FATAL] init sqlite cache: %v", err)
		}
		defer sc.Close()
		reader, writer = sc, sc
	default:
		cc, err := store.NewCSVCache(cfg.Data.Dir)
		if err != nil {
			log.Fatalf("[FATAL] init csv cache: %v", err)
		}
		reader, writer = cc, cc
	}

	// Init fetcher
	var fetcher collector.Fetcher
	if cfg.Source.BaseURL != "" {
		fetcher = collector.NewVsTraderFetcher(cfg.Source.BaseURL, cfg.Source.APIKey, cfg.Proxy)
	} else {
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	// Init collector and store
	col := collector.NewCollector(fetcher, writer, cfg.Data.Tickers, cfg.Data.HistoryDays)
	st := store.NewStore(cfg.Data.Tickers, reader)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, col)
	if err := sched.Register(cfg.Data.RefreshCron); err != nil {
		log.Fatalf("[FATAL] register cron task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Populate the cache before serving, unless disabled
	if cfg.Data.FetchOnStart || os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] downloading stock data for all tickers...")
		sched.RunRefreshNow()
	}

	// Start HTTP server
	srv := server.New(cfg, st)
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	log.Println("[INFO] StockCharter is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal or server failure
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("[FATAL] http server: %v", err)
		}
	case <-sigCh:
		log.Println("[INFO] shutdown signal received, stopping...")
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[WARN] http shutdown: %v", err)
	}
	log.Println("[INFO] StockCharter stopped")
}
