package scheduler

import (
	"context"
	"fmt"
	"log"

	"StockCharter/internal/collector"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the periodic cache refresh.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, col *collector.Collector) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Ctx:       ctx,
	}
}

// Register registers the refresh task on the given cron spec.
func (s *Scheduler) Register(refreshCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunRefreshNow executes the refresh task immediately (startup download).
func (s *Scheduler) RunRefreshNow() {
	s.refreshTask()
}

func (s *Scheduler) refreshTask() {
	log.Println("[INFO] refreshing price cache")
	s.Collector.RefreshAll(s.Ctx)
	log.Println("[INFO] price cache refresh complete")
}
