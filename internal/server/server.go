package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"StockCharter/internal/config"
	"StockCharter/internal/store"
)

// Server wraps the HTTP server exposing the chart API.
type Server struct {
	httpServer *http.Server
}

// New builds the router and server from config and the series store.
func New(cfg *config.Config, st *store.Store) *Server {
	router := http.NewServeMux()
	h := NewHandler(st)

	router.HandleFunc("GET /api/ready", h.Ready)
	router.HandleFunc("GET /api/plot", h.PlotData)
	router.HandleFunc("GET /api/stat", h.StatValue)

	// Optional front-end mount; the API works without it.
	if cfg.Server.StaticDir != "" {
		router.Handle("GET /", http.FileServer(http.Dir(cfg.Server.StaticDir)))
	}

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:      router,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
	}
}

// Start blocks serving requests until Shutdown is called.
func (s *Server) Start() error {
	log.Printf("[INFO] http server listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
