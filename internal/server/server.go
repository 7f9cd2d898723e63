/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package server wires the HTTP surface, storage and background listeners.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/openconf/tracksmith/internal/api"
	"github.com/openconf/tracksmith/internal/catalog"
	"github.com/openconf/tracksmith/internal/config"
	"github.com/openconf/tracksmith/internal/db"
	"github.com/openconf/tracksmith/internal/events"
	"github.com/openconf/tracksmith/internal/telemetry"
)

// Server bundles HTTP and supporting services.
type Server struct {
	cfg        *config.Config
	logger     zerolog.Logger
	router     chi.Router
	httpServer *http.Server

	db      *gorm.DB
	bus     *events.Bus
	catalog *catalog.Service
	api     *api.API

	bgCancel context.CancelFunc
	bgWG     sync.WaitGroup
}

// New constructs the server and wires dependencies.
func New(cfg *config.Config, logger zerolog.Logger) (*Server, error) {
	gormDB, err := db.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	bus := events.NewBus()
	catalogSvc := catalog.New(gormDB, logger)
	apiHandler := api.New(cfg, catalogSvc, bus, logger)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(telemetry.TracingMiddleware("tracksmith-api"))
	router.Use(telemetry.MetricsMiddleware)
	router.Use(middleware.Timeout(60 * time.Second))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	apiHandler.Routes(router)

	s := &Server{
		cfg:     cfg,
		logger:  logger.With().Str("component", "server").Logger(),
		router:  router,
		db:      gormDB,
		bus:     bus,
		catalog: catalogSvc,
		api:     apiHandler,
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", cfg.HTTPBind, cfg.HTTPPort),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}

	bgCtx, cancel := context.WithCancel(context.Background())
	s.bgCancel = cancel
	s.bgWG.Add(1)
	go s.watchDispatches(bgCtx)

	return s, nil
}

// watchDispatches logs dispatch outcomes published on the bus.
func (s *Server) watchDispatches(ctx context.Context) {
	defer s.bgWG.Done()

	completed := s.bus.Subscribe(events.EventDispatchCompleted)
	failed := s.bus.Subscribe(events.EventDispatchFailed)
	defer s.bus.Unsubscribe(events.EventDispatchCompleted, completed)
	defer s.bus.Unsubscribe(events.EventDispatchFailed, failed)

	for {
		select {
		case <-ctx.Done():
			return
		case payload := <-completed:
			s.logger.Info().Fields(map[string]any(payload)).Msg("dispatch completed")
		case payload := <-failed:
			s.logger.Warn().Fields(map[string]any(payload)).Msg("dispatch failed")
		}
	}
}

// HTTPServer returns the API server.
func (s *Server) HTTPServer() *http.Server {
	return s.httpServer
}

// MetricsServer returns a server exposing Prometheus metrics.
func (s *Server) MetricsServer() *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", telemetry.Handler())
	return &http.Server{
		Addr:              s.cfg.MetricsBind,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Close stops background listeners and releases resources.
func (s *Server) Close() error {
	s.bgCancel()
	s.bgWG.Wait()
	return db.Close(s.db)
}
