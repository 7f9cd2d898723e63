/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package api exposes the HTTP surface: ad-hoc dispatching, conference-day
// planning and the activity catalog.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/openconf/tracksmith/internal/catalog"
	"github.com/openconf/tracksmith/internal/config"
	"github.com/openconf/tracksmith/internal/events"
)

// API exposes HTTP handlers.
type API struct {
	cfg     *config.Config
	catalog *catalog.Service
	bus     *events.Bus
	logger  zerolog.Logger
}

// New creates the API router wrapper.
func New(cfg *config.Config, catalogSvc *catalog.Service, bus *events.Bus, logger zerolog.Logger) *API {
	return &API{
		cfg:     cfg,
		catalog: catalogSvc,
		bus:     bus,
		logger:  logger.With().Str("component", "api").Logger(),
	}
}

// Routes mounts all API routes on the router.
func (a *API) Routes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/dispatch", a.handleDispatch)
		r.Post("/conference", a.handleConference)

		r.Route("/activities", func(r chi.Router) {
			r.Get("/", a.handleListActivities)
			r.Post("/", a.handleCreateActivity)
			r.Get("/{id}", a.handleGetActivity)
			r.Delete("/{id}", a.handleDeleteActivity)
		})
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
