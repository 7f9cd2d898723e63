/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/openconf/tracksmith/internal/catalog"
	"github.com/openconf/tracksmith/internal/events"
	"github.com/openconf/tracksmith/internal/models"
	"github.com/openconf/tracksmith/internal/timetable"
)

// ActivityResponse is a catalog entry in API responses.
type ActivityResponse struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	DurationMinutes int       `json:"duration_minutes"`
	OpenEnded       bool      `json:"open_ended,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func toActivityResponse(rec models.Activity) ActivityResponse {
	return ActivityResponse{
		ID:              rec.ID,
		Title:           rec.Title,
		DurationMinutes: int(rec.Duration.Minutes()),
		OpenEnded:       rec.OpenEnded,
		CreatedAt:       rec.CreatedAt,
	}
}

func (a *API) handleListActivities(w http.ResponseWriter, r *http.Request) {
	recs, err := a.catalog.List(r.Context())
	if err != nil {
		a.logger.Error().Err(err).Msg("list activities")
		writeError(w, http.StatusInternalServerError, "catalog_unavailable")
		return
	}
	out := make([]ActivityResponse, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toActivityResponse(rec))
	}
	writeJSON(w, http.StatusOK, map[string]any{"activities": out})
}

func (a *API) handleCreateActivity(w http.ResponseWriter, r *http.Request) {
	var req ActivityInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title_required")
		return
	}
	if !req.OpenEnded && req.DurationMinutes <= 0 {
		writeError(w, http.StatusBadRequest, "duration_required")
		return
	}

	rec, err := a.catalog.Create(r.Context(), req.Title, time.Duration(req.DurationMinutes)*time.Minute, req.OpenEnded)
	if errors.Is(err, timetable.ErrNegativeDuration) {
		writeError(w, http.StatusUnprocessableEntity, "negative_duration")
		return
	}
	if err != nil {
		a.logger.Error().Err(err).Msg("create activity")
		writeError(w, http.StatusInternalServerError, "catalog_unavailable")
		return
	}

	a.bus.Publish(events.EventActivityCreated, events.Payload{"activity_id": rec.ID, "title": rec.Title})
	writeJSON(w, http.StatusCreated, toActivityResponse(rec))
}

func (a *API) handleGetActivity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := a.catalog.Get(r.Context(), id)
	if errors.Is(err, catalog.ErrNotFound) {
		writeError(w, http.StatusNotFound, "activity_not_found")
		return
	}
	if err != nil {
		a.logger.Error().Err(err).Msg("get activity")
		writeError(w, http.StatusInternalServerError, "catalog_unavailable")
		return
	}
	writeJSON(w, http.StatusOK, toActivityResponse(rec))
}

func (a *API) handleDeleteActivity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := a.catalog.Delete(r.Context(), id)
	if errors.Is(err, catalog.ErrNotFound) {
		writeError(w, http.StatusNotFound, "activity_not_found")
		return
	}
	if err != nil {
		a.logger.Error().Err(err).Msg("delete activity")
		writeError(w, http.StatusInternalServerError, "catalog_unavailable")
		return
	}

	a.bus.Publish(events.EventActivityDeleted, events.Payload{"activity_id": id})
	w.WriteHeader(http.StatusNoContent)
}
