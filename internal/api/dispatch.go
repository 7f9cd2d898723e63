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

	"github.com/openconf/tracksmith/internal/dispatch"
	"github.com/openconf/tracksmith/internal/events"
	"github.com/openconf/tracksmith/internal/telemetry"
	"github.com/openconf/tracksmith/internal/timetable"
)

// ActivityInput is an ad-hoc activity in a dispatch request.
type ActivityInput struct {
	Title           string `json:"title"`
	DurationMinutes int    `json:"duration_minutes"`
	OpenEnded       bool   `json:"open_ended,omitempty"`
}

// DispatchRequest asks for an optimal timetable of the given activities.
// When Activities is omitted the catalog is dispatched instead.
type DispatchRequest struct {
	Start         time.Time       `json:"start"`
	BudgetMinutes int             `json:"budget_minutes"`
	Activities    []ActivityInput `json:"activities"`
}

// ConferenceRequest asks for a full conference-day plan.
type ConferenceRequest struct {
	Day        string          `json:"day"` // YYYY-MM-DD
	Activities []ActivityInput `json:"activities"`
}

// TimetableEntry is one placed activity in a response.
type TimetableEntry struct {
	Start           time.Time `json:"start"`
	Title           string    `json:"title"`
	DurationMinutes int       `json:"duration_minutes"`
	OpenEnded       bool      `json:"open_ended,omitempty"`
}

// TimetableResponse is the rendered result of a dispatch.
type TimetableResponse struct {
	Entries      []TimetableEntry `json:"entries"`
	TotalMinutes int              `json:"total_minutes"`
	End          *time.Time       `json:"end,omitempty"`
}

func renderTimetable(tt *timetable.Timetable) TimetableResponse {
	resp := TimetableResponse{Entries: make([]TimetableEntry, 0, tt.Len())}
	openEnded := false
	for _, e := range tt.Entries() {
		resp.Entries = append(resp.Entries, TimetableEntry{
			Start:           e.Start,
			Title:           e.Activity.Title,
			DurationMinutes: int(e.Activity.Duration.Minutes()),
			OpenEnded:       e.Activity.OpenEnded,
		})
		if e.Activity.OpenEnded {
			openEnded = true
		}
	}
	resp.TotalMinutes = int(tt.TotalDuration().Minutes())
	if !tt.IsEmpty() && !openEnded {
		end := tt.End()
		resp.End = &end
	}
	return resp
}

func toActivities(inputs []ActivityInput) []timetable.Activity {
	acts := make([]timetable.Activity, 0, len(inputs))
	for _, in := range inputs {
		if in.OpenEnded {
			acts = append(acts, timetable.NewOpenEnded(in.Title))
			continue
		}
		acts = append(acts, timetable.NewActivity(in.Title, time.Duration(in.DurationMinutes)*time.Minute))
	}
	return acts
}

// handleDispatch runs the optimal dispatcher over the request activities or,
// when none are given, over the whole catalog.
func (a *API) handleDispatch(w http.ResponseWriter, r *http.Request) {
	var req DispatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if req.Start.IsZero() {
		writeError(w, http.StatusBadRequest, "start_required")
		return
	}
	if req.BudgetMinutes <= 0 {
		writeError(w, http.StatusBadRequest, "budget_required")
		return
	}

	acts, err := a.requestActivities(r, req.Activities)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "catalog_unavailable")
		return
	}

	o, err := dispatch.NewOptimal(req.Start, time.Duration(req.BudgetMinutes)*time.Minute)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	a.runDispatch(w, o, acts)
}

// handleConference plans a whole conference day using the configured shape.
func (a *API) handleConference(w http.ResponseWriter, r *http.Request) {
	var req ConferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	day, err := time.Parse("2006-01-02", req.Day)
	if err != nil {
		writeError(w, http.StatusBadRequest, "day_required")
		return
	}

	acts, err := a.requestActivities(r, req.Activities)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "catalog_unavailable")
		return
	}

	dayCfg := dispatch.NewDayConfig(day, a.cfg.DayStartOffset, a.cfg.MorningBudget, a.cfg.LunchDuration, a.cfg.AfternoonBudget)
	c, err := dispatch.NewConference(dayCfg)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	a.runDispatch(w, c, acts)
}

// requestActivities resolves the activity collection for a request: the
// inline list when present, the catalog otherwise.
func (a *API) requestActivities(r *http.Request, inline []ActivityInput) ([]timetable.Activity, error) {
	if inline != nil {
		return toActivities(inline), nil
	}
	return a.catalog.Values(r.Context())
}

func (a *API) runDispatch(w http.ResponseWriter, d dispatch.Dispatcher, acts []timetable.Activity) {
	started := time.Now()
	tt, err := d.Dispatch(acts)
	elapsed := time.Since(started)

	telemetry.DispatchDuration.Observe(elapsed.Seconds())
	telemetry.DispatchActivities.Observe(float64(len(acts)))

	if err != nil {
		outcome, status, code := classifyDispatchError(err)
		telemetry.DispatchTotal.WithLabelValues(outcome).Inc()
		a.bus.Publish(events.EventDispatchFailed, events.Payload{
			"error":      err.Error(),
			"code":       code,
			"activities": len(acts),
		})
		a.logger.Warn().Err(err).Int("activities", len(acts)).Msg("dispatch failed")
		writeError(w, status, code)
		return
	}

	telemetry.DispatchTotal.WithLabelValues("scheduled").Inc()
	a.bus.Publish(events.EventDispatchCompleted, events.Payload{
		"activities":    len(acts),
		"scheduled":     tt.Len(),
		"total_minutes": int(tt.TotalDuration().Minutes()),
		"elapsed_ms":    elapsed.Milliseconds(),
	})
	writeJSON(w, http.StatusOK, renderTimetable(tt))
}

func classifyDispatchError(err error) (outcome string, status int, code string) {
	switch {
	case errors.Is(err, dispatch.ErrInfeasible):
		return "infeasible", http.StatusUnprocessableEntity, "infeasible"
	case errors.Is(err, dispatch.ErrOpenEndedActivity):
		return "invalid_input", http.StatusUnprocessableEntity, "open_ended_activity"
	case errors.Is(err, timetable.ErrNegativeDuration):
		return "invalid_input", http.StatusUnprocessableEntity, "negative_duration"
	case errors.Is(err, dispatch.ErrNilInput), errors.Is(err, dispatch.ErrBadConfig):
		return "invalid_input", http.StatusBadRequest, "invalid_request"
	default:
		return "error", http.StatusInternalServerError, "dispatch_failed"
	}
}
