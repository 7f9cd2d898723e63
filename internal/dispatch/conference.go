/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package dispatch

import (
	"errors"
	"fmt"
	"time"

	"github.com/openconf/tracksmith/internal/timetable"
)

// ConferenceConfig shapes a single conference day: two optimally-filled talk
// sessions separated by lunch, closed by an open-ended networking event.
type ConferenceConfig struct {
	MorningStart    time.Time
	MorningBudget   time.Duration
	LunchStart      time.Time
	LunchDuration   time.Duration
	AfternoonStart  time.Time
	AfternoonBudget time.Duration
	NetworkingStart time.Time

	LunchTitle      string
	NetworkingTitle string
}

// DefaultConferenceConfig returns the classic conference day on the given
// date: talks 09:00-12:00, lunch at noon, talks 13:00-17:00, networking
// from 17:00.
func DefaultConferenceConfig(day time.Time) ConferenceConfig {
	y, m, d := day.Date()
	at := func(hour int) time.Time {
		return time.Date(y, m, d, hour, 0, 0, 0, day.Location())
	}
	return ConferenceConfig{
		MorningStart:    at(9),
		MorningBudget:   3 * time.Hour,
		LunchStart:      at(12),
		LunchDuration:   time.Hour,
		AfternoonStart:  at(13),
		AfternoonBudget: 4 * time.Hour,
		NetworkingStart: at(17),
		LunchTitle:      "Lunch",
		NetworkingTitle: "Networking Event",
	}
}

// NewDayConfig derives a gap-free conference day on the given date: the
// morning session starts at dayStart past midnight, lunch follows the
// morning budget, the afternoon follows lunch and networking follows the
// afternoon budget.
func NewDayConfig(day time.Time, dayStart, morningBudget, lunchDuration, afternoonBudget time.Duration) ConferenceConfig {
	y, m, d := day.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, day.Location())
	morningStart := midnight.Add(dayStart)
	lunchStart := morningStart.Add(morningBudget)
	afternoonStart := lunchStart.Add(lunchDuration)
	return ConferenceConfig{
		MorningStart:    morningStart,
		MorningBudget:   morningBudget,
		LunchStart:      lunchStart,
		LunchDuration:   lunchDuration,
		AfternoonStart:  afternoonStart,
		AfternoonBudget: afternoonBudget,
		NetworkingStart: afternoonStart.Add(afternoonBudget),
		LunchTitle:      "Lunch",
		NetworkingTitle: "Networking Event",
	}
}

// Conference dispatches a full conference day. The morning session is filled
// optimally, the activities it selected are withheld from the afternoon
// session, and whatever still does not fit is left unscheduled.
type Conference struct {
	cfg       ConferenceConfig
	morning   *Optimal
	afternoon *Optimal
}

// NewConference validates the day shape and builds the session dispatchers.
func NewConference(cfg ConferenceConfig) (*Conference, error) {
	if cfg.LunchTitle == "" {
		cfg.LunchTitle = "Lunch"
	}
	if cfg.NetworkingTitle == "" {
		cfg.NetworkingTitle = "Networking Event"
	}
	if cfg.LunchDuration < 0 {
		return nil, fmt.Errorf("%w: negative lunch duration", ErrBadConfig)
	}
	if cfg.MorningStart.Add(cfg.MorningBudget).After(cfg.LunchStart) {
		return nil, fmt.Errorf("%w: morning session runs past lunch", ErrBadConfig)
	}
	if cfg.LunchStart.Add(cfg.LunchDuration).After(cfg.AfternoonStart) {
		return nil, fmt.Errorf("%w: lunch runs past the afternoon session", ErrBadConfig)
	}
	if cfg.AfternoonStart.Add(cfg.AfternoonBudget).After(cfg.NetworkingStart) {
		return nil, fmt.Errorf("%w: afternoon session runs past networking", ErrBadConfig)
	}

	morning, err := NewOptimal(cfg.MorningStart, cfg.MorningBudget)
	if err != nil {
		return nil, err
	}
	afternoon, err := NewOptimal(cfg.AfternoonStart, cfg.AfternoonBudget)
	if err != nil {
		return nil, err
	}
	return &Conference{cfg: cfg, morning: morning, afternoon: afternoon}, nil
}

// Dispatch fills the day with the given talks. Selection inside each session
// is optimal; talks not picked for the morning are offered to the afternoon.
// If nothing remains for the afternoon, or nothing remaining fits it, the
// slot stays empty rather than failing the whole day.
func (c *Conference) Dispatch(activities []timetable.Activity) (*timetable.Timetable, error) {
	morningSel, err := c.morning.solve(activities)
	if err != nil {
		return nil, fmt.Errorf("morning session: %w", err)
	}

	tt := timetable.New()
	cursor := c.cfg.MorningStart
	rest := make([]timetable.Activity, 0, len(activities))
	for i, a := range activities {
		if !morningSel[i] {
			rest = append(rest, a)
			continue
		}
		if err := tt.Put(cursor, a); err != nil {
			return nil, fmt.Errorf("place %q: %w", a.Title, err)
		}
		cursor = cursor.Add(a.Duration)
	}

	lunch := timetable.NewActivity(c.cfg.LunchTitle, c.cfg.LunchDuration)
	if err := tt.Put(c.cfg.LunchStart, lunch); err != nil {
		return nil, fmt.Errorf("place lunch: %w", err)
	}

	if len(rest) > 0 {
		afternoonSel, err := c.afternoon.solve(rest)
		switch {
		case errors.Is(err, ErrInfeasible):
			// Nothing left fits the afternoon; the slot stays empty.
		case err != nil:
			return nil, fmt.Errorf("afternoon session: %w", err)
		default:
			cursor = c.cfg.AfternoonStart
			for i, a := range rest {
				if !afternoonSel[i] {
					continue
				}
				if err := tt.Put(cursor, a); err != nil {
					return nil, fmt.Errorf("place %q: %w", a.Title, err)
				}
				cursor = cursor.Add(a.Duration)
			}
		}
	}

	if err := tt.Put(c.cfg.NetworkingStart, timetable.NewOpenEnded(c.cfg.NetworkingTitle)); err != nil {
		return nil, fmt.Errorf("place networking: %w", err)
	}
	return tt, nil
}
