/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package dispatch

import (
	"errors"
	"testing"
	"time"

	"github.com/openconf/tracksmith/internal/timetable"
)

func conferenceTalks() []timetable.Activity {
	mins := func(title string, m int) timetable.Activity {
		return timetable.NewActivity(title, time.Duration(m)*time.Minute)
	}
	return []timetable.Activity{
		mins("Writing Fast Tests Against Enterprise Rails", 60),
		mins("Overdoing it in Python", 45),
		mins("Lua for the Masses", 30),
		mins("Ruby Errors from Mismatched Gem Versions", 45),
		mins("Common Ruby Errors", 45),
		mins("Rails for Python Developers", 5),
		mins("Communicating Over Distance", 60),
		mins("Accounting-Driven Development", 45),
		mins("Woah", 30),
		mins("Sit Down and Write", 30),
		mins("Pair Programming vs Noise", 45),
		mins("Rails Magic", 60),
		mins("Ruby on Rails", 60),
		mins("Clojure Ate Scala (on my project)", 45),
		mins("Programming in the Boondocks of Seattle", 30),
		mins("Ruby vs. Clojure for Back-End Development", 30),
		mins("Ruby on Rails Legacy App Maintenance", 60),
		mins("A World Without HackerNews", 30),
		mins("User Interface CSS in Rails Apps", 30),
	}
}

func TestConferenceDayShape(t *testing.T) {
	day := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	c, err := NewConference(DefaultConferenceConfig(day))
	if err != nil {
		t.Fatalf("new conference: %v", err)
	}

	tt, err := c.Dispatch(conferenceTalks())
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	lunch, ok := tt.At(dayAt(12, 0))
	if !ok || lunch.Title != "Lunch" {
		t.Fatalf("At(12:00) = %v, %v, want Lunch", lunch, ok)
	}
	networking, ok := tt.At(dayAt(17, 0))
	if !ok || networking.Title != "Networking Event" {
		t.Fatalf("At(17:00) = %v, %v, want Networking Event", networking, ok)
	}
	if !networking.OpenEnded {
		t.Error("networking event is not open-ended")
	}

	// Sessions are packed optimally: with this talk list both sessions can
	// be filled wall to wall.
	var morning, afternoon time.Duration
	for _, e := range tt.Entries() {
		switch {
		case e.Activity.Title == "Lunch" || e.Activity.OpenEnded:
		case e.Start.Before(dayAt(12, 0)):
			morning += e.Activity.Duration
		default:
			afternoon += e.Activity.Duration
		}
	}
	if morning != 3*time.Hour {
		t.Errorf("morning total = %v, want 3h", morning)
	}
	if afternoon != 4*time.Hour {
		t.Errorf("afternoon total = %v, want 4h", afternoon)
	}

	// No overlap anywhere in the day.
	entries := tt.Entries()
	for i := 1; i < len(entries); i++ {
		prev := entries[i-1]
		if entries[i].Start.Before(prev.Activity.End(prev.Start)) {
			t.Fatalf("entry %q starts before %q ends", entries[i].Activity.Title, prev.Activity.Title)
		}
	}
}

func TestConferenceSchedulesZeroDurationTalksAtSessionBoundary(t *testing.T) {
	day := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	c, err := NewConference(DefaultConferenceConfig(day))
	if err != nil {
		t.Fatalf("new conference: %v", err)
	}

	// The keynote fills the morning exactly, pushing the lightning talks onto
	// the lunch boundary at 12:00.
	acts := []timetable.Activity{
		timetable.NewActivity("keynote", 3*time.Hour),
		timetable.NewActivity("lightning-a", 0),
		timetable.NewActivity("lightning-b", 0),
		timetable.NewActivity("workshop", 4*time.Hour),
	}
	tt, err := c.Dispatch(acts)
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	if tt.Len() != 6 {
		t.Fatalf("len = %d, want 6", tt.Len())
	}
	if got, want := tt.TotalDuration(), 8*time.Hour; got != want {
		t.Fatalf("total = %v, want %v", got, want)
	}

	var lunch bool
	for _, e := range tt.Entries() {
		if e.Activity.Title == "Lunch" && e.Start.Equal(dayAt(12, 0)) {
			lunch = true
		}
	}
	if !lunch {
		t.Fatal("lunch missing from plan")
	}
}

func TestConferenceLeavesAfternoonEmptyWhenNothingFits(t *testing.T) {
	day := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	cfg := DefaultConferenceConfig(day)
	cfg.AfternoonBudget = 10 * time.Minute
	cfg.AfternoonStart = dayAt(13, 0)
	c, err := NewConference(cfg)
	if err != nil {
		t.Fatalf("new conference: %v", err)
	}

	// Two talks: one fills the morning check, the leftover is too long for
	// the tiny afternoon.
	acts := []timetable.Activity{
		timetable.NewActivity("keynote", 3*time.Hour),
		timetable.NewActivity("workshop", 2*time.Hour),
	}
	tt, err := c.Dispatch(acts)
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}

	if _, ok := tt.At(dayAt(13, 0)); ok {
		t.Fatal("afternoon slot is filled, want empty")
	}
	if _, ok := tt.At(dayAt(12, 0)); !ok {
		t.Fatal("lunch missing")
	}
	if _, ok := tt.At(dayAt(17, 0)); !ok {
		t.Fatal("networking missing")
	}
}

func TestConferenceMorningInfeasiblePropagates(t *testing.T) {
	day := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	c, err := NewConference(DefaultConferenceConfig(day))
	if err != nil {
		t.Fatalf("new conference: %v", err)
	}
	if _, err := c.Dispatch(fixed(5 * time.Hour)); !errors.Is(err, ErrInfeasible) {
		t.Fatalf("err = %v, want ErrInfeasible", err)
	}
}

func TestNewConferenceRejectsOverlappingSessions(t *testing.T) {
	day := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	cfg := DefaultConferenceConfig(day)
	cfg.MorningBudget = 4 * time.Hour
	if _, err := NewConference(cfg); !errors.Is(err, ErrBadConfig) {
		t.Fatalf("morning past lunch err = %v, want ErrBadConfig", err)
	}

	cfg = DefaultConferenceConfig(day)
	cfg.LunchDuration = 2 * time.Hour
	if _, err := NewConference(cfg); !errors.Is(err, ErrBadConfig) {
		t.Fatalf("long lunch err = %v, want ErrBadConfig", err)
	}

	cfg = DefaultConferenceConfig(day)
	cfg.AfternoonBudget = 5 * time.Hour
	if _, err := NewConference(cfg); !errors.Is(err, ErrBadConfig) {
		t.Fatalf("afternoon past networking err = %v, want ErrBadConfig", err)
	}
}
