/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package dispatch selects activities for a timetable under a time budget.
// The Optimal dispatcher is an exact solver: the subset it schedules has the
// maximum combined duration of any subset that fits the budget.
package dispatch

import (
	"errors"

	"github.com/openconf/tracksmith/internal/timetable"
)

var (
	// ErrNilInput is returned when the activity collection is absent.
	ErrNilInput = errors.New("dispatch: nil activity collection")
	// ErrOpenEndedActivity is returned when an open-ended activity is given
	// to a dispatcher that requires fixed durations.
	ErrOpenEndedActivity = errors.New("dispatch: open-ended activity not supported")
	// ErrInfeasible is returned when no single activity fits the budget.
	// The empty timetable is never reported as a solution.
	ErrInfeasible = errors.New("dispatch: no activity fits within the budget")
	// ErrBadConfig is returned by constructors for missing or inconsistent
	// start/budget configuration.
	ErrBadConfig = errors.New("dispatch: invalid configuration")
)

// Dispatcher arranges a collection of activities into a timetable.
// Implementations decide which activities are kept and where they start;
// a successful dispatch always returns a conflict-free timetable.
type Dispatcher interface {
	Dispatch(activities []timetable.Activity) (*timetable.Timetable, error)
}
