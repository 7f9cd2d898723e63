/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package dispatch

import (
	"fmt"
	"time"

	"github.com/openconf/tracksmith/internal/timetable"
)

// Optimal dispatches the subset of activities with the maximum combined
// duration not exceeding the budget, placed back-to-back from the start
// time in their original relative order.
//
// The search works on indicator vectors over the input. The pool begins
// with the full set; every candidate over budget is replaced by the
// candidates formed by clearing one more included position, restricted to
// positions after the highest position already cleared. That restriction
// enumerates each distinct subset at most once (colexicographic subset
// generation), and candidates within budget are never expanded further
// since removing elements cannot raise their total. Worst case O(2^n)
// expansions, far fewer when large subsets already fit.
//
// Which optimum is picked when several subsets tie on total duration is
// implementation-defined and may differ between runs; the total itself is
// always the same. All state is per call, so a single Optimal value is
// safe for concurrent use.
type Optimal struct {
	start  time.Time
	budget time.Duration
}

// NewOptimal creates a dispatcher that schedules from start and keeps the
// combined duration within budget. Both are required.
func NewOptimal(start time.Time, budget time.Duration) (*Optimal, error) {
	if start.IsZero() {
		return nil, fmt.Errorf("%w: start time required", ErrBadConfig)
	}
	if budget < 0 {
		return nil, fmt.Errorf("%w: negative budget %s", ErrBadConfig, budget)
	}
	return &Optimal{start: start, budget: budget}, nil
}

// Start returns the configured start time.
func (o *Optimal) Start() time.Time { return o.start }

// Budget returns the configured budget.
func (o *Optimal) Budget() time.Duration { return o.budget }

// Dispatch returns a timetable holding an optimal selection of the given
// activities. It fails before any search when the collection is nil, when
// any activity is open-ended or has a negative duration, or when not a
// single activity fits the budget.
func (o *Optimal) Dispatch(activities []timetable.Activity) (*timetable.Timetable, error) {
	selected, err := o.solve(activities)
	if err != nil {
		return nil, err
	}
	return o.place(activities, selected)
}

// solve validates the input and returns the indicator vector of an optimal
// feasible subset.
func (o *Optimal) solve(activities []timetable.Activity) ([]bool, error) {
	if activities == nil {
		return nil, ErrNilInput
	}

	feasible := false
	for _, a := range activities {
		if a.OpenEnded {
			return nil, fmt.Errorf("%w: %q", ErrOpenEndedActivity, a.Title)
		}
		if a.Duration < 0 {
			return nil, fmt.Errorf("%w: %q", timetable.ErrNegativeDuration, a.Title)
		}
		if a.Duration <= o.budget {
			feasible = true
		}
	}
	if !feasible {
		return nil, fmt.Errorf("%w of %s", ErrInfeasible, o.budget)
	}

	best := o.search(activities)
	return best.bits, nil
}

// candidate is one point in the search space: an indicator vector over the
// input plus its running total, so feasibility checks never re-sum the
// vector. lastCleared is the highest position cleared so far; expansions
// only clear positions beyond it.
type candidate struct {
	bits        []bool
	total       time.Duration
	lastCleared int
}

func (c candidate) without(i int, d time.Duration) candidate {
	bits := make([]bool, len(c.bits))
	copy(bits, c.bits)
	bits[i] = false
	return candidate{bits: bits, total: c.total - d, lastCleared: i}
}

func (o *Optimal) search(activities []timetable.Activity) candidate {
	full := candidate{bits: make([]bool, len(activities)), lastCleared: -1}
	for i, a := range activities {
		full.bits[i] = true
		full.total += a.Duration
	}

	pool := []candidate{full}
	for {
		next := make([]candidate, 0, len(pool))
		expanded := false
		for _, c := range pool {
			if c.total <= o.budget {
				next = append(next, c)
				continue
			}
			expanded = true
			for i := c.lastCleared + 1; i < len(c.bits); i++ {
				if c.bits[i] {
					next = append(next, c.without(i, activities[i].Duration))
				}
			}
		}
		pool = next
		if !expanded {
			break
		}
	}

	// Validation guarantees at least one non-empty solution survives.
	best := pool[0]
	for _, c := range pool[1:] {
		if c.total > best.total {
			best = c
		}
	}
	return best
}

// place walks the input in original order and starts each selected activity
// at the end of the previous entry. A feasible selection cannot conflict, so
// any insertion error here is a programming error and is surfaced as such.
func (o *Optimal) place(activities []timetable.Activity, selected []bool) (*timetable.Timetable, error) {
	tt := timetable.New()
	for i, a := range activities {
		if !selected[i] {
			continue
		}
		start := o.start
		if !tt.IsEmpty() {
			start = tt.End()
		}
		if err := tt.Put(start, a); err != nil {
			return nil, fmt.Errorf("place %q: %w", a.Title, err)
		}
	}
	return tt, nil
}
