/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package timetable provides an ordered, non-overlapping placement of
// activities against start times. Conflicts are rejected at insertion time,
// so a timetable handed to a caller is valid by construction.
package timetable

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// Sentinels returned by EndOfActiveAt.
var (
	// MinTime is returned when the timetable has no entry at or before the
	// queried time.
	MinTime = time.Time{}
	// MaxTime is the end of an open-ended entry.
	MaxTime = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC)
)

var (
	// ErrOverlapWithPast rejects an insertion that starts before the end of
	// the entry active at that time.
	ErrOverlapWithPast = errors.New("timetable: start overlaps ongoing entry")
	// ErrOverlapWithFuture rejects an insertion whose computed end runs past
	// the start of an already-placed later entry.
	ErrOverlapWithFuture = errors.New("timetable: entry overlaps future entry")
	// ErrOpenEndBeforeFuture rejects an open-ended insertion while a later
	// entry exists.
	ErrOpenEndBeforeFuture = errors.New("timetable: open-ended entry before future entry")
	// ErrNegativeDuration rejects an activity with a negative duration.
	ErrNegativeDuration = errors.New("timetable: negative duration")
)

// Entry pairs a start time with the activity placed there.
type Entry struct {
	Start    time.Time
	Activity Activity
}

// Timetable maps start times to activities, ordered by start ascending.
// The zero value is not usable; create one with New. A timetable is not
// safe for concurrent mutation.
type Timetable struct {
	entries []Entry
}

// New creates an empty timetable.
func New() *Timetable {
	return &Timetable{}
}

// Put inserts the activity at the given start. The insert is atomic: on any
// conflict the timetable is left unchanged and the returned error matches
// ErrOverlapWithPast, ErrOverlapWithFuture or ErrOpenEndBeforeFuture via
// errors.Is. A zero-duration entry ends at its own start and occupies no
// time, so it does not block a later insert at the same start.
func (t *Timetable) Put(start time.Time, a Activity) error {
	if !a.OpenEnded && a.Duration < 0 {
		return fmt.Errorf("%w: %q", ErrNegativeDuration, a.Title)
	}

	if end := t.EndOfActiveAt(start); end.After(start) {
		return fmt.Errorf("%w: ongoing until %s", ErrOverlapWithPast, end.Format("15:04"))
	}

	idx := sort.Search(len(t.entries), func(i int) bool {
		return t.entries[i].Start.After(start)
	})
	if idx < len(t.entries) {
		next := t.entries[idx].Start
		if a.OpenEnded {
			return fmt.Errorf("%w: next entry starts at %s", ErrOpenEndBeforeFuture, next.Format("15:04"))
		}
		if next.Before(start.Add(a.Duration)) {
			return fmt.Errorf("%w: %s for %s, but next entry starts at %s",
				ErrOverlapWithFuture, start.Format("15:04"), a.Duration, next.Format("15:04"))
		}
	}

	t.entries = append(t.entries, Entry{})
	copy(t.entries[idx+1:], t.entries[idx:])
	t.entries[idx] = Entry{Start: start, Activity: a}
	return nil
}

// EndOfActiveAt returns the end time of the entry that starts at or
// immediately before the given time. It returns MinTime for an empty
// timetable (or when no entry starts at or before the time) and MaxTime
// when that entry is open-ended.
func (t *Timetable) EndOfActiveAt(at time.Time) time.Time {
	idx := sort.Search(len(t.entries), func(i int) bool {
		return t.entries[i].Start.After(at)
	})
	if idx == 0 {
		return MinTime
	}
	prev := t.entries[idx-1]
	return prev.Activity.End(prev.Start)
}

// At returns the activity starting exactly at the given time. When
// zero-duration entries share the start, the earliest inserted is returned.
func (t *Timetable) At(start time.Time) (Activity, bool) {
	idx := sort.Search(len(t.entries), func(i int) bool {
		return !t.entries[i].Start.Before(start)
	})
	if idx < len(t.entries) && t.entries[idx].Start.Equal(start) {
		return t.entries[idx].Activity, true
	}
	return Activity{}, false
}

// IsEmpty reports whether the timetable has no entries.
func (t *Timetable) IsEmpty() bool {
	return len(t.entries) == 0
}

// Len returns the number of entries.
func (t *Timetable) Len() int {
	return len(t.entries)
}

// Entries returns the entries in start order. The slice is a copy.
func (t *Timetable) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// End returns the end time of the last entry, or MinTime if the timetable
// is empty.
func (t *Timetable) End() time.Time {
	if len(t.entries) == 0 {
		return MinTime
	}
	last := t.entries[len(t.entries)-1]
	return last.Activity.End(last.Start)
}

// TotalDuration sums the durations of all fixed-duration entries.
// Open-ended entries contribute nothing.
func (t *Timetable) TotalDuration() time.Duration {
	var total time.Duration
	for _, e := range t.entries {
		if !e.Activity.OpenEnded {
			total += e.Activity.Duration
		}
	}
	return total
}
