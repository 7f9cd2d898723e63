/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package timetable

import "time"

// Activity is a named unit of work to be placed on a timetable. The title
// carries no meaning for scheduling; only the duration and the open-ended
// flag do. Activities are plain values and are never mutated after creation.
type Activity struct {
	Title     string
	Duration  time.Duration
	OpenEnded bool
}

// NewActivity returns a fixed-duration activity.
func NewActivity(title string, duration time.Duration) Activity {
	return Activity{Title: title, Duration: duration}
}

// NewOpenEnded returns an activity without a fixed end. Once started it runs
// until the end of available time, so it can only be the last timetable entry.
func NewOpenEnded(title string) Activity {
	return Activity{Title: title, OpenEnded: true}
}

// End returns when the activity finishes if started at the given time. For
// open-ended activities this is MaxTime.
func (a Activity) End(start time.Time) time.Time {
	if a.OpenEnded {
		return MaxTime
	}
	return start.Add(a.Duration)
}
