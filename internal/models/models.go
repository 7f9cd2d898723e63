/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package models

import (
	"time"

	"github.com/openconf/tracksmith/internal/timetable"
)

// Activity is a catalog entry describing a schedulable unit of work.
// Timetables built from activities are never persisted; only the catalog is.
type Activity struct {
	ID        string `gorm:"type:uuid;primaryKey"`
	Title     string `gorm:"index"`
	Duration  time.Duration
	OpenEnded bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Value converts the record to the core scheduling value.
func (a Activity) Value() timetable.Activity {
	if a.OpenEnded {
		return timetable.NewOpenEnded(a.Title)
	}
	return timetable.NewActivity(a.Title, a.Duration)
}
