/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package timetable

import (
	"errors"
	"testing"
	"time"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 6, 15, hour, min, 0, 0, time.UTC)
}

func TestPutOrdersEntriesByStart(t *testing.T) {
	tt := New()
	if err := tt.Put(at(13, 0), NewActivity("afternoon", 60*time.Minute)); err != nil {
		t.Fatalf("put afternoon: %v", err)
	}
	if err := tt.Put(at(9, 0), NewActivity("morning", 60*time.Minute)); err != nil {
		t.Fatalf("put morning: %v", err)
	}
	if err := tt.Put(at(11, 0), NewActivity("midday", 45*time.Minute)); err != nil {
		t.Fatalf("put midday: %v", err)
	}

	entries := tt.Entries()
	if len(entries) != 3 {
		t.Fatalf("entries len = %d, want 3", len(entries))
	}
	wantTitles := []string{"morning", "midday", "afternoon"}
	for i, e := range entries {
		if e.Activity.Title != wantTitles[i] {
			t.Errorf("entries[%d].Title = %q, want %q", i, e.Activity.Title, wantTitles[i])
		}
	}
	if tt.IsEmpty() {
		t.Error("IsEmpty() = true after inserts")
	}
}

func TestPutRejectsOverlapWithPast(t *testing.T) {
	tt := New()
	if err := tt.Put(at(9, 0), NewActivity("talk", 60*time.Minute)); err != nil {
		t.Fatalf("put: %v", err)
	}

	err := tt.Put(at(9, 30), NewActivity("late", 30*time.Minute))
	if !errors.Is(err, ErrOverlapWithPast) {
		t.Fatalf("err = %v, want ErrOverlapWithPast", err)
	}
	if tt.Len() != 1 {
		t.Fatalf("len = %d after rejected insert, want 1", tt.Len())
	}
}

func TestPutRejectsDuplicateStart(t *testing.T) {
	tt := New()
	if err := tt.Put(at(9, 0), NewActivity("first", 30*time.Minute)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := tt.Put(at(9, 0), NewActivity("second", 30*time.Minute)); !errors.Is(err, ErrOverlapWithPast) {
		t.Fatalf("err = %v, want ErrOverlapWithPast", err)
	}
}

func TestPutAllowsZeroDurationSharingStart(t *testing.T) {
	tt := New()
	if err := tt.Put(at(9, 0), NewActivity("lightning-a", 0)); err != nil {
		t.Fatalf("put lightning-a: %v", err)
	}
	if err := tt.Put(at(9, 0), NewActivity("lightning-b", 0)); err != nil {
		t.Fatalf("put lightning-b: %v", err)
	}
	if err := tt.Put(at(9, 0), NewActivity("talk", 30*time.Minute)); err != nil {
		t.Fatalf("put talk: %v", err)
	}

	if tt.Len() != 3 {
		t.Fatalf("len = %d, want 3", tt.Len())
	}
	if got, ok := tt.At(at(9, 0)); !ok || got.Title != "lightning-a" {
		t.Fatalf("At(9:00) = %v, %v, want lightning-a, true", got, ok)
	}
	if got, want := tt.End(), at(9, 30); !got.Equal(want) {
		t.Fatalf("End() = %v, want %v", got, want)
	}
	if got, want := tt.TotalDuration(), 30*time.Minute; got != want {
		t.Fatalf("TotalDuration() = %v, want %v", got, want)
	}

	// Once a fixed-duration entry occupies the start, it blocks further inserts
	// there like any ongoing entry.
	if err := tt.Put(at(9, 0), NewActivity("lightning-c", 0)); !errors.Is(err, ErrOverlapWithPast) {
		t.Fatalf("err = %v, want ErrOverlapWithPast", err)
	}
}

func TestPutRejectsOverlapWithFuture(t *testing.T) {
	tt := New()
	if err := tt.Put(at(10, 0), NewActivity("later", 60*time.Minute)); err != nil {
		t.Fatalf("put later: %v", err)
	}

	err := tt.Put(at(9, 30), NewActivity("long", 45*time.Minute))
	if !errors.Is(err, ErrOverlapWithFuture) {
		t.Fatalf("err = %v, want ErrOverlapWithFuture", err)
	}

	// An activity that ends exactly at the next start fits.
	if err := tt.Put(at(9, 30), NewActivity("snug", 30*time.Minute)); err != nil {
		t.Fatalf("put snug: %v", err)
	}
}

func TestPutRejectsOpenEndBeforeFuture(t *testing.T) {
	tt := New()
	if err := tt.Put(at(15, 0), NewActivity("talk", 30*time.Minute)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := tt.Put(at(12, 0), NewOpenEnded("mixer")); !errors.Is(err, ErrOpenEndBeforeFuture) {
		t.Fatalf("err = %v, want ErrOpenEndBeforeFuture", err)
	}
}

func TestOpenEndedAllowedAsLastEntry(t *testing.T) {
	tt := New()
	if err := tt.Put(at(9, 0), NewActivity("talk", 60*time.Minute)); err != nil {
		t.Fatalf("put talk: %v", err)
	}
	if err := tt.Put(at(17, 0), NewOpenEnded("networking")); err != nil {
		t.Fatalf("put networking: %v", err)
	}

	if got := tt.EndOfActiveAt(at(18, 0)); !got.Equal(MaxTime) {
		t.Fatalf("EndOfActiveAt(18:00) = %v, want MaxTime", got)
	}
	// Nothing can follow an open-ended entry.
	if err := tt.Put(at(20, 0), NewActivity("after", 10*time.Minute)); !errors.Is(err, ErrOverlapWithPast) {
		t.Fatalf("err = %v, want ErrOverlapWithPast", err)
	}
}

func TestEndOfActiveAt(t *testing.T) {
	tt := New()
	if got := tt.EndOfActiveAt(at(9, 0)); !got.Equal(MinTime) {
		t.Fatalf("empty table EndOfActiveAt = %v, want MinTime", got)
	}

	if err := tt.Put(at(9, 0), NewActivity("talk", 45*time.Minute)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if got, want := tt.EndOfActiveAt(at(9, 0)), at(9, 45); !got.Equal(want) {
		t.Errorf("EndOfActiveAt(9:00) = %v, want %v", got, want)
	}
	if got, want := tt.EndOfActiveAt(at(10, 30)), at(9, 45); !got.Equal(want) {
		t.Errorf("EndOfActiveAt(10:30) = %v, want %v", got, want)
	}
	if got := tt.EndOfActiveAt(at(8, 0)); !got.Equal(MinTime) {
		t.Errorf("EndOfActiveAt(8:00) = %v, want MinTime", got)
	}
}

func TestAtExactKeyLookup(t *testing.T) {
	tt := New()
	if err := tt.Put(at(9, 0), NewActivity("talk", 30*time.Minute)); err != nil {
		t.Fatalf("put: %v", err)
	}

	if got, ok := tt.At(at(9, 0)); !ok || got.Title != "talk" {
		t.Fatalf("At(9:00) = %v, %v, want talk, true", got, ok)
	}
	if _, ok := tt.At(at(9, 15)); ok {
		t.Fatal("At(9:15) found an entry, want not found")
	}
}

func TestEndAndTotalDuration(t *testing.T) {
	tt := New()
	if got := tt.End(); !got.Equal(MinTime) {
		t.Fatalf("empty End() = %v, want MinTime", got)
	}

	if err := tt.Put(at(9, 0), NewActivity("a", 90*time.Minute)); err != nil {
		t.Fatalf("put a: %v", err)
	}
	if err := tt.Put(at(10, 30), NewActivity("b", 30*time.Minute)); err != nil {
		t.Fatalf("put b: %v", err)
	}

	if got, want := tt.End(), at(11, 0); !got.Equal(want) {
		t.Errorf("End() = %v, want %v", got, want)
	}
	if got, want := tt.TotalDuration(), 2*time.Hour; got != want {
		t.Errorf("TotalDuration() = %v, want %v", got, want)
	}
}

func TestPutRejectsNegativeDuration(t *testing.T) {
	tt := New()
	err := tt.Put(at(9, 0), NewActivity("broken", -time.Minute))
	if !errors.Is(err, ErrNegativeDuration) {
		t.Fatalf("err = %v, want ErrNegativeDuration", err)
	}
}
