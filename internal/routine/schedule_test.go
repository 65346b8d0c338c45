package routine

import (
	"testing"
	"time"
)

func day(d int) *int { return &d }

func TestInitialDueDaily(t *testing.T) {
	r := Routine{Title: "water plants", Type: TypeDaily, Frequency: 3}
	now := time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)

	due := InitialDue(r, now)
	if due.Format("2006-01-02 15:04") != "2026-03-13 14:30" {
		t.Fatalf("unexpected initial due: %s", due.Format(time.RFC3339))
	}
}

func TestInitialDueWeeklyNeverToday(t *testing.T) {
	// Created on a Wednesday, due on Wednesdays: first due must be exactly
	// one week out, not today.
	now := time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC) // Wednesday
	if now.Weekday() != time.Wednesday {
		t.Fatalf("fixture is not a Wednesday: %s", now.Weekday())
	}
	r := Routine{Title: "review", Type: TypeWeekly, Frequency: 1, DayOfWeek: day(3)}

	due := InitialDue(r, now)
	if due.Format("2006-01-02") != "2026-03-18" {
		t.Fatalf("unexpected initial due: %s", due.Format(time.RFC3339))
	}
}

func TestInitialDueWeeklyRollsToTargetWeekday(t *testing.T) {
	now := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC) // Monday
	r := Routine{Title: "review", Type: TypeWeekly, Frequency: 1, DayOfWeek: day(5)}

	due := InitialDue(r, now)
	if due.Weekday() != time.Friday || due.Format("2006-01-02") != "2026-03-13" {
		t.Fatalf("unexpected initial due: %s", due.Format(time.RFC3339))
	}
}

func TestInitialDueWeeklyMultiWeekFrequency(t *testing.T) {
	now := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC) // Monday
	r := Routine{Title: "deep clean", Type: TypeWeekly, Frequency: 3, DayOfWeek: day(1)}

	// Next Monday is 2026-03-16, plus two more weeks for frequency 3.
	due := InitialDue(r, now)
	if due.Format("2006-01-02") != "2026-03-30" {
		t.Fatalf("unexpected initial due: %s", due.Format(time.RFC3339))
	}
}

func TestInitialDueMonthlyFirst(t *testing.T) {
	now := time.Date(2026, 3, 20, 10, 0, 0, 0, time.UTC)
	r := Routine{Title: "budget", Type: TypeMonthly, Frequency: 1, DayOfMonth: MonthDayFirst}

	due := InitialDue(r, now)
	if due.Format("2006-01-02") != "2026-04-01" {
		t.Fatalf("unexpected initial due: %s", due.Format(time.RFC3339))
	}
}

func TestInitialDueMonthlyLast(t *testing.T) {
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	r := Routine{Title: "backup", Type: TypeMonthly, Frequency: 1, DayOfMonth: MonthDayLast}

	due := InitialDue(r, now)
	if due.Format("2006-01-02") != "2026-02-28" {
		t.Fatalf("unexpected initial due: %s", due.Format(time.RFC3339))
	}
}

func TestNextAfterCompletionUsesAnchorNotNow(t *testing.T) {
	anchor := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	r := Routine{Title: "water plants", Type: TypeDaily, Frequency: 2, NextDue: &anchor}
	// Completed three days late; the next due still advances from the anchor.
	now := time.Date(2026, 3, 5, 18, 0, 0, 0, time.UTC)

	next := NextAfterCompletion(r, now)
	if next.Format("2006-01-02 15:04") != "2026-03-04 09:00" {
		t.Fatalf("unexpected next due: %s", next.Format(time.RFC3339))
	}
}

func TestNextAfterCompletionWeeklyStepsWholeWeeks(t *testing.T) {
	anchor := time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC) // Wednesday
	r := Routine{Title: "review", Type: TypeWeekly, Frequency: 2, DayOfWeek: day(3), NextDue: &anchor}

	next := NextAfterCompletion(r, time.Date(2026, 3, 11, 20, 0, 0, 0, time.UTC))
	if next.Weekday() != time.Wednesday || next.Format("2006-01-02") != "2026-03-25" {
		t.Fatalf("unexpected next due: %s", next.Format(time.RFC3339))
	}
}

func TestNextAfterCompletionMonthlyLastLeapFebruary(t *testing.T) {
	anchor := time.Date(2024, 2, 29, 9, 0, 0, 0, time.UTC)
	r := Routine{Title: "backup", Type: TypeMonthly, Frequency: 1, DayOfMonth: MonthDayLast, NextDue: &anchor}

	next := NextAfterCompletion(r, time.Date(2024, 2, 29, 9, 30, 0, 0, time.UTC))
	if next.Format("2006-01-02") != "2024-03-31" {
		t.Fatalf("last-day clamp failed: %s", next.Format(time.RFC3339))
	}
}

func TestNextAfterCompletionMonthlyFirst(t *testing.T) {
	anchor := time.Date(2026, 4, 1, 7, 0, 0, 0, time.UTC)
	r := Routine{Title: "budget", Type: TypeMonthly, Frequency: 2, DayOfMonth: MonthDayFirst, NextDue: &anchor}

	next := NextAfterCompletion(r, anchor)
	if next.Format("2006-01-02") != "2026-06-01" {
		t.Fatalf("unexpected next due: %s", next.Format(time.RFC3339))
	}
}

func TestCompleteSideEffects(t *testing.T) {
	anchor := time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC)
	r := Routine{Title: "water plants", Type: TypeDaily, Frequency: 1, Streak: 4, NextDue: &anchor}
	now := time.Date(2026, 3, 12, 21, 15, 0, 0, time.UTC)

	got := Complete(r, now)
	if got.Streak != 5 {
		t.Fatalf("streak = %d, want 5", got.Streak)
	}
	if got.LastCompleted == nil || !got.LastCompleted.Equal(now) {
		t.Fatalf("lastCompleted = %v, want %s", got.LastCompleted, now)
	}
	if got.NextDue == nil || got.NextDue.Format("2006-01-02 15:04") != "2026-03-13 09:00" {
		t.Fatalf("nextDue = %v", got.NextDue)
	}
}

func TestStreakResetDaily(t *testing.T) {
	now := time.Date(2026, 3, 12, 8, 0, 0, 0, time.UTC)
	twoDaysAgo := now.AddDate(0, 0, -2)
	oneDayAgo := now.AddDate(0, 0, -1)

	routines := []Routine{
		{ID: "a", Type: TypeDaily, Frequency: 1, Streak: 6, LastCompleted: &twoDaysAgo},
		{ID: "b", Type: TypeDaily, Frequency: 1, Streak: 3, LastCompleted: &oneDayAgo},
	}

	out, changed := ApplyStreakResets(routines, now)
	if !changed {
		t.Fatal("expected a reset")
	}
	if out[0].Streak != 0 {
		t.Fatalf("routine a streak = %d, want 0", out[0].Streak)
	}
	if out[1].Streak != 3 {
		t.Fatalf("routine b streak = %d, want 3", out[1].Streak)
	}
}

func TestStreakResetIgnoresPartialDays(t *testing.T) {
	// Completed at 23:50 yesterday, checked at 00:10 today: one calendar day,
	// not enough to break a frequency-1 daily streak.
	now := time.Date(2026, 3, 12, 0, 10, 0, 0, time.UTC)
	late := time.Date(2026, 3, 11, 23, 50, 0, 0, time.UTC)

	routines := []Routine{{ID: "a", Type: TypeDaily, Frequency: 1, Streak: 9, LastCompleted: &late}}
	out, changed := ApplyStreakResets(routines, now)
	if changed || out[0].Streak != 9 {
		t.Fatalf("partial day broke the streak: changed=%v streak=%d", changed, out[0].Streak)
	}
}

func TestStreakResetWeeklyThreshold(t *testing.T) {
	now := time.Date(2026, 3, 12, 12, 0, 0, 0, time.UTC)
	sevenDays := now.AddDate(0, 0, -7)
	eightDays := now.AddDate(0, 0, -8)

	routines := []Routine{
		{ID: "keep", Type: TypeWeekly, Frequency: 1, Streak: 2, LastCompleted: &sevenDays},
		{ID: "drop", Type: TypeWeekly, Frequency: 1, Streak: 2, LastCompleted: &eightDays},
	}
	out, changed := ApplyStreakResets(routines, now)
	if !changed {
		t.Fatal("expected a reset")
	}
	if out[0].Streak != 2 || out[1].Streak != 0 {
		t.Fatalf("unexpected streaks: %d, %d", out[0].Streak, out[1].Streak)
	}
}

func TestStreakResetMonthlyUsesThirtyDayApproximation(t *testing.T) {
	// The monthly window is a fixed 30 days, even across a 31-day month.
	now := time.Date(2026, 1, 31, 12, 0, 0, 0, time.UTC)
	startOfMonth := time.Date(2025, 12, 31, 12, 0, 0, 0, time.UTC) // 31 days earlier

	routines := []Routine{{ID: "a", Type: TypeMonthly, Frequency: 1, Streak: 5, LastCompleted: &startOfMonth}}
	out, changed := ApplyStreakResets(routines, now)
	if !changed || out[0].Streak != 0 {
		t.Fatalf("expected 31-day gap to reset a monthly streak: changed=%v streak=%d", changed, out[0].Streak)
	}
}

func TestStreakResetSkipsNeverCompleted(t *testing.T) {
	routines := []Routine{{ID: "a", Type: TypeDaily, Frequency: 1, Streak: 0}}
	_, changed := ApplyStreakResets(routines, time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC))
	if changed {
		t.Fatal("routine without lastCompleted must be untouched")
	}
}

func TestStreakResetIdempotent(t *testing.T) {
	now := time.Date(2026, 3, 12, 8, 0, 0, 0, time.UTC)
	old := now.AddDate(0, 0, -10)
	routines := []Routine{{ID: "a", Type: TypeDaily, Frequency: 1, Streak: 4, LastCompleted: &old}}

	once, changed := ApplyStreakResets(routines, now)
	if !changed {
		t.Fatal("first pass should reset")
	}
	twice, changed := ApplyStreakResets(once, now)
	if changed {
		t.Fatal("second pass must be a no-op")
	}
	if twice[0].Streak != 0 {
		t.Fatalf("streak = %d, want 0", twice[0].Streak)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		r    Routine
		ok   bool
	}{
		{"daily ok", Routine{Title: "a", Type: TypeDaily, Frequency: 1}, true},
		{"weekly needs weekday", Routine{Title: "a", Type: TypeWeekly, Frequency: 1}, false},
		{"weekly weekday out of range", Routine{Title: "a", Type: TypeWeekly, Frequency: 1, DayOfWeek: day(7)}, false},
		{"monthly needs day selector", Routine{Title: "a", Type: TypeMonthly, Frequency: 1}, false},
		{"monthly ok", Routine{Title: "a", Type: TypeMonthly, Frequency: 1, DayOfMonth: MonthDayLast}, true},
		{"zero frequency", Routine{Title: "a", Type: TypeDaily, Frequency: 0}, false},
		{"bad type", Routine{Title: "a", Type: "yearly", Frequency: 1}, false},
		{"empty title", Routine{Type: TypeDaily, Frequency: 1}, false},
	}
	for _, tc := range cases {
		err := tc.r.Validate()
		if tc.ok && err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}
