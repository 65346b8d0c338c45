package routine

import (
	"math"
	"time"
)

// InitialDue computes the first due date for a freshly created routine.
//
// Daily routines come due frequency days from now. Weekly routines roll
// forward to the next occurrence of DayOfWeek strictly in the future (a
// routine created on its own weekday is due next week, never today), plus
// (frequency-1) whole weeks. Monthly routines advance the month by frequency
// and clamp to the first or last calendar day of the target month.
func InitialDue(r Routine, now time.Time) time.Time {
	switch r.Type {
	case TypeDaily:
		return now.AddDate(0, 0, r.Frequency)
	case TypeWeekly:
		dow := 0
		if r.DayOfWeek != nil {
			dow = *r.DayOfWeek
		}
		until := (dow - int(now.Weekday()) + 7) % 7
		if until == 0 {
			until = 7
		}
		return now.AddDate(0, 0, until+(r.Frequency-1)*7)
	case TypeMonthly:
		return clampMonthDay(now, r.Frequency, r.DayOfMonth)
	}
	return now
}

// NextAfterCompletion advances the due date using the routine's current
// NextDue as the anchor, never the completion time. A routine that somehow
// lacks a due date falls back to now as the anchor.
func NextAfterCompletion(r Routine, now time.Time) time.Time {
	anchor := now
	if r.NextDue != nil {
		anchor = *r.NextDue
	}
	switch r.Type {
	case TypeDaily:
		return anchor.AddDate(0, 0, r.Frequency)
	case TypeWeekly:
		// The anchor already falls on the right weekday; step whole weeks.
		return anchor.AddDate(0, 0, r.Frequency*7)
	case TypeMonthly:
		return clampMonthDay(anchor, r.Frequency, r.DayOfMonth)
	}
	return anchor
}

// Complete records a completion at now: streak up by one, LastCompleted set,
// NextDue advanced from the previous anchor.
func Complete(r Routine, now time.Time) Routine {
	next := NextAfterCompletion(r, now)
	done := now
	r.Streak++
	r.LastCompleted = &done
	r.NextDue = &next
	return r
}

// streak reset thresholds, in days since the last completion. The monthly
// threshold is a fixed 30-day approximation regardless of calendar month
// length; that matches the shipped behavior and is kept as-is.
func resetThresholdDays(r Routine) int {
	switch r.Type {
	case TypeWeekly:
		return r.Frequency * 7
	case TypeMonthly:
		return r.Frequency * 30
	default:
		return r.Frequency
	}
}

// ApplyStreakResets zeroes the streak of every routine whose last completion
// is more than one period old. Both timestamps are truncated to midnight
// before differencing so partial days never count as a full day. Routines
// that were never completed are left untouched.
//
// The returned slice shares no state with the input; changed reports whether
// any streak was actually zeroed, so callers can skip redundant persistence.
// The pass is idempotent: running it twice is the same as running it once.
func ApplyStreakResets(routines []Routine, now time.Time) (out []Routine, changed bool) {
	out = make([]Routine, len(routines))
	copy(out, routines)
	today := midnight(now)
	for i, r := range out {
		if r.LastCompleted == nil || r.Streak == 0 {
			continue
		}
		elapsed := today.Sub(midnight(*r.LastCompleted))
		days := int(math.Floor(elapsed.Hours() / 24))
		if days > resetThresholdDays(r) {
			out[i].Streak = 0
			changed = true
		}
	}
	return out, changed
}

// clampMonthDay moves base forward by months months and clamps the day to
// the first or last calendar day of the target month, keeping base's clock.
func clampMonthDay(base time.Time, months int, day DayOfMonth) time.Time {
	y, m, _ := base.Date()
	hh, mm, ss := base.Clock()
	if day == MonthDayLast {
		// Day zero of the following month is the last day of the target month.
		return time.Date(y, m+time.Month(months)+1, 0, hh, mm, ss, base.Nanosecond(), base.Location())
	}
	return time.Date(y, m+time.Month(months), 1, hh, mm, ss, base.Nanosecond(), base.Location())
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
