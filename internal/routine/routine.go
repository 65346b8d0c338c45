package routine

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type Type string

const (
	TypeDaily   Type = "daily"
	TypeWeekly  Type = "weekly"
	TypeMonthly Type = "monthly"
)

func (t Type) IsValid() bool {
	switch t {
	case TypeDaily, TypeWeekly, TypeMonthly:
		return true
	default:
		return false
	}
}

// DayOfMonth selects which day a monthly routine lands on.
type DayOfMonth string

const (
	MonthDayFirst DayOfMonth = "first"
	MonthDayLast  DayOfMonth = "last"
)

var (
	ErrInvalidType      = errors.New("routine: invalid type")
	ErrInvalidFrequency = errors.New("routine: frequency must be positive")
	ErrInvalidWeekday   = errors.New("routine: dayOfWeek must be 0-6")
	ErrInvalidMonthDay  = errors.New("routine: dayOfMonth must be first or last")
)

// Routine is a recurring reminder with a cadence rule and streak history.
// JSON field names match the on-disk routines.json format.
type Routine struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Type          Type       `json:"type"`
	Frequency     int        `json:"frequency"`
	DayOfWeek     *int       `json:"dayOfWeek,omitempty"`  // 0=Sunday..6=Saturday, weekly only
	DayOfMonth    DayOfMonth `json:"dayOfMonth,omitempty"` // monthly only
	Content       string     `json:"content,omitempty"`
	Streak        int        `json:"streak"`
	LastCompleted *time.Time `json:"lastCompleted,omitempty"`
	NextDue       *time.Time `json:"nextDue,omitempty"`
}

func (r Routine) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("routine: title is required")
	}
	if !r.Type.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidType, r.Type)
	}
	if r.Frequency <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidFrequency, r.Frequency)
	}
	if r.Type == TypeWeekly {
		if r.DayOfWeek == nil || *r.DayOfWeek < 0 || *r.DayOfWeek > 6 {
			return ErrInvalidWeekday
		}
	}
	if r.Type == TypeMonthly {
		if r.DayOfMonth != MonthDayFirst && r.DayOfMonth != MonthDayLast {
			return fmt.Errorf("%w: %q", ErrInvalidMonthDay, r.DayOfMonth)
		}
	}
	return nil
}

// Overdue reports whether the routine's next occurrence is strictly before
// the start of now's day.
func (r Routine) Overdue(now time.Time) bool {
	if r.NextDue == nil {
		return false
	}
	return r.NextDue.Before(midnight(now))
}
