package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"02/01/2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	"January 2, 2006",
	"2 January 2006",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
}

var (
	countUnitRe = regexp.MustCompile(`^(\d+)\s+(day|days|week|weeks|month|months|year|years)$`)
	durationRe  = regexp.MustCompile(`^(\d+)([smhdwy])$`)
)

// ParseFlexibleDate turns loose user input into a time: shorthand words
// (today, tomorrow), relative phrases ("2 days", "3h ago", "last week"),
// or any of the common date layouts. Used by the --date flags.
func ParseFlexibleDate(input string, loc *time.Location) (time.Time, error) {
	input = strings.TrimSpace(strings.ToLower(input))
	if input == "" {
		return time.Time{}, fmt.Errorf("empty date input")
	}

	now := time.Now().In(loc)

	switch input {
	case "now":
		return now, nil
	case "today":
		return startOfDay(now, loc), nil
	case "yesterday":
		return startOfDay(now.AddDate(0, 0, -1), loc), nil
	case "tomorrow":
		return startOfDay(now.AddDate(0, 0, 1), loc), nil
	}

	if rest, ok := strings.CutSuffix(input, " ago"); ok {
		if d, err := parseDuration(rest); err == nil {
			return now.Add(-d), nil
		}
	}

	if period, ok := strings.CutPrefix(input, "last "); ok {
		switch period {
		case "day":
			return now.AddDate(0, 0, -1), nil
		case "week":
			return now.AddDate(0, 0, -7), nil
		case "month":
			return now.AddDate(0, -1, 0), nil
		case "year":
			return now.AddDate(-1, 0, 0), nil
		}
	}

	if period, ok := strings.CutPrefix(input, "this "); ok {
		switch period {
		case "week":
			// Week starts Monday.
			weekday := int(now.Weekday())
			if weekday == 0 {
				weekday = 7
			}
			return now.AddDate(0, 0, -(weekday - 1)), nil
		case "month":
			return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc), nil
		case "year":
			return time.Date(now.Year(), 1, 1, 0, 0, 0, 0, loc), nil
		}
	}

	// "N days", "2 weeks": a count back from now.
	if m := countUnitRe.FindStringSubmatch(input); m != nil {
		n, _ := strconv.Atoi(m[1])
		switch strings.TrimSuffix(m[2], "s") {
		case "day":
			return now.Add(-time.Duration(n) * 24 * time.Hour), nil
		case "week":
			return now.Add(-time.Duration(n) * 7 * 24 * time.Hour), nil
		case "month":
			return now.AddDate(0, -n, 0), nil
		case "year":
			return now.AddDate(-n, 0, 0), nil
		}
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, input, loc); err == nil {
			return t, nil
		}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, input); err == nil {
			return t.In(loc), nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", input)
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// parseDuration handles the compact "<n><unit>" form used in "... ago"
// phrases: 30m, 2h, 1d, 1w, 1y.
func parseDuration(input string) (time.Duration, error) {
	m := durationRe.FindStringSubmatch(input)
	if m == nil {
		return 0, fmt.Errorf("invalid duration format: %s", input)
	}
	n, _ := strconv.Atoi(m[1])

	unit := map[string]time.Duration{
		"s": time.Second,
		"m": time.Minute,
		"h": time.Hour,
		"d": 24 * time.Hour,
		"w": 7 * 24 * time.Hour,
		"y": 365 * 24 * time.Hour,
	}[m[2]]
	return time.Duration(n) * unit, nil
}
