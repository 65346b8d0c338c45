package utils

import (
	"testing"
	"time"
)

func TestParseFlexibleDateFormats(t *testing.T) {
	loc := time.UTC
	cases := []string{
		"2026-03-11",
		"2026/03/11",
		"Mar 11, 2026",
		"11 March 2026",
	}
	for _, in := range cases {
		got, err := ParseFlexibleDate(in, loc)
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
		if got.Year() != 2026 || got.Month() != time.March || got.Day() != 11 {
			t.Fatalf("parse %q = %v", in, got)
		}
	}
}

func TestParseFlexibleDateNaturalLanguage(t *testing.T) {
	loc := time.UTC
	now := time.Now().In(loc)

	today, err := ParseFlexibleDate("today", loc)
	if err != nil {
		t.Fatal(err)
	}
	if today.Hour() != 0 || today.Day() != now.Day() {
		t.Fatalf("today = %v", today)
	}

	tomorrow, err := ParseFlexibleDate("Tomorrow", loc)
	if err != nil {
		t.Fatal(err)
	}
	if !tomorrow.After(today) {
		t.Fatalf("tomorrow %v not after today %v", tomorrow, today)
	}
}

func TestParseFlexibleDateRejectsGarbage(t *testing.T) {
	if _, err := ParseFlexibleDate("not a date", time.UTC); err == nil {
		t.Fatal("expected error")
	}
	if _, err := ParseFlexibleDate("   ", time.UTC); err == nil {
		t.Fatal("expected error for blank input")
	}
}

func TestParseFlexibleDateRelative(t *testing.T) {
	loc := time.UTC
	now := time.Now().In(loc)

	twoDays, err := ParseFlexibleDate("2 days", loc)
	if err != nil {
		t.Fatal(err)
	}
	if diff := now.Sub(twoDays); diff < 47*time.Hour || diff > 49*time.Hour {
		t.Fatalf("2 days back = %v (diff %v)", twoDays, diff)
	}

	threeHoursAgo, err := ParseFlexibleDate("3h ago", loc)
	if err != nil {
		t.Fatal(err)
	}
	if diff := now.Sub(threeHoursAgo); diff < 2*time.Hour || diff > 4*time.Hour {
		t.Fatalf("3h ago = %v (diff %v)", threeHoursAgo, diff)
	}

	lastWeek, err := ParseFlexibleDate("last week", loc)
	if err != nil {
		t.Fatal(err)
	}
	if !lastWeek.Before(now.AddDate(0, 0, -6)) {
		t.Fatalf("last week = %v", lastWeek)
	}
}
