package utils

import (
	"fmt"
	"regexp"
	"sort"
	"time"
)

const (
	DateLayout = "2006-01-02"
	SlotLayout = "15:04"
)

// Matches the wizard's client-side check: something@something.tld, no spaces.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// NormalizeSlot canonicalizes a time-of-day value to HH:MM. It accepts the
// forms seen in the wild ("9:30", "09:30", "09:30:00") and rejects anything
// that is not a real time of day.
func NormalizeSlot(slot string) (string, error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, slot); err == nil {
			return t.Format(SlotLayout), nil
		}
	}
	return "", fmt.Errorf("invalid time slot %q", slot)
}

// NormalizeSlots canonicalizes, dedups, and sorts a slot list ascending.
func NormalizeSlots(slots []string) ([]string, error) {
	seen := make(map[string]bool, len(slots))
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		normalized, err := NormalizeSlot(s)
		if err != nil {
			return nil, err
		}
		if seen[normalized] {
			continue
		}
		seen[normalized] = true
		out = append(out, normalized)
	}
	sort.Strings(out)
	return out, nil
}

// ParseDate parses a YYYY-MM-DD calendar day into midnight UTC.
func ParseDate(date string) (time.Time, error) {
	return time.Parse(DateLayout, date)
}

// DateOnly truncates an instant to its calendar day at midnight UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SlotInstant combines a calendar day and an HH:MM slot into the instant the
// seating starts, used by the completion sweep.
func SlotInstant(date time.Time, slot string) (time.Time, error) {
	t, err := time.Parse(SlotLayout, slot)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time slot %q", slot)
	}
	y, m, d := date.UTC().Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, time.UTC), nil
}
