// Package prayer defines the core domain types: prayer names, wall-clock
// times, and the daily timetable produced by the resolver chain.
package prayer

import (
	"fmt"
	"strings"
	"time"
)

// Name identifies a prayer or solar event.
type Name string

// The six daily events, in chronological order.
const (
	Fajr    Name = "Fajr"
	Sunrise Name = "Sunrise"
	Dhuhr   Name = "Dhuhr"
	Asr     Name = "Asr"
	Maghrib Name = "Maghrib"
	Isha    Name = "Isha"
)

// Order lists every event in chronological order.
var Order = []Name{Fajr, Sunrise, Dhuhr, Asr, Maghrib, Isha}

// Notifiable lists the five prayers that trigger adhan notifications.
// Sunrise is informational only: it is never "next" and never notified.
var Notifiable = []Name{Fajr, Dhuhr, Asr, Maghrib, Isha}

// Valid reports whether n is a known prayer or event name.
func Valid(n Name) bool {
	for _, o := range Order {
		if o == n {
			return true
		}
	}
	return false
}

// Clock is a wall-clock time of day with minute precision and no date
// component.
type Clock struct {
	Hour   int
	Minute int
}

// String renders the clock as 24-hour "HH:MM".
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// MinuteOfDay returns the clock as minutes since midnight.
func (c Clock) MinuteOfDay() int {
	return c.Hour*60 + c.Minute
}

// After reports whether c is strictly later in the day than other.
func (c Clock) After(other Clock) bool {
	return c.MinuteOfDay() > other.MinuteOfDay()
}

// On anchors the clock value to the given calendar date and location.
func (c Clock) On(date time.Time, loc *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), c.Hour, c.Minute, 0, 0, loc)
}

// Matches reports whether t falls inside the same clock minute as c.
func (c Clock) Matches(t time.Time) bool {
	return t.Hour() == c.Hour && t.Minute() == c.Minute
}

// ParseClock parses a time string like "15:02" or "15:02 (BST)" into a
// Clock. Remote providers sometimes append a timezone suffix, which is
// stripped before parsing.
func ParseClock(raw string) (Clock, error) {
	s := strings.TrimSpace(raw)
	if idx := strings.Index(s, " "); idx != -1 {
		s = s[:idx]
	}

	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return Clock{}, fmt.Errorf("invalid time format: %q", raw)
	}

	var hour, min int
	if _, err := fmt.Sscanf(parts[0], "%d", &hour); err != nil {
		return Clock{}, fmt.Errorf("invalid hour in %q: %w", raw, err)
	}
	if _, err := fmt.Sscanf(parts[1], "%d", &min); err != nil {
		return Clock{}, fmt.Errorf("invalid minute in %q: %w", raw, err)
	}
	if hour < 0 || hour > 23 || min < 0 || min > 59 {
		return Clock{}, fmt.Errorf("time out of range: %q", raw)
	}

	return Clock{Hour: hour, Minute: min}, nil
}

// Times is a full day's timetable. It is created whole and replaced whole:
// callers swap in a new table on refresh rather than editing entries,
// so readers never observe a half-updated day.
type Times map[Name]Clock

// Complete reports whether all six events are present.
func (t Times) Complete() bool {
	for _, n := range Order {
		if _, ok := t[n]; !ok {
			return false
		}
	}
	return true
}

// Monotonic reports whether the times increase in chronological event
// order. Tables computed at moderate latitudes always satisfy this;
// it exists so tests can assert it.
func (t Times) Monotonic() bool {
	prev := -1
	for _, n := range Order {
		c, ok := t[n]
		if !ok {
			return false
		}
		m := c.MinuteOfDay()
		if m < prev {
			return false
		}
		prev = m
	}
	return true
}

// Equal reports whether two tables hold identical times.
func (t Times) Equal(other Times) bool {
	if len(t) != len(other) {
		return false
	}
	for n, c := range t {
		if oc, ok := other[n]; !ok || oc != c {
			return false
		}
	}
	return true
}

// FormatRemaining formats a duration as "Xh Ym" or "Ym" if less than an hour.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		return "0m"
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60

	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
