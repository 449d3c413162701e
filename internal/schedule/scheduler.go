// Package schedule tracks the next upcoming prayer and decides when
// notifications fire. Both stateful types here are owned by a single
// clock driver that invokes them serially; they are not safe for
// concurrent use and do not try to be.
package schedule

import (
	"time"

	"github.com/aalrahma/athan/internal/prayer"
)

// Upcoming describes the next prayer relative to some instant.
type Upcoming struct {
	Name      prayer.Name
	Tomorrow  bool // true when today's prayers have all passed
	At        time.Time
	Remaining time.Duration
}

// Label returns the display name, marking the overnight rollover.
func (u Upcoming) Label() string {
	if u.Tomorrow {
		return string(u.Name) + " (tomorrow)"
	}
	return string(u.Name)
}

// Scheduler holds the current day's timetable and answers "what is next".
// It never fetches: when the state goes stale the caller refreshes it
// through the resolver chain and swaps in a whole new table.
type Scheduler struct {
	times prayer.Times
	day   time.Time // midnight of the table's reference date
}

// NewScheduler returns an empty scheduler. Next reports nothing until the
// first Refresh.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Refresh replaces the timetable wholesale and anchors it to the date of
// ref.
func (s *Scheduler) Refresh(times prayer.Times, ref time.Time) {
	s.times = times
	s.day = midnight(ref)
}

// Times returns the current timetable (nil before the first Refresh).
func (s *Scheduler) Times() prayer.Times {
	return s.times
}

// Stale reports whether the held table belongs to a different calendar
// day than now.
func (s *Scheduler) Stale(now time.Time) bool {
	if s.times == nil {
		return true
	}
	y1, m1, d1 := s.day.Date()
	y2, m2, d2 := now.Date()
	return y1 != y2 || m1 != m2 || d1 != d2
}

// Next returns the first prayer strictly after now, skipping Sunrise.
// A prayer whose time equals the current minute counts as already passed;
// the notification gate, not the scheduler, owns the boundary minute.
// When all five have passed, tomorrow's Fajr is returned using today's
// Fajr clock value. ok is false before the first Refresh.
func (s *Scheduler) Next(now time.Time) (u Upcoming, ok bool) {
	if s.times == nil {
		return Upcoming{}, false
	}

	for _, name := range prayer.Notifiable {
		c, present := s.times[name]
		if !present {
			continue
		}
		at := c.On(now, now.Location())
		if at.After(now) {
			return Upcoming{Name: name, At: at, Remaining: at.Sub(now)}, true
		}
	}

	// All of today's prayers have passed: roll over to tomorrow's Fajr,
	// assuming the clock value is unchanged day to day until the next
	// refresh.
	fajr, present := s.times[prayer.Fajr]
	if !present {
		return Upcoming{}, false
	}
	at := fajr.On(now.AddDate(0, 0, 1), now.Location())
	return Upcoming{Name: prayer.Fajr, Tomorrow: true, At: at, Remaining: at.Sub(now)}, true
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
