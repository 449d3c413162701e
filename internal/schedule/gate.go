package schedule

import (
	"time"

	"github.com/aalrahma/athan/internal/prayer"
)

// ledgerRetention bounds ledger growth. Entries older than this never
// match "today" again and can be dropped.
const ledgerRetention = 2 * 24 * time.Hour

type firedKey struct {
	name prayer.Name
	day  string // ISO date, sorts chronologically
}

// Gate fires each prayer's notification at most once per day. It matches
// the current minute against the timetable and remembers every
// (prayer, date) pair it has already reported, so repeated calls within
// the same minute, or a clock stepping back over the minute, stay silent.
type Gate struct {
	fired map[firedKey]struct{}
}

// NewGate returns an empty gate.
func NewGate() *Gate {
	return &Gate{fired: make(map[firedKey]struct{})}
}

// Tick returns the prayers whose time matches the current minute and that
// have not already fired today. Sunrise never fires. Callers invoke Tick
// once per minute; extra calls in the same minute return nothing.
func (g *Gate) Tick(now time.Time, times prayer.Times) []prayer.Name {
	if times == nil {
		return nil
	}

	day := now.Format("2006-01-02")
	var due []prayer.Name
	for _, name := range prayer.Notifiable {
		c, ok := times[name]
		if !ok || !c.Matches(now) {
			continue
		}
		key := firedKey{name: name, day: day}
		if _, done := g.fired[key]; done {
			continue
		}
		g.fired[key] = struct{}{}
		due = append(due, name)
	}

	g.prune(now)
	return due
}

// prune drops ledger entries more than two days old. ISO dates compare
// lexicographically, so a string comparison against the cutoff suffices.
func (g *Gate) prune(now time.Time) {
	cutoff := now.Add(-ledgerRetention).Format("2006-01-02")
	for key := range g.fired {
		if key.day < cutoff {
			delete(g.fired, key)
		}
	}
}
