// Package stats persists prayer completion statistics: how many of
// today's five prayers are done, the monthly total, and the streak of
// fully completed days. Stored as JSON in the user's data directory; a
// corrupt or missing file yields zeroed stats, never an error that
// blocks the application.
package stats

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	statsDirName  = "athan"
	statsFileName = "stats.json"

	// dailyPrayers is the number of prayers counted per day.
	dailyPrayers = 5
)

// Stats is the persisted record.
type Stats struct {
	CompletedToday int       `json:"completed_today"`
	CompletedMonth int       `json:"completed_month"`
	StreakDays     int       `json:"streak_days"`
	LastUpdate     time.Time `json:"last_update"`
}

// Store reads and writes the stats file.
type Store struct {
	path string
	now  func() time.Time
}

// NewStore creates a Store at the given path. An empty path uses the
// XDG data directory.
func NewStore(path string) (*Store, error) {
	if path == "" {
		dir := os.Getenv("XDG_DATA_HOME")
		if dir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("cannot determine home directory: %w", err)
			}
			dir = filepath.Join(home, ".local", "share")
		}
		path = filepath.Join(dir, statsDirName, statsFileName)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create stats directory: %w", err)
	}

	return &Store{path: path, now: time.Now}, nil
}

// WithClock overrides the time source. For tests.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// Load reads the stats file. Missing or corrupt files yield zeroed stats.
func (s *Store) Load() Stats {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Stats{}
	}

	var st Stats
	if err := json.Unmarshal(data, &st); err != nil {
		return Stats{}
	}
	return st
}

// Save writes the stats file, stamping LastUpdate.
func (s *Store) Save(st Stats) error {
	st.LastUpdate = s.now()

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write stats file: %w", err)
	}
	return nil
}

// MarkCompleted records one completed prayer, capped at five per day.
// Returns the updated stats and whether the mark was counted.
func (s *Store) MarkCompleted() (Stats, bool, error) {
	st := s.Load()
	if st.CompletedToday >= dailyPrayers {
		return st, false, nil
	}

	st.CompletedToday++
	st.CompletedMonth++
	if err := s.Save(st); err != nil {
		return st, false, err
	}
	return st, true, nil
}

// RollDay performs the midnight rollover: a fully completed day extends
// the streak, anything less resets it, and the first day of a month
// zeroes the monthly total. The daily counter always restarts at zero.
func (s *Store) RollDay(today time.Time) error {
	st := s.Load()

	if st.CompletedToday >= dailyPrayers {
		st.StreakDays++
	} else {
		st.StreakDays = 0
	}
	st.CompletedToday = 0

	if today.Day() == 1 {
		st.CompletedMonth = 0
	}

	return s.Save(st)
}
