package stats

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "stats.json"))
	if err != nil {
		t.Fatalf("NewStore() error: %v", err)
	}
	return s.WithClock(func() time.Time {
		return time.Date(2024, 3, 15, 20, 0, 0, 0, time.UTC)
	})
}

func TestLoadMissingFile(t *testing.T) {
	s := newTestStore(t)
	st := s.Load()
	if st.CompletedToday != 0 || st.StreakDays != 0 {
		t.Errorf("missing file should yield zeroed stats, got %+v", st)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	s := newTestStore(t)
	if err := os.WriteFile(s.path, []byte("oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	st := s.Load()
	if st != (Stats{}) {
		t.Errorf("corrupt file should yield zeroed stats, got %+v", st)
	}
}

func TestMarkCompleted(t *testing.T) {
	s := newTestStore(t)

	for i := 1; i <= 5; i++ {
		st, counted, err := s.MarkCompleted()
		if err != nil {
			t.Fatalf("MarkCompleted() error: %v", err)
		}
		if !counted {
			t.Fatalf("mark %d should be counted", i)
		}
		if st.CompletedToday != i {
			t.Errorf("CompletedToday = %d, want %d", st.CompletedToday, i)
		}
	}

	// The sixth mark of the day is rejected.
	st, counted, err := s.MarkCompleted()
	if err != nil {
		t.Fatalf("MarkCompleted() error: %v", err)
	}
	if counted {
		t.Error("sixth mark should not be counted")
	}
	if st.CompletedToday != 5 || st.CompletedMonth != 5 {
		t.Errorf("stats after cap = %+v", st)
	}
}

func TestRollDayExtendsStreak(t *testing.T) {
	s := newTestStore(t)
	if err := s.Save(Stats{CompletedToday: 5, CompletedMonth: 20, StreakDays: 3}); err != nil {
		t.Fatal(err)
	}

	if err := s.RollDay(time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("RollDay() error: %v", err)
	}

	st := s.Load()
	if st.StreakDays != 4 {
		t.Errorf("StreakDays = %d, want 4", st.StreakDays)
	}
	if st.CompletedToday != 0 {
		t.Errorf("CompletedToday = %d, want 0", st.CompletedToday)
	}
	if st.CompletedMonth != 20 {
		t.Errorf("CompletedMonth = %d, want 20", st.CompletedMonth)
	}
}

func TestRollDayResetsStreak(t *testing.T) {
	s := newTestStore(t)
	if err := s.Save(Stats{CompletedToday: 3, StreakDays: 7}); err != nil {
		t.Fatal(err)
	}

	if err := s.RollDay(time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatal(err)
	}

	if st := s.Load(); st.StreakDays != 0 {
		t.Errorf("StreakDays = %d, want 0 after incomplete day", st.StreakDays)
	}
}

func TestRollDayResetsMonth(t *testing.T) {
	s := newTestStore(t)
	if err := s.Save(Stats{CompletedToday: 5, CompletedMonth: 150, StreakDays: 1}); err != nil {
		t.Fatal(err)
	}

	if err := s.RollDay(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatal(err)
	}

	if st := s.Load(); st.CompletedMonth != 0 {
		t.Errorf("CompletedMonth = %d, want 0 on the first of the month", st.CompletedMonth)
	}
}

func TestSaveStampsLastUpdate(t *testing.T) {
	s := newTestStore(t)
	if err := s.Save(Stats{CompletedToday: 1}); err != nil {
		t.Fatal(err)
	}

	want := time.Date(2024, 3, 15, 20, 0, 0, 0, time.UTC)
	if st := s.Load(); !st.LastUpdate.Equal(want) {
		t.Errorf("LastUpdate = %v, want %v", st.LastUpdate, want)
	}
}
