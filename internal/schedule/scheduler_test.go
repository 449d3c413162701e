package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aalrahma/athan/internal/prayer"
)

func testTimes() prayer.Times {
	return prayer.Times{
		prayer.Fajr:    {Hour: 5, Minute: 15},
		prayer.Sunrise: {Hour: 6, Minute: 35},
		prayer.Dhuhr:   {Hour: 12, Minute: 10},
		prayer.Asr:     {Hour: 15, Minute: 25},
		prayer.Maghrib: {Hour: 17, Minute: 45},
		prayer.Isha:    {Hour: 19, Minute: 15},
	}
}

func at(hour, min int) time.Time {
	return time.Date(2024, 3, 15, hour, min, 0, 0, time.UTC)
}

func TestNextBeforeRefresh(t *testing.T) {
	s := NewScheduler()
	_, ok := s.Next(at(9, 0))
	assert.False(t, ok)
}

func TestNext(t *testing.T) {
	tests := []struct {
		name          string
		now           time.Time
		wantName      prayer.Name
		wantTomorrow  bool
		wantRemaining time.Duration
	}{
		{
			name:          "early morning gives fajr",
			now:           at(3, 0),
			wantName:      prayer.Fajr,
			wantRemaining: 2*time.Hour + 15*time.Minute,
		},
		{
			name:          "one minute before dhuhr",
			now:           at(12, 9),
			wantName:      prayer.Dhuhr,
			wantRemaining: time.Minute,
		},
		{
			name:          "sunrise is skipped",
			now:           at(6, 0),
			wantName:      prayer.Dhuhr,
			wantRemaining: 6*time.Hour + 10*time.Minute,
		},
		{
			name:          "exact minute counts as passed",
			now:           at(12, 10),
			wantName:      prayer.Asr,
			wantRemaining: 3*time.Hour + 15*time.Minute,
		},
		{
			name:          "after isha rolls to tomorrow's fajr",
			now:           at(19, 16),
			wantName:      prayer.Fajr,
			wantTomorrow:  true,
			wantRemaining: 9*time.Hour + 59*time.Minute,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScheduler()
			s.Refresh(testTimes(), tt.now)

			u, ok := s.Next(tt.now)
			require.True(t, ok)
			assert.Equal(t, tt.wantName, u.Name)
			assert.Equal(t, tt.wantTomorrow, u.Tomorrow)
			assert.Equal(t, tt.wantRemaining, u.Remaining)
			assert.Equal(t, u.Remaining, u.At.Sub(tt.now))
		})
	}
}

func TestUpcomingLabel(t *testing.T) {
	u := Upcoming{Name: prayer.Fajr}
	assert.Equal(t, "Fajr", u.Label())

	u.Tomorrow = true
	assert.Equal(t, "Fajr (tomorrow)", u.Label())
}

func TestStale(t *testing.T) {
	s := NewScheduler()
	assert.True(t, s.Stale(at(9, 0)), "empty scheduler is stale")

	s.Refresh(testTimes(), at(9, 0))
	assert.False(t, s.Stale(at(23, 59)))
	assert.True(t, s.Stale(at(9, 0).AddDate(0, 0, 1)))
}

func TestRefreshReplacesWholesale(t *testing.T) {
	s := NewScheduler()
	s.Refresh(testTimes(), at(9, 0))

	updated := testTimes()
	updated[prayer.Isha] = prayer.Clock{Hour: 19, Minute: 20}
	s.Refresh(updated, at(9, 1))

	assert.True(t, s.Times().Equal(updated))
}
