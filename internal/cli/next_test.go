package cli

import (
	"testing"
	"time"

	"github.com/aalrahma/athan/internal/config"
	"github.com/aalrahma/athan/internal/prayer"
	"github.com/aalrahma/athan/internal/schedule"
)

func upcomingAsr() schedule.Upcoming {
	at := time.Date(2024, 3, 15, 15, 25, 0, 0, time.UTC)
	return schedule.Upcoming{
		Name:      prayer.Asr,
		At:        at,
		Remaining: 2*time.Hour + 15*time.Minute,
	}
}

func withFormat(t *testing.T, format string) {
	t.Helper()
	orig := flagFormat
	flagFormat = format
	t.Cleanup(func() { flagFormat = orig })
}

func TestFormatUpcoming(t *testing.T) {
	tests := []struct {
		name   string
		format string
		want   string
	}{
		{"full", formatFull, "Asr 15:25 (2h 15m)"},
		{"time remaining", formatTimeRemaining, "2h 15m"},
		{"next prayer time", formatNextPrayerTime, "15:25"},
		{"name and time", formatNameAndTime, "Asr 15:25"},
		{"name and remaining", formatNameAndRemain, "Asr 2h 15m"},
		{"template", "{{.Name}} in {{.Hours}}h{{.Minutes}}m", "Asr in 2h15m"},
		{"unknown falls back", "bogus", "Asr 15:25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withFormat(t, tt.format)
			if got := formatUpcoming(upcomingAsr(), "15:04"); got != tt.want {
				t.Errorf("formatUpcoming() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatUpcomingTomorrow(t *testing.T) {
	withFormat(t, formatNameAndRemain)

	u := upcomingAsr()
	u.Name = prayer.Fajr
	u.Tomorrow = true
	u.Remaining = 9*time.Hour + 59*time.Minute

	if got := formatUpcoming(u, "15:04"); got != "Fajr (tomorrow) 9h 59m" {
		t.Errorf("formatUpcoming() = %q", got)
	}
}

func TestFormatUpcomingTwelveHour(t *testing.T) {
	withFormat(t, formatNextPrayerTime)

	if got := formatUpcoming(upcomingAsr(), "3:04 PM"); got != "3:25 PM" {
		t.Errorf("formatUpcoming() = %q, want %q", got, "3:25 PM")
	}
}

func TestFormatCustomBadTemplate(t *testing.T) {
	withFormat(t, "{{.Name")

	got := formatUpcoming(upcomingAsr(), "15:04")
	if got == "" {
		t.Error("a broken template must still produce output")
	}
}

func TestGoTimeFormat(t *testing.T) {
	if got := goTimeFormat(&config.Config{TimeFormat: "12h"}); got != "3:04 PM" {
		t.Errorf("goTimeFormat(12h) = %q", got)
	}
	if got := goTimeFormat(&config.Config{TimeFormat: "24h"}); got != "15:04" {
		t.Errorf("goTimeFormat(24h) = %q", got)
	}
	if got := goTimeFormat(&config.Config{}); got != "15:04" {
		t.Errorf("goTimeFormat(unset) = %q", got)
	}
}
