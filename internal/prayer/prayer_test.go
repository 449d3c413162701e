package prayer

import (
	"testing"
	"time"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Clock
		wantErr bool
	}{
		{
			name:  "plain time",
			input: "05:14",
			want:  Clock{Hour: 5, Minute: 14},
		},
		{
			name:  "timezone suffix stripped",
			input: "17:45 (BST)",
			want:  Clock{Hour: 17, Minute: 45},
		},
		{
			name:  "midnight",
			input: "00:00",
			want:  Clock{Hour: 0, Minute: 0},
		},
		{
			name:  "end of day",
			input: "23:59",
			want:  Clock{Hour: 23, Minute: 59},
		},
		{
			name:  "surrounding whitespace",
			input: "  12:10  ",
			want:  Clock{Hour: 12, Minute: 10},
		},
		{
			name:    "hour out of range",
			input:   "24:00",
			wantErr: true,
		},
		{
			name:    "minute out of range",
			input:   "12:60",
			wantErr: true,
		},
		{
			name:    "missing colon",
			input:   "1210",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
		{
			name:    "garbage",
			input:   "ab:cd",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseClock(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseClock(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseClock(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseClock(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestClockString(t *testing.T) {
	c := Clock{Hour: 5, Minute: 3}
	if got := c.String(); got != "05:03" {
		t.Errorf("String() = %q, want %q", got, "05:03")
	}
}

func TestClockAfter(t *testing.T) {
	tests := []struct {
		name string
		a, b Clock
		want bool
	}{
		{"later hour", Clock{13, 0}, Clock{12, 59}, true},
		{"same minute", Clock{12, 10}, Clock{12, 10}, false},
		{"earlier", Clock{5, 0}, Clock{6, 0}, false},
		{"later minute same hour", Clock{6, 30}, Clock{6, 29}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.After(tt.b); got != tt.want {
				t.Errorf("%v.After(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestClockOn(t *testing.T) {
	date := time.Date(2024, 3, 15, 22, 41, 9, 0, time.UTC)
	got := Clock{Hour: 5, Minute: 14}.On(date, time.UTC)
	want := time.Date(2024, 3, 15, 5, 14, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("On() = %v, want %v", got, want)
	}
}

func TestClockMatches(t *testing.T) {
	c := Clock{Hour: 17, Minute: 45}

	within := time.Date(2024, 3, 15, 17, 45, 59, 0, time.UTC)
	if !c.Matches(within) {
		t.Errorf("Matches(%v) = false, want true", within)
	}

	next := time.Date(2024, 3, 15, 17, 46, 0, 0, time.UTC)
	if c.Matches(next) {
		t.Errorf("Matches(%v) = true, want false", next)
	}
}

func TestValid(t *testing.T) {
	for _, n := range Order {
		if !Valid(n) {
			t.Errorf("Valid(%q) = false, want true", n)
		}
	}
	if Valid("Brunch") {
		t.Error(`Valid("Brunch") = true, want false`)
	}
}

func TestNotifiableExcludesSunrise(t *testing.T) {
	for _, n := range Notifiable {
		if n == Sunrise {
			t.Fatal("Notifiable must not contain Sunrise")
		}
	}
	if len(Notifiable) != 5 {
		t.Errorf("len(Notifiable) = %d, want 5", len(Notifiable))
	}
}

func sampleTimes() Times {
	return Times{
		Fajr:    {5, 15},
		Sunrise: {6, 35},
		Dhuhr:   {12, 10},
		Asr:     {15, 25},
		Maghrib: {17, 45},
		Isha:    {19, 15},
	}
}

func TestTimesComplete(t *testing.T) {
	full := sampleTimes()
	if !full.Complete() {
		t.Error("Complete() = false for full table")
	}

	delete(full, Asr)
	if full.Complete() {
		t.Error("Complete() = true with Asr missing")
	}
}

func TestTimesMonotonic(t *testing.T) {
	ordered := sampleTimes()
	if !ordered.Monotonic() {
		t.Error("Monotonic() = false for ordered table")
	}

	ordered[Fajr] = Clock{7, 0} // after sunrise
	if ordered.Monotonic() {
		t.Error("Monotonic() = true with Fajr after Sunrise")
	}
}

func TestTimesEqual(t *testing.T) {
	a := sampleTimes()
	b := sampleTimes()
	if !a.Equal(b) {
		t.Error("Equal() = false for identical tables")
	}

	b[Isha] = Clock{19, 16}
	if a.Equal(b) {
		t.Error("Equal() = true after changing Isha")
	}

	delete(b, Isha)
	if a.Equal(b) {
		t.Error("Equal() = true for tables of different size")
	}
}

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{"hours and minutes", 9*time.Hour + 59*time.Minute, "9h 59m"},
		{"under an hour", 42 * time.Minute, "42m"},
		{"zero", 0, "0m"},
		{"negative clamps", -5 * time.Minute, "0m"},
		{"exact hour", time.Hour, "1h 0m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatRemaining(tt.d); got != tt.want {
				t.Errorf("FormatRemaining(%v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}
