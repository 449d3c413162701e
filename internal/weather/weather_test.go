package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCurrent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("current_weather"); got != "true" {
			t.Errorf("current_weather = %q, want %q", got, "true")
		}
		w.Write([]byte(`{"current_weather": {"temperature": 31.4, "weathercode": 0}}`))
	}))
	defer server.Close()

	client := NewClient()
	client.BaseURL = server.URL

	report, err := client.Current(context.Background(), 24.7136, 46.6753)
	if err != nil {
		t.Fatalf("Current() error: %v", err)
	}

	if report.Temperature != 31.4 {
		t.Errorf("Temperature = %v, want 31.4", report.Temperature)
	}
	if got := report.String(); got != "31.4°C, clear sky" {
		t.Errorf("String() = %q, want %q", got, "31.4°C, clear sky")
	}
}

func TestCurrentHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "oops", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient()
	client.BaseURL = server.URL

	if _, err := client.Current(context.Background(), 0, 0); err == nil {
		t.Fatal("expected error for HTTP 500")
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{0, "clear sky"},
		{3, "overcast"},
		{48, "fog"},
		{65, "heavy rain"},
		{95, "thunderstorm"},
		{42, "unknown conditions"},
	}

	for _, tt := range tests {
		if got := describe(tt.code); got != tt.want {
			t.Errorf("describe(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}
