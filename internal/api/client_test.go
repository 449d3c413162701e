package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const timingsBody = `{
	"code": 200,
	"status": "OK",
	"data": {
		"timings": {
			"Fajr": "05:15",
			"Sunrise": "06:35",
			"Dhuhr": "12:10",
			"Asr": "15:25",
			"Maghrib": "17:45",
			"Isha": "19:15"
		},
		"date": {
			"readable": "15 Mar 2024",
			"hijri": {
				"date": "05-09-1445",
				"day": "5",
				"month": {"number": 9, "en": "Ramadan"},
				"year": "1445",
				"designation": {"abbreviated": "AH", "expanded": "Anno Hegirae"}
			}
		},
		"meta": {
			"latitude": 24.7136,
			"longitude": 46.6753,
			"timezone": "Asia/Riyadh",
			"method": {"id": 4, "name": "Umm Al-Qura University, Makkah"}
		}
	}
}`

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewClient()
	client.BaseURL = server.URL
	return client, server
}

func TestTimingsByCity(t *testing.T) {
	var gotPath, gotQuery string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte(timingsBody))
	})
	defer server.Close()

	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	resp, err := client.TimingsByCity(context.Background(), date, "Riyadh", "Saudi Arabia", 4)
	if err != nil {
		t.Fatalf("TimingsByCity() error: %v", err)
	}

	if gotPath != "/timingsByCity/15-03-2024" {
		t.Errorf("request path = %q, want %q", gotPath, "/timingsByCity/15-03-2024")
	}
	if gotQuery != "city=Riyadh&country=Saudi+Arabia&method=4" {
		t.Errorf("request query = %q", gotQuery)
	}
	if resp.Data.Timings.Fajr != "05:15" {
		t.Errorf("Fajr = %q, want %q", resp.Data.Timings.Fajr, "05:15")
	}
	if resp.Data.Meta.Method.ID != 4 {
		t.Errorf("method ID = %d, want 4", resp.Data.Meta.Method.ID)
	}
}

func TestTimingsByCoordinates(t *testing.T) {
	var gotPath string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(timingsBody))
	})
	defer server.Close()

	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	resp, err := client.TimingsByCoordinates(context.Background(), date, 24.7136, 46.6753, 4)
	if err != nil {
		t.Fatalf("TimingsByCoordinates() error: %v", err)
	}

	if gotPath != "/timings/15-03-2024" {
		t.Errorf("request path = %q, want %q", gotPath, "/timings/15-03-2024")
	}
	if resp.Data.Timings.Isha != "19:15" {
		t.Errorf("Isha = %q, want %q", resp.Data.Timings.Isha, "19:15")
	}
}

func TestHijriDate(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"code": 200,
			"status": "OK",
			"data": {
				"hijri": {
					"date": "05-09-1445",
					"day": "5",
					"month": {"number": 9, "en": "Ramadan"},
					"year": "1445",
					"designation": {"abbreviated": "AH"}
				}
			}
		}`))
	})
	defer server.Close()

	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	hijri, err := client.HijriDate(context.Background(), date)
	if err != nil {
		t.Fatalf("HijriDate() error: %v", err)
	}

	if got := hijri.Format(); got != "5 Ramadan 1445 AH" {
		t.Errorf("Format() = %q, want %q", got, "5 Ramadan 1445 AH")
	}
}

func TestHijriDateFormatEmpty(t *testing.T) {
	var empty HijriDate
	if got := empty.Format(); got != "" {
		t.Errorf("Format() on zero value = %q, want empty", got)
	}
}

func TestAPIErrorCode(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code": 400, "status": "Bad Request", "data": {}}`))
	})
	defer server.Close()

	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	if _, err := client.TimingsByCity(context.Background(), date, "", "", 4); err == nil {
		t.Fatal("expected error for non-200 API code")
	}
}

func TestHTTPError(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "backend down", http.StatusBadGateway)
	})
	defer server.Close()

	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	if _, err := client.TimingsByCoordinates(context.Background(), date, 0, 0, 4); err == nil {
		t.Fatal("expected error for HTTP 502")
	}
}

func TestContextCancellation(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(timingsBody))
	})
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	if _, err := client.TimingsByCity(ctx, date, "Riyadh", "Saudi Arabia", 4); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
