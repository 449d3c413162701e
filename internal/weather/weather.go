// Package weather fetches current conditions from the Open-Meteo API.
// It is display-only: failures degrade to a placeholder string and are
// never surfaced as hard errors.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.open-meteo.com/v1"

// Unavailable is shown when no weather data could be fetched.
const Unavailable = "weather unavailable"

// Client communicates with the Open-Meteo forecast API. No API key is
// required.
type Client struct {
	httpClient *http.Client

	// BaseURL is exported for testing with httptest.
	BaseURL string
}

// NewClient creates a weather client with a 10s request timeout.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		BaseURL:    defaultBaseURL,
	}
}

// Report is the current weather at a location.
type Report struct {
	Temperature float64 // degrees Celsius
	Code        int     // WMO weather interpretation code
}

// String renders the report as e.g. "24.5°C, clear sky".
func (r Report) String() string {
	return fmt.Sprintf("%.1f°C, %s", r.Temperature, describe(r.Code))
}

type forecastResponse struct {
	CurrentWeather struct {
		Temperature float64 `json:"temperature"`
		WeatherCode int     `json:"weathercode"`
	} `json:"current_weather"`
}

// Current fetches the current weather for the given coordinates.
func (c *Client) Current(ctx context.Context, lat, lon float64) (*Report, error) {
	reqURL := fmt.Sprintf("%s/forecast?latitude=%f&longitude=%f&current_weather=true&timezone=auto",
		c.BaseURL, lat, lon)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building weather request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather API returned status %d", resp.StatusCode)
	}

	var data forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode weather response: %w", err)
	}

	return &Report{
		Temperature: data.CurrentWeather.Temperature,
		Code:        data.CurrentWeather.WeatherCode,
	}, nil
}

// describe maps a WMO weather code to a short English description.
func describe(code int) string {
	switch code {
	case 0:
		return "clear sky"
	case 1:
		return "mainly clear"
	case 2:
		return "partly cloudy"
	case 3:
		return "overcast"
	case 45, 48:
		return "fog"
	case 51, 53, 55:
		return "drizzle"
	case 61, 63:
		return "rain"
	case 65:
		return "heavy rain"
	case 71, 73, 75:
		return "snow"
	case 95:
		return "thunderstorm"
	default:
		return "unknown conditions"
	}
}
