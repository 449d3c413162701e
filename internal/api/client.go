// Package api is a minimal client for the Al Adhan prayer times API.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://api.aladhan.com/v1"

// Client communicates with the Al Adhan API. Requests pass through a
// client-side rate limiter so periodic refresh loops cannot hammer the
// free service.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter

	// BaseURL is the API base URL. Defaults to the Al Adhan API.
	// Exported for testing with httptest.
	BaseURL string
}

// NewClient creates a new API client with sensible defaults: a 10s
// request timeout and at most one request per second with small bursts.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Every(time.Second), 3),
		BaseURL: defaultBaseURL,
	}
}

// TimingsByCity fetches prayer times for the given date, city, and country.
func (c *Client) TimingsByCity(ctx context.Context, date time.Time, city, country string, method int) (*Response, error) {
	endpoint := fmt.Sprintf("%s/timingsByCity/%s", c.BaseURL, date.Format("02-01-2006"))

	params := url.Values{}
	params.Set("city", city)
	params.Set("country", country)
	if method >= 0 {
		params.Set("method", fmt.Sprintf("%d", method))
	}

	var resp Response
	if err := c.getJSON(ctx, endpoint, params, &resp); err != nil {
		return nil, err
	}
	if resp.Code != http.StatusOK {
		return nil, fmt.Errorf("API error: code=%d status=%s", resp.Code, resp.Status)
	}
	return &resp, nil
}

// TimingsByCoordinates fetches prayer times for the given date and
// coordinates.
func (c *Client) TimingsByCoordinates(ctx context.Context, date time.Time, lat, lon float64, method int) (*Response, error) {
	endpoint := fmt.Sprintf("%s/timings/%s", c.BaseURL, date.Format("02-01-2006"))

	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%f", lat))
	params.Set("longitude", fmt.Sprintf("%f", lon))
	if method >= 0 {
		params.Set("method", fmt.Sprintf("%d", method))
	}

	var resp Response
	if err := c.getJSON(ctx, endpoint, params, &resp); err != nil {
		return nil, err
	}
	if resp.Code != http.StatusOK {
		return nil, fmt.Errorf("API error: code=%d status=%s", resp.Code, resp.Status)
	}
	return &resp, nil
}

// HijriDate converts the given Gregorian date to its Hijri equivalent.
func (c *Client) HijriDate(ctx context.Context, date time.Time) (*HijriDate, error) {
	endpoint := fmt.Sprintf("%s/gToH/%s", c.BaseURL, date.Format("02-01-2006"))

	var resp HijriResponse
	if err := c.getJSON(ctx, endpoint, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Code != http.StatusOK {
		return nil, fmt.Errorf("API error: code=%d status=%s", resp.Code, resp.Status)
	}
	return &resp.Data.Hijri, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	reqURL := endpoint
	if len(params) > 0 {
		reqURL = fmt.Sprintf("%s?%s", endpoint, params.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode API response: %w", err)
	}
	return nil
}
