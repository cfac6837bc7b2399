// Package upstream issues validated HTTP GETs against the two weather APIs
// this service fuses: a short-range radar nowcast and a longer-range
// location forecast.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aapris/weatherlamp/internal/wl"
)

const (
	// DefaultBaseURL is the upstream weather API's base URL.
	DefaultBaseURL = "https://api.met.no/weatherapi"
	userAgent      = "WeatherLamp/0.4 github.com/aapris/WeatherLamp"

	statusOK                   = http.StatusOK
	statusNonAuthoritativeInfo = http.StatusNonAuthoritativeInfo
	statusUnprocessableEntity  = http.StatusUnprocessableEntity
)

// Client issues outbound requests against the upstream weather APIs.
type Client struct {
	HTTP *http.Client
	// BaseURL overrides DefaultBaseURL, mainly for tests.
	BaseURL string
}

// New builds a Client around the given outbound HTTP client.
func New(httpClient *http.Client) *Client {
	return &Client{HTTP: httpClient, BaseURL: DefaultBaseURL}
}

// Result is the raw outcome of one upstream call.
type Result struct {
	// OK is true for 200 and 203 responses whose body validated.
	OK bool
	// NoData is true for a 422 response: the API has no data for this
	// coordinate, which is not a failure.
	NoData bool
	Body   []byte
}

// Fetch issues a single GET against castType's API for (lat, lon). It does
// not retry and does not consult any cache.
func (c *Client) Fetch(ctx context.Context, castType wl.CastType, lat, lon float64) (Result, error) {
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	url := fmt.Sprintf("%s/%s/2.0/complete?lat=%.3f&lon=%.3f", base, castType, lat, lon)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Result{}, fmt.Errorf("upstream: build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("upstream: request %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("upstream: read body: %w", err)
	}

	switch resp.StatusCode {
	case statusOK, statusNonAuthoritativeInfo:
		// fall through to validation below
	case statusUnprocessableEntity:
		return Result{NoData: true}, nil
	default:
		return Result{}, fmt.Errorf("upstream: %s returned status %d", url, resp.StatusCode)
	}

	if !isValidResponse(body) {
		return Result{}, fmt.Errorf("upstream: %s returned malformed response shape", url)
	}
	return Result{OK: true, Body: body}, nil
}

// FetchWithTimeout wraps Fetch with a per-call deadline.
func (c *Client) FetchWithTimeout(ctx context.Context, castType wl.CastType, lat, lon float64, timeout time.Duration) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return c.Fetch(ctx, castType, lat, lon)
}

func isValidResponse(body []byte) bool {
	var shape struct {
		Properties struct {
			Timeseries []json.RawMessage `json:"timeseries"`
		} `json:"properties"`
	}
	if err := json.Unmarshal(body, &shape); err != nil {
		return false
	}
	return len(shape.Properties.Timeseries) > 0
}
