// Package weather implements the Weather Updater (spec §4.I): sampling
// points along a planned path against an external weather API with
// bounded concurrency and retry-on-transient-failure, then writing
// samples back through to the Grid Store.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"time"

	"github.com/rushiparkhe18/JalMarg-2.0/internal/apperr"
	"github.com/rushiparkhe18/JalMarg-2.0/internal/grid"
)

// Fetcher retrieves a single weather sample for a coordinate.
type Fetcher interface {
	Fetch(ctx context.Context, lat, lon float64) (grid.Weather, error)
}

// NewOutboundClient configures the HTTP client used to call the
// weather API, tuned the same way the Grid Store's HTTP-facing
// dependents are.
func NewOutboundClient() *http.Client {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
		MaxIdleConns:          256,
		MaxIdleConnsPerHost:   128,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	return &http.Client{Transport: transport, Timeout: 5 * time.Second}
}

// HTTPFetcher calls a REST weather API of the form
// GET {baseURL}?lat={lat}&lon={lon}&key={apiKey}, expecting a JSON body shaped like
// grid.Weather.
type HTTPFetcher struct {
	Client  *http.Client
	BaseURL string
	APIKey  string
}

func NewHTTPFetcher(client *http.Client, baseURL, apiKey string) *HTTPFetcher {
	if client == nil {
		client = NewOutboundClient()
	}
	return &HTTPFetcher{Client: client, BaseURL: baseURL, APIKey: apiKey}
}

type apiResponse struct {
	WindSpeed   float64 `json:"wind_speed"`
	WindDir     float64 `json:"wind_direction"`
	WaveHeight  float64 `json:"wave_height"`
	Visibility  float64 `json:"visibility"`
	Temperature float64 `json:"temperature"`
	Timestamp   string  `json:"timestamp"`
}

// maxAttempts bounds the retry loop; only 429 and 503 are retried
// (spec §4.I).
const maxAttempts = 3

func (f *HTTPFetcher) Fetch(ctx context.Context, lat, lon float64) (grid.Weather, error) {
	url := fmt.Sprintf("%s?lat=%f&lon=%f&key=%s", f.BaseURL, lat, lon, f.APIKey)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		w, retryable, err := f.tryFetch(ctx, url)
		if err == nil {
			return w, nil
		}
		lastErr = err
		if !retryable || attempt == maxAttempts {
			break
		}
		backoff := time.Duration(attempt*attempt) * 200 * time.Millisecond
		backoff += time.Duration(rand.Intn(100)) * time.Millisecond
		select {
		case <-ctx.Done():
			return grid.Weather{}, ctx.Err()
		case <-time.After(backoff):
		}
	}
	return grid.Weather{}, apperr.Wrap(apperr.WeatherFetchPartial, "weather fetch failed after retries", lastErr)
}

func (f *HTTPFetcher) tryFetch(ctx context.Context, url string) (grid.Weather, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return grid.Weather{}, false, fmt.Errorf("build weather request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.Client.Do(req)
	if err != nil {
		return grid.Weather{}, false, fmt.Errorf("weather request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusServiceUnavailable {
		return grid.Weather{}, true, fmt.Errorf("weather upstream status %d", resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return grid.Weather{}, false, fmt.Errorf("weather upstream status %d: %s", resp.StatusCode, string(b))
	}

	var api apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&api); err != nil {
		return grid.Weather{}, false, fmt.Errorf("decode weather response: %w", err)
	}

	sampledAt := time.Now()
	if t, err := time.Parse(time.RFC3339, api.Timestamp); err == nil {
		sampledAt = t
	}

	return grid.Weather{
		WindSpeed:     api.WindSpeed,
		WindDirection: api.WindDir,
		WaveHeight:    api.WaveHeight,
		Visibility:    api.Visibility,
		Temperature:   api.Temperature,
		Timestamp:     sampledAt,
	}, false, nil
}
