// Package openmeteo fetches current conditions and a daily forecast from the
// keyless Open-Meteo API.
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/heartmarshall/nivara-backend/internal/domain"
	"github.com/heartmarshall/nivara-backend/internal/provider"
)

const (
	// DefaultBaseURL is the public forecast endpoint.
	DefaultBaseURL = "https://api.open-meteo.com/v1/forecast"

	currentFields = "temperature_2m,relative_humidity_2m"
	dailyFields   = "temperature_2m_max,weather_code"

	msgUnavailable = "Weather sync failed"
)

// Provider fetches forecasts from Open-Meteo.
type Provider struct {
	baseURL    string
	httpClient *http.Client
	retryDelay time.Duration
	log        *slog.Logger
}

// NewProvider creates a Provider for baseURL. An empty baseURL selects the
// public endpoint.
func NewProvider(baseURL string, timeout time.Duration, logger *slog.Logger) *Provider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Provider{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		retryDelay: 500 * time.Millisecond,
		log:        logger.With("adapter", "openmeteo"),
	}
}

// Forecast returns current temperature and humidity plus the daily series
// for the given coordinates.
func (p *Provider) Forecast(ctx context.Context, lat, lon float64) (provider.Forecast, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("current", currentFields)
	q.Set("daily", dailyFields)
	q.Set("timezone", "auto")
	reqURL := p.baseURL + "?" + q.Encode()

	p.log.DebugContext(ctx, "openmeteo request", slog.Float64("lat", lat), slog.Float64("lon", lon))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return provider.Forecast{}, fmt.Errorf("openmeteo: create request: %w", err)
	}

	resp, err := p.doWithRetry(ctx, req)
	if err != nil {
		if ctx.Err() != nil {
			return provider.Forecast{}, fmt.Errorf("openmeteo: %w", ctx.Err())
		}
		p.log.ErrorContext(ctx, "openmeteo request failed", slog.String("error", err.Error()))
		return provider.Forecast{}, fmt.Errorf("openmeteo: request failed: %w",
			domain.NewUpstreamError(domain.ErrUpstream, msgUnavailable))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return provider.Forecast{}, fmt.Errorf("openmeteo: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Reason != "" {
			return provider.Forecast{}, fmt.Errorf("openmeteo: status %d: %w", resp.StatusCode,
				domain.NewUpstreamError(domain.ErrUpstream, apiErr.Reason))
		}
		return provider.Forecast{}, fmt.Errorf("openmeteo: unexpected status %d: %w", resp.StatusCode,
			domain.NewUpstreamError(domain.ErrUpstream, msgUnavailable))
	}

	var parsed apiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		p.log.ErrorContext(ctx, "openmeteo decode failed", slog.String("error", err.Error()))
		return provider.Forecast{}, fmt.Errorf("openmeteo: decode json: %w",
			domain.NewUpstreamError(domain.ErrUpstream, msgUnavailable))
	}

	return mapAPIResponse(parsed), nil
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (p *Provider) doWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	resp, err := p.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}

	// Don't retry if context is already cancelled.
	if ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	p.log.WarnContext(ctx, "openmeteo retry", slog.String("reason", reason))

	// Close body from the failed attempt before retrying.
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(p.retryDelay):
	}

	return p.httpClient.Do(req)
}

// mapAPIResponse zips the parallel daily arrays. Days missing a value in any
// array are dropped.
func mapAPIResponse(r apiResponse) provider.Forecast {
	n := min(len(r.Daily.Time), len(r.Daily.Temperature2mMax), len(r.Daily.WeatherCode))

	out := provider.Forecast{
		TemperatureC: r.Current.Temperature2m,
		HumidityPct:  r.Current.RelativeHumidity2m,
		Daily:        make([]provider.DailyForecast, 0, n),
	}
	for i := 0; i < n; i++ {
		out.Daily = append(out.Daily, provider.DailyForecast{
			Date:        r.Daily.Time[i],
			MaxTempC:    r.Daily.Temperature2mMax[i],
			WeatherCode: r.Daily.WeatherCode[i],
		})
	}
	return out
}
