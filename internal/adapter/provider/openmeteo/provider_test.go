package openmeteo

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/heartmarshall/nivara-backend/internal/domain"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestProvider(url string) *Provider {
	p := NewProvider(url, 5*time.Second, newTestLogger())
	p.retryDelay = time.Millisecond
	return p
}

const forecastBody = `{
	"latitude": 28.625,
	"longitude": 77.25,
	"current": {"time": "2026-10-18T12:00", "temperature_2m": 31.6, "relative_humidity_2m": 64},
	"daily": {
		"time": ["2026-10-18", "2026-10-19", "2026-10-20"],
		"temperature_2m_max": [33.2, 36.4, 29.9],
		"weather_code": [1, 3, 61]
	}
}`

func TestProvider_Forecast_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("latitude") != "28.61" || q.Get("longitude") != "77.2" {
			t.Errorf("unexpected coordinates: %s", r.URL.RawQuery)
		}
		if q.Get("current") != currentFields || q.Get("daily") != dailyFields || q.Get("timezone") != "auto" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(forecastBody))
	}))
	defer srv.Close()

	got, err := newTestProvider(srv.URL).Forecast(context.Background(), 28.61, 77.2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.TemperatureC != 31.6 || got.HumidityPct != 64 {
		t.Errorf("current = %v°C %v%%, want 31.6°C 64%%", got.TemperatureC, got.HumidityPct)
	}
	if len(got.Daily) != 3 {
		t.Fatalf("len(Daily) = %d, want 3", len(got.Daily))
	}
	if d := got.Daily[2]; d.Date != "2026-10-20" || d.MaxTempC != 29.9 || d.WeatherCode != 61 {
		t.Errorf("Daily[2] = %+v", d)
	}
}

func TestProvider_Forecast_ServerErrorRetrySuccess(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(forecastBody))
	}))
	defer srv.Close()

	got, err := newTestProvider(srv.URL).Forecast(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("calls = %d, want 2", calls.Load())
	}
	if len(got.Daily) != 3 {
		t.Errorf("len(Daily) = %d, want 3", len(got.Daily))
	}
}

func TestProvider_Forecast_ServerErrorBothAttemptsFail(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestProvider(srv.URL).Forecast(context.Background(), 1, 2)
	if !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("err = %v, want ErrUpstream", err)
	}
	if calls.Load() != 2 {
		t.Errorf("calls = %d, want 2", calls.Load())
	}
}

func TestProvider_Forecast_BadRequestReason(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": true, "reason": "Latitude must be in range of -90 to 90°."}`))
	}))
	defer srv.Close()

	_, err := newTestProvider(srv.URL).Forecast(context.Background(), 123, 2)
	if err == nil || !strings.Contains(err.Error(), "Latitude must be in range") {
		t.Fatalf("err = %v, want the API reason", err)
	}
	var ue *domain.UpstreamError
	if !errors.As(err, &ue) || ue.Message != "Latitude must be in range of -90 to 90°." {
		t.Errorf("upstream error = %+v", ue)
	}
}

func TestProvider_Forecast_InvalidJSON(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	if _, err := newTestProvider(srv.URL).Forecast(context.Background(), 1, 2); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestMapAPIResponse_RaggedArrays(t *testing.T) {
	t.Parallel()

	got := mapAPIResponse(apiResponse{Daily: apiDaily{
		Time:             []string{"a", "b", "c"},
		Temperature2mMax: []float64{1, 2},
		WeatherCode:      []int{0, 0, 0},
	}})
	if len(got.Daily) != 2 {
		t.Errorf("len(Daily) = %d, want 2", len(got.Daily))
	}
}
