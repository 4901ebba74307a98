// Package weather builds the home dashboard's botanical weather report.
package weather

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"time"

	"github.com/heartmarshall/nivara-backend/internal/domain"
	"github.com/heartmarshall/nivara-backend/internal/provider"
	"github.com/heartmarshall/nivara-backend/internal/service/weather/agronomy"
)

type forecaster interface {
	Forecast(ctx context.Context, lat, lon float64) (provider.Forecast, error)
}

// Location is a coordinate pair used when the client sends none.
type Location struct {
	Latitude  float64
	Longitude float64
}

// Service produces weather reports.
type Service struct {
	forecaster forecaster
	fallback   Location
	log        *slog.Logger
}

// NewService creates a weather Service.
func NewService(log *slog.Logger, forecaster forecaster, fallback Location) *Service {
	return &Service{
		forecaster: forecaster,
		fallback:   fallback,
		log:        log.With("service", "weather"),
	}
}

// Icons of a forecast day.
const (
	IconSun    = "sun"
	IconCloudy = "cloud-sun"
)

// Day is one cell of the forecast grid.
type Day struct {
	Day  string `json:"day"`
	Temp string `json:"temp"`
	Icon string `json:"icon"`
}

// Report is the dashboard's weather card.
type Report struct {
	Latitude  float64             `json:"latitude"`
	Longitude float64             `json:"longitude"`
	Temp      string              `json:"temp"`
	Humidity  string              `json:"humidity"`
	Risk      agronomy.Assessment `json:"risk"`
	Forecast  []Day               `json:"forecast"`
	Tip       string              `json:"tip"`
	Checklist []string            `json:"checklist"`
}

// Report fetches the forecast for the given coordinates, or the configured
// fallback location when either is missing.
func (s *Service) Report(ctx context.Context, lat, lon *float64) (Report, error) {
	loc := s.fallback
	if lat != nil && lon != nil {
		loc = Location{Latitude: *lat, Longitude: *lon}
	}
	if loc.Latitude < -90 || loc.Latitude > 90 {
		return Report{}, domain.NewValidationError("lat", "must be between -90 and 90")
	}
	if loc.Longitude < -180 || loc.Longitude > 180 {
		return Report{}, domain.NewValidationError("lon", "must be between -180 and 180")
	}

	fc, err := s.forecaster.Forecast(ctx, loc.Latitude, loc.Longitude)
	if err != nil {
		return Report{}, fmt.Errorf("weather report: %w", err)
	}

	outlook := make([]agronomy.DailyOutlook, 0, len(fc.Daily))
	days := make([]Day, 0, len(fc.Daily))
	for _, d := range fc.Daily {
		outlook = append(outlook, agronomy.DailyOutlook{MaxTempC: d.MaxTempC, WeatherCode: d.WeatherCode})

		icon := IconSun
		if d.WeatherCode > 3 {
			icon = IconCloudy
		}
		days = append(days, Day{
			Day:  weekday(d.Date),
			Temp: fmt.Sprintf("%d°", round(d.MaxTempC)),
			Icon: icon,
		})
	}

	insight := agronomy.Insights(outlook)
	risk := agronomy.Classify(fc.TemperatureC, fc.HumidityPct)

	s.log.DebugContext(ctx, "weather report built",
		slog.Float64("lat", loc.Latitude),
		slog.Float64("lon", loc.Longitude),
		slog.String("risk", risk.Tier.String()),
	)

	return Report{
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
		Temp:      fmt.Sprintf("%d°C", round(fc.TemperatureC)),
		Humidity:  strconv.FormatFloat(fc.HumidityPct, 'f', -1, 64) + "%",
		Risk:      risk,
		Forecast:  days,
		Tip:       insight.Tip,
		Checklist: insight.Checklist,
	}, nil
}

// round matches the dashboard's rounding: halves go up, also for negatives.
func round(v float64) int {
	return int(math.Floor(v + 0.5))
}

var weekdays = [...]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// weekday names a YYYY-MM-DD date. Unparseable dates yield an empty name.
func weekday(date string) string {
	t, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return ""
	}
	return weekdays[t.Weekday()]
}
