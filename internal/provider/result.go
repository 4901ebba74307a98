// Package provider holds the provider-neutral shapes exchanged with external
// model and weather APIs.
package provider

// Image is an uploaded photo as sent to a vision model.
type Image struct {
	Data     []byte
	MimeType string
}

// Turn roles as the model sees them. Everything that is not a user turn is
// sent as a model turn.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Turn is one message of a conversation transcript.
type Turn struct {
	Role string
	Text string
}

// Forecast is the raw weather data for one location.
type Forecast struct {
	TemperatureC float64
	HumidityPct  float64
	Daily        []DailyForecast
}

// DailyForecast is one day of the daily series.
type DailyForecast struct {
	Date        string // YYYY-MM-DD in the location's timezone
	MaxTempC    float64
	WeatherCode int
}
