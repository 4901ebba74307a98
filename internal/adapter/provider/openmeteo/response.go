package openmeteo

// apiResponse is the subset of the /v1/forecast response we request.
type apiResponse struct {
	Current apiCurrent `json:"current"`
	Daily   apiDaily   `json:"daily"`
}

type apiCurrent struct {
	Temperature2m      float64 `json:"temperature_2m"`
	RelativeHumidity2m float64 `json:"relative_humidity_2m"`
}

// apiDaily holds parallel arrays indexed by day.
type apiDaily struct {
	Time             []string  `json:"time"`
	Temperature2mMax []float64 `json:"temperature_2m_max"`
	WeatherCode      []int     `json:"weather_code"`
}

// apiError is the body Open-Meteo returns with 4xx statuses.
type apiError struct {
	Error  bool   `json:"error"`
	Reason string `json:"reason"`
}
