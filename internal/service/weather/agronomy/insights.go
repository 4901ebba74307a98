package agronomy

import "fmt"

// DailyOutlook is one forecast day as seen by Insights.
type DailyOutlook struct {
	MaxTempC    float64
	WeatherCode int
}

// Insight is a short field tip with a matching checklist.
type Insight struct {
	Tip       string   `json:"tip"`
	Checklist []string `json:"checklist"`
}

const (
	lookaheadDays = 3
	// WMO codes above 50 are drizzle, rain, snow or storms.
	rainCodeFloor = 50
	heatTempC     = 35
)

// Insights looks at the first three forecast days. Rain beats heat; when
// several days match, the latest one is reported.
func Insights(days []DailyOutlook) Insight {
	rainDay, heatDay := -1, -1
	for i := 0; i < lookaheadDays && i < len(days); i++ {
		if days[i].WeatherCode > rainCodeFloor {
			rainDay = i
		}
		if days[i].MaxTempC > heatTempC {
			heatDay = i
		}
	}

	switch {
	case rainDay != -1:
		when := "24 hours"
		if rainDay > 0 {
			when = fmt.Sprintf("%d days", rainDay)
		}
		return Insight{
			Tip: fmt.Sprintf("Precipitation expected in %s. Pause irrigation systems.", when),
			Checklist: []string{
				"Clear field drainage channels",
				"Cover sensitive seedlings",
				"delay fertilizer application",
				"Monitor fungal hotspots",
			},
		}
	case heatDay != -1:
		return Insight{
			Tip: "Extreme heat event approaching. Evaporation rates will spike.",
			Checklist: []string{
				"Increase irrigation frequency",
				"Apply mulch to retain moisture",
				"Provide shade for young plants",
				"Monitor leaf turgidity",
			},
		}
	default:
		return Insight{
			Tip: "Conditions are optimal for vegetative growth.",
			Checklist: []string{
				"Scout for early pest signs",
				"Maintain regular nutrient schedule",
				"Weed management",
				"Record growth metrics",
			},
		}
	}
}
