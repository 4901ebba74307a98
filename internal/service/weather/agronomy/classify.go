// Package agronomy holds the rule-based plant risk and weather advice used by
// the home dashboard.
package agronomy

// Tier is a botanical risk level.
type Tier string

const (
	TierStable   Tier = "Stable"
	TierModerate Tier = "Moderate"
	TierHigh     Tier = "High Risk"
)

func (t Tier) String() string { return string(t) }

// Assessment is the outcome of Classify.
type Assessment struct {
	Tier   Tier   `json:"level"`
	Color  string `json:"color"`
	Advice string `json:"advice"`
}

// Thresholds are exclusive: a reading exactly at a threshold does not trigger it.
const (
	highHumidity     = 80
	highTemp         = 20
	moderateHumidity = 60
	moderateTemp     = 32
)

// Classify maps current temperature (°C) and relative humidity (%) to a risk
// tier. The high-risk rule is checked first; the first matching rule wins.
func Classify(tempC, humidity float64) Assessment {
	switch {
	case humidity > highHumidity && tempC > highTemp:
		return Assessment{Tier: TierHigh, Color: "#E74C3C", Advice: "Fungal threat detected. Prune for airflow."}
	case humidity > moderateHumidity || tempC > moderateTemp:
		return Assessment{Tier: TierModerate, Color: "#E67E22", Advice: "Check soil moisture; pests active."}
	default:
		return Assessment{Tier: TierStable, Color: "#2D4A23", Advice: "Optimal conditions for growth."}
	}
}
