package agronomy

import "testing"

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		temp     float64
		humidity float64
		want     Tier
	}{
		{"both boundaries excluded", 20, 80, TierStable},
		{"just above both", 21, 81, TierHigh},
		{"hot and dry", 33, 10, TierModerate},
		{"humid but cool", 15, 90, TierModerate},
		{"humidity exactly 60", 25, 60, TierStable},
		{"temperature exactly 32", 32, 50, TierStable},
		{"humidity 61", 10, 61, TierModerate},
		{"high humidity, temp at 20", 20, 95, TierModerate},
		{"mild", 24, 40, TierStable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Classify(tt.temp, tt.humidity)
			if got.Tier != tt.want {
				t.Errorf("Classify(%v, %v) = %q, want %q", tt.temp, tt.humidity, got.Tier, tt.want)
			}
			if got.Advice == "" {
				t.Error("advice must not be empty")
			}
		})
	}
}

func TestInsights(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		days    []DailyOutlook
		wantTip string
	}{
		{
			name:    "rain today",
			days:    []DailyOutlook{{MaxTempC: 30, WeatherCode: 61}, {MaxTempC: 30}, {MaxTempC: 30}},
			wantTip: "Precipitation expected in 24 hours. Pause irrigation systems.",
		},
		{
			name:    "latest rain day reported",
			days:    []DailyOutlook{{WeatherCode: 63}, {WeatherCode: 2}, {WeatherCode: 80}},
			wantTip: "Precipitation expected in 2 days. Pause irrigation systems.",
		},
		{
			name:    "rain beats heat",
			days:    []DailyOutlook{{MaxTempC: 40}, {WeatherCode: 55}, {MaxTempC: 20}},
			wantTip: "Precipitation expected in 1 days. Pause irrigation systems.",
		},
		{
			name:    "heat",
			days:    []DailyOutlook{{MaxTempC: 36, WeatherCode: 1}, {MaxTempC: 30}, {MaxTempC: 30}},
			wantTip: "Extreme heat event approaching. Evaporation rates will spike.",
		},
		{
			name:    "code 50 and 35C are not triggers",
			days:    []DailyOutlook{{MaxTempC: 35, WeatherCode: 50}},
			wantTip: "Conditions are optimal for vegetative growth.",
		},
		{
			name:    "fourth day ignored",
			days:    []DailyOutlook{{}, {}, {}, {WeatherCode: 95, MaxTempC: 45}},
			wantTip: "Conditions are optimal for vegetative growth.",
		},
		{
			name:    "no data",
			days:    nil,
			wantTip: "Conditions are optimal for vegetative growth.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Insights(tt.days)
			if got.Tip != tt.wantTip {
				t.Errorf("Tip = %q, want %q", got.Tip, tt.wantTip)
			}
			if len(got.Checklist) != 4 {
				t.Errorf("Checklist has %d items, want 4", len(got.Checklist))
			}
		})
	}
}
