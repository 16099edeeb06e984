package weather

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAssessRiskHighFungal(t *testing.T) {
	risk := AssessRisk(Snapshot{Temperature: 20, Humidity: 90, Precipitation: 0, WindSpeed: 5})

	require.Equal(t, RiskHigh, risk.FungalRisk)
	require.Contains(t, risk.Alerts, "⚠️ High risk of fungal diseases (Late Blight, Powdery Mildew)")
	require.Contains(t, risk.Recommendations, "Apply preventive fungicide spray")
}

func TestAssessRiskBacterialWarmWet(t *testing.T) {
	risk := AssessRisk(Snapshot{Temperature: 28, Humidity: 90, Precipitation: 6, WindSpeed: 5})

	require.Equal(t, RiskHigh, risk.BacterialRisk)
	require.Contains(t, risk.Recommendations, "Avoid overhead irrigation")
}

func TestAssessRiskPestWarmDry(t *testing.T) {
	risk := AssessRisk(Snapshot{Temperature: 30, Humidity: 45, Precipitation: 0, WindSpeed: 5})

	require.Equal(t, RiskHigh, risk.PestRisk)
	require.Equal(t, RiskLow, risk.FungalRisk)
}

func TestAssessRiskSprayConditions(t *testing.T) {
	windy := AssessRisk(Snapshot{Temperature: 18, Humidity: 50, WindSpeed: 20})
	require.Equal(t, SprayPoor, windy.SprayConditions)
	require.Contains(t, windy.Alerts, "💨 Too windy for spraying - wait for calmer conditions")

	rainy := AssessRisk(Snapshot{Temperature: 18, Humidity: 50, Precipitation: 2, WindSpeed: 5})
	require.Equal(t, SprayPoor, rainy.SprayConditions)

	dry := AssessRisk(Snapshot{Temperature: 18, Humidity: 30, WindSpeed: 5})
	require.Equal(t, SprayModerate, dry.SprayConditions)
}

func TestAssessRiskOverallScore(t *testing.T) {
	// All three risks low: avg 1, score round(33.3) = 33.
	low := AssessRisk(Snapshot{Temperature: 10, Humidity: 50, WindSpeed: 5})
	require.Equal(t, 33, low.OverallRiskScore)
	require.Equal(t, RiskLow, low.OverallRiskLevel)

	// Fungal high, bacterial medium, pest medium: avg 7/3, score 78, level medium.
	mixed := AssessRisk(Snapshot{Temperature: 22, Humidity: 85, WindSpeed: 5})
	require.Equal(t, RiskHigh, mixed.FungalRisk)
	require.Equal(t, RiskMedium, mixed.BacterialRisk)
	require.Equal(t, RiskMedium, mixed.PestRisk)
	require.Equal(t, 78, mixed.OverallRiskScore)
	require.Equal(t, RiskMedium, mixed.OverallRiskLevel)
}

func TestOptimalSprayWindowsFilterAndOrder(t *testing.T) {
	days := []ForecastDay{
		{Date: "2026-08-23", WindSpeed: 12, Precipitation: 0, Humidity: 60},
		{Date: "2026-08-24", WindSpeed: 5, Precipitation: 0, Humidity: 65},
		{Date: "2026-08-25", WindSpeed: 4, Precipitation: 3, Humidity: 70},
		{Date: "2026-08-26", WindSpeed: 6, Precipitation: 0.5, Humidity: 30},
	}

	windows := OptimalSprayWindows(days)
	require.Len(t, windows, 2)
	require.Equal(t, "2026-08-24", windows[0].Date)
	require.Equal(t, "excellent", windows[0].Quality)
	require.Equal(t, "2026-08-26", windows[1].Date)
	require.Equal(t, "good", windows[1].Quality)
	require.Equal(t, 0.5, windows[1].Conditions.Precipitation)
}

func TestConditionUnknownCode(t *testing.T) {
	require.Equal(t, "Thunderstorm", Condition(95))
	require.Equal(t, "Unknown", Condition(42))
}
