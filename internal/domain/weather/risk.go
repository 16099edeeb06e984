package weather

import "math"

// Risk levels produced by AssessRisk.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// Spray condition grades.
const (
	SprayGood     = "good"
	SprayModerate = "moderate"
	SprayPoor     = "poor"
)

// RiskAssessment is derived deterministically from one Snapshot.
type RiskAssessment struct {
	FungalRisk       string   `json:"fungal_disease_risk"`
	BacterialRisk    string   `json:"bacterial_disease_risk"`
	PestRisk         string   `json:"pest_activity_risk"`
	SprayConditions  string   `json:"spray_conditions"`
	Alerts           []string `json:"alerts"`
	Recommendations  []string `json:"recommendations"`
	OverallRiskScore int      `json:"overall_risk_score"`
	OverallRiskLevel string   `json:"overall_risk_level"`
}

// AssessRisk scores disease and pest pressure from current conditions using
// fixed agronomic thresholds. Alerts and recommendations are appended in
// evaluation order: fungal, bacterial, pest, spray.
func AssessRisk(s Snapshot) RiskAssessment {
	out := RiskAssessment{
		FungalRisk:      RiskLow,
		BacterialRisk:   RiskLow,
		PestRisk:        RiskLow,
		SprayConditions: SprayGood,
		Alerts:          []string{},
		Recommendations: []string{},
	}

	temp := s.Temperature
	humidity := s.Humidity
	precipitation := s.Precipitation
	wind := s.WindSpeed

	// Fungal pressure: high humidity plus moderate temperature (late blight,
	// powdery mildew).
	if humidity > 80 && temp >= 15 && temp <= 25 {
		out.FungalRisk = RiskHigh
		out.Alerts = append(out.Alerts, "⚠️ High risk of fungal diseases (Late Blight, Powdery Mildew)")
		out.Recommendations = append(out.Recommendations, "Apply preventive fungicide spray")
	} else if humidity > 70 && temp >= 10 && temp <= 28 {
		out.FungalRisk = RiskMedium
		out.Alerts = append(out.Alerts, "Monitor for early signs of fungal infection")
	}

	// Bacterial pressure: warm and wet.
	if temp > 25 && (humidity > 85 || precipitation > 5) {
		out.BacterialRisk = RiskHigh
		out.Alerts = append(out.Alerts, "⚠️ Conditions favor bacterial diseases")
		out.Recommendations = append(out.Recommendations, "Avoid overhead irrigation")
	} else if temp > 20 && humidity > 75 {
		out.BacterialRisk = RiskMedium
	}

	// Pest activity: warm and dry favors aphids and mites.
	if temp > 25 && humidity < 60 {
		out.PestRisk = RiskHigh
		out.Alerts = append(out.Alerts, "🐛 High pest activity expected (aphids, mites)")
		out.Recommendations = append(out.Recommendations, "Scout fields regularly for pest presence")
	} else if temp > 20 {
		out.PestRisk = RiskMedium
	}

	// Spray conditions.
	if wind > 15 {
		out.SprayConditions = SprayPoor
		out.Alerts = append(out.Alerts, "💨 Too windy for spraying - wait for calmer conditions")
	} else if precipitation > 0 {
		out.SprayConditions = SprayPoor
		out.Alerts = append(out.Alerts, "🌧️ Rain expected - delay spraying")
	} else if humidity < 40 {
		out.SprayConditions = SprayModerate
		out.Recommendations = append(out.Recommendations, "Spray early morning or evening for better absorption")
	}

	avg := float64(riskScore(out.FungalRisk)+riskScore(out.BacterialRisk)+riskScore(out.PestRisk)) / 3
	out.OverallRiskScore = int(math.Round(avg * 33.3))
	switch {
	case avg < 1.5:
		out.OverallRiskLevel = RiskLow
	case avg < 2.5:
		out.OverallRiskLevel = RiskMedium
	default:
		out.OverallRiskLevel = RiskHigh
	}

	return out
}

func riskScore(level string) int {
	switch level {
	case RiskHigh:
		return 3
	case RiskMedium:
		return 2
	default:
		return 1
	}
}

// SprayConditionsDetail carries the raw readings behind a spray window.
type SprayConditionsDetail struct {
	WindSpeed     float64 `json:"wind_speed"`
	Precipitation float64 `json:"precipitation"`
	Humidity      float64 `json:"humidity"`
}

// SprayWindow is one forecast day suitable for spraying.
type SprayWindow struct {
	Date            string                `json:"date"`
	Quality         string                `json:"quality"`
	RecommendedTime string                `json:"recommended_time"`
	Conditions      SprayConditionsDetail `json:"conditions"`
}

// OptimalSprayWindows keeps forecast days with low wind and no meaningful
// rain, preserving forecast order. Quality is excellent only for moderate
// humidity.
func OptimalSprayWindows(days []ForecastDay) []SprayWindow {
	windows := make([]SprayWindow, 0, len(days))
	for _, day := range days {
		if day.WindSpeed >= 10 || day.Precipitation >= 1 {
			continue
		}
		quality := "good"
		if day.Humidity > 50 && day.Humidity < 80 {
			quality = "excellent"
		}
		windows = append(windows, SprayWindow{
			Date:            day.Date,
			Quality:         quality,
			RecommendedTime: "Early morning (6-9 AM) or evening (5-7 PM)",
			Conditions: SprayConditionsDetail{
				WindSpeed:     day.WindSpeed,
				Precipitation: day.Precipitation,
				Humidity:      day.Humidity,
			},
		})
	}
	return windows
}
