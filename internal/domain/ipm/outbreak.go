package ipm

import (
	"github.com/agriguard/agriguard/internal/domain/weather"
)

// DailyRisk is one forecast day scored for outbreak pressure.
type DailyRisk struct {
	Date           string   `json:"date"`
	RiskScore      int      `json:"risk_score"`
	RiskLevel      string   `json:"risk_level"`
	Factors        []string `json:"factors"`
	DiseasesAtRisk []string `json:"diseases_at_risk"`
}

// OutbreakLocation echoes the queried coordinates.
type OutbreakLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// OutbreakPrediction is the 7-day outbreak outlook for a crop and location.
type OutbreakPrediction struct {
	Crop            string           `json:"crop"`
	Location        OutbreakLocation `json:"location"`
	DailyRisks      []DailyRisk      `json:"daily_risks"`
	PeakRiskDays    []DailyRisk      `json:"peak_risk_days"`
	OverallOutlook  string           `json:"overall_outlook"`
	Recommendations []string         `json:"recommendations"`
}

// scoreDay applies the additive outbreak heuristic to one forecast day.
// Humidity contributes up to 30, temperature 20, rainfall 25; the total is
// capped at 100. Only the strong triggers become named factors.
func scoreDay(day weather.ForecastDay, crop string) DailyRisk {
	temp := (day.TempMax + day.TempMin) / 2
	humidity := day.Humidity
	rain := day.Precipitation

	score := 0
	factors := []string{}

	if humidity > 80 {
		score += 30
		factors = append(factors, "High humidity")
	} else if humidity > 70 {
		score += 15
	}

	if temp >= 15 && temp <= 25 {
		score += 20
		factors = append(factors, "Optimal fungal growth temperature")
	}

	if rain > 5 {
		score += 25
		factors = append(factors, "Significant rainfall")
	} else if rain > 0 {
		score += 10
	}

	if score > 100 {
		score = 100
	}

	level := weather.RiskLow
	if score >= 60 {
		level = weather.RiskHigh
	} else if score >= 30 {
		level = weather.RiskMedium
	}

	return DailyRisk{
		Date:           day.Date,
		RiskScore:      score,
		RiskLevel:      level,
		Factors:        factors,
		DiseasesAtRisk: diseasesAtRisk(temp, humidity, rain, crop),
	}
}

// diseasesAtRisk names the diseases favored by the day's conditions, capped
// at the top four.
func diseasesAtRisk(temp, humidity, rain float64, crop string) []string {
	diseases := []string{}

	if humidity > 80 && temp >= 15 && temp <= 25 {
		diseases = append(diseases, "Late Blight", "Downy Mildew", "Powdery Mildew")
	}
	if temp > 25 && humidity > 70 {
		diseases = append(diseases, "Bacterial Spot", "Bacterial Wilt")
	}
	if rain > 10 {
		diseases = append(diseases, "Root Rot", "Damping Off")
	}
	if humidity < 50 && temp > 25 {
		diseases = append(diseases, "Spider Mite infestation", "Aphid outbreak")
	}

	if len(diseases) > 4 {
		diseases = diseases[:4]
	}
	return diseases
}

// predictiveRecommendations derives action items from the scored week.
func predictiveRecommendations(dailyRisks []DailyRisk) []string {
	recommendations := []string{}

	highRiskCount := 0
	for _, d := range dailyRisks {
		if d.RiskLevel == weather.RiskHigh {
			highRiskCount++
		}
	}

	if highRiskCount >= 3 {
		recommendations = append(recommendations,
			"🚨 HIGH ALERT: Apply preventive fungicide treatment immediately",
			"Increase field monitoring to daily inspections")
	} else if highRiskCount >= 1 {
		recommendations = append(recommendations,
			"⚠️ Apply preventive organic treatment (neem oil or copper spray)",
			"Monitor closely for early disease symptoms")
	}

	if anyRainfallFactor(dailyRisks) {
		recommendations = append(recommendations,
			"Ensure proper drainage before rainfall",
			"Apply treatments before rain, not after")
	}

	recommendations = append(recommendations, "Remove any diseased plant material immediately")
	return recommendations
}

func anyRainfallFactor(dailyRisks []DailyRisk) bool {
	for _, d := range dailyRisks {
		for _, f := range d.Factors {
			if f == "Significant rainfall" {
				return true
			}
		}
	}
	return false
}
