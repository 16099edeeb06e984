package ipm

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agriguard/agriguard/internal/domain/weather"
)

type stubGenerator struct {
	reply      string
	lastPrompt string
}

func (s *stubGenerator) GenerateText(_ context.Context, prompt, _ string) string {
	s.lastPrompt = prompt
	return s.reply
}

type stubWeather struct {
	current     weather.Snapshot
	currentErr  error
	forecast    weather.Forecast
	forecastErr error
}

func (s *stubWeather) Current(context.Context, float64, float64) (weather.Snapshot, error) {
	return s.current, s.currentErr
}

func (s *stubWeather) Forecast(context.Context, float64, float64, int) (weather.Forecast, error) {
	return s.forecast, s.forecastErr
}

func (s *stubWeather) Historical(context.Context, float64, float64, int) (weather.History, error) {
	return weather.History{}, errors.New("not implemented")
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ptr(v float64) *float64 { return &v }

func TestGenerateStrategyEnrichesWithWeather(t *testing.T) {
	ai := &stubGenerator{reply: `{"strategy_name": "Blight Control Plan", "companion_planting": [{"plant": "Basil"}]}`}
	wx := &stubWeather{
		current: weather.Snapshot{Temperature: 20, Humidity: 90, Condition: "Overcast"},
		forecast: weather.Forecast{Days: []weather.ForecastDay{
			{Date: "2026-08-23", WindSpeed: 5, Precipitation: 0, Humidity: 60},
			{Date: "2026-08-24", WindSpeed: 6, Precipitation: 0, Humidity: 65},
			{Date: "2026-08-25", WindSpeed: 4, Precipitation: 0, Humidity: 70},
			{Date: "2026-08-26", WindSpeed: 3, Precipitation: 0, Humidity: 75},
		}},
	}
	svc := NewService(ai, wx, testLogger())

	strategy := svc.GenerateStrategy(context.Background(), StrategyInput{
		Disease:   "Late Blight",
		Crop:      "tomato",
		Latitude:  ptr(10.5),
		Longitude: ptr(106.2),
	})

	require.Equal(t, "Blight Control Plan", strategy["strategy_name"])

	analysis, ok := strategy["weather_analysis"].(weather.RiskAssessment)
	require.True(t, ok)
	require.Equal(t, weather.RiskHigh, analysis.FungalRisk)

	windows, ok := strategy["optimal_spray_windows"].([]weather.SprayWindow)
	require.True(t, ok)
	require.Len(t, windows, 3)

	require.Contains(t, ai.lastPrompt, "Disease/Pest Detected: Late Blight")
	require.Contains(t, ai.lastPrompt, "Temperature: 20.0°C")
	require.Contains(t, ai.lastPrompt, "Disease Risk: high")
}

func TestGenerateStrategyFallbackAndCompanions(t *testing.T) {
	ai := &stubGenerator{reply: "Use copper spray weekly and remove infected leaves."}
	svc := NewService(ai, &stubWeather{}, testLogger())

	strategy := svc.GenerateStrategy(context.Background(), StrategyInput{Disease: "Late Blight", Crop: "tomato"})

	require.Equal(t, true, strategy["parse_error"])
	require.Equal(t, "Generated Strategy", strategy["strategy_name"])
	require.Equal(t, ai.reply, strategy["raw_strategy"])

	actions, ok := strategy["immediate_actions"].([]any)
	require.True(t, ok)
	require.Len(t, actions, 1)

	companions, ok := strategy["companion_planting"].([]CompanionPlant)
	require.True(t, ok)
	require.Equal(t, "Basil", companions[0].Plant)

	// No coordinates: no weather sections.
	require.NotContains(t, strategy, "weather_analysis")
	require.NotContains(t, strategy, "optimal_spray_windows")
}

func TestGenerateStrategySurvivesWeatherFailure(t *testing.T) {
	ai := &stubGenerator{reply: `{"strategy_name": "Plan"}`}
	wx := &stubWeather{currentErr: errors.New("upstream down")}
	svc := NewService(ai, wx, testLogger())

	strategy := svc.GenerateStrategy(context.Background(), StrategyInput{
		Disease:   "Aphids",
		Latitude:  ptr(1),
		Longitude: ptr(2),
	})

	require.Equal(t, "Plan", strategy["strategy_name"])
	require.NotContains(t, strategy, "weather_analysis")
	require.Contains(t, ai.lastPrompt, "Location Weather: Not available")
}

func TestQuickRecommendationDefaultsCrop(t *testing.T) {
	ai := &stubGenerator{reply: "Act fast."}
	svc := NewService(ai, &stubWeather{}, testLogger())

	out := svc.QuickRecommendation(context.Background(), "aphids", "")
	require.Equal(t, "Act fast.", out)
	require.Contains(t, ai.lastPrompt, "detected aphids in their general crop")
}

func TestPredictOutbreakScoring(t *testing.T) {
	// Humid (30) + optimal temp (20) + heavy rain (25) = 75, high.
	wx := &stubWeather{forecast: weather.Forecast{Days: []weather.ForecastDay{
		{Date: "2026-08-23", TempMax: 25, TempMin: 15, Humidity: 85, Precipitation: 6},
		{Date: "2026-08-24", TempMax: 32, TempMin: 28, Humidity: 40, Precipitation: 0},
	}}}
	svc := NewService(&stubGenerator{}, wx, testLogger())

	prediction, err := svc.PredictOutbreak(context.Background(), 10, 20, "tomato")
	require.NoError(t, err)

	require.Len(t, prediction.DailyRisks, 2)
	risky := prediction.DailyRisks[0]
	require.Equal(t, 75, risky.RiskScore)
	require.Equal(t, weather.RiskHigh, risky.RiskLevel)
	require.ElementsMatch(t, []string{"High humidity", "Optimal fungal growth temperature", "Significant rainfall"}, risky.Factors)
	require.Contains(t, risky.DiseasesAtRisk, "Late Blight")

	calm := prediction.DailyRisks[1]
	require.Equal(t, 0, calm.RiskScore)
	require.Equal(t, weather.RiskLow, calm.RiskLevel)
	require.Contains(t, calm.DiseasesAtRisk, "Spider Mite infestation")

	require.Len(t, prediction.PeakRiskDays, 1)
	require.Equal(t, "moderate", prediction.OverallOutlook)
	require.Contains(t, prediction.Recommendations, "⚠️ Apply preventive organic treatment (neem oil or copper spray)")
	require.Contains(t, prediction.Recommendations, "Ensure proper drainage before rainfall")
	require.Contains(t, prediction.Recommendations, "Remove any diseased plant material immediately")
}

func TestPredictOutbreakForecastError(t *testing.T) {
	wx := &stubWeather{forecastErr: errors.New("boom")}
	svc := NewService(&stubGenerator{}, wx, testLogger())

	_, err := svc.PredictOutbreak(context.Background(), 1, 2, "corn")
	require.Error(t, err)
}

func TestLookupDisease(t *testing.T) {
	info, ok := LookupDisease("Late_Blight")
	require.True(t, ok)
	require.Equal(t, "Late Blight", info.Name)
	require.Contains(t, info.Chemical, "Mancozeb")

	_, ok = LookupDisease("unknown")
	require.False(t, ok)

	require.Equal(t, []string{"aphids", "fall_armyworm", "late_blight", "powdery_mildew"}, DiseaseKeys())
}

func TestCompanionPlantsDefault(t *testing.T) {
	plants := CompanionPlants("Dragonfruit")
	require.Len(t, plants, 2)
	require.Equal(t, "Marigold", plants[0].Plant)
}
