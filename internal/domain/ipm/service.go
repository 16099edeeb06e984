// Package ipm generates integrated pest management strategies and predicts
// outbreak risk from forecast weather.
package ipm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/agriguard/agriguard/internal/domain/normalize"
	"github.com/agriguard/agriguard/internal/domain/weather"
)

// TextGenerator is the slice of the AI provider the service needs.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt, systemPrompt string) string
}

// Service builds IPM strategies, quick recommendations and outbreak
// predictions.
type Service struct {
	ai      TextGenerator
	weather weather.Client
	logger  *slog.Logger
}

// NewService constructs an IPM service.
func NewService(ai TextGenerator, weatherClient weather.Client, logger *slog.Logger) *Service {
	return &Service{
		ai:      ai,
		weather: weatherClient,
		logger:  logger.With("component", "ipm.service"),
	}
}

// StrategyInput parameterizes strategy generation. Latitude and Longitude are
// optional; when both are set the strategy is enriched with live weather.
type StrategyInput struct {
	Disease   string
	Crop      string
	Latitude  *float64
	Longitude *float64
	Context   string
}

// GenerateStrategy produces a full IPM strategy payload. Weather enrichment
// is best-effort: a failed weather fetch downgrades to the plain strategy
// instead of failing the call.
func (s *Service) GenerateStrategy(ctx context.Context, in StrategyInput) map[string]any {
	crop := in.Crop
	if crop == "" {
		crop = "general"
	}

	weatherInfo := "Not available"
	var risks *weather.RiskAssessment
	var sprayWindows []weather.SprayWindow

	if in.Latitude != nil && in.Longitude != nil {
		lat, lon := *in.Latitude, *in.Longitude
		current, err := s.weather.Current(ctx, lat, lon)
		if err != nil {
			s.logger.Warn("weather enrichment skipped", "error", err)
		} else {
			assessed := weather.AssessRisk(current)
			risks = &assessed
			weatherInfo = fmt.Sprintf(
				"Temperature: %.1f°C\nHumidity: %.0f%%\nConditions: %s\nDisease Risk: %s",
				current.Temperature, current.Humidity, current.Condition, assessed.OverallRiskLevel,
			)
			if forecast, ferr := s.weather.Forecast(ctx, lat, lon, 7); ferr == nil {
				sprayWindows = weather.OptimalSprayWindows(forecast.Days)
			} else {
				s.logger.Warn("spray window enrichment skipped", "error", ferr)
			}
		}
	}

	prompt := fmt.Sprintf(strategyPromptTemplate, in.Disease, crop, weatherInfo, in.Context)
	raw := s.ai.GenerateText(ctx, prompt, "")

	result := normalize.ExtractOr(raw, map[string]any{
		"strategy_name": "Generated Strategy",
		"raw_strategy":  raw,
		"immediate_actions": []any{
			map[string]any{"action": "See detailed analysis", "priority": "high"},
		},
	})
	strategy := result.Data

	if risks != nil {
		strategy["weather_analysis"] = *risks
		if len(sprayWindows) > 3 {
			sprayWindows = sprayWindows[:3]
		}
		strategy["optimal_spray_windows"] = sprayWindows
	}

	if !hasCompanionPlanting(strategy) {
		strategy["companion_planting"] = CompanionPlants(crop)
	}
	return strategy
}

func hasCompanionPlanting(strategy map[string]any) bool {
	v, ok := strategy["companion_planting"]
	if !ok || v == nil {
		return false
	}
	if list, ok := v.([]any); ok {
		return len(list) > 0
	}
	return true
}

// QuickRecommendation returns a short conversational treatment suggestion.
func (s *Service) QuickRecommendation(ctx context.Context, disease, crop string) string {
	if crop == "" {
		crop = "general"
	}
	prompt := fmt.Sprintf(quickRecommendationTemplate, disease, crop)
	return s.ai.GenerateText(ctx, prompt, "")
}

// PredictOutbreak scores the next 7 forecast days for outbreak pressure.
func (s *Service) PredictOutbreak(ctx context.Context, latitude, longitude float64, crop string) (OutbreakPrediction, error) {
	if crop == "" {
		crop = "general"
	}
	forecast, err := s.weather.Forecast(ctx, latitude, longitude, 7)
	if err != nil {
		return OutbreakPrediction{}, fmt.Errorf("fetch forecast: %w", err)
	}

	dailyRisks := make([]DailyRisk, 0, len(forecast.Days))
	for _, day := range forecast.Days {
		dailyRisks = append(dailyRisks, scoreDay(day, crop))
	}

	peak := []DailyRisk{}
	for _, d := range dailyRisks {
		if d.RiskLevel == weather.RiskHigh {
			peak = append(peak, d)
		}
	}

	outlook := "favorable"
	if len(peak) >= 3 {
		outlook = "high_alert"
	} else if len(peak) >= 1 {
		outlook = "moderate"
	}

	return OutbreakPrediction{
		Crop:            crop,
		Location:        OutbreakLocation{Latitude: latitude, Longitude: longitude},
		DailyRisks:      dailyRisks,
		PeakRiskDays:    peak,
		OverallOutlook:  outlook,
		Recommendations: predictiveRecommendations(dailyRisks),
	}, nil
}
