// Package diagnosis turns plant and field imagery into structured findings.
package diagnosis

import (
	"context"
	"fmt"

	"github.com/agriguard/agriguard/internal/domain/normalize"
)

// Analyzer is the slice of the AI provider the service needs.
type Analyzer interface {
	AnalyzeImage(ctx context.Context, imageBase64, prompt string) string
}

// Service runs vision analysis over farmer-supplied imagery.
type Service struct {
	ai Analyzer
}

// NewService constructs a diagnosis service.
func NewService(ai Analyzer) *Service {
	return &Service{ai: ai}
}

// AnalyzeLeaf diagnoses a single leaf or plant image. Extra farmer context
// (crop, location, observations) is appended to the prompt. The payload
// always carries raw_analysis with the model's verbatim answer.
func (s *Service) AnalyzeLeaf(ctx context.Context, imageBase64, fieldContext string) map[string]any {
	prompt := leafPrompt
	if fieldContext != "" {
		prompt += fmt.Sprintf("\n\nAdditional context from farmer: %s", fieldContext)
	}

	raw := s.ai.AnalyzeImage(ctx, imageBase64, prompt)
	result := normalize.ExtractOr(raw, map[string]any{
		"disease_detected":   true,
		"disease_name":       "Analysis Complete",
		"confidence":         0.7,
		"description":        raw,
		"urgency_level":      "medium",
		"treatment_organic":  map[string]any{},
		"treatment_chemical": map[string]any{},
	})
	result.Data["raw_analysis"] = raw
	return result.Data
}

// AnalyzeField builds a zone health map from satellite or drone imagery.
func (s *Service) AnalyzeField(ctx context.Context, imageBase64, fieldInfo string) map[string]any {
	prompt := healthMapPrompt
	if fieldInfo != "" {
		prompt += fmt.Sprintf("\n\nField information: %s", fieldInfo)
	}

	raw := s.ai.AnalyzeImage(ctx, imageBase64, prompt)
	result := normalize.ExtractOr(raw, map[string]any{
		"overall_health_score": 70,
		"zones":                []any{},
		"recommendations":      []any{raw},
	})
	result.Data["raw_analysis"] = raw
	return result.Data
}

// QuickDiagnosis answers a free-form question about an image in plain prose.
// No JSON extraction happens here.
func (s *Service) QuickDiagnosis(ctx context.Context, imageBase64, question string) string {
	prompt := fmt.Sprintf(quickDiagnosisTemplate, question)
	return s.ai.AnalyzeImage(ctx, imageBase64, prompt)
}
