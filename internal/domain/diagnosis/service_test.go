package diagnosis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubAnalyzer struct {
	reply      string
	lastPrompt string
}

func (s *stubAnalyzer) AnalyzeImage(_ context.Context, _, prompt string) string {
	s.lastPrompt = prompt
	return s.reply
}

func TestAnalyzeLeafParsesJSON(t *testing.T) {
	ai := &stubAnalyzer{reply: "Here is my analysis:\n```json\n{\"disease_detected\": true, \"disease_name\": \"Late Blight\", \"confidence\": 0.92}\n```"}
	svc := NewService(ai)

	result := svc.AnalyzeLeaf(context.Background(), "aW1n", "tomato field, heavy rain last week")

	require.Equal(t, "Late Blight", result["disease_name"])
	require.Equal(t, 0.92, result["confidence"])
	require.NotContains(t, result, "parse_error")
	require.Equal(t, ai.reply, result["raw_analysis"])
	require.Contains(t, ai.lastPrompt, "Additional context from farmer: tomato field, heavy rain last week")
}

func TestAnalyzeLeafFallsBackOnProse(t *testing.T) {
	ai := &stubAnalyzer{reply: "The leaf looks mostly healthy with minor spotting."}
	svc := NewService(ai)

	result := svc.AnalyzeLeaf(context.Background(), "aW1n", "")

	require.Equal(t, true, result["parse_error"])
	require.Equal(t, "Analysis Complete", result["disease_name"])
	require.Equal(t, 0.7, result["confidence"])
	require.Equal(t, "medium", result["urgency_level"])
	require.Equal(t, ai.reply, result["description"])
	require.Equal(t, ai.reply, result["raw_analysis"])
}

func TestAnalyzeFieldFallbackShape(t *testing.T) {
	ai := &stubAnalyzer{reply: "Zones A and B show water stress."}
	svc := NewService(ai)

	result := svc.AnalyzeField(context.Background(), "aW1n", "5ha maize plot")

	require.Equal(t, true, result["parse_error"])
	require.Equal(t, 70, result["overall_health_score"])
	require.Equal(t, []any{}, result["zones"])
	require.Equal(t, []any{ai.reply}, result["recommendations"])
	require.Contains(t, ai.lastPrompt, "Field information: 5ha maize plot")
}

func TestQuickDiagnosisReturnsProse(t *testing.T) {
	ai := &stubAnalyzer{reply: "Looks like aphids. Spray neem oil in the evening."}
	svc := NewService(ai)

	answer := svc.QuickDiagnosis(context.Background(), "aW1n", "What's wrong with this plant?")

	require.Equal(t, ai.reply, answer)
	require.Contains(t, ai.lastPrompt, `asked: "What's wrong with this plant?"`)
}

func TestCommonIssuesMergesUniversalPests(t *testing.T) {
	diseases, pests := CommonIssues("corn")
	require.Contains(t, diseases, "Gray Leaf Spot")
	require.Len(t, pests, 8)
	require.Equal(t, "Aphids", pests[0].Name)
	require.Equal(t, "Fall Armyworm", pests[5].Name)

	unknownDiseases, unknownPests := CommonIssues("dragonfruit")
	require.Empty(t, unknownDiseases)
	require.Len(t, unknownPests, 5)
}
