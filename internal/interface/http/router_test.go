package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/agriguard/agriguard/internal/domain/chat"
	"github.com/agriguard/agriguard/internal/domain/ipm"
	"github.com/agriguard/agriguard/internal/domain/provider"
	"github.com/agriguard/agriguard/internal/domain/weather"
	"github.com/agriguard/agriguard/internal/infra/config"
	"github.com/agriguard/agriguard/internal/infra/imagestore"
)

func TestRouter_AnalyzeLeafSuccess(t *testing.T) {
	diag := &stubDiagnosis{
		analyzeLeafFn: func(ctx context.Context, imageBase64, fieldContext string) map[string]any {
			require.Equal(t, "aW1n", imageBase64)
			require.Equal(t, "tomato plot", fieldContext)
			return map[string]any{"disease_name": "Late Blight", "confidence": 0.9}
		},
	}
	server := newRouterUnderTest(t, testDeps{diagnosis: diag})

	rec := performJSON(server, http.MethodPost, "/analysis/leaf", `{"image_base64":"aW1n","field_context":"tomato plot"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec.Body.Bytes())
	require.Equal(t, "success", body["status"])
	require.NotEmpty(t, body["timestamp"])
	data := body["data"].(map[string]any)
	require.Equal(t, "Late Blight", data["disease_name"])
}

func TestRouter_AnalyzeLeafMissingImage(t *testing.T) {
	server := newRouterUnderTest(t, testDeps{})

	rec := performJSON(server, http.MethodPost, "/analysis/leaf", `{"field_context":"x"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeBody(t, rec.Body.Bytes())
	require.Equal(t, "error", body["status"])
	require.NotEmpty(t, body["error"])
}

func TestRouter_WeatherCurrent(t *testing.T) {
	wx := &stubWeatherClient{
		currentFn: func(ctx context.Context, lat, lon float64) (weather.Snapshot, error) {
			require.Equal(t, 10.5, lat)
			require.Equal(t, 106.25, lon)
			return weather.Snapshot{Temperature: 28, Condition: "Clear sky"}, nil
		},
	}
	server := newRouterUnderTest(t, testDeps{weather: wx})

	rec := performJSON(server, http.MethodGet, "/weather/current?latitude=10.5&longitude=106.25", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec.Body.Bytes())
	data := body["data"].(map[string]any)
	require.Equal(t, 28.0, data["temperature"])
}

func TestRouter_WeatherCurrentBadCoordinates(t *testing.T) {
	server := newRouterUnderTest(t, testDeps{})

	rec := performJSON(server, http.MethodGet, "/weather/current?latitude=abc&longitude=1", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = performJSON(server, http.MethodGet, "/weather/current?latitude=95&longitude=1", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_WeatherUpstreamFailure(t *testing.T) {
	wx := &stubWeatherClient{
		currentFn: func(ctx context.Context, lat, lon float64) (weather.Snapshot, error) {
			return weather.Snapshot{}, errors.New("open-meteo unavailable")
		},
	}
	server := newRouterUnderTest(t, testDeps{weather: wx})

	rec := performJSON(server, http.MethodGet, "/weather/current?latitude=1&longitude=2", "")
	require.Equal(t, http.StatusBadGateway, rec.Code)

	body := decodeBody(t, rec.Body.Bytes())
	require.Contains(t, body["error"], "open-meteo unavailable")
}

func TestRouter_DiseaseRiskCombinesWeatherAndRisks(t *testing.T) {
	wx := &stubWeatherClient{
		currentFn: func(ctx context.Context, lat, lon float64) (weather.Snapshot, error) {
			return weather.Snapshot{Temperature: 20, Humidity: 90}, nil
		},
	}
	server := newRouterUnderTest(t, testDeps{weather: wx})

	rec := performJSON(server, http.MethodGet, "/weather/disease-risk?latitude=1&longitude=2", "")
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeBody(t, rec.Body.Bytes())["data"].(map[string]any)
	risks := data["risks"].(map[string]any)
	require.Equal(t, "high", risks["fungal_disease_risk"])
}

func TestRouter_IPMStrategy(t *testing.T) {
	ipmSvc := &stubIPM{
		strategyFn: func(ctx context.Context, in ipm.StrategyInput) map[string]any {
			require.Equal(t, "Late Blight", in.Disease)
			require.Equal(t, "tomato", in.Crop)
			require.NotNil(t, in.Latitude)
			return map[string]any{"strategy_name": "Plan"}
		},
	}
	server := newRouterUnderTest(t, testDeps{ipm: ipmSvc})

	rec := performJSON(server, http.MethodPost, "/ipm/strategy", `{"disease":"Late Blight","crop":"tomato","latitude":10,"longitude":20}`)
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeBody(t, rec.Body.Bytes())["data"].(map[string]any)
	require.Equal(t, "Plan", data["strategy_name"])
}

func TestRouter_IPMDatabaseLookup(t *testing.T) {
	server := newRouterUnderTest(t, testDeps{})

	rec := performJSON(server, http.MethodGet, "/ipm/database/late_blight", "")
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec.Body.Bytes())["data"].(map[string]any)
	require.Equal(t, "Late Blight", data["name"])

	rec = performJSON(server, http.MethodGet, "/ipm/database/nonexistent", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody(t, rec.Body.Bytes())
	require.Contains(t, body["error"], "late_blight")
}

func TestRouter_ChatMessageGeneratesSessionID(t *testing.T) {
	chatSvc := &stubChat{
		chatFn: func(ctx context.Context, in chat.TurnInput) (chat.Reply, error) {
			require.NotEmpty(t, in.SessionID)
			require.Contains(t, in.LanguageInstruction, "Respond in Hindi")
			return chat.Reply{Message: "नमस्ते"}, nil
		},
	}
	server := newRouterUnderTest(t, testDeps{chat: chatSvc})

	rec := performJSON(server, http.MethodPost, "/chat/message", `{"message":"hello","language":"hi-IN"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeBody(t, rec.Body.Bytes())["data"].(map[string]any)
	require.NotEmpty(t, data["session_id"])
	require.Equal(t, "नमस्ते", data["message"])
}

func TestRouter_ChatMessagePreservesSessionID(t *testing.T) {
	chatSvc := &stubChat{
		chatFn: func(ctx context.Context, in chat.TurnInput) (chat.Reply, error) {
			require.Equal(t, "existing", in.SessionID)
			return chat.Reply{Message: "ok"}, nil
		},
	}
	server := newRouterUnderTest(t, testDeps{chat: chatSvc})

	rec := performJSON(server, http.MethodPost, "/chat/message", `{"message":"hi","session_id":"existing"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeBody(t, rec.Body.Bytes())["data"].(map[string]any)
	require.Equal(t, "existing", data["session_id"])
}

func TestRouter_ChatSessionLifecycle(t *testing.T) {
	cleared := false
	chatSvc := &stubChat{
		sessionFn: func(ctx context.Context, sessionID string) (chat.SessionInfo, error) {
			return chat.SessionInfo{SessionID: sessionID, MessageCount: 4, HasHistory: true}, nil
		},
		clearFn: func(ctx context.Context, sessionID string) error {
			cleared = true
			return nil
		},
	}
	server := newRouterUnderTest(t, testDeps{chat: chatSvc})

	rec := performJSON(server, http.MethodGet, "/chat/session/s1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec.Body.Bytes())["data"].(map[string]any)
	require.Equal(t, 4.0, data["message_count"])
	require.Equal(t, true, data["has_history"])

	rec = performJSON(server, http.MethodDelete, "/chat/session/s1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, cleared)
}

func TestRouter_HealthAndAIStatus(t *testing.T) {
	status := &stubStatus{status: provider.Status{
		Primary:        "groq",
		GroqConfigured: true,
		LocalReachable: true,
		LocalModels:    []string{"llava:13b"},
	}}
	server := newRouterUnderTest(t, testDeps{status: status})

	rec := performJSON(server, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec.Body.Bytes())
	require.Equal(t, "healthy", body["status"])
	providers := body["ai_providers"].(map[string]any)
	require.Equal(t, "connected", providers["ollama"])
	require.Equal(t, "configured", providers["groq"])
	require.Equal(t, "not_configured", providers["gemini"])

	rec = performJSON(server, http.MethodGet, "/ai-status", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body = decodeBody(t, rec.Body.Bytes())
	require.Equal(t, "groq", body["primary_provider"])
	ollama := body["ollama"].(map[string]any)
	require.Equal(t, "llava:13b", ollama["vision_model"])
}

func TestRouter_CommonIssues(t *testing.T) {
	server := newRouterUnderTest(t, testDeps{})

	rec := performJSON(server, http.MethodGet, "/analysis/common-issues/corn", "")
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeBody(t, rec.Body.Bytes())["data"].(map[string]any)
	require.Equal(t, "corn", data["crop"])
	require.NotEmpty(t, data["diseases"])
}

// --- test scaffolding ---

type testDeps struct {
	diagnosis DiagnosisService
	ipm       IPMService
	chat      ChatService
	weather   weather.Client
	status    StatusReporter
}

func newRouterUnderTest(t *testing.T, deps testDeps) *http.Server {
	t.Helper()
	if deps.diagnosis == nil {
		deps.diagnosis = &stubDiagnosis{}
	}
	if deps.ipm == nil {
		deps.ipm = &stubIPM{}
	}
	if deps.chat == nil {
		deps.chat = &stubChat{}
	}
	if deps.weather == nil {
		deps.weather = &stubWeatherClient{}
	}
	if deps.status == nil {
		deps.status = &stubStatus{}
	}
	cfg := &config.Config{
		HTTP: config.HTTPConfig{
			Address:      ":0",
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
		},
		LLM: config.LLMConfig{
			Groq:   config.GroqConfig{Model: "llama-3.3-70b-versatile"},
			Gemini: config.GeminiConfig{Model: "gemini-2.0-flash"},
			Ollama: config.OllamaConfig{VisionModel: "llava:13b", LLMModel: "mistral:7b"},
		},
	}
	handler := NewHandler(deps.diagnosis, deps.ipm, deps.chat, deps.weather, deps.status, imagestore.NewNoopArchive(), cfg, newTestLogger())
	return NewRouter(cfg, handler)
}

func performJSON(server *http.Server, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, raw []byte) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubDiagnosis struct {
	analyzeLeafFn  func(ctx context.Context, imageBase64, fieldContext string) map[string]any
	analyzeFieldFn func(ctx context.Context, imageBase64, fieldInfo string) map[string]any
	quickFn        func(ctx context.Context, imageBase64, question string) string
}

func (s *stubDiagnosis) AnalyzeLeaf(ctx context.Context, imageBase64, fieldContext string) map[string]any {
	if s.analyzeLeafFn != nil {
		return s.analyzeLeafFn(ctx, imageBase64, fieldContext)
	}
	return map[string]any{}
}

func (s *stubDiagnosis) AnalyzeField(ctx context.Context, imageBase64, fieldInfo string) map[string]any {
	if s.analyzeFieldFn != nil {
		return s.analyzeFieldFn(ctx, imageBase64, fieldInfo)
	}
	return map[string]any{}
}

func (s *stubDiagnosis) QuickDiagnosis(ctx context.Context, imageBase64, question string) string {
	if s.quickFn != nil {
		return s.quickFn(ctx, imageBase64, question)
	}
	return ""
}

type stubIPM struct {
	strategyFn func(ctx context.Context, in ipm.StrategyInput) map[string]any
	quickFn    func(ctx context.Context, disease, crop string) string
	outbreakFn func(ctx context.Context, latitude, longitude float64, crop string) (ipm.OutbreakPrediction, error)
}

func (s *stubIPM) GenerateStrategy(ctx context.Context, in ipm.StrategyInput) map[string]any {
	if s.strategyFn != nil {
		return s.strategyFn(ctx, in)
	}
	return map[string]any{}
}

func (s *stubIPM) QuickRecommendation(ctx context.Context, disease, crop string) string {
	if s.quickFn != nil {
		return s.quickFn(ctx, disease, crop)
	}
	return ""
}

func (s *stubIPM) PredictOutbreak(ctx context.Context, latitude, longitude float64, crop string) (ipm.OutbreakPrediction, error) {
	if s.outbreakFn != nil {
		return s.outbreakFn(ctx, latitude, longitude, crop)
	}
	return ipm.OutbreakPrediction{}, nil
}

type stubChat struct {
	chatFn    func(ctx context.Context, in chat.TurnInput) (chat.Reply, error)
	ipmFn     func(ctx context.Context, disease, crop string, latitude, longitude *float64) chat.IPMConversationReply
	clearFn   func(ctx context.Context, sessionID string) error
	sessionFn func(ctx context.Context, sessionID string) (chat.SessionInfo, error)
}

func (s *stubChat) Chat(ctx context.Context, in chat.TurnInput) (chat.Reply, error) {
	if s.chatFn != nil {
		return s.chatFn(ctx, in)
	}
	return chat.Reply{}, nil
}

func (s *stubChat) IPMForConversation(ctx context.Context, disease, crop string, latitude, longitude *float64) chat.IPMConversationReply {
	if s.ipmFn != nil {
		return s.ipmFn(ctx, disease, crop, latitude, longitude)
	}
	return chat.IPMConversationReply{}
}

func (s *stubChat) ClearHistory(ctx context.Context, sessionID string) error {
	if s.clearFn != nil {
		return s.clearFn(ctx, sessionID)
	}
	return nil
}

func (s *stubChat) Session(ctx context.Context, sessionID string) (chat.SessionInfo, error) {
	if s.sessionFn != nil {
		return s.sessionFn(ctx, sessionID)
	}
	return chat.SessionInfo{}, nil
}

type stubWeatherClient struct {
	currentFn  func(ctx context.Context, lat, lon float64) (weather.Snapshot, error)
	forecastFn func(ctx context.Context, lat, lon float64, days int) (weather.Forecast, error)
}

func (s *stubWeatherClient) Current(ctx context.Context, lat, lon float64) (weather.Snapshot, error) {
	if s.currentFn != nil {
		return s.currentFn(ctx, lat, lon)
	}
	return weather.Snapshot{}, nil
}

func (s *stubWeatherClient) Forecast(ctx context.Context, lat, lon float64, days int) (weather.Forecast, error) {
	if s.forecastFn != nil {
		return s.forecastFn(ctx, lat, lon, days)
	}
	return weather.Forecast{}, nil
}

func (s *stubWeatherClient) Historical(ctx context.Context, lat, lon float64, daysBack int) (weather.History, error) {
	return weather.History{}, nil
}

type stubStatus struct {
	status provider.Status
}

func (s *stubStatus) Status(ctx context.Context) provider.Status {
	return s.status
}
