package http

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/agriguard/agriguard/internal/domain/chat"
	"github.com/agriguard/agriguard/internal/domain/ipm"
	"github.com/agriguard/agriguard/internal/domain/provider"
	"github.com/agriguard/agriguard/internal/domain/weather"
	"github.com/agriguard/agriguard/internal/infra/config"
	"github.com/agriguard/agriguard/internal/infra/imagestore"
)

// DiagnosisService is the image analysis surface used by the handlers.
type DiagnosisService interface {
	AnalyzeLeaf(ctx context.Context, imageBase64, fieldContext string) map[string]any
	AnalyzeField(ctx context.Context, imageBase64, fieldInfo string) map[string]any
	QuickDiagnosis(ctx context.Context, imageBase64, question string) string
}

// IPMService is the pest management surface used by the handlers.
type IPMService interface {
	GenerateStrategy(ctx context.Context, in ipm.StrategyInput) map[string]any
	QuickRecommendation(ctx context.Context, disease, crop string) string
	PredictOutbreak(ctx context.Context, latitude, longitude float64, crop string) (ipm.OutbreakPrediction, error)
}

// ChatService is the conversational surface used by the handlers.
type ChatService interface {
	Chat(ctx context.Context, in chat.TurnInput) (chat.Reply, error)
	IPMForConversation(ctx context.Context, disease, crop string, latitude, longitude *float64) chat.IPMConversationReply
	ClearHistory(ctx context.Context, sessionID string) error
	Session(ctx context.Context, sessionID string) (chat.SessionInfo, error)
}

// StatusReporter reports the AI provider landscape.
type StatusReporter interface {
	Status(ctx context.Context) provider.Status
}

// Handler wires the HTTP transport to domain services.
type Handler struct {
	diagnosisSvc DiagnosisService
	ipmSvc       IPMService
	chatSvc      ChatService
	weatherSvc   weather.Client
	status       StatusReporter
	archive      imagestore.Archive
	cfg          *config.Config
	logger       *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(
	diagnosisSvc DiagnosisService,
	ipmSvc IPMService,
	chatSvc ChatService,
	weatherSvc weather.Client,
	status StatusReporter,
	archive imagestore.Archive,
	cfg *config.Config,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		diagnosisSvc: diagnosisSvc,
		ipmSvc:       ipmSvc,
		chatSvc:      chatSvc,
		weatherSvc:   weatherSvc,
		status:       status,
		archive:      archive,
		cfg:          cfg,
		logger:       logger.With("component", "http.handler"),
	}
}

// languageNames maps BCP-47 language codes to the names used in prompts.
var languageNames = map[string]string{
	"en-US": "English",
	"hi-IN": "Hindi",
	"es-ES": "Spanish",
	"fr-FR": "French",
	"pt-BR": "Portuguese",
	"de-DE": "German",
	"zh-CN": "Chinese (Simplified)",
	"ar-SA": "Arabic",
	"bn-IN": "Bengali",
	"ta-IN": "Tamil",
	"te-IN": "Telugu",
	"mr-IN": "Marathi",
	"gu-IN": "Gujarati",
	"kn-IN": "Kannada",
	"pa-IN": "Punjabi",
}

// languageInstruction builds the response-language directive for a code.
// Unknown or empty codes fall back to English.
func languageInstruction(code string) string {
	name, ok := languageNames[code]
	if !ok {
		name = "English"
	}
	return fmt.Sprintf("IMPORTANT: Respond in %s. The user speaks %s.", name, name)
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
