// Package chat implements the conversational agronomist: multi-turn sessions,
// intent shortcuts for weather and IPM, and image turns that run a diagnosis
// inline.
package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/agriguard/agriguard/internal/domain/ipm"
	"github.com/agriguard/agriguard/internal/domain/provider"
	"github.com/agriguard/agriguard/internal/domain/weather"
)

// agronomistSystemPrompt shapes every general conversation turn.
const agronomistSystemPrompt = `You are AgriGuard AI, a friendly and knowledgeable agricultural advisor.
You help farmers with:
- Plant disease identification and treatment
- Pest management strategies
- Crop health optimization
- Weather-based farming advice
- Sustainable farming practices

Guidelines:
1. Be conversational and friendly - farmers should feel comfortable asking questions
2. Use simple language, avoid excessive jargon
3. Always provide actionable advice
4. When discussing treatments, mention BOTH organic and chemical options
5. Consider the farmer's context (location, crop type, season)
6. If unsure, ask clarifying questions
7. Prioritize sustainable, long-term solutions over quick fixes
8. Include safety warnings when discussing chemicals

You can analyze images of plants, leaves, and fields when provided.
You have access to weather data and can predict disease outbreaks.
You can create comprehensive IPM (Integrated Pest Management) strategies.

Respond naturally and helpfully. If the farmer sends an image, analyze it thoroughly.`

const defaultImageQuestion = "What's wrong with this plant?"

// Chatter is the slice of the AI provider used for general turns.
type Chatter interface {
	Chat(ctx context.Context, messages []provider.Message, systemPrompt string) string
}

// Diagnoser runs image analysis for image turns.
type Diagnoser interface {
	QuickDiagnosis(ctx context.Context, imageBase64, question string) string
	AnalyzeLeaf(ctx context.Context, imageBase64, fieldContext string) map[string]any
}

// Strategist generates IPM strategies for in-conversation requests.
type Strategist interface {
	GenerateStrategy(ctx context.Context, in ipm.StrategyInput) map[string]any
}

// TokenCounter measures prompt size for history budgeting.
type TokenCounter interface {
	Count(text string) int
}

// Service is the conversational agronomist.
type Service struct {
	ai          Chatter
	diagnosis   Diagnoser
	ipm         Strategist
	weather     weather.Client
	store       Store
	tokens      TokenCounter
	tokenBudget int
	logger      *slog.Logger
}

// NewService constructs a chat service. tokenBudget caps the history tokens
// sent per general turn; zero or negative disables trimming.
func NewService(
	ai Chatter,
	diagnoser Diagnoser,
	strategist Strategist,
	weatherClient weather.Client,
	store Store,
	tokens TokenCounter,
	tokenBudget int,
	logger *slog.Logger,
) *Service {
	return &Service{
		ai:          ai,
		diagnosis:   diagnoser,
		ipm:         strategist,
		weather:     weatherClient,
		store:       store,
		tokens:      tokens,
		tokenBudget: tokenBudget,
		logger:      logger.With("component", "chat.service"),
	}
}

// Action is a follow-up the UI can offer after a reply.
type Action struct {
	Action string `json:"action"`
	Label  string `json:"label"`
}

// Reply is the assistant's answer to one turn.
type Reply struct {
	Message          string         `json:"message"`
	Analysis         map[string]any `json:"analysis"`
	Suggestions      []string       `json:"suggestions"`
	ActionsAvailable []Action       `json:"actions_available"`
}

// TurnInput is one farmer message plus its request context.
type TurnInput struct {
	Message             string
	SessionID           string
	ImageBase64         string
	Latitude            *float64
	Longitude           *float64
	CropType            string
	LanguageInstruction string
}

// Chat processes one turn. Image turns run diagnosis without touching the
// session history; text turns append the user message and the assistant
// reply as a pair, whichever branch produced the reply.
func (s *Service) Chat(ctx context.Context, in TurnInput) (Reply, error) {
	reply := Reply{
		Suggestions:      []string{},
		ActionsAvailable: []Action{},
	}

	if in.ImageBase64 != "" {
		s.imageTurn(ctx, in, &reply)
		return reply, nil
	}

	if err := s.store.Append(ctx, in.SessionID, provider.Message{Role: provider.RoleUser, Content: in.Message}); err != nil {
		return Reply{}, fmt.Errorf("append user message: %w", err)
	}

	switch detectIntent(in.Message) {
	case intentWeather:
		s.weatherTurn(ctx, in, &reply)
	case intentIPM:
		reply.Message = "I can create a comprehensive pest management plan for you. What disease or pest are you dealing with? And what crop is affected?"
		reply.Suggestions = []string{
			"Late Blight on tomatoes",
			"Aphids on vegetables",
			"Powdery Mildew on cucumbers",
		}
	default:
		if err := s.generalTurn(ctx, in, &reply); err != nil {
			return Reply{}, err
		}
	}

	if err := s.store.Append(ctx, in.SessionID, provider.Message{Role: provider.RoleAssistant, Content: reply.Message}); err != nil {
		return Reply{}, fmt.Errorf("append assistant message: %w", err)
	}
	return reply, nil
}

func (s *Service) imageTurn(ctx context.Context, in TurnInput, reply *Reply) {
	question := in.Message
	if question == "" {
		question = defaultImageQuestion
	}
	if in.LanguageInstruction != "" {
		question = in.LanguageInstruction + " " + question
	}

	reply.Message = s.diagnosis.QuickDiagnosis(ctx, in.ImageBase64, question)
	analysis := s.diagnosis.AnalyzeLeaf(ctx, in.ImageBase64, in.CropType)
	reply.Analysis = analysis

	if detected, _ := analysis["disease_detected"].(bool); detected {
		disease, _ := analysis["disease_name"].(string)
		if disease == "" {
			disease = "detected issue"
		}
		reply.Suggestions = []string{
			fmt.Sprintf("Would you like a detailed IPM strategy for %s?", disease),
			"Should I check the weather conditions for spraying?",
			"Want to see treatment options in detail?",
		}
		reply.ActionsAvailable = []Action{
			{Action: "get_ipm_strategy", Label: "Get Treatment Plan"},
			{Action: "check_weather", Label: "Check Spray Conditions"},
			{Action: "more_info", Label: "Learn More About This Disease"},
		}
	}
}

func (s *Service) weatherTurn(ctx context.Context, in TurnInput, reply *Reply) {
	if in.Latitude == nil || in.Longitude == nil {
		reply.Message = "I'd love to check the weather for you! Could you share your location or enter your coordinates?"
		reply.ActionsAvailable = []Action{{Action: "share_location", Label: "Share My Location"}}
		return
	}

	current, err := s.weather.Current(ctx, *in.Latitude, *in.Longitude)
	if err != nil {
		s.logger.Warn("weather lookup failed in chat", "error", err)
		reply.Message = "Sorry, I couldn't fetch the weather for your location right now. Please try again in a moment."
		return
	}
	risks := weather.AssessRisk(current)

	var b strings.Builder
	fmt.Fprintf(&b, "Current conditions at your location:\n")
	fmt.Fprintf(&b, "🌡️ Temperature: %.1f°C\n", current.Temperature)
	fmt.Fprintf(&b, "💧 Humidity: %.0f%%\n", current.Humidity)
	fmt.Fprintf(&b, "💨 Wind Speed: %.1f km/h\n", current.WindSpeed)
	fmt.Fprintf(&b, "🌤️ Conditions: %s\n\n", current.Condition)
	fmt.Fprintf(&b, "Disease Risk Assessment:\n")
	fmt.Fprintf(&b, "- Fungal Disease Risk: %s\n", risks.FungalRisk)
	fmt.Fprintf(&b, "- Pest Activity Risk: %s\n", risks.PestRisk)
	fmt.Fprintf(&b, "- Spray Conditions: %s\n\n", risks.SprayConditions)
	if len(risks.Alerts) > 0 {
		b.WriteString("⚠️ Alerts:\n" + strings.Join(risks.Alerts, "\n"))
	}
	reply.Message = b.String()
}

func (s *Service) generalTurn(ctx context.Context, in TurnInput, reply *Reply) error {
	history, err := s.store.History(ctx, in.SessionID)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	history = s.trimToBudget(history)

	systemPrompt := agronomistSystemPrompt
	if in.LanguageInstruction != "" {
		systemPrompt = in.LanguageInstruction + "\n\n" + systemPrompt
	}
	reply.Message = s.ai.Chat(ctx, history, systemPrompt)
	return nil
}

// trimToBudget drops the oldest messages until the history fits the token
// budget. The most recent message is always kept.
func (s *Service) trimToBudget(history []provider.Message) []provider.Message {
	if s.tokenBudget <= 0 || len(history) == 0 {
		return history
	}
	total := 0
	start := len(history)
	for i := len(history) - 1; i >= 0; i-- {
		cost := s.tokens.Count(history[i].Content)
		if total+cost > s.tokenBudget && start < len(history) {
			break
		}
		total += cost
		start = i
	}
	if start > 0 {
		s.logger.Debug("trimmed chat history", "dropped", start, "kept", len(history)-start)
	}
	return history[start:]
}

// IPMConversationReply packages a strategy for delivery inside a chat.
type IPMConversationReply struct {
	Summary      string         `json:"summary"`
	FullStrategy map[string]any `json:"full_strategy"`
	FollowUp     string         `json:"follow_up"`
}

// IPMForConversation generates a strategy and renders a short markdown
// summary of its top items.
func (s *Service) IPMForConversation(ctx context.Context, disease, crop string, latitude, longitude *float64) IPMConversationReply {
	strategy := s.ipm.GenerateStrategy(ctx, ipm.StrategyInput{
		Disease:   disease,
		Crop:      crop,
		Latitude:  latitude,
		Longitude: longitude,
	})

	var b strings.Builder
	fmt.Fprintf(&b, "Here's your personalized treatment plan for **%s** in your %s crop:\n\n", disease, crop)

	b.WriteString("**🚨 Immediate Actions:**\n")
	for _, item := range takeAny(strategy["immediate_actions"], 3) {
		if m, ok := asMap(item); ok {
			fmt.Fprintf(&b, "- %s (%s)\n", str(m, "action"), strOr(m, "timing", "ASAP"))
		} else if text, ok := item.(string); ok {
			fmt.Fprintf(&b, "- %s\n", text)
		}
	}

	b.WriteString("\n**🌿 Organic Solutions:**\n")
	for _, item := range takeAny(strategy["organic_solutions"], 2) {
		if m, ok := asMap(item); ok {
			fmt.Fprintf(&b, "- **%s**: %s\n", str(m, "product"), str(m, "application"))
		}
	}

	b.WriteString("\n**🧪 Chemical Options (if needed):**\n")
	for _, item := range takeAny(strategy["chemical_solutions"], 2) {
		if m, ok := asMap(item); ok {
			fmt.Fprintf(&b, "- **%s**: %s (Wait %s before harvest)\n",
				str(m, "product"), str(m, "dosage"), strOr(m, "safety_period", "as directed"))
		}
	}

	if companions := takeAny(strategy["companion_planting"], 2); len(companions) > 0 {
		b.WriteString("\n**🌱 Companion Planting:**\n")
		for _, item := range companions {
			if m, ok := asMap(item); ok {
				fmt.Fprintf(&b, "- Plant **%s** - %s\n", str(m, "plant"), str(m, "benefit"))
			} else if plant, ok := item.(ipm.CompanionPlant); ok {
				fmt.Fprintf(&b, "- Plant **%s** - %s\n", plant.Plant, plant.Benefit)
			}
		}
	}

	return IPMConversationReply{
		Summary:      b.String(),
		FullStrategy: strategy,
		FollowUp:     "Would you like me to explain any of these in more detail, or check the best time to spray based on your local weather?",
	}
}

// ClearHistory drops all messages for a session.
func (s *Service) ClearHistory(ctx context.Context, sessionID string) error {
	return s.store.Clear(ctx, sessionID)
}

// SessionInfo reports a session's size.
type SessionInfo struct {
	SessionID    string `json:"session_id"`
	MessageCount int    `json:"message_count"`
	HasHistory   bool   `json:"has_history"`
}

// Session describes a session for status reporting.
func (s *Service) Session(ctx context.Context, sessionID string) (SessionInfo, error) {
	history, err := s.store.History(ctx, sessionID)
	if err != nil {
		return SessionInfo{}, fmt.Errorf("load history: %w", err)
	}
	return SessionInfo{
		SessionID:    sessionID,
		MessageCount: len(history),
		HasHistory:   len(history) > 0,
	}, nil
}

// takeAny normalizes a strategy field into at most n items. Strategy payloads
// mix decoded JSON ([]any) with typed values added by enrichment.
func takeAny(v any, n int) []any {
	var items []any
	switch list := v.(type) {
	case []any:
		items = list
	case []ipm.CompanionPlant:
		items = make([]any, len(list))
		for i, p := range list {
			items[i] = p
		}
	default:
		return nil
	}
	if len(items) > n {
		items = items[:n]
	}
	return items
}

func asMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

func str(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func strOr(m map[string]any, key, fallback string) string {
	if s, ok := m[key].(string); ok && s != "" {
		return s
	}
	return fallback
}
