package provider

import (
	"context"
	"fmt"
	"log/slog"
)

// Selector picks a backend per call from a fixed priority order and renders
// backend failures into display text, so callers always receive text.
//
// Text and vision calls use different orders on purpose: text prefers the
// fast cloud backend, vision prefers the free local vision model when it is
// reachable. Selection happens on every call; there is no stickiness across
// calls, so a multi-turn conversation can switch backends between turns when
// credentials or reachability change.
type Selector struct {
	groq   Backend // nil when no credential is configured
	gemini Backend // nil when no credential is configured
	local  Backend
	prober Prober
	logger *slog.Logger
}

// NewSelector wires the composite provider. groq and gemini may be nil.
func NewSelector(groq, gemini, local Backend, prober Prober, logger *slog.Logger) *Selector {
	return &Selector{
		groq:   groq,
		gemini: gemini,
		local:  local,
		prober: prober,
		logger: logger.With("component", "provider.selector"),
	}
}

// pickText prefers the fast cloud backend: groq, then gemini, then the local
// backend when reachable. When none qualify the first configured backend is
// returned anyway and its own error text surfaces.
func (s *Selector) pickText(ctx context.Context) Backend {
	if s.groq != nil {
		return s.groq
	}
	if s.gemini != nil {
		return s.gemini
	}
	if s.prober.Reachable(ctx) {
		return s.local
	}
	// Last resort: the local backend's own error text surfaces to the caller.
	return s.local
}

// pickVision prefers the free local vision model when reachable, then the
// cloud backends in text order.
func (s *Selector) pickVision(ctx context.Context) Backend {
	if s.prober.Reachable(ctx) {
		return s.local
	}
	if s.groq != nil {
		return s.groq
	}
	if s.gemini != nil {
		return s.gemini
	}
	return s.local
}

// AnalyzeImage runs a vision call against the selected backend.
func (s *Selector) AnalyzeImage(ctx context.Context, imageBase64, prompt string) string {
	backend := s.pickVision(ctx)
	text, err := backend.AnalyzeImage(ctx, imageBase64, prompt)
	if err != nil {
		return s.render(backend, "analyze image", err)
	}
	return text
}

// GenerateText runs a single-shot completion against the selected backend.
func (s *Selector) GenerateText(ctx context.Context, prompt, systemPrompt string) string {
	backend := s.pickText(ctx)
	text, err := backend.GenerateText(ctx, prompt, systemPrompt)
	if err != nil {
		return s.render(backend, "generate text", err)
	}
	return text
}

// Chat runs a multi-turn conversation against the selected backend.
func (s *Selector) Chat(ctx context.Context, messages []Message, systemPrompt string) string {
	backend := s.pickText(ctx)
	text, err := backend.Chat(ctx, messages, systemPrompt)
	if err != nil {
		return s.render(backend, "chat", err)
	}
	return text
}

// render is the single place a backend failure becomes user-visible text.
func (s *Selector) render(backend Backend, op string, err error) string {
	s.logger.Warn("ai backend call failed", "backend", backend.Name(), "op", op, "error", err)
	return fmt.Sprintf("Error: %s", err)
}

// Status describes the current provider landscape for health reporting.
type Status struct {
	Primary          string   `json:"primary_provider"`
	GroqConfigured   bool     `json:"groq_configured"`
	GeminiConfigured bool     `json:"gemini_configured"`
	LocalReachable   bool     `json:"local_reachable"`
	LocalModels      []string `json:"local_models,omitempty"`
}

// ModelLister enumerates models on the local backend.
type ModelLister interface {
	ListModels(ctx context.Context) ([]string, error)
}

// Status reports which backends are usable right now.
func (s *Selector) Status(ctx context.Context) Status {
	st := Status{
		GroqConfigured:   s.groq != nil,
		GeminiConfigured: s.gemini != nil,
		LocalReachable:   s.prober.Reachable(ctx),
	}
	switch {
	case st.GroqConfigured:
		st.Primary = s.groq.Name()
	case st.GeminiConfigured:
		st.Primary = s.gemini.Name()
	case st.LocalReachable:
		st.Primary = s.local.Name()
	default:
		st.Primary = "none"
	}
	if st.LocalReachable {
		if lister, ok := s.local.(ModelLister); ok {
			if models, err := lister.ListModels(ctx); err == nil {
				st.LocalModels = models
			}
		}
	}
	return st
}
