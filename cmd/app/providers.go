package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/agriguard/agriguard/internal/domain/chat"
	"github.com/agriguard/agriguard/internal/domain/diagnosis"
	"github.com/agriguard/agriguard/internal/domain/ipm"
	"github.com/agriguard/agriguard/internal/domain/provider"
	"github.com/agriguard/agriguard/internal/domain/weather"
	"github.com/agriguard/agriguard/internal/infra/config"
	"github.com/agriguard/agriguard/internal/infra/imagestore"
	"github.com/agriguard/agriguard/internal/infra/llm/gemini"
	"github.com/agriguard/agriguard/internal/infra/llm/groq"
	"github.com/agriguard/agriguard/internal/infra/llm/ollama"
	"github.com/agriguard/agriguard/internal/infra/session"
	"github.com/agriguard/agriguard/internal/infra/tokenizer"
	"github.com/agriguard/agriguard/internal/infra/weather/openmeteo"
)

// provideSelector assembles the composite AI provider. Cloud backends are
// only constructed when their credential is configured; the local backend is
// always present as the last resort.
func provideSelector(cfg *config.Config, logger *slog.Logger) (*provider.Selector, error) {
	local := ollama.NewClient(cfg.LLM.Ollama.BaseURL, cfg.LLM.Ollama.VisionModel, cfg.LLM.Ollama.LLMModel)

	var groqBackend provider.Backend
	if cfg.LLM.Groq.APIKey != "" {
		client, err := groq.NewClient(cfg.LLM.Groq.APIKey, cfg.LLM.Groq.BaseURL, cfg.LLM.Groq.Model, cfg.LLM.Groq.VisionModel)
		if err != nil {
			return nil, err
		}
		groqBackend = client
		logger.Info("groq backend configured", "model", cfg.LLM.Groq.Model)
	}

	var geminiBackend provider.Backend
	if cfg.LLM.Gemini.APIKey != "" {
		client, err := gemini.NewClient(cfg.LLM.Gemini.APIKey, cfg.LLM.Gemini.BaseURL, cfg.LLM.Gemini.Model)
		if err != nil {
			return nil, err
		}
		geminiBackend = client
		logger.Info("gemini backend configured", "model", cfg.LLM.Gemini.Model)
	}

	return provider.NewSelector(groqBackend, geminiBackend, local, local, logger), nil
}

func provideWeatherClient(cfg *config.Config) weather.Client {
	return openmeteo.NewClient(cfg.Weather.BaseURL)
}

func provideDiagnosisService(selector *provider.Selector) *diagnosis.Service {
	return diagnosis.NewService(selector)
}

func provideIPMService(selector *provider.Selector, weatherClient weather.Client, logger *slog.Logger) *ipm.Service {
	return ipm.NewService(selector, weatherClient, logger)
}

// provideSessionStore prefers Valkey when configured and reachable, falling
// back to the in-memory store otherwise.
func provideSessionStore(cfg *config.Config, logger *slog.Logger) chat.Store {
	if cfg.Chat.SessionStore.Backend == "valkey" {
		client, err := valkey.NewClient(valkey.ClientOption{
			InitAddress: []string{cfg.Chat.SessionStore.Addr},
		})
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory session store", "error", err)
			return session.NewMemoryStore()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory session store", "error", err)
		} else {
			logger.Info("valkey session store enabled", "addr", cfg.Chat.SessionStore.Addr)
			return session.NewValkeyStore(client, "chat")
		}
	}
	return session.NewMemoryStore()
}

// provideImageArchive enables the S3-compatible archive when configured.
func provideImageArchive(cfg *config.Config, logger *slog.Logger) imagestore.Archive {
	if !cfg.Archive.Enabled {
		return imagestore.NewNoopArchive()
	}
	archive, err := imagestore.NewMinioArchive(
		cfg.Archive.Endpoint,
		cfg.Archive.AccessKey,
		cfg.Archive.SecretKey,
		cfg.Archive.Bucket,
		cfg.Archive.Region,
		logger,
	)
	if err != nil {
		logger.Error("failed to initialize upload archive, uploads will not be archived", "error", err)
		return imagestore.NewNoopArchive()
	}
	logger.Info("upload archive enabled", "bucket", cfg.Archive.Bucket)
	return archive
}

func provideTokenCounter(logger *slog.Logger) *tokenizer.Counter {
	return tokenizer.NewCounter(logger)
}

func provideChatService(
	cfg *config.Config,
	selector *provider.Selector,
	diagnosisSvc *diagnosis.Service,
	ipmSvc *ipm.Service,
	weatherClient weather.Client,
	store chat.Store,
	counter *tokenizer.Counter,
	logger *slog.Logger,
) *chat.Service {
	return chat.NewService(
		selector,
		diagnosisSvc,
		ipmSvc,
		weatherClient,
		store,
		counter,
		cfg.Chat.HistoryTokenBudget,
		logger,
	)
}
