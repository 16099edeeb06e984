package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	LLM     LLMConfig     `yaml:"llm"`
	Weather WeatherConfig `yaml:"weather"`
	Chat    ChatConfig    `yaml:"chat"`
	Archive ArchiveConfig `yaml:"archive"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address      string          `yaml:"address"`
	ReadTimeout  time.Duration   `yaml:"readTimeout"`
	WriteTimeout time.Duration   `yaml:"writeTimeout"`
	CORSOrigins  []string        `yaml:"corsOrigins"`
	RateLimit    RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// LLMConfig groups the settings for every AI backend.
type LLMConfig struct {
	Groq   GroqConfig   `yaml:"groq"`
	Gemini GeminiConfig `yaml:"gemini"`
	Ollama OllamaConfig `yaml:"ollama"`
}

// GroqConfig contains the fast cloud text/vision backend settings.
type GroqConfig struct {
	APIKey      string `yaml:"apiKey"`
	BaseURL     string `yaml:"baseUrl"`
	Model       string `yaml:"model"`
	VisionModel string `yaml:"visionModel"`
}

// GeminiConfig contains the Google Gemini backend settings.
type GeminiConfig struct {
	APIKey  string `yaml:"apiKey"`
	BaseURL string `yaml:"baseUrl"`
	Model   string `yaml:"model"`
}

// OllamaConfig contains the local inference backend settings.
type OllamaConfig struct {
	BaseURL     string `yaml:"baseUrl"`
	VisionModel string `yaml:"visionModel"`
	LLMModel    string `yaml:"llmModel"`
}

// WeatherConfig points at the forecast provider.
type WeatherConfig struct {
	BaseURL string `yaml:"baseUrl"`
}

// ChatConfig controls conversation history handling.
type ChatConfig struct {
	HistoryTokenBudget int                `yaml:"historyTokenBudget"`
	SessionStore       SessionStoreConfig `yaml:"sessionStore"`
}

// SessionStoreConfig selects the chat session store backend.
type SessionStoreConfig struct {
	// Backend is "memory" (default) or "valkey".
	Backend string `yaml:"backend"`
	Addr    string `yaml:"addr"`
}

// ArchiveConfig controls the optional S3-compatible archive for uploaded images.
type ArchiveConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.HTTP.CORSOrigins = splitList(v)
	}
	if v := os.Getenv("GROQ_API_KEY"); v != "" {
		cfg.LLM.Groq.APIKey = v
	}
	if v := os.Getenv("GROQ_BASE_URL"); v != "" {
		cfg.LLM.Groq.BaseURL = v
	}
	if v := os.Getenv("GROQ_MODEL"); v != "" {
		cfg.LLM.Groq.Model = v
	}
	if v := os.Getenv("GROQ_MODEL_VISION"); v != "" {
		cfg.LLM.Groq.VisionModel = v
	}
	if v := os.Getenv("GOOGLE_API_KEY"); v != "" {
		cfg.LLM.Gemini.APIKey = v
	}
	if v := os.Getenv("GEMINI_BASE_URL"); v != "" {
		cfg.LLM.Gemini.BaseURL = v
	}
	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		cfg.LLM.Gemini.Model = v
	}
	if v := os.Getenv("OLLAMA_BASE_URL"); v != "" {
		cfg.LLM.Ollama.BaseURL = v
	}
	if v := os.Getenv("OLLAMA_MODEL_VISION"); v != "" {
		cfg.LLM.Ollama.VisionModel = v
	}
	if v := os.Getenv("OLLAMA_MODEL_LLM"); v != "" {
		cfg.LLM.Ollama.LLMModel = v
	}
	if v := os.Getenv("WEATHER_API_BASE"); v != "" {
		cfg.Weather.BaseURL = v
	}
	if v := os.Getenv("CHAT_HISTORY_TOKEN_BUDGET"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Chat.HistoryTokenBudget = parsed
		}
	}
	if v := os.Getenv("CHAT_SESSION_STORE"); v != "" {
		cfg.Chat.SessionStore.Backend = v
	}
	if v := os.Getenv("CHAT_SESSION_STORE_ADDR"); v != "" {
		cfg.Chat.SessionStore.Addr = v
	}
	if v := os.Getenv("ARCHIVE_ENABLED"); v != "" {
		cfg.Archive.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("ARCHIVE_ENDPOINT"); v != "" {
		cfg.Archive.Endpoint = v
	}
	if v := os.Getenv("ARCHIVE_ACCESS_KEY"); v != "" {
		cfg.Archive.AccessKey = v
	}
	if v := os.Getenv("ARCHIVE_SECRET_KEY"); v != "" {
		cfg.Archive.SecretKey = v
	}
	if v := os.Getenv("ARCHIVE_BUCKET"); v != "" {
		cfg.Archive.Bucket = v
	}
	if v := os.Getenv("ARCHIVE_REGION"); v != "" {
		cfg.Archive.Region = v
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:     ":8000",
			ReadTimeout: 30 * time.Second,
			// Vision calls against a local backend can run up to two minutes.
			WriteTimeout: 180 * time.Second,
			CORSOrigins:  []string{"*"},
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
		},
		LLM: LLMConfig{
			Groq: GroqConfig{
				BaseURL:     "https://api.groq.com/openai/v1",
				Model:       "llama-3.3-70b-versatile",
				VisionModel: "llama-3.2-90b-vision-preview",
			},
			Gemini: GeminiConfig{
				BaseURL: "https://generativelanguage.googleapis.com/v1beta",
				Model:   "gemini-2.0-flash",
			},
			Ollama: OllamaConfig{
				BaseURL:     "http://localhost:11434",
				VisionModel: "llava:13b",
				LLMModel:    "mistral:7b",
			},
		},
		Weather: WeatherConfig{
			BaseURL: "https://api.open-meteo.com/v1",
		},
		Chat: ChatConfig{
			HistoryTokenBudget: 6000,
			SessionStore: SessionStoreConfig{
				Backend: "memory",
			},
		},
		Archive: ArchiveConfig{
			Enabled: false,
			Bucket:  "agriguard-uploads",
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.LLM.Ollama.BaseURL == "" {
		return errors.New("llm.ollama.baseUrl cannot be empty")
	}
	if c.LLM.Ollama.VisionModel == "" || c.LLM.Ollama.LLMModel == "" {
		return errors.New("llm.ollama models cannot be empty")
	}
	if c.LLM.Groq.BaseURL == "" || c.LLM.Groq.Model == "" || c.LLM.Groq.VisionModel == "" {
		return errors.New("llm.groq baseUrl and models cannot be empty")
	}
	if c.LLM.Gemini.BaseURL == "" || c.LLM.Gemini.Model == "" {
		return errors.New("llm.gemini baseUrl and model cannot be empty")
	}
	if c.Weather.BaseURL == "" {
		return errors.New("weather.baseUrl cannot be empty")
	}
	if c.Chat.HistoryTokenBudget <= 0 {
		return errors.New("chat.historyTokenBudget must be positive")
	}
	switch c.Chat.SessionStore.Backend {
	case "", "memory":
	case "valkey":
		if strings.TrimSpace(c.Chat.SessionStore.Addr) == "" {
			return errors.New("chat.sessionStore.addr cannot be empty when backend is valkey")
		}
	default:
		return fmt.Errorf("chat.sessionStore.backend %q is not supported", c.Chat.SessionStore.Backend)
	}
	if c.Archive.Enabled {
		if c.Archive.Endpoint == "" || c.Archive.Bucket == "" {
			return errors.New("archive.endpoint and archive.bucket cannot be empty when archiving is enabled")
		}
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	return nil
}
