package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const apiVersion = "1.0.0"

// Root is the welcome endpoint.
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":    "AgriGuard - AI Agronomist",
		"version": apiVersion,
		"status":  "running",
		"endpoints": gin.H{
			"analysis": "/analysis",
			"weather":  "/weather",
			"ipm":      "/ipm",
			"chat":     "/chat",
		},
		"message": "🌱 Welcome to AgriGuard!",
	})
}

// Health reports liveness plus AI provider reachability.
func (h *Handler) Health(c *gin.Context) {
	status := h.status.Status(c.Request.Context())

	ollamaStatus := "not_running"
	if status.LocalReachable {
		ollamaStatus = "connected"
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"ai_providers": gin.H{
			"ollama": ollamaStatus,
			"groq":   configuredLabel(status.GroqConfigured),
			"gemini": configuredLabel(status.GeminiConfigured),
		},
	})
}

// AIStatus details the provider landscape and configured models.
func (h *Handler) AIStatus(c *gin.Context) {
	status := h.status.Status(c.Request.Context())

	ollamaStatus := "not_running"
	models := status.LocalModels
	if models == nil {
		models = []string{}
	}
	if status.LocalReachable {
		ollamaStatus = "connected"
	}

	c.JSON(http.StatusOK, gin.H{
		"primary_provider": status.Primary,
		"ollama": gin.H{
			"status":       ollamaStatus,
			"models":       models,
			"vision_model": h.cfg.LLM.Ollama.VisionModel,
			"llm_model":    h.cfg.LLM.Ollama.LLMModel,
		},
		"groq": gin.H{
			"status": readyLabel(status.GroqConfigured),
			"model":  h.cfg.LLM.Groq.Model,
		},
		"gemini": gin.H{
			"status": readyLabel(status.GeminiConfigured),
			"model":  h.cfg.LLM.Gemini.Model,
		},
	})
}

func configuredLabel(configured bool) string {
	if configured {
		return "configured"
	}
	return "not_configured"
}

func readyLabel(configured bool) string {
	if configured {
		return "ready"
	}
	return "not_configured"
}
