package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agriguard/agriguard/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestLogger(handler.logger),
		corsMiddleware(cfg.HTTP.CORSOrigins),
		rateLimitMiddleware(cfg.HTTP.RateLimit, handler.logger),
		errorHandlingMiddleware(handler.logger),
	)

	router.GET("/", handler.Root)
	router.GET("/health", handler.Health)
	router.GET("/ai-status", handler.AIStatus)

	analysis := router.Group("/analysis")
	{
		analysis.POST("/leaf", handler.AnalyzeLeaf)
		analysis.POST("/leaf/upload", handler.AnalyzeLeafUpload)
		analysis.POST("/field", handler.AnalyzeField)
		analysis.POST("/quick", handler.QuickDiagnosis)
		analysis.GET("/common-issues/:crop", handler.CommonIssues)
	}

	weather := router.Group("/weather")
	{
		weather.GET("/current", handler.CurrentWeather)
		weather.GET("/forecast", handler.WeatherForecast)
		weather.GET("/disease-risk", handler.DiseaseRisk)
		weather.GET("/spray-windows", handler.SprayWindows)
	}

	ipm := router.Group("/ipm")
	{
		ipm.POST("/strategy", handler.GenerateStrategy)
		ipm.GET("/quick/:disease", handler.QuickRecommendation)
		ipm.GET("/predict-outbreak", handler.PredictOutbreak)
		ipm.GET("/database", handler.ListDiseases)
		ipm.GET("/database/:disease_key", handler.DiseaseInfo)
	}

	chat := router.Group("/chat")
	{
		chat.POST("/message", handler.SendMessage)
		chat.POST("/message/upload", handler.SendMessageWithUpload)
		chat.POST("/ipm-strategy", handler.IPMInChat)
		chat.GET("/session/:session_id", handler.SessionInfo)
		chat.DELETE("/session/:session_id", handler.ClearSession)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
