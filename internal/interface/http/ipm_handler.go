package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/agriguard/agriguard/internal/domain/ipm"
)

type strategyRequest struct {
	Disease   string   `json:"disease" binding:"required"`
	Crop      string   `json:"crop"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Context   string   `json:"context"`
}

// GenerateStrategy produces a full IPM strategy.
func (h *Handler) GenerateStrategy(c *gin.Context) {
	var req strategyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, errMessage(err), err))
		return
	}

	strategy := h.ipmSvc.GenerateStrategy(c.Request.Context(), ipm.StrategyInput{
		Disease:   req.Disease,
		Crop:      req.Crop,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Context:   req.Context,
	})
	respondSuccess(c, strategy)
}

// QuickRecommendation returns a short treatment suggestion for a disease.
func (h *Handler) QuickRecommendation(c *gin.Context) {
	disease := c.Param("disease")
	crop := c.DefaultQuery("crop", "general")

	recommendation := h.ipmSvc.QuickRecommendation(c.Request.Context(), disease, crop)
	respondSuccess(c, gin.H{
		"disease":        disease,
		"crop":           crop,
		"recommendation": recommendation,
	})
}

// PredictOutbreak scores the next week's outbreak risk for a location.
func (h *Handler) PredictOutbreak(c *gin.Context) {
	lat, lon, ok := coordinates(c)
	if !ok {
		return
	}
	crop := c.DefaultQuery("crop", "general")

	prediction, err := h.ipmSvc.PredictOutbreak(c.Request.Context(), lat, lon, crop)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadGateway, errMessage(err), err))
		return
	}
	respondSuccess(c, prediction)
}

// DiseaseInfo returns a preset sheet for a known disease key.
func (h *Handler) DiseaseInfo(c *gin.Context) {
	key := c.Param("disease_key")
	info, ok := ipm.LookupDisease(key)
	if !ok {
		message := "Disease not found. Available: " + strings.Join(ipm.DiseaseKeys(), ", ")
		abortWithError(c, NewHTTPError(http.StatusNotFound, message, nil))
		return
	}
	respondSuccess(c, info)
}

// ListDiseases returns the whole preset disease database.
func (h *Handler) ListDiseases(c *gin.Context) {
	respondSuccess(c, gin.H{
		"diseases": ipm.DiseaseKeys(),
		"database": ipm.DiseaseDatabase(),
	})
}
