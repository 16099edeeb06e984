package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/agriguard/agriguard/internal/domain/weather"
)

// CurrentWeather returns present conditions for a location.
func (h *Handler) CurrentWeather(c *gin.Context) {
	lat, lon, ok := coordinates(c)
	if !ok {
		return
	}
	snapshot, err := h.weatherSvc.Current(c.Request.Context(), lat, lon)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadGateway, errMessage(err), err))
		return
	}
	respondSuccess(c, snapshot)
}

// WeatherForecast returns the daily forecast, up to 16 days.
func (h *Handler) WeatherForecast(c *gin.Context) {
	lat, lon, ok := coordinates(c)
	if !ok {
		return
	}
	days := 7
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, "days must be an integer", err))
			return
		}
		days = parsed
	}
	forecast, err := h.weatherSvc.Forecast(c.Request.Context(), lat, lon, days)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadGateway, errMessage(err), err))
		return
	}
	respondSuccess(c, forecast)
}

// DiseaseRisk assesses disease pressure from current weather.
func (h *Handler) DiseaseRisk(c *gin.Context) {
	lat, lon, ok := coordinates(c)
	if !ok {
		return
	}
	snapshot, err := h.weatherSvc.Current(c.Request.Context(), lat, lon)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadGateway, errMessage(err), err))
		return
	}
	respondSuccess(c, gin.H{
		"weather": snapshot,
		"risks":   weather.AssessRisk(snapshot),
	})
}

// SprayWindows finds optimal spray days in the next 7 days.
func (h *Handler) SprayWindows(c *gin.Context) {
	lat, lon, ok := coordinates(c)
	if !ok {
		return
	}
	forecast, err := h.weatherSvc.Forecast(c.Request.Context(), lat, lon, 7)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadGateway, errMessage(err), err))
		return
	}
	windows := weather.OptimalSprayWindows(forecast.Days)
	respondSuccess(c, gin.H{
		"optimal_windows": windows,
		"total_good_days": len(windows),
	})
}

// coordinates parses and validates the latitude/longitude query parameters.
func coordinates(c *gin.Context) (float64, float64, bool) {
	lat, err := strconv.ParseFloat(c.Query("latitude"), 64)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "latitude must be a number", err))
		return 0, 0, false
	}
	lon, err := strconv.ParseFloat(c.Query("longitude"), 64)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "longitude must be a number", err))
		return 0, 0, false
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "coordinates out of range", nil))
		return 0, 0, false
	}
	return lat, lon, true
}
