package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// respondSuccess writes the standard success envelope.
func respondSuccess(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "success",
		"data":      data,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
