package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// TokenCounter reports the size of the seeded data set
type TokenCounter interface {
	TokenCount() int
}

// Represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Uptime    string    `json:"uptime"`
	Tokens    int       `json:"tokens"`
}

// HandleHealth returns the health status of the API server, including how
// many tokens the store was seeded with
func HandleHealth(version string, startTime time.Time, store TokenCounter) gin.HandlerFunc {
	return func(c *gin.Context) {
		uptime := time.Since(startTime)

		response := HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now(),
			Version:   version,
			Uptime:    uptime.String(),
			Tokens:    store.TokenCount(),
		}

		c.JSON(http.StatusOK, response)
	}
}
