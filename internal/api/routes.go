package api

import (
	"github.com/gin-gonic/gin"
)

// Configures all API routes
func (s *Server) setupRoutes(router *gin.Engine) {
	// API prefix
	apiGroup := router.Group("/api")

	// Health check endpoint
	apiGroup.GET("/health", s.handleHealth)

	// Token read endpoints
	tokensGroup := apiGroup.Group("/tokens")
	{
		tokensGroup.GET("/search", s.handleTokenSearch)
		tokensGroup.GET("/:id", s.handleTokenByID)
		tokensGroup.GET("/:id/holder/:wallet", s.handleHolderStatus)
	}

	// Vote endpoints
	votesGroup := apiGroup.Group("/votes")
	{
		votesGroup.POST("", s.handleVote)
		votesGroup.POST("/batch", s.handleVoteBatch)
		votesGroup.GET("/check", s.handleVoteCheck)
		votesGroup.POST("/bulk-check", s.handleBulkVoteCheck)
	}
}
