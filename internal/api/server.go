// Package api provides the HTTP API server for the Tokenboard development
// backend. This server exposes the token and vote endpoints the client
// stack consumes, allowing the CLI and tests to run against a local daemon
// instead of the production platform.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tokenboard/tokenboard/internal/api/handlers"
	"github.com/tokenboard/tokenboard/internal/api/store"
	"github.com/tokenboard/tokenboard/internal/logging"
	"github.com/tokenboard/tokenboard/internal/netutil"
	"github.com/tokenboard/tokenboard/internal/version"
)

// Represents the Tokenboard development API server
type Server struct {
	store      *store.Store
	gate       *VoteGate
	policy     handlers.VotePolicy
	httpServer *http.Server
	bindAddr   string
	bindPort   int
}

// NewServer creates a new development API server instance with a freshly
// seeded store
func NewServer(config *Config) (*Server, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid API config: %w", err)
	}

	dataStore, err := store.New(config.StoreConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to seed store: %w", err)
	}

	// Set Gin to release mode for production
	gin.SetMode(gin.ReleaseMode)

	return &Server{
		store: dataStore,
		gate:  NewVoteGate(config.CooldownInterval, config.RateLimit, config.RateBurst),
		policy: handlers.VotePolicy{
			SignatureWindow: config.SignatureWindow,
			MinHolderPct:    config.MinHolderPct,
		},
		bindAddr: config.BindAddr,
		bindPort: config.BindPort,
	}, nil
}

// Store exposes the seeded data set for boardd startup logging and tests
func (s *Server) Store() *store.Store {
	return s.store
}

// Start starts the development API server
func (s *Server) Start() error {
	logging.Info("Starting HTTP API server on %s:%d", s.bindAddr, s.bindPort)

	// Create Gin router
	router := gin.New()

	// Configure Gin logging only if not already configured by CLI tools
	if !logging.IsConfiguredByCLI() {
		gin.DefaultWriter = logging.NewLevelWriter("INFO", "gin")
		gin.DefaultErrorWriter = logging.NewLevelWriter("ERROR", "gin")
	}

	// Add middleware
	router.Use(s.loggingMiddleware())
	router.Use(s.corsMiddleware())
	router.Use(s.requestIDMiddleware())
	router.Use(gin.Recovery())

	// Setup routes
	s.setupRoutes(router)

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", s.bindAddr, s.bindPort),
		Handler: router,
		// Timeouts for production
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Pre-bind the listener so the port stays held between the bind check
	// and serving. A failed bind surfaces here instead of inside the goroutine.
	listener, err := netutil.NewPortBinder().BindTCP(s.bindAddr, s.bindPort)
	if err != nil {
		return fmt.Errorf("failed to bind API listener: %w", err)
	}

	// Start server in goroutine on the held listener
	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			logging.Error("HTTP server failed: %v", err)
		}
	}()

	logging.Success("HTTP API server started successfully with %d seeded tokens", s.store.TokenCount())
	return nil
}

// Handler returns the configured router for in-process test servers
func (s *Server) Handler() http.Handler {
	router := gin.New()
	router.Use(s.corsMiddleware())
	router.Use(s.requestIDMiddleware())
	router.Use(gin.Recovery())
	s.setupRoutes(router)
	return router
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down HTTP API server...")

	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}

	return nil
}

// Track server start time for uptime calculation
var startTime = time.Now()

// handleHealth delegates to handlers.HandleHealth
func (s *Server) handleHealth(c *gin.Context) {
	handler := s.getHandlerHealth()
	handler(c)
}

// getHandlerHealth is a health endpoint handler factory
func (s *Server) getHandlerHealth() gin.HandlerFunc {
	return handlers.HandleHealth(version.BoarddVersion, startTime, s.store)
}

// handleTokenByID delegates to handlers.HandleTokenByID
func (s *Server) handleTokenByID(c *gin.Context) {
	handler := s.getHandlerTokenByID()
	handler(c)
}

// getHandlerTokenByID is a token detail endpoint handler factory
func (s *Server) getHandlerTokenByID() gin.HandlerFunc {
	return handlers.HandleTokenByID(s.store)
}

// handleTokenSearch delegates to handlers.HandleTokenSearch
func (s *Server) handleTokenSearch(c *gin.Context) {
	handler := s.getHandlerTokenSearch()
	handler(c)
}

// getHandlerTokenSearch is a token search endpoint handler factory
func (s *Server) getHandlerTokenSearch() gin.HandlerFunc {
	return handlers.HandleTokenSearch(s.store)
}

// handleHolderStatus delegates to handlers.HandleHolderStatus
func (s *Server) handleHolderStatus(c *gin.Context) {
	handler := s.getHandlerHolderStatus()
	handler(c)
}

// getHandlerHolderStatus is a holder status endpoint handler factory
func (s *Server) getHandlerHolderStatus() gin.HandlerFunc {
	return handlers.HandleHolderStatus(s.store)
}

// handleVote delegates to handlers.HandleVote
func (s *Server) handleVote(c *gin.Context) {
	handler := s.getHandlerVote()
	handler(c)
}

// getHandlerVote is a legacy single vote endpoint handler factory
func (s *Server) getHandlerVote() gin.HandlerFunc {
	return handlers.HandleVote(s.store, s.gate, s.policy)
}

// handleVoteBatch delegates to handlers.HandleVoteBatch
func (s *Server) handleVoteBatch(c *gin.Context) {
	handler := s.getHandlerVoteBatch()
	handler(c)
}

// getHandlerVoteBatch is a vote batch endpoint handler factory
func (s *Server) getHandlerVoteBatch() gin.HandlerFunc {
	return handlers.HandleVoteBatch(s.store, s.gate, s.policy)
}

// handleVoteCheck delegates to handlers.HandleVoteCheck
func (s *Server) handleVoteCheck(c *gin.Context) {
	handler := s.getHandlerVoteCheck()
	handler(c)
}

// getHandlerVoteCheck is a vote check endpoint handler factory
func (s *Server) getHandlerVoteCheck() gin.HandlerFunc {
	return handlers.HandleVoteCheck(s.store)
}

// handleBulkVoteCheck delegates to handlers.HandleBulkVoteCheck
func (s *Server) handleBulkVoteCheck(c *gin.Context) {
	handler := s.getHandlerBulkVoteCheck()
	handler(c)
}

// getHandlerBulkVoteCheck is a bulk vote check endpoint handler factory
func (s *Server) getHandlerBulkVoteCheck() gin.HandlerFunc {
	return handlers.HandleBulkVoteCheck(s.store)
}
