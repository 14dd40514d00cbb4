// Package daemon provides the core Tokenboard daemon orchestration and
// lifecycle management.
//
// This package implements the startup, operation, and graceful shutdown of
// the development backend that the Tokenboard client stack talks to. The
// daemon seeds a deterministic in-memory data set and serves the dashboard
// REST API on top of it so the dispatcher, response cache, and vote batcher
// can be exercised end to end without the production platform.
//
// DAEMON ARCHITECTURE:
// The daemon orchestrates two components:
//
//   - Store: Deterministic seeded data set of tokens, submissions, and holders
//   - HTTP API: REST interface mirroring the production dashboard surface,
//     including signed vote batches, cooldowns, and per-wallet rate limits
//
// EXECUTION FLOW:
// 1. Port validation and discovery (explicit bind vs find-first-free fallback)
// 2. Store seeding and API server startup
// 3. Operational phase with a connect hint for boardctl
// 4. Graceful shutdown on SIGINT/SIGTERM with in-flight request draining
package daemon

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"github.com/tokenboard/tokenboard/cmd/boardd/config"
	"github.com/tokenboard/tokenboard/cmd/boardd/utils"
	"github.com/tokenboard/tokenboard/internal/api"
	"github.com/tokenboard/tokenboard/internal/api/store"
	"github.com/tokenboard/tokenboard/internal/logging"
	"github.com/tokenboard/tokenboard/internal/version"
)

// buildAPIConfig converts daemon config to API server config
func buildAPIConfig() *api.Config {
	apiConfig := api.DefaultConfig()

	apiConfig.BindAddr = config.Global.APIAddr
	apiConfig.BindPort = config.Global.APIPort
	apiConfig.StoreConfig = &store.Config{
		Seed:        config.Global.Seed,
		TokenCount:  config.Global.TokenCount,
		OpenHolders: !config.Global.ClosedHolders,
	}

	apiConfig.SignatureWindow = config.Global.SignatureWindow
	apiConfig.CooldownInterval = config.Global.Cooldown
	apiConfig.MinHolderPct = config.Global.MinBalancePct
	apiConfig.RateLimit = rate.Limit(config.Global.VoteRate)
	apiConfig.RateBurst = config.Global.VoteBurst

	return apiConfig
}

// connectHost returns the address boardctl should dial to reach the daemon.
// A wildcard bind is reachable via loopback, so the hint maps it there since
// boardctl rejects 0.0.0.0 as a destination.
func connectHost() string {
	if config.Global.APIAddr == "0.0.0.0" {
		return "127.0.0.1"
	}
	return config.Global.APIAddr
}

// Run orchestrates the complete Tokenboard daemon lifecycle from
// initialization to graceful shutdown.
//
// EXECUTION FLOW:
//
// 1. PORT VALIDATION & DISCOVERY
//   - Explicitly set --api binds exactly there and fails fast if the port is taken
//   - Otherwise the daemon walks up from the default port to find a free one,
//     so several dev daemons can run side by side without flag juggling
//
// 2. SERVICE STARTUP
//   - Seeds the deterministic store and starts the HTTP API server
//   - The server pre-binds its listener before accepting traffic so bind
//     errors surface here rather than inside the serve goroutine
//
// 3. OPERATIONAL PHASE
//   - Prints a connect hint for boardctl along with the seeded data summary
//   - Waits for shutdown signals (SIGINT/SIGTERM) or context cancellation
//
// 4. GRACEFUL SHUTDOWN
//   - Timeout-based shutdown for the HTTP API to complete in-flight requests
func Run() error {
	// Apply logging level early to respect --log-level flag before any log output
	// This ensures --log-level=ERROR suppresses early Info logs
	logging.SetLevel(config.Global.LogLevel)
	logging.Info("Starting Tokenboard daemon v%s", version.BoarddVersion)

	// Handle API port binding
	//
	// When the user explicitly sets --api, the daemon must bind exactly there:
	// a silent fallback would leave boardctl pointed at a dead port. The server's
	// own bind reports the conflict. Without an explicit flag the daemon
	// searches upward from the default so a second dev daemon just works.
	originalAPIPort := config.Global.APIPort
	if config.Global.IsExplicitlySet(config.APIAddrField) {
		logging.Info("Binding to %s:%d", config.Global.APIAddr, config.Global.APIPort)
	} else {
		logging.Info("Finding available API port starting from %d", originalAPIPort)

		availablePort, err := utils.FindAvailablePort(config.Global.APIAddr, config.Global.APIPort)
		if err != nil {
			logging.Error("Failed to find available API port starting from %d: %v", config.Global.APIPort, err)
			return fmt.Errorf("failed to find available API port: %w", err)
		}

		if availablePort != originalAPIPort {
			logging.Warn("Default port %d was busy, using port %d for API", originalAPIPort, availablePort)
			config.Global.APIPort = availablePort
		}
	}

	// Create and start the API server; store seeding happens inside NewServer
	// so a bad dataset config fails before any port is held
	apiServer, err := api.NewServer(buildAPIConfig())
	if err != nil {
		logging.Error("Failed to create API server: %v", err)
		return fmt.Errorf("failed to create API server: %w", err)
	}
	if err := apiServer.Start(); err != nil {
		logging.Error("Failed to start API server: %v", err)
		return fmt.Errorf("failed to start API server: %w", err)
	}

	dataStore := apiServer.Store()
	logging.Info("Seeded %d tokens with %d submissions (seed %d)",
		dataStore.TokenCount(), len(dataStore.Submissions()), config.Global.Seed)

	// Display connection hint after all binding is complete
	// This provides a clean summary after the port binding noise

	// Calculate dynamic separator length based on the longest line (connect command)
	connectCommand := fmt.Sprintf("  boardctl --api=%s:%d info", connectHost(), config.Global.APIPort)
	separatorLength := len(connectCommand)
	if separatorLength < 50 {
		separatorLength = 50 // Minimum width for aesthetics
	}
	separator := strings.Repeat("-", separatorLength)

	logging.Info("%s", separator)
	logging.Info("To browse this backend with the CLI, use:")
	logging.Info("  boardctl --api=%s:%d info", connectHost(), config.Global.APIPort)
	logging.Info("%s", separator)

	// Set up graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	logging.Success("Tokenboard daemon started successfully")
	logging.Info("Daemon running... Press Ctrl+C to shutdown")

	// Display service status
	logging.Info("Daemon services started:")
	logging.Info("  - HTTP API: %s:%d", config.Global.APIAddr, config.Global.APIPort)
	logging.Info("  - Vote policy: cooldown=%v, min-balance=%.2f%%, signature-window=%v",
		config.Global.Cooldown, config.Global.MinBalancePct, config.Global.SignatureWindow)

	// Wait for shutdown signal
	select {
	case sig := <-sigCh:
		logging.Info("Received signal: %v", sig)
	case <-ctx.Done():
		logging.Info("Context cancelled")
	}

	logging.Info("Initiating graceful shutdown...")

	// Shutdown API server with a timeout so in-flight requests can drain
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		logging.Error("Error shutting down API server: %v", err)
	}

	logging.Success("Tokenboard daemon shutdown completed")
	return nil
}
