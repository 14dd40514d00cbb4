// Package handlers provides command handler functions for boardctl backend
// information operations.
//
// This file contains the backend info handler used to confirm connectivity
// and inspect which data set a backend is serving. The health endpoint is the
// first-contact surface: it reports version, uptime, and the seeded token
// count without requiring a wallet or any cached state.
package handlers

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/tokenboard/tokenboard/cmd/boardctl/client"
	"github.com/tokenboard/tokenboard/cmd/boardctl/config"
	"github.com/tokenboard/tokenboard/cmd/boardctl/display"
	"github.com/tokenboard/tokenboard/cmd/boardctl/utils"
	"github.com/tokenboard/tokenboard/internal/logging"
)

// HandleBackendInfo handles the info command for retrieving backend health
// and data set information. Confirms the CLI can reach the configured
// backend and shows its version, uptime, and seeded token count before any
// token or vote commands are attempted.
func HandleBackendInfo(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	logging.Info("Fetching backend information from API server: %s", config.Global.APIAddr)

	ctx := context.Background()
	sess, err := client.OpenSession(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()

	var health display.BackendHealth
	if err := sess.Dispatcher.GetJSON(ctx, "/api/health", nil, &health); err != nil {
		return err
	}

	display.DisplayBackendInfo(health)
	logging.Success("Successfully retrieved backend information (%d tokens)", health.Tokens)
	return nil
}
