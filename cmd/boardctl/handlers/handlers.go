// Package handlers provides command handler functions for boardctl.
//
// This package contains all the command execution logic for boardctl commands,
// organized by resource type for maintainability and clean separation of concerns.
// Each handler file corresponds to a specific resource type and contains all
// related command handlers and helper functions.
//
// The package is organized as follows:
// - info.go: Backend health and data set information
// - token.go: Token detail, search, and holder position reads (show, search, holder)
// - vote.go: Vote actions through the signed batch pipeline (up, down, clear, batch, check)
// - wallet.go: Session wallet inspection (status)
//
// All handlers follow consistent patterns:
// - cobra.Command RunE function signature for CLI integration
// - Standardized error handling and logging using the logging package
// - Consistent output formatting through the display package
// - One session per invocation opened through the client package
// - Clean separation between session operations and presentation logic
//
// Every handler runs through the same session stack the dashboard embeds, so
// CLI invocations exercise the retrying dispatcher, the TTL response cache,
// and the vote engine exactly as the dashboard does. Reads served from cache
// and votes settled per submission behave identically in both consumers.
package handlers
