// Package logging provides ID formatting utilities for consistent ID display
// across all logging contexts in the Tokenboard platform.
//
// Implements intelligent ID truncation that preserves full IDs in debug contexts
// while providing user-friendly short IDs in info/warning contexts, improving
// log readability without sacrificing traceability when detailed debugging is needed.
//
// ID FORMATTING STRATEGY:
//   - Debug logs: Full identifiers for complete traceability
//   - Info/Warn/Error/Success logs: Truncated 12-character IDs for readability
//   - Consistent formatting across all components
//
// USAGE PATTERNS:
//   - FormatTokenID: Format token IDs for logging with context-aware truncation
//   - FormatAddress: Format wallet addresses for logging with context-aware truncation
//   - FormatBatchID: Format vote batch IDs for logging with context-aware truncation
//   - FormatID: Generic ID formatting for any resource type
//
// The context-aware approach ensures users get readable logs during normal
// operations while preserving full detail when troubleshooting specific issues.
package logging

import (
	"github.com/charmbracelet/log"
	"github.com/tokenboard/tokenboard/internal/utils"
)

// FormatID formats an ID for logging based on the current log level context.
// Returns the full ID for debug logging to ensure complete traceability during
// troubleshooting, while returning a truncated 12-character ID for other log
// levels to improve readability in operational logs.
//
// Essential for maintaining consistent ID display across all logging while
// balancing operational readability with debugging detail requirements.
func FormatID(id string) string {
	// If debug level is enabled, show full IDs for complete traceability
	// Use stderr logger since debug messages go to stderr
	if stderrLogger.GetLevel() <= log.DebugLevel {
		return id
	}

	// For info/warn/error/success contexts, use truncated IDs for readability
	return utils.TruncateIDSafe(id)
}

// FormatTokenID formats a token ID for logging with context-aware truncation.
// Provides a semantic wrapper around FormatID specifically for token identifiers.
//
// Usage: logging.Info("Refreshing token %s", logging.FormatTokenID(tokenID))
func FormatTokenID(tokenID string) string {
	return FormatID(tokenID)
}

// FormatAddress formats a wallet address for logging with context-aware truncation.
// Provides a semantic wrapper around FormatID specifically for wallet addresses.
//
// Usage: logging.Info("Wallet connected: %s", logging.FormatAddress(address))
func FormatAddress(address string) string {
	return FormatID(address)
}

// FormatBatchID formats a vote batch ID for logging with context-aware truncation.
// Provides a semantic wrapper around FormatID specifically for batch identifiers.
//
// Usage: logging.Info("Flushing batch %s", logging.FormatBatchID(batchID))
func FormatBatchID(batchID string) string {
	return FormatID(batchID)
}

// FormatSubmissionID formats a submission ID for logging with context-aware
// truncation. Provides a semantic wrapper around FormatID specifically for
// submission identifiers.
//
// Usage: logging.Debug("Queued vote for %s", logging.FormatSubmissionID(id))
func FormatSubmissionID(submissionID string) string {
	return FormatID(submissionID)
}

// FormatRequestID formats a request ID for logging with context-aware truncation.
// Provides a semantic wrapper around FormatID specifically for request identifiers.
//
// Usage: logging.Debug("Dispatching request %s", logging.FormatRequestID(reqID))
func FormatRequestID(reqID string) string {
	return FormatID(reqID)
}
