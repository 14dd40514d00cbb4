// Package main implements the Tokenboard daemon (boardd).
// Boardd seeds a deterministic token data set and serves the dashboard REST
// API locally so the client stack can be developed and demoed offline.
package main

import (
	"os"

	"github.com/tokenboard/tokenboard/cmd/boardd/commands"
)

// main is the main entry point
func main() {
	commands.SetupCommands()

	if err := commands.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
