// Package handlers provides command handler functions for boardctl wallet
// operations.
//
// This file contains the wallet status handler for inspecting the session
// wallet. The address shown is the one signed vote batches carry, which
// makes this the command to run before funding or whitelisting a wallet on
// a closed-holders backend.
package handlers

import (
	"context"
	"encoding/hex"

	"github.com/spf13/cobra"
	"github.com/tokenboard/tokenboard/cmd/boardctl/client"
	"github.com/tokenboard/tokenboard/cmd/boardctl/display"
	"github.com/tokenboard/tokenboard/cmd/boardctl/utils"
	"github.com/tokenboard/tokenboard/internal/logging"
	"github.com/tokenboard/tokenboard/internal/wallet"
)

// HandleWalletStatus handles the wallet status subcommand for displaying
// the session wallet's address, connection state, and public key. With a
// --wallet seed the address is stable across runs; without one it belongs
// to this invocation only.
func HandleWalletStatus(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	ctx := context.Background()
	sess, err := client.OpenSession(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()

	var publicKey string
	if local, ok := sess.Wallet.(*wallet.LocalWallet); ok {
		publicKey = hex.EncodeToString(local.PublicKey())
	}

	display.DisplayWalletStatus(sess.Wallet.Address(), sess.Wallet.Connected(), publicKey)
	logging.Success("Wallet %s is connected", logging.FormatAddress(sess.Wallet.Address()))
	return nil
}
