// Package wallet defines the signing capability the vote pipeline depends
// on. The interface is deliberately narrow: connect, report the current
// address, sign an opaque message, and surface connection changes as events.
// Everything else a concrete wallet can do (key management, chain RPC,
// hardware prompts) stays behind the implementation.
//
// Signing prompts carry no internal timeout. A user may reasonably take
// minutes to approve a signature in an external wallet, so the only way to
// abandon a prompt is cancelling the caller's context.
//
// The package ships one implementation, LocalWallet, backed by an in-process
// ed25519 keypair. It exists for development and tests; adapters for real
// browser or hardware wallets live outside this repository.
package wallet

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/sha3"
)

// ErrNotConnected is returned by operations that require a connected wallet
var ErrNotConnected = errors.New("wallet not connected")

// EventType identifies a wallet connection state change
type EventType string

const (
	// Connected means an address became available for signing
	Connected EventType = "connected"

	// Disconnected means the wallet went away and pending optimistic
	// state should be discarded
	Disconnected EventType = "disconnected"
)

// Event describes a wallet connection change. Address is set for Connected
// events and empty for Disconnected ones.
type Event struct {
	Type    EventType
	Address string
}

// Signature is the product of a signing prompt. The public key travels with
// the signature because ed25519 verification cannot recover the signer from
// the signature alone; verifiers re-derive the address from PublicKey and
// reject mismatches.
type Signature struct {
	Address   string
	PublicKey []byte
	Sig       []byte
}

// Wallet is the capability surface consumed by the vote engine and CLI.
type Wallet interface {
	// Connect makes the wallet ready for signing, prompting the user if
	// needed. Blocks until approved or ctx is cancelled. Connecting an
	// already connected wallet is a no-op.
	Connect(ctx context.Context) error

	// Connected reports whether an address is currently available
	Connected() bool

	// Address returns the current wallet address, or "" when disconnected
	Address() string

	// SignMessage asks the wallet to sign message. Blocks until the user
	// approves or ctx is cancelled; there is no internal timeout.
	SignMessage(ctx context.Context, message []byte) (*Signature, error)

	// Events returns the channel connection changes are delivered on.
	// Delivery is best effort: slow consumers may miss events.
	Events() <-chan Event
}

// DeriveAddress computes the wallet address for an ed25519 public key:
// "0x" followed by the hex of the last 20 bytes of the Keccak-256 digest
// of the key. Output is always lowercase.
func DeriveAddress(pub ed25519.PublicKey) string {
	digest := sha3.NewLegacyKeccak256()
	digest.Write(pub)
	hash := digest.Sum(nil)
	return "0x" + hex.EncodeToString(hash[len(hash)-20:])
}

// VerifySignature checks that sig was produced over message by the keypair
// behind address. Used by the development backend to validate vote batches.
func VerifySignature(address string, publicKey, message, sig []byte) error {
	if len(publicKey) != ed25519.PublicKeySize {
		return fmt.Errorf("invalid public key length: %d", len(publicKey))
	}
	if !strings.EqualFold(DeriveAddress(publicKey), address) {
		return fmt.Errorf("public key does not match address %s", address)
	}
	if !ed25519.Verify(publicKey, message, sig) {
		return fmt.Errorf("signature verification failed for %s", address)
	}
	return nil
}
