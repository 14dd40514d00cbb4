package wallet

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"sync"

	"github.com/tokenboard/tokenboard/internal/logging"
)

// eventBuffer bounds how many undelivered connection events are held before
// new ones are dropped
const eventBuffer = 16

// LocalWallet is an in-process Wallet backed by an ed25519 keypair. Signing
// never prompts and is deterministic, which makes it the signer of choice
// for boardctl against a local boardd and for integration tests. The dev
// backend verifies its signatures with VerifySignature.
type LocalWallet struct {
	mu        sync.Mutex
	priv      ed25519.PrivateKey
	pub       ed25519.PublicKey
	address   string
	connected bool

	events chan Event
}

// NewLocalWallet creates a local wallet with a freshly generated keypair
func NewLocalWallet() (*LocalWallet, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate wallet keypair: %w", err)
	}
	return newLocalWallet(pub, priv), nil
}

// NewLocalWalletFromSeed creates a local wallet with a deterministic keypair
// derived from a 32-byte seed. Same seed, same address; used by tests and by
// boardd's demo holders.
func NewLocalWalletFromSeed(seed []byte) (*LocalWallet, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("wallet seed must be %d bytes, got %d", ed25519.SeedSize, len(seed))
	}
	priv := ed25519.NewKeyFromSeed(seed)
	return newLocalWallet(priv.Public().(ed25519.PublicKey), priv), nil
}

func newLocalWallet(pub ed25519.PublicKey, priv ed25519.PrivateKey) *LocalWallet {
	return &LocalWallet{
		priv:    priv,
		pub:     pub,
		address: DeriveAddress(pub),
		events:  make(chan Event, eventBuffer),
	}
}

// Connect marks the wallet as ready for signing. There is no user prompt
// for a local keypair, so this only flips state and emits the event.
func (w *LocalWallet) Connect(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	w.mu.Lock()
	if w.connected {
		w.mu.Unlock()
		return nil
	}
	w.connected = true
	address := w.address
	w.mu.Unlock()

	logging.Info("Wallet connected: %s", logging.FormatAddress(address))
	w.emit(Event{Type: Connected, Address: address})
	return nil
}

// Disconnect drops the wallet's connected state and notifies listeners.
// Safe to call when already disconnected.
func (w *LocalWallet) Disconnect() {
	w.mu.Lock()
	if !w.connected {
		w.mu.Unlock()
		return
	}
	w.connected = false
	address := w.address
	w.mu.Unlock()

	logging.Info("Wallet disconnected: %s", logging.FormatAddress(address))
	w.emit(Event{Type: Disconnected})
}

// Connected reports whether the wallet is ready for signing
func (w *LocalWallet) Connected() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.connected
}

// Address returns the wallet address, or "" while disconnected
func (w *LocalWallet) Address() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.connected {
		return ""
	}
	return w.address
}

// SignMessage signs message with the wallet's private key. Local signing is
// deterministic and never prompts, so ctx only matters for callers that are
// already cancelled.
func (w *LocalWallet) SignMessage(ctx context.Context, message []byte) (*Signature, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.connected {
		return nil, ErrNotConnected
	}

	sig := ed25519.Sign(w.priv, message)
	logging.Debug("Signed %d byte message for %s", len(message), logging.FormatAddress(w.address))

	return &Signature{
		Address:   w.address,
		PublicKey: append([]byte(nil), w.pub...),
		Sig:       sig,
	}, nil
}

// Events returns the connection event channel
func (w *LocalWallet) Events() <-chan Event {
	return w.events
}

// PublicKey returns a copy of the wallet's public key. Used by boardd's
// seeded demo holders, not part of the Wallet capability.
func (w *LocalWallet) PublicKey() ed25519.PublicKey {
	return append(ed25519.PublicKey(nil), w.pub...)
}

// emit forwards an event to listeners without ever blocking wallet
// operations. If the channel is full the event is dropped.
func (w *LocalWallet) emit(event Event) {
	select {
	case w.events <- event:
	default:
		logging.Warn("Wallet event channel full, dropping %s event", event.Type)
	}
}
