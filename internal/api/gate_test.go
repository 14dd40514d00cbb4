package api

import (
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func TestVoteGateRateLimit(t *testing.T) {
	// Burst of 2 with a negligible refill rate: two requests pass, the
	// third is refused with a wait hint
	gate := NewVoteGate(0, rate.Limit(0.001), 2)

	for i := 0; i < 2; i++ {
		ok, wait := gate.Allow("0xAAAA")
		if !ok {
			t.Fatalf("Allow() request %d refused, want allowed", i+1)
		}
		if wait != 0 {
			t.Errorf("Allow() request %d wait = %v, want 0", i+1, wait)
		}
	}

	ok, wait := gate.Allow("0xAAAA")
	if ok {
		t.Fatal("Allow() request 3 allowed, want refused")
	}
	if wait < time.Second {
		t.Errorf("Allow() refused wait = %v, want at least 1s", wait)
	}
}

func TestVoteGateRateLimitPerWallet(t *testing.T) {
	gate := NewVoteGate(0, rate.Limit(0.001), 1)

	if ok, _ := gate.Allow("0xaaaa"); !ok {
		t.Fatal("first wallet's first request should pass")
	}
	if ok, _ := gate.Allow("0xaaaa"); ok {
		t.Fatal("first wallet's second request should be refused")
	}

	// A different wallet has its own bucket
	if ok, _ := gate.Allow("0xbbbb"); !ok {
		t.Error("second wallet should not share the first wallet's bucket")
	}

	// Case variants of one address share a bucket
	if ok, _ := gate.Allow("0xAAAA"); ok {
		t.Error("uppercased address should share the lowercase bucket")
	}
}

func TestVoteGateCooldown(t *testing.T) {
	gate := NewVoteGate(30*time.Second, rate.Inf, 1)

	if remaining := gate.CooldownRemaining("0xaaaa", "sub-1"); remaining != 0 {
		t.Errorf("CooldownRemaining() before voting = %v, want 0", remaining)
	}

	gate.MarkVoted("0xaaaa", "sub-1")

	remaining := gate.CooldownRemaining("0xaaaa", "sub-1")
	if remaining <= 0 || remaining > 30*time.Second {
		t.Errorf("CooldownRemaining() = %v, want (0, 30s]", remaining)
	}

	// Cooldowns are per submission and per wallet
	if remaining := gate.CooldownRemaining("0xaaaa", "sub-2"); remaining != 0 {
		t.Errorf("CooldownRemaining() other submission = %v, want 0", remaining)
	}
	if remaining := gate.CooldownRemaining("0xbbbb", "sub-1"); remaining != 0 {
		t.Errorf("CooldownRemaining() other wallet = %v, want 0", remaining)
	}

	// Mixed-case address hits the same cooldown entry
	if remaining := gate.CooldownRemaining("0xAAAA", "sub-1"); remaining == 0 {
		t.Error("CooldownRemaining() should be case-insensitive on addresses")
	}
}

func TestVoteGateCooldownExpires(t *testing.T) {
	gate := NewVoteGate(20*time.Millisecond, rate.Inf, 1)

	gate.MarkVoted("0xaaaa", "sub-1")
	time.Sleep(40 * time.Millisecond)

	if remaining := gate.CooldownRemaining("0xaaaa", "sub-1"); remaining != 0 {
		t.Errorf("CooldownRemaining() after expiry = %v, want 0", remaining)
	}
}

func TestVoteGateCooldownDisabled(t *testing.T) {
	gate := NewVoteGate(0, rate.Inf, 1)

	gate.MarkVoted("0xaaaa", "sub-1")
	if remaining := gate.CooldownRemaining("0xaaaa", "sub-1"); remaining != 0 {
		t.Errorf("CooldownRemaining() with cooldowns disabled = %v, want 0", remaining)
	}
}
