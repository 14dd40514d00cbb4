// Package config provides configuration validation tests for the boardctl CLI.
//
// This test suite validates global flag checking before command execution.
// Tests cover the address shapes users pass to --api:
// - Valid host:port pairs (loopback and specific IPs)
// - Missing ports and bare hostnames (rejected)
// - Unroutable 0.0.0.0 targets (rejected for client connections)
// - Out-of-range ports
//
// Output format and wallet seed validation are covered as well, including
// the empty seed (ephemeral keypair) and both failure modes of an explicit
// seed: non-hex input and wrong decoded length.
package config

import (
	"testing"
)

func TestValidateAPIAddress(t *testing.T) {
	tests := []struct {
		name          string
		apiAddr       string
		expectError   bool
		errorContains string
	}{
		{
			name:        "loopback_ok",
			apiAddr:     "127.0.0.1:8200",
			expectError: false,
		},
		{
			name:        "specific_ip_ok",
			apiAddr:     "192.168.1.10:8200",
			expectError: false,
		},
		{
			name:          "missing_port_error",
			apiAddr:       "127.0.0.1",
			expectError:   true,
			errorContains: "expected format: host:port",
		},
		{
			name:          "empty_address_error",
			apiAddr:       "",
			expectError:   true,
			errorContains: "expected format: host:port",
		},
		{
			name:          "unroutable_wildcard_error",
			apiAddr:       "0.0.0.0:8200",
			expectError:   true,
			errorContains: "unroutable API address",
		},
		{
			name:          "port_out_of_range_error",
			apiAddr:       "127.0.0.1:99999",
			expectError:   true,
			errorContains: "expected format: host:port",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			originalAPIAddr := Global.APIAddr
			Global.APIAddr = tt.apiAddr

			err := ValidateAPIAddress()

			if tt.expectError {
				if err == nil {
					t.Errorf("expected error but got none")
				} else if tt.errorContains != "" && !containsString(err.Error(), tt.errorContains) {
					t.Errorf("expected error containing %q, got %q", tt.errorContains, err.Error())
				}
			} else {
				if err != nil {
					t.Errorf("expected no error but got: %v", err)
				}
			}

			Global.APIAddr = originalAPIAddr
		})
	}
}

func TestValidateOutputFormat(t *testing.T) {
	tests := []struct {
		name        string
		output      string
		expectError bool
	}{
		{name: "table_ok", output: "table", expectError: false},
		{name: "json_ok", output: "json", expectError: false},
		{name: "yaml_error", output: "yaml", expectError: true},
		{name: "empty_error", output: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			originalOutput := Global.Output
			Global.Output = tt.output

			err := ValidateOutputFormat()

			if tt.expectError && err == nil {
				t.Errorf("expected error but got none")
			}
			if !tt.expectError && err != nil {
				t.Errorf("expected no error but got: %v", err)
			}

			Global.Output = originalOutput
		})
	}
}

func TestValidateWalletSeed(t *testing.T) {
	tests := []struct {
		name          string
		seed          string
		expectError   bool
		errorContains string
	}{
		{
			name:        "empty_seed_means_ephemeral_ok",
			seed:        "",
			expectError: false,
		},
		{
			name:        "full_32_byte_seed_ok",
			seed:        "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f",
			expectError: false,
		},
		{
			name:          "non_hex_seed_error",
			seed:          "not-hex-at-all",
			expectError:   true,
			errorContains: "hex-encoded",
		},
		{
			name:          "short_seed_error",
			seed:          "deadbeef",
			expectError:   true,
			errorContains: "32 bytes",
		},
		{
			name:          "long_seed_error",
			seed:          "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f20",
			expectError:   true,
			errorContains: "32 bytes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			originalSeed := Global.WalletSeed
			Global.WalletSeed = tt.seed

			err := ValidateWalletSeed()

			if tt.expectError {
				if err == nil {
					t.Errorf("expected error but got none")
				} else if tt.errorContains != "" && !containsString(err.Error(), tt.errorContains) {
					t.Errorf("expected error containing %q, got %q", tt.errorContains, err.Error())
				}
			} else {
				if err != nil {
					t.Errorf("expected no error but got: %v", err)
				}
			}

			Global.WalletSeed = originalSeed
		})
	}
}

// containsString checks if a string contains a substring (case-sensitive)
func containsString(s, substr string) bool {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
