package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

// testConfig builds a dispatcher config pointing at a test server with fast,
// deterministic settings.
func testConfig(baseURL string) *Config {
	return &Config{
		BaseURL:    baseURL,
		Timeout:    2 * time.Second,
		MaxRetries: 2,
		UserAgent:  "boardctl/test",
	}
}

// TestDispatcherRetriesServerErrors tests that 5xx responses consume the
// retry budget and eventually succeed
func TestDispatcherRetriesServerErrors(t *testing.T) {
	var hits atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) <= 2 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	d, err := NewDispatcher(testConfig(server.URL))
	if err != nil {
		t.Fatalf("NewDispatcher() error = %v", err)
	}

	body, err := d.Do(context.Background(), http.MethodGet, "/api/tokens/tkn-1", nil)
	if err != nil {
		t.Fatalf("Do() error = %v, want nil after retries", err)
	}

	if got := hits.Load(); got != 3 {
		t.Errorf("server hits = %d, want 3 (initial attempt + 2 retries)", got)
	}
	if string(body) != `{"ok":true}` {
		t.Errorf("Do() body = %s, want final success body", body)
	}
}

// TestDispatcherDoesNotRetryClientErrors tests that 4xx responses are final
func TestDispatcherDoesNotRetryClientErrors(t *testing.T) {
	var hits atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"token not found","code":"NOT_FOUND"}`))
	}))
	defer server.Close()

	d, err := NewDispatcher(testConfig(server.URL))
	if err != nil {
		t.Fatalf("NewDispatcher() error = %v", err)
	}

	_, err = d.Do(context.Background(), http.MethodGet, "/api/tokens/missing", nil)
	if err == nil {
		t.Fatal("Do() error = nil, want APIError")
	}

	if got := hits.Load(); got != 1 {
		t.Errorf("server hits = %d, want 1 (no retries on 4xx)", got)
	}

	apiErr, ok := AsAPIError(err)
	if !ok {
		t.Fatalf("AsAPIError() = false for %v, want true", err)
	}
	if apiErr.Status != http.StatusNotFound {
		t.Errorf("APIError.Status = %d, want %d", apiErr.Status, http.StatusNotFound)
	}
	if apiErr.Code != "NOT_FOUND" {
		t.Errorf("APIError.Code = %q, want %q", apiErr.Code, "NOT_FOUND")
	}
	if apiErr.Message != "token not found" {
		t.Errorf("APIError.Message = %q, want %q", apiErr.Message, "token not found")
	}
}

// TestDispatcherHonorsRetryAfter tests that a 429's Retry-After header drives
// the wait instead of exponential backoff
func TestDispatcherHonorsRetryAfter(t *testing.T) {
	var hits atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":"rate limited","code":"RATE_LIMITED"}`))
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	d, err := NewDispatcher(testConfig(server.URL))
	if err != nil {
		t.Fatalf("NewDispatcher() error = %v", err)
	}

	start := time.Now()
	_, err = d.Do(context.Background(), http.MethodGet, "/api/tokens/tkn-1", nil)
	elapsed := time.Since(start)

	if err != nil {
		t.Fatalf("Do() error = %v, want nil after honoring Retry-After", err)
	}
	if got := hits.Load(); got != 2 {
		t.Errorf("server hits = %d, want 2", got)
	}

	// Exponential backoff would wait at least a second; the zero-second
	// Retry-After must be honored instead
	if elapsed > 500*time.Millisecond {
		t.Errorf("retry waited %v, want Retry-After (0s) to drive the wait", elapsed)
	}
}

// TestDispatcherExhaustedRetriesReturnFinalError tests that the last server
// verdict survives retry exhaustion
func TestDispatcherExhaustedRetriesReturnFinalError(t *testing.T) {
	var hits atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Retry-After", "0")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":"backend unavailable","code":"UNAVAILABLE"}`))
	}))
	defer server.Close()

	d, err := NewDispatcher(testConfig(server.URL))
	if err != nil {
		t.Fatalf("NewDispatcher() error = %v", err)
	}

	_, err = d.Do(context.Background(), http.MethodGet, "/api/tokens/tkn-1", nil)
	if err == nil {
		t.Fatal("Do() error = nil, want APIError after exhausted retries")
	}

	if got := hits.Load(); got != 3 {
		t.Errorf("server hits = %d, want 3 (initial attempt + 2 retries)", got)
	}

	apiErr, ok := AsAPIError(err)
	if !ok {
		t.Fatalf("AsAPIError() = false for %v, want true", err)
	}
	if apiErr.Status != http.StatusServiceUnavailable {
		t.Errorf("APIError.Status = %d, want %d", apiErr.Status, http.StatusServiceUnavailable)
	}
	if apiErr.Code != "UNAVAILABLE" {
		t.Errorf("APIError.Code = %q, want %q", apiErr.Code, "UNAVAILABLE")
	}
}

// TestDispatcherTimeoutClassification tests that slow servers produce
// timeout-flagged transport errors
func TestDispatcherTimeoutClassification(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.Timeout = 50 * time.Millisecond
	cfg.MaxRetries = 0

	d, err := NewDispatcher(cfg)
	if err != nil {
		t.Fatalf("NewDispatcher() error = %v", err)
	}

	_, err = d.Do(context.Background(), http.MethodGet, "/api/tokens/tkn-1", nil)
	if err == nil {
		t.Fatal("Do() error = nil, want timeout")
	}

	if !IsTimeout(err) {
		t.Errorf("IsTimeout() = false for %v, want true", err)
	}

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Errorf("error %v is not a TransportError", err)
	}
}

// TestDispatcherCancellation tests that caller cancellation aborts without
// being classified as a timeout
func TestDispatcherCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	d, err := NewDispatcher(testConfig(server.URL))
	if err != nil {
		t.Fatalf("NewDispatcher() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = d.Do(ctx, http.MethodGet, "/api/tokens/tkn-1", nil)
	if err == nil {
		t.Fatal("Do() error = nil, want cancellation error")
	}

	if !errors.Is(err, context.Canceled) {
		t.Errorf("errors.Is(err, context.Canceled) = false for %v, want true", err)
	}
	if IsTimeout(err) {
		t.Errorf("IsTimeout() = true for cancellation %v, want false", err)
	}
}

// TestDispatcherRequestShape tests headers, body round-trip, and JSON helpers
func TestDispatcherRequestShape(t *testing.T) {
	type payload struct {
		SubmissionID string `json:"submission_id"`
		VoteType     string `json:"vote_type"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("server saw method %s, want POST", r.Method)
		}
		if got := r.Header.Get("User-Agent"); got != "boardctl/test" {
			t.Errorf("User-Agent = %q, want %q", got, "boardctl/test")
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("Content-Type = %q, want %q", got, "application/json")
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("X-Request-ID header missing")
		}

		var in payload
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Errorf("decoding request body: %v", err)
		}
		if in.SubmissionID != "sub-1" || in.VoteType != "up" {
			t.Errorf("request body = %+v, want submission sub-1 vote up", in)
		}

		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer server.Close()

	d, err := NewDispatcher(testConfig(server.URL))
	if err != nil {
		t.Fatalf("NewDispatcher() error = %v", err)
	}

	var out map[string]string
	err = d.PostJSON(context.Background(), "/api/votes",
		payload{SubmissionID: "sub-1", VoteType: "up"}, &out)
	if err != nil {
		t.Fatalf("PostJSON() error = %v", err)
	}
	if out["status"] != "ok" {
		t.Errorf("PostJSON() decoded status = %q, want %q", out["status"], "ok")
	}
}

// TestGetJSONDecodeFailure tests that malformed response bodies surface as
// transport errors
func TestGetJSONDecodeFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer server.Close()

	d, err := NewDispatcher(testConfig(server.URL))
	if err != nil {
		t.Fatalf("NewDispatcher() error = %v", err)
	}

	var out map[string]any
	err = d.GetJSON(context.Background(), "/api/tokens/tkn-1", nil, &out)
	if err == nil {
		t.Fatal("GetJSON() error = nil, want decode failure")
	}

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Errorf("decode failure %v is not a TransportError", err)
	}
	if IsTimeout(err) {
		t.Errorf("IsTimeout() = true for decode failure, want false")
	}
}

// TestWithoutRetryContext tests that opt-out requests fail on the first error
func TestWithoutRetryContext(t *testing.T) {
	var hits atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Retry-After", "0")
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	d, err := NewDispatcher(testConfig(server.URL))
	if err != nil {
		t.Fatalf("NewDispatcher() error = %v", err)
	}

	_, err = d.Do(WithoutRetry(context.Background()), http.MethodGet, "/api/tokens/tkn-1", nil)
	if err == nil {
		t.Fatal("Do() error = nil, want APIError")
	}

	if got := hits.Load(); got != 1 {
		t.Errorf("server hits = %d, want 1 (retries disabled)", got)
	}
}

// TestDispatcherConfigValidation tests construction with invalid configs
func TestDispatcherConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{
			name:   "empty base URL",
			mutate: func(c *Config) { c.BaseURL = "" },
		},
		{
			name:   "zero timeout",
			mutate: func(c *Config) { c.Timeout = 0 },
		},
		{
			name:   "negative retries",
			mutate: func(c *Config) { c.MaxRetries = -1 },
		},
		{
			name:   "empty user agent",
			mutate: func(c *Config) { c.UserAgent = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig("http://127.0.0.1:8200")
			tt.mutate(cfg)

			if _, err := NewDispatcher(cfg); err == nil {
				t.Error("NewDispatcher() error = nil, want config validation error")
			}
		})
	}
}
