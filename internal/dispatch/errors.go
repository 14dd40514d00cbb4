// Package dispatch error types for structured failure handling across the
// data-consistency layer.
//
// This file defines the error taxonomy every dispatched request resolves
// into. Callers never see raw resty or net/http errors: HTTP failures become
// APIError values carrying the parsed server envelope, and network-level
// failures become TransportError values with timeout classification. Both
// types support errors.As/errors.Is so upper layers (tokens service, vote
// engine, CLI handlers) can branch on failure class without string matching.
package dispatch

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// errorEnvelope mirrors the JSON error body the token API returns on failures:
// a human-readable message plus a machine-readable code.
type errorEnvelope struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// APIError represents a non-2xx response from the token API with the parsed
// error envelope. Status is always set; Code and Message are populated when
// the response body carried the standard {error, code} envelope. RetryAfter
// is non-zero only when the response included a Retry-After header, which the
// retry policy honors before this error is ever surfaced.
//
// Remains the final error after the retry budget is exhausted, so callers can
// inspect the last server verdict (status, code) rather than a generic
// "retries exhausted" message.
type APIError struct {
	Status     int
	Code       string
	Message    string
	RetryAfter time.Duration
}

// Error returns a readable description including status and code for logs
// and CLI output.
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("API request failed with status %d (%s): %s", e.Status, e.Code, e.Message)
	}
	if e.Message != "" {
		return fmt.Sprintf("API request failed with status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("API request failed with status %d", e.Status)
}

// TransportError represents a request that never produced a usable HTTP
// response: connection failures, per-attempt timeouts, caller cancellation,
// and response decode failures. Timeout distinguishes attempts that exceeded
// their time budget from other network problems, since timeouts participate
// in the retry policy while cancellation does not. Refused marks connections
// no backend answered at all, which for a development setup almost always
// means boardd is not running at the configured address.
type TransportError struct {
	Err     error
	Timeout bool
	Refused bool
}

// Error returns a readable description of the underlying transport failure.
func (e *TransportError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("request timed out: %v", e.Err)
	}
	if e.Refused {
		return fmt.Sprintf("no server listening at the API address: %v", e.Err)
	}
	return fmt.Sprintf("request failed: %v", e.Err)
}

// Unwrap exposes the underlying cause so errors.Is matching (for example
// against context.Canceled) works through this wrapper.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// AsAPIError extracts a structured API error from an error chain.
// Returns nil and false when the error is not an API failure.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsTimeout reports whether an error chain represents a timed-out request.
func IsTimeout(err error) bool {
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return transportErr.Timeout
	}
	return false
}

// parseAPIError builds an APIError from a non-2xx response, decoding the
// standard error envelope when present and falling back to the raw body text
// when it is not.
func parseAPIError(resp *resty.Response) *APIError {
	apiErr := &APIError{Status: resp.StatusCode()}

	var envelope errorEnvelope
	if err := json.Unmarshal(resp.Body(), &envelope); err == nil {
		apiErr.Message = envelope.Error
		apiErr.Code = envelope.Code
	}
	if apiErr.Message == "" {
		apiErr.Message = resp.Status()
	}

	if d, ok := parseRetryAfter(resp); ok {
		apiErr.RetryAfter = d
	}

	return apiErr
}
