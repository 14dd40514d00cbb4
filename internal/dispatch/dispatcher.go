// Package dispatch provides the HTTP request layer for all Tokenboard API
// communication.
//
// This package implements the single funnel every API request passes through.
// It handles all aspects of HTTP communication including request/response
// serialization, timeout enforcement, retry with backoff, structured error
// classification, and debug logging for reliable dashboard operations.
//
// DISPATCHER ARCHITECTURE:
// The Dispatcher wraps the Resty HTTP client with Tokenboard-specific
// functionality:
//   - Connection Management: Per-attempt timeouts, retry policies, and connection pooling
//   - Request/Response Handling: JSON serialization, structured error parsing, and logging
//   - Identification: User-Agent headers and request IDs for correlation across logs
//   - Fault Tolerance: Automatic retries on 5xx/429/timeouts with Retry-After support
//
// ERROR CONTRACT:
// Callers receive either the response body, an *APIError carrying the parsed
// {error, code} envelope and status, or a *TransportError for network-level
// failures with timeout classification. No raw transport errors escape this
// package, which keeps failure handling uniform across the cache, the tokens
// service, and the vote engine.
//
// The dispatcher is stateless across calls and safe for concurrent use; all
// caching and deduplication live above it in the cache layer.
package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tokenboard/tokenboard/internal/logging"
	"github.com/tokenboard/tokenboard/internal/netutil"
	"github.com/tokenboard/tokenboard/internal/utils"
)

// RequestOptions carries per-call parameters for a dispatched request.
// The zero value (or nil) dispatches a plain request with no query, body,
// or overrides.
type RequestOptions struct {
	Query   map[string]string // URL query parameters
	Body    any               // JSON-encoded request body
	Headers map[string]string // Additional request headers
	Timeout time.Duration     // Overall deadline covering all attempts and waits
}

// restyLogger adapts the structured logging system to resty's logger
// interface so client internals (retry notices, connection errors) surface
// through the same pipeline as everything else.
type restyLogger struct{}

func (restyLogger) Errorf(format string, v ...interface{}) {
	logging.Error("HTTP client: "+format, v...)
}

func (restyLogger) Warnf(format string, v ...interface{}) {
	logging.Warn("HTTP client: "+format, v...)
}

func (restyLogger) Debugf(format string, v ...interface{}) {
	logging.Debug("HTTP client: "+format, v...)
}

// Dispatcher wraps the Resty HTTP client with the retry, timeout, and error
// classification behavior all Tokenboard API communication relies on.
//
// Manages all HTTP communication with the token API including connection
// pooling, error handling, and response parsing. Configured once at
// construction; individual calls supply context, path, and options. Safe for
// concurrent use by multiple goroutines.
type Dispatcher struct {
	client  *resty.Client
	baseURL string
}

// NewDispatcher creates a dispatcher with comprehensive Resty configuration
// for reliable API communication. Configures timeout handling, retry logic,
// structured logging integration, and proper headers.
//
// The retry policy retries only on 5xx, 429, and transport-level failures,
// honoring Retry-After when the server provides one and backing off
// exponentially with jitter when it does not. Each attempt gets a fresh
// per-attempt timeout from the configuration.
func NewDispatcher(cfg *Config) (*Dispatcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dispatcher config: %w", err)
	}

	client := resty.New()

	// Route Resty's internal logging through our structured logging system
	client.SetLogger(restyLogger{})

	// Configure client with timeouts, headers, and identification
	client.
		SetTimeout(cfg.Timeout).
		SetBaseURL(cfg.BaseURL).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", cfg.UserAgent)

	// Retry mechanism with custom conditions and wait computation.
	// Wait bounds are opened up so a server-provided Retry-After passes
	// through unclamped; retryWait owns the actual delay policy.
	client.
		SetRetryCount(cfg.MaxRetries).
		SetRetryWaitTime(0).
		SetRetryMaxWaitTime(time.Hour).
		AddRetryCondition(shouldRetry).
		SetRetryAfter(retryWait)

	// Custom request logging using structured logging
	client.OnBeforeRequest(func(c *resty.Client, req *resty.Request) error {
		logging.Debug("Dispatching API request: %s %s (attempt %d)",
			req.Method, req.URL, req.Attempt)
		return nil
	})

	// Custom response logging using structured logging. Bodies are never
	// logged outside debug level.
	client.OnAfterResponse(func(c *resty.Client, resp *resty.Response) error {
		logging.Debug("API response: %d %s (%d bytes, took %v)",
			resp.StatusCode(), resp.Status(), len(resp.Body()), resp.Time())
		return nil
	})

	// Custom error logging using structured logging
	client.OnError(func(req *resty.Request, err error) {
		logging.Debug("API request failed: %s %s - %v", req.Method, req.URL, err)
	})

	return &Dispatcher{
		client:  client,
		baseURL: cfg.BaseURL,
	}, nil
}

// BaseURL returns the endpoint this dispatcher resolves request paths against.
func (d *Dispatcher) BaseURL() string {
	return d.baseURL
}

// Do dispatches a single API request and returns the raw response body.
//
// The request inherits the dispatcher's retry and timeout behavior: retryable
// failures (5xx, 429, timeouts) consume the retry budget with backoff between
// attempts, and the final failure is returned structured. Caller cancellation
// via ctx aborts immediately and is never retried. A per-call deadline can be
// set through opts.Timeout and covers all attempts including backoff waits.
//
// Errors are always *APIError (non-2xx with parsed envelope) or
// *TransportError (network failures, timeouts, cancellation).
func (d *Dispatcher) Do(ctx context.Context, method, path string, opts *RequestOptions) ([]byte, error) {
	if opts != nil && opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	req := d.client.R().SetContext(ctx)

	// Request ID for correlating attempts across client and server logs
	if reqID, err := utils.GenerateID(); err == nil {
		req.SetHeader("X-Request-ID", reqID)
	}

	if opts != nil {
		if len(opts.Query) > 0 {
			req.SetQueryParams(opts.Query)
		}
		if opts.Body != nil {
			req.SetBody(opts.Body)
		}
		if len(opts.Headers) > 0 {
			req.SetHeaders(opts.Headers)
		}
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, classifyTransportError(err)
	}

	if resp.IsError() {
		return nil, parseAPIError(resp)
	}

	return resp.Body(), nil
}

// GetJSON dispatches a GET request and unmarshals the response body into out.
// A nil out discards the body after a successful status check.
func (d *Dispatcher) GetJSON(ctx context.Context, path string, opts *RequestOptions, out any) error {
	body, err := d.Do(ctx, http.MethodGet, path, opts)
	if err != nil {
		return err
	}
	return decodeJSON(path, body, out)
}

// PostJSON dispatches a POST request with a JSON body and unmarshals the
// response into out. A nil out discards the body after a successful status
// check.
func (d *Dispatcher) PostJSON(ctx context.Context, path string, body any, out any) error {
	respBody, err := d.Do(ctx, http.MethodPost, path, &RequestOptions{Body: body})
	if err != nil {
		return err
	}
	return decodeJSON(path, respBody, out)
}

// decodeJSON unmarshals a response body, classifying decode failures as
// transport errors since the caller received no usable response.
func decodeJSON(path string, body []byte, out any) error {
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &TransportError{Err: fmt.Errorf("failed to decode response from %s: %w", path, err)}
	}
	return nil
}

// classifyTransportError wraps a request-level failure in a TransportError,
// flagging timeouts and refused connections so the caller can distinguish
// slow servers from absent ones.
func classifyTransportError(err error) error {
	timeout := false

	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		timeout = true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		timeout = true
	}

	return &TransportError{
		Err:     err,
		Timeout: timeout,
		Refused: netutil.IsConnectionRefusedError(err),
	}
}
