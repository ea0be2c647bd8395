// Package api implements the HTTP transport for the NetPad API:
// request construction, per-attempt hooks, retries with exponential
// backoff, and classification of failures into shared error types.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/netpad/client-go/internal/apierrors"
)

// Defaults applied by NewClient when the corresponding Config field is unset.
const (
	DefaultTimeout    = 30 * time.Second
	DefaultMaxRetries = 3
	DefaultUserAgent  = "netpad-client-go"
)

// requestIDHeader carries a per-request correlation ID. The server echoes
// it back on error responses.
const requestIDHeader = "X-Request-ID"

// Config holds the transport configuration.
type Config struct {
	// BaseURL is the absolute URL of the NetPad API. Required.
	BaseURL string
	// APIKey is sent as X-API-Key on every request. Required.
	APIKey string
	// Timeout bounds a single request attempt. Defaults to DefaultTimeout.
	Timeout time.Duration
	// MaxRetries is the number of retries after the initial attempt.
	// Zero disables retries; negative values are treated as zero.
	MaxRetries int
	// UserAgent overrides the default User-Agent header.
	UserAgent string
	// HTTPClient overrides the underlying HTTP client. When set, Timeout
	// is ignored in favor of the client's own timeout.
	HTTPClient *http.Client
	// Retry overrides the retry policy. MaxRetries from this Config takes
	// precedence over the policy's own count.
	Retry *RetryConfig
	// Logger enables request/response logging. Nil disables logging.
	Logger *slog.Logger
	// Before and After hooks run around every attempt.
	Before []BeforeHook
	After  []AfterHook
}

// Client is the HTTP API client.
type Client struct {
	baseURL    string
	apiKey     string
	userAgent  string
	httpClient *http.Client
	retry      *RetryConfig
	before     []BeforeHook
	after      []AfterHook
}

// NewClient creates a transport client from an explicit configuration.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, apierrors.ErrMissingAPIKey
	}
	if cfg.BaseURL == "" {
		return nil, errors.New("base URL is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	retry := cfg.Retry
	if retry == nil {
		retry = DefaultRetryConfig()
	}
	defaults := DefaultRetryConfig()
	if retry.BaseDelay <= 0 {
		retry.BaseDelay = defaults.BaseDelay
	}
	if retry.Multiplier <= 0 {
		retry.Multiplier = defaults.Multiplier
	}
	if retry.RetryableOn == nil {
		retry.RetryableOn = defaults.RetryableOn
	}
	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	retry.MaxRetries = maxRetries

	c := &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		userAgent:  userAgent,
		httpClient: httpClient,
		retry:      retry,
		before:     append([]BeforeHook(nil), cfg.Before...),
		after:      append([]AfterHook(nil), cfg.After...),
	}
	if cfg.Logger != nil {
		c.before = append(c.before, LogBefore(cfg.Logger))
		c.after = append(c.after, LogAfter(cfg.Logger))
	}
	return c, nil
}

// Option configures the API client.
type Option func(*Config)

// WithBaseURL sets the base URL.
func WithBaseURL(url string) Option {
	return func(c *Config) {
		c.BaseURL = url
	}
}

// WithTimeout sets the per-attempt timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.Timeout = timeout
	}
}

// WithRetries sets the number of retries.
func WithRetries(retries int) Option {
	return func(c *Config) {
		c.MaxRetries = retries
	}
}

// WithLogger sets the logger for request/response logging.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// New creates a new API client with the given API key and options.
func New(apiKey string, opts ...Option) (*Client, error) {
	cfg := Config{
		APIKey:     apiKey,
		MaxRetries: DefaultMaxRetries,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return NewClient(cfg)
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// HTTPClient returns the underlying HTTP client.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// SetHTTPClient sets a custom HTTP client.
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

// Do issues one logical request: it sends method+path with an optional
// JSON body, retries transient failures (network errors, 5xx, 429) with
// exponential backoff, and decodes a 2xx response body into result.
//
// Failures come back as *apierrors.APIError when the server responded
// and *apierrors.NetworkError when no response was received.
func (c *Client) Do(ctx context.Context, method, path string, body, result any) error {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		payload = data
	}

	requestID := uuid.NewString()
	url := c.baseURL + path

	// attempt is local to this call; concurrent requests never share it.
	for attempt := 0; ; attempt++ {
		req, err := c.newRequest(ctx, method, url, payload, requestID)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}

		for _, h := range c.before {
			if err := h(req, payload, attempt); err != nil {
				return err
			}
		}

		start := time.Now()
		resp, err := c.httpClient.Do(req)
		dur := time.Since(start)

		for _, h := range c.after {
			h(req, resp, err, dur, attempt)
		}

		if err != nil {
			// No response at all: timeouts and connection failures land
			// here and are retryable.
			netErr := &apierrors.NetworkError{Err: err, URL: url, Attempt: attempt}
			if attempt < c.retry.MaxRetries {
				if werr := c.retry.Wait(ctx, attempt+1); werr != nil {
					return netErr
				}
				continue
			}
			return netErr
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return decodeResponse(resp, result)
		}

		if c.retry.ShouldRetry(attempt, resp.StatusCode) {
			drainBody(resp)
			if werr := c.retry.Wait(ctx, attempt+1); werr != nil {
				return &apierrors.NetworkError{Err: werr, URL: url, Attempt: attempt}
			}
			continue
		}

		return parseErrorResponse(resp, requestID)
	}
}

func (c *Client) newRequest(ctx context.Context, method, url string, payload []byte, requestID string) (*http.Request, error) {
	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(requestIDHeader, requestID)
	return req, nil
}

func decodeResponse(resp *http.Response, result any) error {
	defer resp.Body.Close()

	if result == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// drainBody discards the remaining body so the connection can be reused
// before a retry.
func drainBody(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))
	_ = resp.Body.Close()
}

func parseErrorResponse(resp *http.Response, requestID string) error {
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)

	apiErr := &apierrors.APIError{
		StatusCode: resp.StatusCode,
		Message:    extractErrorMessage(raw),
		RequestID:  requestID,
	}
	if rid := resp.Header.Get(requestIDHeader); rid != "" {
		apiErr.RequestID = rid
	}
	if json.Valid(raw) {
		apiErr.Data = json.RawMessage(raw)
	}
	return apiErr
}

// extractErrorMessage pulls a display message out of an error body.
// Accepted shapes: {"message": "..."}, {"error": "..."} and
// {"error": {"message": "..."}}.
func extractErrorMessage(raw []byte) string {
	var body struct {
		Message string          `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	if len(body.Error) > 0 {
		var s string
		if err := json.Unmarshal(body.Error, &s); err == nil {
			return s
		}
		var nested struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(body.Error, &nested); err == nil {
			return nested.Message
		}
	}
	return ""
}
