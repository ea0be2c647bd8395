package netpad

import (
	"log/slog"
	"net/http"
	"time"
)

// Option configures the client. Options take precedence over
// environment variables, which take precedence over defaults.
type Option func(*clientConfig)

// WithBaseURL sets the API base URL.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithAPIKey sets the API key.
func WithAPIKey(key string) Option {
	return func(c *clientConfig) {
		c.apiKey = key
	}
}

// WithTimeout sets the per-attempt request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithRetries sets the number of retries for transient failures.
func WithRetries(count int) Option {
	return func(c *clientConfig) {
		c.maxRetries = count
	}
}

// WithLogging enables or disables request/response logging.
// Logging is enabled by default and never affects request behavior.
func WithLogging(enabled bool) Option {
	return func(c *clientConfig) {
		c.logging = enabled
	}
}

// WithLogger sets the logger used when logging is enabled.
// Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// WithHTTPClient sets a custom HTTP client. The client's own timeout
// takes precedence over WithTimeout.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}
