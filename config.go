package netpad

import (
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"
)

// DefaultBaseURL is the NetPad API endpoint used when neither an option
// nor NETPAD_API_URL provides one.
const DefaultBaseURL = "https://netpad.io/api/mcp"

const (
	defaultTimeout    = 30 * time.Second
	defaultMaxRetries = 3
)

// Environment variables consulted for any field not set explicitly.
const (
	EnvAPIURL  = "NETPAD_API_URL"
	EnvAPIKey  = "NETPAD_API_KEY"
	EnvTimeout = "NETPAD_TIMEOUT" // milliseconds
	EnvRetries = "NETPAD_RETRIES"
	EnvLogging = "NETPAD_LOGGING"
)

// clientConfig holds the resolved configuration for the client.
type clientConfig struct {
	baseURL    string
	apiKey     string
	timeout    time.Duration
	maxRetries int
	logging    bool
	logger     *slog.Logger
	httpClient *http.Client
}

func defaultConfig() clientConfig {
	return clientConfig{
		baseURL:    DefaultBaseURL,
		timeout:    defaultTimeout,
		maxRetries: defaultMaxRetries,
		logging:    true,
	}
}

// applyEnv layers environment-supplied values over the hard defaults.
// Explicit options are applied afterwards and take precedence.
func (c *clientConfig) applyEnv() {
	if v := os.Getenv(EnvAPIURL); v != "" {
		c.baseURL = v
	}
	if v := os.Getenv(EnvAPIKey); v != "" {
		c.apiKey = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			c.timeout = time.Duration(ms) * time.Millisecond
		}
	}
	if v := os.Getenv(EnvRetries); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.maxRetries = n
		}
	}
	if v := os.Getenv(EnvLogging); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.logging = b
		}
	}
}

// resolveLogger returns the logger the transport should use, or nil
// when logging is disabled.
func (c *clientConfig) resolveLogger() *slog.Logger {
	if !c.logging {
		return nil
	}
	if c.logger != nil {
		return c.logger
	}
	return slog.Default()
}
