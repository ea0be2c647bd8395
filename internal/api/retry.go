package api

import (
	"context"
	"math"
	"net/http"
	"time"
)

// RetryConfig configures retry behavior for failed HTTP requests.
//
// The retry schedule is BaseDelay * Multiplier^attempt, where attempt is
// 1 for the first retry. With the defaults the first retry waits 2s, the
// second 4s, the third 8s.
type RetryConfig struct {
	// MaxRetries is the maximum number of retry attempts after the
	// initial request.
	MaxRetries int
	// BaseDelay is the unit delay the backoff schedule is derived from.
	BaseDelay time.Duration
	// MaxDelay caps the delay between retry attempts. Zero means no cap.
	MaxDelay time.Duration
	// Multiplier is the factor by which the delay increases after each attempt.
	Multiplier float64
	// RetryableOn determines if a status code should trigger a retry.
	RetryableOn func(statusCode int) bool
}

// DefaultRetryConfig returns the default retry configuration:
// server errors and rate limits are retried, all other client
// errors are permanent.
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxRetries: 3,
		BaseDelay:  time.Second,
		Multiplier: 2.0,
		RetryableOn: func(statusCode int) bool {
			return statusCode >= 500 || statusCode == http.StatusTooManyRequests
		},
	}
}

// ShouldRetry determines if a request should be retried after the given
// 0-based attempt returned statusCode.
func (r *RetryConfig) ShouldRetry(attempt int, statusCode int) bool {
	if attempt >= r.MaxRetries {
		return false
	}
	return r.RetryableOn(statusCode)
}

// Delay calculates the delay before retry attempt (1-based).
func (r *RetryConfig) Delay(attempt int) time.Duration {
	delay := float64(r.BaseDelay) * math.Pow(r.Multiplier, float64(attempt))
	if r.MaxDelay > 0 && delay > float64(r.MaxDelay) {
		delay = float64(r.MaxDelay)
	}
	return time.Duration(delay)
}

// Wait sleeps for the delay of the given retry attempt, returning early
// if the context is cancelled.
func (r *RetryConfig) Wait(ctx context.Context, attempt int) error {
	timer := time.NewTimer(r.Delay(attempt))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
