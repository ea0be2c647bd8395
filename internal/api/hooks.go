package api

import (
	"log/slog"
	"net/http"
	"time"
)

// BeforeHook runs before each request attempt. Returning an error aborts
// the request without sending it.
type BeforeHook func(req *http.Request, body []byte, attempt int) error

// AfterHook runs after each request attempt, whether it produced a
// response or an error. Hooks must not modify resp.
type AfterHook func(req *http.Request, resp *http.Response, err error, dur time.Duration, attempt int)

// LogBefore returns a BeforeHook that logs the outgoing request.
func LogBefore(logger *slog.Logger) BeforeHook {
	return func(req *http.Request, body []byte, attempt int) error {
		attrs := []any{
			"method", req.Method,
			"url", req.URL.String(),
			"attempt", attempt,
			"request_id", req.Header.Get(requestIDHeader),
		}
		if len(body) > 0 {
			attrs = append(attrs, "body", string(body))
		}
		logger.Debug("netpad api request", attrs...)
		return nil
	}
}

// LogAfter returns an AfterHook that logs the response or error.
func LogAfter(logger *slog.Logger) AfterHook {
	return func(req *http.Request, resp *http.Response, err error, dur time.Duration, attempt int) {
		if err != nil {
			logger.Warn("netpad api request failed",
				"method", req.Method,
				"url", req.URL.String(),
				"attempt", attempt,
				"duration", dur,
				"error", err)
			return
		}
		logger.Debug("netpad api response",
			"method", req.Method,
			"url", req.URL.String(),
			"attempt", attempt,
			"duration", dur,
			"status", resp.StatusCode)
	}
}
