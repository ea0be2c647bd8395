package netpad

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/netpad/client-go/internal/apierrors"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrMissingAPIKey is returned when no API key is resolved from
	// options or the environment.
	ErrMissingAPIKey = errors.New("API key is required")

	// ErrUnauthorized is returned when the API key is invalid or expired.
	ErrUnauthorized = errors.New("invalid or expired API key")

	// ErrRateLimited is returned when the API rate limit is exceeded.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrNoResponse is returned when no HTTP response was received.
	ErrNoResponse = errors.New("no response received")
)

// Error is the normalized error returned by every client operation.
// Exactly one of three cases holds:
//
//   - StatusCode > 0: the server responded with an error status, and
//     Data carries the raw error body when one was present.
//   - StatusCode == 0 and errors.Is(err, ErrNoResponse): a network-level
//     failure, no response was received.
//   - StatusCode == 0 otherwise: a local failure (e.g. the request body
//     could not be built).
//
// Message always summarizes which case occurred.
type Error struct {
	Message    string
	StatusCode int             // 0 when no response was received
	Data       json.RawMessage // error body echoed by the server, if any
	RequestID  string          // correlation ID, if the server responded
	Err        error           // the original failure, for diagnostics
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *Error) Is(target error) bool {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return target == ErrUnauthorized
	case http.StatusTooManyRequests:
		return target == ErrRateLimited
	case 0:
		var netErr *apierrors.NetworkError
		return target == ErrNoResponse && errors.As(e.Err, &netErr)
	}
	return false
}

// wrapError converts internal transport errors into the public
// normalized *Error. It is applied exactly once, at the public API
// boundary.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *apierrors.APIError
	if errors.As(err, &apiErr) {
		return &Error{
			Message:    apiErr.Error(),
			StatusCode: apiErr.StatusCode,
			Data:       apiErr.Data,
			RequestID:  apiErr.RequestID,
			Err:        apiErr,
		}
	}

	var netErr *apierrors.NetworkError
	if errors.As(err, &netErr) {
		return &Error{
			Message: "NetPad API Error: No response received (network error)",
			Err:     netErr,
		}
	}

	return &Error{
		Message: fmt.Sprintf("NetPad API Error: %v", err),
		Err:     err,
	}
}
