package netpad

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netpad/client-go/internal/apierrors"
)

func TestWrapError_ServerResponded(t *testing.T) {
	cause := &apierrors.APIError{
		StatusCode: 422,
		Message:    "missing field: code",
		RequestID:  "req-1",
		Data:       json.RawMessage(`{"message": "missing field: code"}`),
	}

	err := wrapError(cause)

	var normErr *Error
	require.ErrorAs(t, err, &normErr)
	assert.Equal(t, "NetPad API Error (422): missing field: code", normErr.Message)
	assert.Equal(t, 422, normErr.StatusCode)
	assert.Equal(t, "req-1", normErr.RequestID)
	assert.JSONEq(t, `{"message": "missing field: code"}`, string(normErr.Data))
	assert.ErrorIs(t, err, cause)
}

func TestWrapError_NoResponse(t *testing.T) {
	cause := &apierrors.NetworkError{
		Err: errors.New("dial tcp: connection refused"),
		URL: "https://netpad.io/api/mcp/command",
	}

	err := wrapError(cause)

	var normErr *Error
	require.ErrorAs(t, err, &normErr)
	assert.Equal(t, "NetPad API Error: No response received (network error)", normErr.Message)
	assert.Zero(t, normErr.StatusCode)
	assert.ErrorIs(t, err, ErrNoResponse)
}

func TestWrapError_LocalFailure(t *testing.T) {
	cause := errors.New("marshal request body: unsupported type")

	err := wrapError(cause)

	var normErr *Error
	require.ErrorAs(t, err, &normErr)
	assert.Equal(t, "NetPad API Error: marshal request body: unsupported type", normErr.Message)
	assert.Zero(t, normErr.StatusCode)
	assert.NotErrorIs(t, err, ErrNoResponse)
	assert.ErrorIs(t, err, cause)
}

func TestWrapError_Nil(t *testing.T) {
	assert.NoError(t, wrapError(nil))
}

func TestError_SentinelMatching(t *testing.T) {
	tests := []struct {
		name   string
		err    *Error
		target error
		want   bool
	}{
		{
			name:   "401 matches ErrUnauthorized",
			err:    &Error{StatusCode: 401},
			target: ErrUnauthorized,
			want:   true,
		},
		{
			name:   "429 matches ErrRateLimited",
			err:    &Error{StatusCode: 429},
			target: ErrRateLimited,
			want:   true,
		},
		{
			name:   "500 matches no sentinel",
			err:    &Error{StatusCode: 500},
			target: ErrUnauthorized,
			want:   false,
		},
		{
			name:   "local failure does not match ErrNoResponse",
			err:    &Error{Err: errors.New("boom")},
			target: ErrNoResponse,
			want:   false,
		},
		{
			name:   "network failure matches ErrNoResponse",
			err:    &Error{Err: &apierrors.NetworkError{Err: errors.New("refused")}},
			target: ErrNoResponse,
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errors.Is(tt.err, tt.target))
		})
	}
}
