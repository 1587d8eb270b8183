package errors

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageFromBody(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "error envelope", body: `{"error":"endpoint not found"}`, want: "endpoint not found"},
		{name: "message envelope", body: `{"message":"invalid credentials"}`, want: "invalid credentials"},
		{name: "error wins over message", body: `{"error":"a","message":"b"}`, want: "a"},
		{name: "bare json string", body: `"quota exceeded"`, want: "quota exceeded"},
		{name: "plain text", body: "service unavailable", want: "service unavailable"},
		{name: "empty body", body: "", want: "HTTP error, status: 502"},
		{name: "whitespace body", body: "  \n ", want: "HTTP error, status: 502"},
		{name: "json without known fields", body: `{"detail":"x"}`, want: `{"detail":"x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MessageFromBody(502, []byte(tt.body)))
		})
	}
}

func TestFromResponse_CodeMapping(t *testing.T) {
	tests := []struct {
		status int
		want   ErrorCode
	}{
		{status: 400, want: ErrCodeValidation},
		{status: 401, want: ErrCodeUnauthorized},
		{status: 403, want: ErrCodeForbidden},
		{status: 404, want: ErrCodeNotFound},
		{status: 408, want: ErrCodeTimeout},
		{status: 409, want: ErrCodeConflict},
		{status: 422, want: ErrCodeValidation},
		{status: 500, want: ErrCodeInternal},
		{status: 504, want: ErrCodeTimeout},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("status %d", tt.status), func(t *testing.T) {
			appErr := FromResponse(tt.status, []byte(`{"error":"boom"}`))
			assert.Equal(t, tt.want, appErr.Code)
			assert.Equal(t, tt.status, appErr.StatusCode)
			assert.Equal(t, "boom", appErr.Message)
		})
	}
}

func TestMapTransportError(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		require.NoError(t, MapTransportError(nil))
	})

	t.Run("deadline", func(t *testing.T) {
		err := MapTransportError(fmt.Errorf("do: %w", context.DeadlineExceeded))
		assert.True(t, IsTimeout(err))
	})

	t.Run("canceled", func(t *testing.T) {
		err := MapTransportError(fmt.Errorf("do: %w", context.Canceled))
		assert.True(t, IsCanceled(err))
	})

	t.Run("other", func(t *testing.T) {
		cause := fmt.Errorf("connection refused")
		err := MapTransportError(cause)
		assert.True(t, IsInternal(err))
		assert.ErrorIs(t, err, cause)
	})
}

func TestAppError_ErrorAndUnwrap(t *testing.T) {
	cause := fmt.Errorf("underlying")
	err := Wrap(cause, ErrCodeInternal, "request failed")

	assert.Equal(t, "request failed: underlying", err.Error())
	assert.ErrorIs(t, err, cause)

	bare := NotFound("missing")
	assert.Equal(t, "missing", bare.Error())
}

func TestSessionExpired(t *testing.T) {
	cause := Unauthorized("refresh token revoked")
	err := SessionExpired(cause)

	assert.True(t, IsSessionExpired(err))
	assert.ErrorIs(t, err, cause)
}
