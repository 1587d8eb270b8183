package errors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// errorBody is the JSON error envelope the server uses. Some handlers emit
// {"error": ...}, others {"message": ...}; both must be handled.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// MessageFromBody extracts a human-readable message from an error response
// body. It accepts the JSON envelopes, a bare JSON string, or plain text, and
// falls back to a generic status line when the body is empty.
func MessageFromBody(status int, body []byte) string {
	text := strings.TrimSpace(string(body))
	if text == "" {
		return fmt.Sprintf("HTTP error, status: %d", status)
	}

	var envelope errorBody
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Error != "" {
			return envelope.Error
		}
		if envelope.Message != "" {
			return envelope.Message
		}
	}

	var plain string
	if err := json.Unmarshal(body, &plain); err == nil && plain != "" {
		return plain
	}

	return text
}

// FromResponse maps a non-2xx HTTP response to an AppError, carrying the
// server-provided message verbatim when one is present.
func FromResponse(status int, body []byte) *AppError {
	message := MessageFromBody(status, body)

	var code ErrorCode
	switch status {
	case http.StatusUnauthorized:
		code = ErrCodeUnauthorized
	case http.StatusForbidden:
		code = ErrCodeForbidden
	case http.StatusNotFound:
		code = ErrCodeNotFound
	case http.StatusConflict:
		code = ErrCodeConflict
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		code = ErrCodeValidation
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		code = ErrCodeTimeout
	default:
		code = ErrCodeInternal
	}

	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: status,
	}
}

// MapTransportError maps transport-level failures (the request never produced
// a response) to AppError instances. Context errors get their own codes; the
// rest pass through wrapped as Internal.
func MapTransportError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &AppError{
			Code:    ErrCodeTimeout,
			Message: "request timed out",
			Cause:   err,
		}
	}
	if errors.Is(err, context.Canceled) {
		return &AppError{
			Code:    ErrCodeCanceled,
			Message: "request was canceled",
			Cause:   err,
		}
	}
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "request failed",
		Cause:   err,
	}
}
