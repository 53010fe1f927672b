package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"
)

// RequestError represents a rejection by the backend (status >= 400).
// Message carries the server-provided error text when the response body
// could be parsed; callers surface it verbatim.
type RequestError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code,omitempty"`
	Message    string `json:"message"`
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend error: %s (status: %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("backend error (status: %d)", e.StatusCode)
}

// IsNotFound returns true for a 404 response.
func (e *RequestError) IsNotFound() bool {
	return e.StatusCode == 404
}

// IsUnauthorized returns true for a 401 response.
func (e *RequestError) IsUnauthorized() bool {
	return e.StatusCode == 401
}

// IsValidation returns true for a 400 response.
func (e *RequestError) IsValidation() bool {
	return e.StatusCode == 400
}

// IsServerError returns true for a 5xx response.
func (e *RequestError) IsServerError() bool {
	return e.StatusCode >= 500
}

// newRequestError builds a RequestError from a non-2xx response body.
// The backend reports failures as {"error": "..."} but some deployments
// use {"message": "..."}; both are accepted.
func newRequestError(status int, body []byte) *RequestError {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Code    string `json:"code"`
	}
	msg := ""
	if err := json.Unmarshal(body, &payload); err == nil {
		msg = payload.Error
		if msg == "" {
			msg = payload.Message
		}
	}
	if msg == "" {
		msg = strings.TrimSpace(string(body))
	}
	return &RequestError{StatusCode: status, Code: payload.Code, Message: msg}
}

// NetworkError represents a transport-level failure: connection refused,
// DNS failure, or the request timeout firing before a response arrived.
type NetworkError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error during %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying transport error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the failure was a timeout.
func (e *NetworkError) Timeout() bool {
	var netErr net.Error
	if errors.As(e.Err, &netErr) {
		return netErr.Timeout()
	}
	return false
}
