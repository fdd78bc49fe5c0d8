package githubapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorType represents different categories of GitHub API errors
type ErrorType string

const (
	ErrorTypeAuth       ErrorType = "authentication"
	ErrorTypePermission ErrorType = "permission"
	ErrorTypeNotFound   ErrorType = "not_found"
	ErrorTypeConflict   ErrorType = "conflict"
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeRateLimit  ErrorType = "rate_limit"
	ErrorTypeTransport  ErrorType = "transport"
	ErrorTypeUnknown    ErrorType = "unknown"
)

// APIError represents a failed API call. StatusCode is zero for transport
// failures that never produced an HTTP response.
type APIError struct {
	StatusCode int       `json:"status_code"`
	Message    string    `json:"message"`
	Type       ErrorType `json:"type"`
	Cause      error     `json:"-"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s error (HTTP %d): %s", e.Type, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *APIError) Unwrap() error {
	return e.Cause
}

// IsRetryable reports whether a caller could reasonably retry the operation.
// The client itself never retries; conflict handling in particular belongs to
// the caller, which must re-fetch the current SHA first.
func (e *APIError) IsRetryable() bool {
	switch e.Type {
	case ErrorTypeRateLimit, ErrorTypeTransport:
		return true
	}
	return e.StatusCode >= 500
}

// newStatusError builds an APIError from an HTTP status and the message
// extracted from the response body. An empty message falls back to a generic
// description carrying the status code.
func newStatusError(statusCode int, message string) *APIError {
	if message == "" {
		message = fmt.Sprintf("GitHub API error: %d", statusCode)
	}
	return &APIError{
		StatusCode: statusCode,
		Message:    message,
		Type:       classifyStatus(statusCode, message),
	}
}

// newTransportError wraps a network-level failure that produced no HTTP status
func newTransportError(err error) *APIError {
	return &APIError{
		Message: err.Error(),
		Type:    ErrorTypeTransport,
		Cause:   err,
	}
}

func classifyStatus(statusCode int, message string) ErrorType {
	switch statusCode {
	case http.StatusUnauthorized:
		return ErrorTypeAuth
	case http.StatusForbidden:
		if strings.Contains(strings.ToLower(message), "rate limit") {
			return ErrorTypeRateLimit
		}
		return ErrorTypePermission
	case http.StatusNotFound:
		return ErrorTypeNotFound
	case http.StatusConflict:
		return ErrorTypeConflict
	case http.StatusUnprocessableEntity:
		return ErrorTypeValidation
	case http.StatusTooManyRequests:
		return ErrorTypeRateLimit
	}
	return ErrorTypeUnknown
}

// IsNotFound reports whether err is an APIError with status 404. The commit
// protocol uses this to distinguish "create" from "update".
func IsNotFound(err error) bool {
	return hasType(err, ErrorTypeNotFound)
}

// IsConflict reports whether err is a conflict or validation failure,
// typically a stale or missing SHA on a content write.
func IsConflict(err error) bool {
	return hasType(err, ErrorTypeConflict) || hasType(err, ErrorTypeValidation)
}

// IsAuth reports whether err is an authentication or permission failure
func IsAuth(err error) bool {
	return hasType(err, ErrorTypeAuth) || hasType(err, ErrorTypePermission)
}

// IsTransport reports whether err is a network-level failure with no HTTP status
func IsTransport(err error) bool {
	return hasType(err, ErrorTypeTransport)
}

func hasType(err error, t ErrorType) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Type == t
	}
	return false
}
