package clickup

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrMissingToken is returned by New when no credential is configured.
var ErrMissingToken = errors.New("clickup: API token is required (set CLICKUP_API_TOKEN or CLICKUP_OAUTH_TOKEN)")

// ErrorKind classifies a failed call.
type ErrorKind string

const (
	KindUnauthorized ErrorKind = "unauthorized"
	KindForbidden    ErrorKind = "forbidden"
	KindNotFound     ErrorKind = "not_found"
	KindBadRequest   ErrorKind = "bad_request"
	KindRateLimited  ErrorKind = "rate_limited"
	KindAPI          ErrorKind = "api_error"
	KindNetwork      ErrorKind = "network_error"
	KindRequest      ErrorKind = "request_error"
)

// Error is the single error type surfaced by the request pipeline.
type Error struct {
	Kind       ErrorKind
	StatusCode int
	// Code is the upstream ECODE, when the API sent one.
	Code string
	// Message is the upstream "err" field, when the API sent one.
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindRateLimited:
		return strings.TrimSpace("Rate limit exceeded. Please try again later. " + e.Message)
	case KindUnauthorized:
		return "Unauthorized. Check your API token."
	case KindForbidden:
		return "Forbidden: " + orDefault(e.Message, "Access denied")
	case KindNotFound:
		return "Not found: " + orDefault(e.Message, "Resource does not exist")
	case KindBadRequest:
		return "Bad request: " + orDefault(e.Message, "Invalid parameters")
	case KindNetwork:
		return "No response from ClickUp API. Check your network connection."
	case KindRequest:
		msg := e.Message
		if msg == "" && e.Err != nil {
			msg = e.Err.Error()
		}
		return "Request error: " + msg
	default:
		msg := e.Message
		if msg == "" {
			msg = http.StatusText(e.StatusCode)
		}
		return fmt.Sprintf("ClickUp API error (%d): %s", e.StatusCode, msg)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable reports whether the pipeline retries this failure.
func (e *Error) Retryable() bool {
	return e.Kind == KindRateLimited
}

// KindOf returns the classification of err, or "" if err did not come from the pipeline.
func KindOf(err error) ErrorKind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return ""
}

func IsRateLimited(err error) bool  { return KindOf(err) == KindRateLimited }
func IsNotFound(err error) bool     { return KindOf(err) == KindNotFound }
func IsUnauthorized(err error) bool { return KindOf(err) == KindUnauthorized }

// apiErrorBody is the JSON error envelope ClickUp returns on failure.
type apiErrorBody struct {
	Err   string `json:"err"`
	ECode string `json:"ECODE"`
}

func classifyStatus(status int) ErrorKind {
	switch status {
	case http.StatusUnauthorized:
		return KindUnauthorized
	case http.StatusForbidden:
		return KindForbidden
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusBadRequest:
		return KindBadRequest
	case http.StatusTooManyRequests:
		return KindRateLimited
	default:
		return KindAPI
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
