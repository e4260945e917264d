package cli

import (
	"errors"
	"fmt"

	"github.com/felixgeelhaar/clickup-mcp/internal/infrastructure/auth"
	"github.com/felixgeelhaar/clickup-mcp/internal/infrastructure/config"
	"github.com/felixgeelhaar/clickup-mcp/pkg/clickup"
)

// CLIError wraps errors with user-facing messages and actionable hints.
type CLIError struct {
	Message  string
	Hint     string
	Err      error
	ExitCode int
}

func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a CLIError with a default exit code of 1.
func NewCLIError(msg, hint string, err error) *CLIError {
	return &CLIError{
		Message:  msg,
		Hint:     hint,
		Err:      err,
		ExitCode: 1,
	}
}

// MapError converts known errors into CLIErrors with actionable hints.
// Unmapped errors are returned as-is.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return err
	}

	switch {
	case errors.Is(err, clickup.ErrMissingToken):
		return NewCLIError("no ClickUp credential configured", "Set CLICKUP_API_TOKEN, or run 'clickup-mcp auth url' to authorize with OAuth", err)
	case errors.Is(err, auth.ErrMissingClient):
		return NewCLIError("OAuth client is not configured", "Set client_id and client_secret in the config file or CLICKUP_CLIENT_ID and CLICKUP_CLIENT_SECRET", err)
	case errors.Is(err, config.ErrInvalid):
		return NewCLIError("config file is invalid", "Fix the listed fields, then run 'clickup-mcp doctor'", err)
	}

	switch clickup.KindOf(err) {
	case clickup.KindUnauthorized:
		return NewCLIError("ClickUp rejected the credential", "Check the token with 'clickup-mcp config show' or create a new one in ClickUp settings", err)
	case clickup.KindForbidden:
		return NewCLIError("access denied", "The token's user needs access to this workspace", err)
	case clickup.KindRateLimited:
		return NewCLIError("rate limit exceeded", "Wait a minute, or raise min_request_spacing in the config", err)
	case clickup.KindNetwork:
		return NewCLIError("ClickUp is unreachable", "Check the network connection and base_url", err)
	}

	return err
}
