package sdk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	"github.com/felixgeelhaar/mcp-go/client"
	"github.com/felixgeelhaar/mcp-go/protocol"
)

// Client is a typed Go client for the clickup-mcp server.
type Client struct {
	mcp      *client.Client
	retryCfg retry.Config
	timeout  time.Duration
}

// NewClient creates a new SDK client wrapping the given MCP transport.
func NewClient(transport client.Transport, opts ...Option) *Client {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	return &Client{
		mcp:     client.New(transport, client.WithTimeout(o.timeout)),
		timeout: o.timeout,
		retryCfg: retry.Config{
			MaxAttempts:   o.maxAttempts,
			InitialDelay:  o.initialDelay,
			BackoffPolicy: retry.BackoffExponential,
			IsRetryable:   transportFailure,
		},
	}
}

// Initialize performs the MCP initialize handshake.
func (c *Client) Initialize(ctx context.Context) (*client.ServerInfo, error) {
	return c.mcp.Initialize(ctx)
}

// Close closes the underlying transport.
func (c *Client) Close() error {
	return c.mcp.Close()
}

// Call invokes any tool by name and returns its text result. Use it for
// tools without a typed method.
func (c *Client) Call(ctx context.Context, tool string, args map[string]any) (string, error) {
	res, err := c.call(ctx, tool, args)
	if err != nil {
		return "", err
	}
	return textResult(res)
}

// CallJSON invokes a tool and decodes its JSON result into out.
func (c *Client) CallJSON(ctx context.Context, tool string, args map[string]any, out any) error {
	text, err := c.Call(ctx, tool, args)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("unmarshal %s: %w", tool, err)
	}
	return nil
}

// call invokes a tool, retrying transport failures only. The server reports
// ClickUp failures as JSON-RPC errors carrying the classified message; those
// become *ToolError and are never re-sent.
func (c *Client) call(ctx context.Context, tool string, args map[string]any) (*client.ToolResult, error) {
	r := retry.New[*client.ToolResult](c.retryCfg)
	result, err := r.Do(ctx, func(ctx context.Context) (*client.ToolResult, error) {
		return c.mcp.CallTool(ctx, tool, args)
	})
	if err != nil {
		var rpcErr *protocol.Error
		if errors.As(err, &rpcErr) {
			return nil, &ToolError{Tool: tool, Code: rpcErr.Code, Message: rpcErr.Message}
		}
		return nil, fmt.Errorf("call %s: %w", tool, err)
	}
	if result.IsError {
		msg := ""
		if len(result.Content) > 0 {
			msg = result.Content[0].Text
		}
		return nil, &ToolError{Tool: tool, Message: msg}
	}
	return result, nil
}

// transportFailure reports whether err happened before the server answered.
func transportFailure(err error) bool {
	var rpcErr *protocol.Error
	return !errors.As(err, &rpcErr)
}

// unmarshalText extracts Content[0].Text from a tool result and unmarshals it as JSON.
func unmarshalText[T any](result *client.ToolResult) (*T, error) {
	text, err := textResult(result)
	if err != nil {
		return nil, err
	}
	var v T
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	return &v, nil
}

// textResult extracts Content[0].Text from a tool result.
func textResult(result *client.ToolResult) (string, error) {
	if len(result.Content) == 0 {
		return "", ErrNoContent
	}
	return result.Content[0].Text, nil
}

// --- Schema ---

// GetSchema reads the clickup://schema resource from the server.
func (c *Client) GetSchema(ctx context.Context) (*SchemaInfo, error) {
	rc, err := c.mcp.ReadResource(ctx, schemaURI)
	if err != nil {
		return nil, fmt.Errorf("read schema resource: %w", err)
	}
	var info SchemaInfo
	if err := json.Unmarshal([]byte(rc.Text), &info); err != nil {
		return nil, fmt.Errorf("unmarshal schema: %w", err)
	}
	return &info, nil
}

// Compatible checks if the server schema is compatible with this SDK version.
// Returns nil if compatible, error with details if not.
func (c *Client) Compatible(ctx context.Context) error {
	info, err := c.GetSchema(ctx)
	if err != nil {
		return fmt.Errorf("check compatibility: %w", err)
	}
	serverMajor := majorVersion(info.SchemaVersion)
	if serverMajor != SupportedSchemaMajor {
		return fmt.Errorf("incompatible schema: server=%s (major %s), sdk supports major %s",
			info.SchemaVersion, serverMajor, SupportedSchemaMajor)
	}
	return nil
}

// majorVersion extracts the major version from a semver string.
func majorVersion(v string) string {
	for i, ch := range v {
		if ch == '.' {
			return v[:i]
		}
	}
	return v
}

// --- Workspaces ---

// Workspaces lists the workspaces the server's credential can access.
func (c *Client) Workspaces(ctx context.Context) ([]Workspace, error) {
	res, err := c.call(ctx, "clickup_teams_list_workspaces", nil)
	if err != nil {
		return nil, err
	}
	out, err := unmarshalText[struct {
		Teams []Workspace `json:"teams"`
	}](res)
	if err != nil {
		return nil, err
	}
	return out.Teams, nil
}

// --- Journal ---

// RecentRequests returns the server's request journal. It fails with a
// ToolError when the server runs without a journal.
func (c *Client) RecentRequests(ctx context.Context, limit int) (*JournalReport, error) {
	args := map[string]any{}
	if limit > 0 {
		args["limit"] = limit
	}
	res, err := c.call(ctx, "clickup_journal_recent", args)
	if err != nil {
		return nil, err
	}
	return unmarshalText[JournalReport](res)
}
