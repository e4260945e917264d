package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/felixgeelhaar/mcp-go"

	"github.com/felixgeelhaar/clickup-mcp/internal/infrastructure/storage"
	"github.com/felixgeelhaar/clickup-mcp/pkg/clickup"
)

// Server exposes the ClickUp API as MCP tools.
type Server struct {
	mcpServer *mcp.Server
	client    *clickup.Client
	journal   *storage.Journal
	logger    *slog.Logger
}

var (
	Version     = "dev"
	BuildCommit = "unknown"
	BuildDate   = "unknown"
)

// ServerOption customizes a Server.
type ServerOption func(*Server)

// WithJournal enables the clickup_journal_recent tool.
func WithJournal(j *storage.Journal) ServerOption {
	return func(s *Server) { s.journal = j }
}

// WithServerLogger sets the logger used for tool failures.
func WithServerLogger(l *slog.Logger) ServerOption {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// mcpErr returns a user-friendly error for MCP clients.
// Internal details are omitted and only the friendly message is returned.
func mcpErr(friendly string) error {
	return fmt.Errorf("%s", friendly)
}

func NewServer(client *clickup.Client, opts ...ServerOption) (*Server, error) {
	if client == nil {
		return nil, errors.New("clickup client is required")
	}

	info := mcp.ServerInfo{
		Name:    "clickup-mcp",
		Version: Version,
	}

	s := &Server{
		mcpServer: mcp.NewServer(info,
			mcp.WithTitle("ClickUp MCP Server"),
			mcp.WithDescription("Exposes ClickUp workspaces, tasks, time tracking, goals and webhooks to MCP clients."),
			mcp.WithWebsiteURL("https://github.com/felixgeelhaar/clickup-mcp"),
			mcp.WithBuildInfo(BuildCommit, BuildDate),
			mcp.WithInstructions("Start with clickup_teams_list_workspaces to discover team IDs, then drill into spaces, folders and lists. Timestamps are Unix milliseconds."),
		),
		client: client,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.registerWorkspaceTools()
	s.registerTaskTools()
	s.registerCollaborationTools()
	s.registerTrackingTools()
	s.registerAccessTools()
	s.registerJournalTools()
	s.registerSchemaResource()
	return s, nil
}

// MCP returns the underlying mcp-go server.
func (s *Server) MCP() *mcp.Server {
	return s.mcpServer
}

// reply turns a raw ClickUp response into indented JSON text. API errors
// are passed through so the classified message reaches the client as-is.
func (s *Server) reply(tool string, raw []byte, err error) (string, error) {
	if err != nil {
		s.logger.Debug("tool failed", "tool", tool, "kind", clickup.KindOf(err), "error", err)
		return "", err
	}
	return jsonText(raw)
}

// done returns a fixed confirmation for operations whose response body is
// not useful to the caller.
func (s *Server) done(tool, msg string, err error) (string, error) {
	if err != nil {
		s.logger.Debug("tool failed", "tool", tool, "kind", clickup.KindOf(err), "error", err)
		return "", err
	}
	return msg, nil
}

func (s *Server) ServeStdio(ctx context.Context) error {
	return mcp.ServeStdio(ctx, s.mcpServer)
}

func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	return mcp.ServeHTTP(ctx, s.mcpServer, addr, mcp.WithDefaultCORS())
}

func (s *Server) ServeWebSocket(ctx context.Context, addr string) error {
	return mcp.ServeWebSocket(ctx, s.mcpServer, addr)
}

func (s *Server) ServeGRPC(ctx context.Context, addr string) error {
	return mcp.ServeGRPC(ctx, s.mcpServer, addr)
}
