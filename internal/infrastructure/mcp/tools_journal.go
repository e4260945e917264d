package mcp

import (
	"context"

	"github.com/felixgeelhaar/clickup-mcp/internal/infrastructure/storage"
)

type JournalArgs struct {
	Limit *FlexInt `json:"limit,omitempty" jsonschema:"description=Number of requests to return (default 20)"`
}

type journalReport struct {
	Stats   storage.Stats   `json:"stats"`
	Entries []storage.Entry `json:"entries"`
}

func (s *Server) registerJournalTools() {
	s.mcpServer.Tool("clickup_journal_recent").
		Description("Show recent ClickUp API requests made by this server, with retry and failure counts").
		Handler(s.handleJournalRecent)
}

func (s *Server) handleJournalRecent(ctx context.Context, args JournalArgs) (string, error) {
	if s.journal == nil {
		return "", mcpErr("Request journal is disabled. Set journal_path in the config or CLICKUP_MCP_JOURNAL.")
	}
	entries, err := s.journal.Recent(ctx, intOf(args.Limit))
	if err != nil {
		s.logger.Error("journal read failed", "error", err)
		return "", mcpErr("Failed to read the request journal.")
	}
	stats, err := s.journal.Stats(ctx)
	if err != nil {
		s.logger.Error("journal stats failed", "error", err)
		return "", mcpErr("Failed to read the request journal.")
	}
	if entries == nil {
		entries = []storage.Entry{}
	}
	return marshalText(journalReport{Stats: stats, Entries: entries})
}
