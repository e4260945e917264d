package wiring

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/felixgeelhaar/clickup-mcp/internal/infrastructure/config"
	"github.com/felixgeelhaar/clickup-mcp/internal/infrastructure/storage"
	"github.com/felixgeelhaar/clickup-mcp/pkg/clickup"
)

// Services bundles the client and its optional request journal.
type Services struct {
	Config  *config.Config
	Client  *clickup.Client
	Journal *storage.Journal // nil when journaling is disabled
	Logger  *slog.Logger
}

// BuildServices wires a ClickUp client from cfg. Extra client options are
// applied after the configured ones.
func BuildServices(cfg *config.Config, logger *slog.Logger, extra ...clickup.Option) (*Services, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	tuning, err := cfg.Tuning()
	if err != nil {
		return nil, err
	}

	var journal *storage.Journal
	if cfg.JournalPath != "" {
		journal, err = storage.OpenJournal(cfg.JournalPath, logger)
		if err != nil {
			return nil, err
		}
	}

	opts := []clickup.Option{
		clickup.WithBaseURL(tuning.BaseURL),
		clickup.WithTimeout(tuning.Timeout),
		clickup.WithMinSpacing(tuning.MinSpacing),
		clickup.WithRetry(tuning.MaxRetries, tuning.RetryDelay),
		clickup.WithLogger(logger),
	}
	if journal != nil {
		opts = append(opts, clickup.WithObserver(journal))
	}
	opts = append(opts, extra...)

	client, err := clickup.New(clickup.Config{APIToken: cfg.APIToken, OAuthToken: cfg.OAuthToken}, opts...)
	if err != nil {
		if journal != nil {
			_ = journal.Close()
		}
		return nil, err
	}

	return &Services{Config: cfg, Client: client, Journal: journal, Logger: logger}, nil
}

// Close releases the journal, if any.
func (s *Services) Close() error {
	if s == nil || s.Journal == nil {
		return nil
	}
	return s.Journal.Close()
}

// NewLogger returns a text slog logger writing to w at the named level.
// Unknown levels fall back to info.
func NewLogger(level string, w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)}))
}

// ParseLevel maps debug/info/warn/error onto slog levels.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
