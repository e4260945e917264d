package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/felixgeelhaar/clickup-mcp/internal/infrastructure/storage"
	"github.com/spf13/cobra"
)

var (
	journalLimit     int
	journalOlderThan time.Duration
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Show recent ClickUp API calls from the request journal",
	RunE: func(cmd *cobra.Command, args []string) error {
		journal, err := openJournal()
		if err != nil {
			return err
		}
		defer func() { _ = journal.Close() }()

		stats, err := journal.Stats(cmd.Context())
		if err != nil {
			return err
		}
		entries, err := journal.Recent(cmd.Context(), journalLimit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		_, _ = fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf(
			"Request journal: %d calls, %d failed, %d rate limited, %d retried",
			stats.Total, stats.Failed, stats.RateLimited, stats.Retried)))
		if len(entries) == 0 {
			_, _ = fmt.Fprintln(out, "No requests recorded yet.")
			return nil
		}

		rows := make([]table.Row, 0, len(entries))
		for _, e := range entries {
			result := kindOK.Render(strconv.Itoa(e.Status))
			if e.Kind != "" {
				result = kindErr.Render(e.Kind)
			}
			rows = append(rows, table.Row{
				e.StartedAt.Local().Format("01-02 15:04:05"),
				e.Method,
				truncate(e.Path, 40),
				result,
				strconv.Itoa(e.Attempts),
				fmt.Sprintf("%dms", e.DurationMS),
			})
		}
		_, _ = fmt.Fprintln(out, renderTable([]table.Column{
			{Title: "Started", Width: 14},
			{Title: "Method", Width: 6},
			{Title: "Path", Width: 40},
			{Title: "Result", Width: 14},
			{Title: "Tries", Width: 5},
			{Title: "Took", Width: 8},
		}, rows))
		return nil
	},
}

var journalPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete journal entries older than a duration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if journalOlderThan <= 0 {
			return NewCLIError("--older-than must be positive", "For example: clickup-mcp journal prune --older-than 720h", nil)
		}
		journal, err := openJournal()
		if err != nil {
			return err
		}
		defer func() { _ = journal.Close() }()

		n, err := journal.Prune(cmd.Context(), time.Now().Add(-journalOlderThan))
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Pruned %d entries\n", n)
		return nil
	},
}

func openJournal() (*storage.Journal, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.JournalPath == "" {
		return nil, NewCLIError("request journal is disabled", "Set journal_path in the config or CLICKUP_MCP_JOURNAL", nil)
	}
	return storage.OpenJournal(cfg.JournalPath, newLogger(cfg))
}

func init() {
	journalCmd.Flags().IntVar(&journalLimit, "limit", 20, "Number of entries to show")
	journalPruneCmd.Flags().DurationVar(&journalOlderThan, "older-than", 30*24*time.Hour, "Age of the entries to delete")
	journalCmd.AddCommand(journalPruneCmd)
	RootCmd.AddCommand(journalCmd)
}
