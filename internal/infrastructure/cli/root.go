package cli

import (
	inframcp "github.com/felixgeelhaar/clickup-mcp/internal/infrastructure/mcp"
	"github.com/spf13/cobra"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var (
	configPath string
	logLevel   string
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "clickup-mcp",
	Version: Version,
	Short:   "Model Context Protocol server for the ClickUp API",
	Long: `clickup-mcp exposes the ClickUp v2 REST API as MCP tools.
Requests are paced, rate-limited responses are retried a bounded number
of times, and failures are classified before they reach the MCP client.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() error {
	RootCmd.Version = Version
	inframcp.Version = Version
	inframcp.BuildCommit = Commit
	inframcp.BuildDate = Date
	return RootCmd.Execute()
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/clickup-mcp/config.yaml)")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
}
