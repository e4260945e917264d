package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/felixgeelhaar/clickup-mcp/internal/infrastructure/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var clickupEnv = []string{
	"CLICKUP_API_TOKEN", "CLICKUP_OAUTH_TOKEN", "CLICKUP_CLIENT_ID", "CLICKUP_CLIENT_SECRET",
	"CLICKUP_REDIRECT_URL", "CLICKUP_BASE_URL", "CLICKUP_MCP_LOG_LEVEL", "CLICKUP_MCP_JOURNAL",
}

// runCLI executes the root command with args and returns what it printed.
// Flag variables are package globals, so they are reset first.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	for _, name := range clickupEnv {
		t.Setenv(name, "")
	}
	resetFlags(t, RootCmd)

	var buf bytes.Buffer
	RootCmd.SetOut(&buf)
	RootCmd.SetErr(&buf)
	RootCmd.SetArgs(args)
	t.Cleanup(func() {
		RootCmd.SetOut(nil)
		RootCmd.SetErr(nil)
		RootCmd.SetArgs(nil)
	})

	err := Execute()
	return buf.String(), err
}

// resetFlags restores every flag to its default. Cobra keeps parsed values
// on the command tree between executions.
func resetFlags(t *testing.T, cmd *cobra.Command) {
	t.Helper()

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if err := f.Value.Set(f.DefValue); err != nil {
			t.Fatalf("reset --%s: %v", f.Name, err)
		}
		f.Changed = false
	})
	for _, sub := range cmd.Commands() {
		resetFlags(t, sub)
	}
}

// writeConfig saves cfg into a temp dir and returns its path.
func writeConfig(t *testing.T, cfg *config.Config) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := config.Save(path, cfg); err != nil {
		t.Fatalf("save config: %v", err)
	}
	return path
}
