package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/felixgeelhaar/clickup-mcp/internal/infrastructure/config"
	"github.com/felixgeelhaar/clickup-mcp/internal/infrastructure/wiring"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the configuration and connectivity to ClickUp",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		_, _ = fmt.Fprintln(out, "Running ClickUp MCP Doctor...")

		hasIssues := false
		check := func(name string, fn func() error) bool {
			_, _ = fmt.Fprintf(out, "Checking %s... ", name)
			if err := fn(); err != nil {
				_, _ = fmt.Fprintf(out, "FAIL\n  Error: %v\n", err)
				hasIssues = true
				return false
			}
			_, _ = fmt.Fprintf(out, "PASS\n")
			return true
		}

		var cfg *config.Config
		configOK := check("Config File", func() error {
			var err error
			cfg, err = loadConfig()
			return err
		})

		var services *wiring.Services
		if configOK {
			check("Credential", func() error {
				if cfg.APIToken == "" && cfg.OAuthToken == "" {
					return fmt.Errorf("no api_token or oauth_token (set CLICKUP_API_TOKEN or run 'clickup-mcp auth url')")
				}
				return nil
			})

			check("Client Setup", func() error {
				var err error
				services, err = wiring.BuildServices(cfg, newLogger(cfg))
				if err != nil {
					return err
				}
				if services.Journal == nil {
					_, _ = fmt.Fprint(out, "(disabled) ")
				}
				return nil
			})
		}

		if services != nil {
			defer func() { _ = services.Close() }()
			check("ClickUp API", func() error {
				ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
				defer cancel()
				raw, err := services.Client.GetAuthorizedTeams(ctx)
				if err != nil {
					return err
				}
				var resp struct {
					Teams []json.RawMessage `json:"teams"`
				}
				if err := json.Unmarshal(raw, &resp); err != nil {
					return fmt.Errorf("unexpected response: %w", err)
				}
				_, _ = fmt.Fprintf(out, "(%d workspaces) ", len(resp.Teams))
				return nil
			})
		}

		if hasIssues {
			_, _ = fmt.Fprintln(out, "\nissues found! Please fix them before continuing.")
			return fmt.Errorf("doctor found issues")
		}
		_, _ = fmt.Fprintln(out, "\nEverything looks good!")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(doctorCmd)
}
