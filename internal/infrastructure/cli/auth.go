package cli

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/felixgeelhaar/clickup-mcp/internal/infrastructure/auth"
	"github.com/felixgeelhaar/clickup-mcp/internal/infrastructure/config"
	"github.com/spf13/cobra"
)

var authState string

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authorize with ClickUp using OAuth",
}

var authURLCmd = &cobra.Command{
	Use:   "url",
	Short: "Print the URL that grants this app access to a workspace",
	RunE: func(cmd *cobra.Command, args []string) error {
		flow, err := loadFlow()
		if err != nil {
			return err
		}
		state := authState
		if state == "" {
			state = randomState()
		}
		out := cmd.OutOrStdout()
		_, _ = fmt.Fprintln(out, "Open this URL and approve access:")
		_, _ = fmt.Fprintln(out, flow.AuthCodeURL(state))
		_, _ = fmt.Fprintln(out, "\nThen run 'clickup-mcp auth exchange <code>' with the code from the redirect.")
		return nil
	},
}

var authExchangeCmd = &cobra.Command{
	Use:   "exchange <code>",
	Short: "Exchange an authorization code and store the access token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flow, err := loadFlow()
		if err != nil {
			return err
		}
		token, err := flow.Exchange(cmd.Context(), args[0], nil)
		if err != nil {
			return MapError(err)
		}

		path, err := resolveConfigPath()
		if err != nil {
			return err
		}
		// Only the file is rewritten; environment overrides stay out of it.
		fileCfg, err := config.LoadFile(path)
		if err != nil {
			return err
		}
		fileCfg.OAuthToken = token
		if err := config.Save(path, fileCfg); err != nil {
			return fmt.Errorf("failed to save token: %w", err)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Access token saved to %s\n", path)
		return nil
	},
}

func loadFlow() (*auth.Flow, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	var opts []auth.Option
	if authEndpoint != nil {
		opts = append(opts, authEndpoint)
	}
	flow, err := auth.NewFlow(cfg.ClientID, cfg.ClientSecret, cfg.RedirectURL, opts...)
	if err != nil {
		return nil, MapError(err)
	}
	return flow, nil
}

// authEndpoint overrides the ClickUp endpoints in tests.
var authEndpoint auth.Option

func randomState() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func init() {
	authURLCmd.Flags().StringVar(&authState, "state", "", "OAuth state value (random when empty)")
	authCmd.AddCommand(authURLCmd)
	authCmd.AddCommand(authExchangeCmd)
	RootCmd.AddCommand(authCmd)
}
