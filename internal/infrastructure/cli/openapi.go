package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var openapiCmd = &cobra.Command{
	Use:   "openapi",
	Short: "Generate an OpenAPI 3.0 spec from MCP tool registrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		srv, err := offlineServer()
		if err != nil {
			return err
		}

		data, err := srv.OpenAPI()
		if err != nil {
			return MapError(fmt.Errorf("failed to generate OpenAPI spec: %w", err))
		}

		_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(openapiCmd)
}
