package cli

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	inframcp "github.com/felixgeelhaar/clickup-mcp/internal/infrastructure/mcp"
	"github.com/spf13/cobra"
)

var toolsFilter string

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the MCP tools this server registers",
	RunE: func(cmd *cobra.Command, args []string) error {
		srv, err := offlineServer()
		if err != nil {
			return err
		}

		tools := slices.Clone(srv.MCP().Tools())
		sort.Slice(tools, func(i, j int) bool { return tools[i].Name < tools[j].Name })

		rows := []table.Row{}
		for _, tool := range tools {
			if toolsFilter != "" && !strings.Contains(tool.Name, toolsFilter) {
				continue
			}
			rows = append(rows, table.Row{tool.Name, truncate(tool.Description, 60)})
		}

		out := cmd.OutOrStdout()
		_, _ = fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("ClickUp MCP tools (%d)", len(rows))))
		if len(rows) == 0 {
			_, _ = fmt.Fprintln(out, "No tools match.")
			return nil
		}
		_, _ = fmt.Fprintln(out, renderTable([]table.Column{
			{Title: "Tool", Width: 40},
			{Title: "Description", Width: 60},
		}, rows))
		return nil
	},
}

func offlineServer() (*inframcp.Server, error) {
	client, err := offlineClient()
	if err != nil {
		return nil, err
	}
	srv, err := inframcp.NewServer(client)
	if err != nil {
		return nil, MapError(fmt.Errorf("failed to initialize server: %w", err))
	}
	return srv, nil
}

func init() {
	toolsCmd.Flags().StringVar(&toolsFilter, "filter", "", "Only list tools whose name contains this text")
	RootCmd.AddCommand(toolsCmd)
}
