package cli

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	inframcp "github.com/felixgeelhaar/clickup-mcp/internal/infrastructure/mcp"
	"github.com/spf13/cobra"
)

var (
	mcpTransport string
	mcpAddr      string
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the ClickUp MCP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		defer func() { _ = services.Close() }()

		server, err := inframcp.NewServer(services.Client,
			inframcp.WithJournal(services.Journal),
			inframcp.WithServerLogger(services.Logger),
		)
		if err != nil {
			return MapError(fmt.Errorf("failed to initialize server: %w", err))
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		transport := strings.ToLower(mcpTransport)
		services.Logger.Info("starting MCP server", "transport", transport, "addr", mcpAddr, "version", Version)
		switch transport {
		case "stdio", "":
			err = server.ServeStdio(ctx)
		case "http":
			err = server.ServeHTTP(ctx, mcpAddr)
		case "ws", "websocket":
			err = server.ServeWebSocket(ctx, mcpAddr)
		case "grpc":
			err = server.ServeGRPC(ctx, mcpAddr)
		default:
			return fmt.Errorf("unsupported transport: %s", mcpTransport)
		}
		if err != nil && ctx.Err() == nil {
			return fmt.Errorf("mcp server stopped: %w", err)
		}
		return nil
	},
}

func init() {
	mcpCmd.Flags().StringVar(&mcpTransport, "transport", "stdio", "Transport to use (stdio, http, ws, grpc)")
	mcpCmd.Flags().StringVar(&mcpAddr, "addr", ":8080", "Address for http/ws/grpc transports")
	RootCmd.AddCommand(mcpCmd)
}
