package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/felixgeelhaar/clickup-mcp/internal/infrastructure/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		code := 1
		var cliErr *cli.CLIError
		if errors.As(err, &cliErr) {
			if cliErr.Hint != "" {
				fmt.Fprintln(os.Stderr, "Hint:", cliErr.Hint)
			}
			code = cliErr.ExitCode
		}
		os.Exit(code)
	}
}
