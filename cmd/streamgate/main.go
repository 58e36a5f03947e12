package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/streamgate-io/streamgate/internal/interfaces/cli/migrate"
	"github.com/streamgate-io/streamgate/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "streamgate",
		Short: "streamgate - playlist mirror proxy with device-cap admission control",
		Long: `streamgate mirrors registered playlist URLs behind stable identifiers and
enforces a per-playlist concurrent device cap at the proxy boundary.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
