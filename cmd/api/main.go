package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd is the lending service binary; subcommands do the work.
var rootCmd = &cobra.Command{
	Use:           "api",
	Short:         "Collateralized P2P lending service",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
