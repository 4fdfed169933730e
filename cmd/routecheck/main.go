package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "routecheck",
		Short: "Inspect path sanitization and route matching",
		Long: `Routecheck answers "what will the navigation engine do with this
path" without running an application.

  check  Run a raw path through the sanitizer and blocklist
  match  Probe a path against a set of route patterns`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		checkCmd(),
		matchCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}
