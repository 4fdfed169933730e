package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/olton/router/pkg/routepath"
)

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check PATH...",
		Short: "Run paths through the sanitizer and blocklist",
		Long: `Check shows how raw paths come out of the sanitization pipeline.

Examples:
  routecheck check "/user//5/"
  routecheck check "/page<script>" "/wp-admin/x"`,
		Args: cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			for _, raw := range args {
				res := routepath.Sanitize(raw)

				fmt.Printf("original:  %s\n", res.Original)
				fmt.Printf("sanitized: %s\n", res.Path)
				if res.Query != "" {
					fmt.Printf("query:     %s\n", res.Query)
				}
				fmt.Printf("changed:   %v\n", res.Changed)
				fmt.Printf("blocked:   %v\n", res.Blocked)
				fmt.Println()
			}
		},
	}
}
