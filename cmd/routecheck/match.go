package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/olton/router"
)

func matchCmd() *cobra.Command {
	var patterns []string

	cmd := &cobra.Command{
		Use:   "match PATH",
		Short: "Probe a path against route patterns",
		Long: `Match builds a route table from the given patterns, sanitizes the
path, and reports which pattern wins and what parameters it extracts.

Examples:
  routecheck match -r /user/:id -r /user/new /user/5
  routecheck match -r "/post/:year/:slug" "/post/2024/go-routing?ref=rss"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(patterns) == 0 {
				return fmt.Errorf("at least one --route pattern is required")
			}

			nop := func(ctx context.Context, params router.Params) error { return nil }
			opts := make([]router.Option, 0, len(patterns))
			for _, p := range patterns {
				opts = append(opts, router.WithRoute(p, nop))
			}
			r, err := router.New(opts...)
			if err != nil {
				return err
			}

			m, ok := r.Match(args[0])
			if !ok {
				fmt.Println("no match")
				return nil
			}

			fmt.Printf("path:    %s\n", m.Path)
			fmt.Printf("pattern: %s\n", m.Pattern)
			printParams("params", m.Params)
			printParams("query", m.Query)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&patterns, "route", "r", nil, "Route pattern (repeatable)")

	return cmd
}

func printParams(label string, params router.Params) {
	if len(params) == 0 {
		return
	}
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("%s:  %s=%s\n", label, name, params[name])
	}
}
