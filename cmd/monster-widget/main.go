// Package main provides the monster-widget binary: a preview server and CLI
// for the Monster composite widget.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const (
	Version = "0.1.0"
	appName = "monster-widget"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   appName,
		Short: "Render many sidebar widgets at once for theme testing",
		Long: `Monster Widget renders a fixed list of built-in widgets inside a single
sidebar slot so a theme's widget styling can be checked in one place.

Not intended for production use.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(
		serveCmd(),
		renderCmd(),
		configCmd(),
		breakerCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
			},
		},
	)
	return cmd
}
