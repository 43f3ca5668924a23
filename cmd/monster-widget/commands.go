package main

import (
	"encoding/json"
	"fmt"

	"github.com/AtRiskMedia/monster-widget/internal/application/container"
	"github.com/AtRiskMedia/monster-widget/internal/application/startup"
	"github.com/AtRiskMedia/monster-widget/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/monster-widget/internal/infrastructure/sidebars"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the preview HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return startup.Initialize()
		},
	}
}

// withContainer runs fn against a container whose logs are discarded, so
// command output on stdout stays clean.
func withContainer(fn func(*container.Container) error) error {
	c, err := container.NewContainer(logging.NewDiscardLogger())
	if err != nil {
		return err
	}
	defer c.Close()
	return fn(c)
}

func renderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "render [sidebar-id]",
		Short: "Render a sidebar fragment to stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := sidebars.DefaultSidebarID
			if len(args) == 1 {
				id = args[0]
			}
			return withContainer(func(c *container.Container) error {
				if err := c.SidebarService.RenderSidebar(cmd.Context(), cmd.OutOrStdout(), id); err != nil {
					return err
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout())
				return err
			})
		},
	}
}

func configCmd() *cobra.Command {
	var asYAML bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the Monster widget's sub-widget configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(func(c *container.Container) error {
				list := c.Monster.WidgetConfig(cmd.Context())
				out := cmd.OutOrStdout()
				if asYAML {
					enc := yaml.NewEncoder(out)
					enc.SetIndent(2)
					defer enc.Close()
					return enc.Encode(list)
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(list)
			})
		},
	}

	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Print YAML instead of JSON")
	return cmd
}

func breakerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "breaker",
		Short: "Print the layout-breaking placeholder HTML",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(func(c *container.Container) error {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), c.Monster.BreakerText())
				return err
			})
		},
	}
}
