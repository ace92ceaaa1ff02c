package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// listCommand creates the list command showing available diagrams and
// flows.
func (c *CLI) listCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "list [diagrams|flows]",
		Short: "List diagrams and flows in the landscape version",
		Long: `List diagrams and flows in the configured landscape version.

Without an argument, both kinds are listed.`,
		ValidArgs: []string{"diagrams", "flows"},
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := ""
			if len(args) > 0 {
				kind = args[0]
			}
			return c.runList(cmd.Context(), kind, noCache)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable API response caching")

	return cmd
}

func (c *CLI) runList(ctx context.Context, kind string, noCache bool) error {
	cfg, err := LoadConfig(c.configPath)
	if err != nil {
		return err
	}
	exp, err := c.newExporter(cfg, noCache)
	if err != nil {
		return err
	}
	client := exp.Client()

	if kind == "" || kind == "diagrams" {
		diagrams, err := client.ListDiagrams(ctx)
		if err != nil {
			return fmt.Errorf("list diagrams: %w", err)
		}
		fmt.Println(StyleTitle.Render("Diagrams"))
		if len(diagrams) == 0 {
			printDetail("none")
		}
		for _, d := range diagrams {
			line := StyleValue.Render(d.Name)
			if d.Type != "" {
				line += " " + StyleDim.Render(d.Type)
			}
			fmt.Println("  " + line)
		}
	}

	if kind == "" || kind == "flows" {
		if kind == "" {
			printNewline()
		}
		flows, err := client.ListFlows(ctx)
		if err != nil {
			return fmt.Errorf("list flows: %w", err)
		}
		fmt.Println(StyleTitle.Render("Flows"))
		if len(flows) == 0 {
			printDetail("none")
		}
		for _, f := range flows {
			fmt.Println("  " + StyleValue.Render(f.Name))
		}
	}

	return nil
}
