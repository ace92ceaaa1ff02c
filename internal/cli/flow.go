package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// flowCommand creates the flow command for exporting a flow as a Mermaid
// sequence diagram.
func (c *CLI) flowCommand() *cobra.Command {
	opts := outputOptions{}

	cmd := &cobra.Command{
		Use:   "flow [name]",
		Short: "Export a flow as a Mermaid sequence diagram",
		Long: `Export a flow as a Mermaid sequence diagram.

The flow is located by name in the configured landscape version. Steps are
walked in index order; each step's origin and target objects are resolved
in the flow's diagram and rendered as interactions between the underlying
model objects. Unresolvable steps are skipped with a warning.

Without a name argument, an interactive picker lists the available flows.

With --convert, the written .mmd file is additionally rendered to SVG or
PNG via the mermaid-cli executable (MMDC_CMD). Sequence diagrams have no
Graphviz form, so the graphviz renderer is not available here.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(opts.format); err != nil {
				return err
			}

			name := ""
			if len(args) > 0 {
				name = args[0]
			}
			return c.runFlow(cmd.Context(), name, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.dataDir, "data-dir", "d", "data", "directory for generated files")
	cmd.Flags().BoolVarP(&opts.convert, "convert", "c", false, "convert the generated Mermaid file to an image")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "png", "image format for --convert: png (default), svg")
	cmd.Flags().BoolVarP(&opts.print, "print", "p", false, "print the generated Mermaid text to stdout")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable API response caching")

	return cmd
}

func (c *CLI) runFlow(ctx context.Context, name string, opts outputOptions) error {
	cfg, err := LoadConfig(c.configPath)
	if err != nil {
		return err
	}
	exp, err := c.newExporter(cfg, opts.noCache)
	if err != nil {
		return err
	}

	if name == "" {
		headers, err := exp.Client().ListFlows(ctx)
		if err != nil {
			return fmt.Errorf("list flows: %w", err)
		}
		name, err = pickName(ctx, "Select Flow", flowItems(headers))
		if err != nil {
			return err
		}
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Exporting flow %q...", name))
	spinner.Start()

	prog := newProgress(c.Logger)
	seq, err := exp.Flow(ctx, name)
	if err != nil {
		spinner.StopWithError(fmt.Sprintf("Unable to export flow %q", name))
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Exported %d participants, %d steps", len(seq.Participants()), len(seq.Steps())))

	text := seq.Generate()
	if opts.print {
		fmt.Println(text)
	}

	path, err := c.writeMermaid(name, text, opts)
	if err != nil {
		return err
	}
	printSuccess("Flow %q exported", name)
	printFile(path)

	if opts.convert {
		outPath, err := c.convertMermaid(ctx, cfg, name, path, opts)
		if err != nil {
			return fmt.Errorf("convert %s: %w", path, err)
		}
		printFile(outPath)
	}
	return nil
}
