package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// diagramCommand creates the diagram command for exporting a full diagram
// as a Mermaid flowchart.
func (c *CLI) diagramCommand() *cobra.Command {
	opts := outputOptions{}

	cmd := &cobra.Command{
		Use:   "diagram [name]",
		Short: "Export a diagram as a Mermaid flowchart",
		Long: `Export a diagram as a Mermaid flowchart.

The diagram is located by name in the configured landscape version. Objects
become nodes, parent groupings become nested subgraphs, and relationships
become labeled links. When the diagram data carries no relationships, they
are inferred from the landscape's model connections.

Without a name argument, an interactive picker lists the available
diagrams.

With --convert, the written .mmd file is additionally rendered to SVG or
PNG. The mmdc renderer requires the mermaid-cli executable (MMDC_CMD); the
graphviz renderer runs in-process.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(opts.format); err != nil {
				return err
			}
			if err := validateRenderer(opts.renderer); err != nil {
				return err
			}

			name := ""
			if len(args) > 0 {
				name = args[0]
			}
			return c.runDiagram(cmd.Context(), name, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.dataDir, "data-dir", "d", "data", "directory for generated files")
	cmd.Flags().BoolVarP(&opts.convert, "convert", "c", false, "convert the generated Mermaid file to an image")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "png", "image format for --convert: png (default), svg")
	cmd.Flags().StringVar(&opts.renderer, "renderer", rendererMMDC, "image renderer for --convert: mmdc (default), graphviz")
	cmd.Flags().BoolVarP(&opts.print, "print", "p", false, "print the generated Mermaid text to stdout")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable API response caching")

	return cmd
}

func (c *CLI) runDiagram(ctx context.Context, name string, opts outputOptions) error {
	cfg, err := LoadConfig(c.configPath)
	if err != nil {
		return err
	}
	exp, err := c.newExporter(cfg, opts.noCache)
	if err != nil {
		return err
	}

	if name == "" {
		headers, err := exp.Client().ListDiagrams(ctx)
		if err != nil {
			return fmt.Errorf("list diagrams: %w", err)
		}
		name, err = pickName(ctx, "Select Diagram", diagramItems(headers))
		if err != nil {
			return err
		}
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Exporting diagram %q...", name))
	spinner.Start()

	prog := newProgress(c.Logger)
	chart, err := exp.Diagram(ctx, name)
	if err != nil {
		spinner.StopWithError(fmt.Sprintf("Unable to export diagram %q", name))
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Exported %d objects, %d relationships", chart.NodeCount(), len(chart.Links())))

	text := chart.Generate()
	if opts.print {
		fmt.Println(text)
	}

	path, err := c.writeMermaid(name, text, opts)
	if err != nil {
		return err
	}
	printSuccess("Diagram %q exported", name)
	printFile(path)

	if opts.convert {
		outPath, err := c.convertFlowchart(ctx, cfg, name, path, chart, opts)
		if err != nil {
			return fmt.Errorf("convert %s: %w", path, err)
		}
		printFile(outPath)
	}
	return nil
}
