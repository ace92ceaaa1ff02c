package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jerome-degould/icepanel-sequence-diagrams-v2/pkg/export"
	"github.com/jerome-degould/icepanel-sequence-diagrams-v2/pkg/mermaid"
	"github.com/jerome-degould/icepanel-sequence-diagrams-v2/pkg/render"
)

// Renderer names for --renderer.
const (
	rendererMMDC     = "mmdc"
	rendererGraphviz = "graphviz"
)

// outputOptions are the flags shared by the diagram and flow commands.
type outputOptions struct {
	dataDir  string
	format   string
	renderer string
	convert  bool
	print    bool
	noCache  bool
}

func validateFormat(format string) error {
	switch format {
	case "svg", "png":
		return nil
	}
	return fmt.Errorf("unsupported format %q (supported: svg, png)", format)
}

func validateRenderer(renderer string) error {
	switch renderer {
	case rendererMMDC, rendererGraphviz:
		return nil
	}
	return fmt.Errorf("unsupported renderer %q (supported: %s, %s)", renderer, rendererMMDC, rendererGraphviz)
}

// writeMermaid writes the generated Mermaid text under the data directory
// and returns the written path.
func (c *CLI) writeMermaid(name, text string, opts outputOptions) (string, error) {
	if err := os.MkdirAll(opts.dataDir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory %s: %w", opts.dataDir, err)
	}

	path := filepath.Join(opts.dataDir, export.Filename(name, "mmd"))
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// convertMermaid converts a written .mmd file to the requested image
// format with mermaid-cli.
func (c *CLI) convertMermaid(ctx context.Context, cfg Config, name, mmdPath string, opts outputOptions) (string, error) {
	outPath := filepath.Join(opts.dataDir, export.Filename(name, opts.format))
	if err := render.Mermaid(ctx, cfg.MMDCCommand, mmdPath, outPath); err != nil {
		return "", err
	}
	return outPath, nil
}

// convertFlowchart converts a flowchart to the requested image format
// using the configured renderer. The Graphviz path renders in-process and
// does not need the .mmd file.
func (c *CLI) convertFlowchart(ctx context.Context, cfg Config, name, mmdPath string, chart *mermaid.Flowchart, opts outputOptions) (string, error) {
	if opts.renderer == rendererMMDC {
		return c.convertMermaid(ctx, cfg, name, mmdPath, opts)
	}

	dot := render.ToDOT(chart)
	var (
		data []byte
		err  error
	)
	switch opts.format {
	case "png":
		data, err = render.RenderPNG(ctx, dot)
	default:
		data, err = render.RenderSVG(ctx, dot)
	}
	if err != nil {
		return "", err
	}

	outPath := filepath.Join(opts.dataDir, export.Filename(name, opts.format))
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", outPath, err)
	}
	return outPath, nil
}
