package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/jerome-degould/icepanel-sequence-diagrams-v2/pkg/mermaid"
)

// ToDOT converts a flowchart to Graphviz DOT. Subgraphs become clusters;
// the resulting string can be rendered with [RenderSVG] or [RenderPNG].
func ToDOT(chart *mermaid.Flowchart) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  compound=true;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, root := range chart.Forest() {
		writeDOTNode(&buf, root, 1)
	}

	buf.WriteString("\n")
	for _, link := range chart.Links() {
		source, target := chart.Node(link.SourceID), chart.Node(link.TargetID)
		if source == nil || target == nil {
			continue
		}
		if link.Label != "" {
			fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", source.SafeID, target.SafeID, link.Label)
		} else {
			fmt.Fprintf(&buf, "  %q -> %q;\n", source.SafeID, target.SafeID)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeDOTNode(buf *bytes.Buffer, n *mermaid.Node, indent int) {
	pad := strings.Repeat("  ", indent)
	if children := n.Children(); len(children) > 0 {
		fmt.Fprintf(buf, "%ssubgraph \"cluster_%s\" {\n", pad, n.SafeID)
		fmt.Fprintf(buf, "%s  label=%q;\n", pad, n.Name)
		for _, child := range children {
			writeDOTNode(buf, child, indent+1)
		}
		fmt.Fprintf(buf, "%s}\n", pad)
		return
	}
	fmt.Fprintf(buf, "%s%q [label=%q];\n", pad, n.SafeID, n.Name)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	var buf bytes.Buffer
	if err := renderDOT(ctx, dot, graphviz.SVG, &buf); err != nil {
		return nil, err
	}
	return normalizeViewBox(buf.Bytes()), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	var buf bytes.Buffer
	if err := renderDOT(ctx, dot, graphviz.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderDOT(ctx context.Context, dot string, format graphviz.Format, buf *bytes.Buffer) error {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	if err := gv.Render(ctx, g, format, buf); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the opening svg tag so the image scales to its
// container instead of using Graphviz's absolute point sizes.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
