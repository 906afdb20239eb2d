// Package dot renders published Reeb graphs as node-link diagrams.
//
// The [ToDOT] function produces Graphviz DOT source that can be rendered
// in-process to SVG via [RenderSVG] (using [github.com/goccy/go-graphviz])
// or saved and processed with external Graphviz tools. Nodes are the
// critical points of the scalar field, laid out bottom-up in scalar
// order; in detailed mode edge labels carry the interior sample counts of
// each region.
package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/topograph/pkg/graph"
)

// Options configures diagram rendering.
type Options struct {
	// Detailed includes scalar values and interior sample counts in the
	// labels. When false, only vertex ids are shown.
	Detailed bool
}

// ToDOT converts a published graph to Graphviz DOT format. The resulting
// DOT string can be rendered with [RenderSVG].
//
// Minima sit at the bottom: the layout is bottom-to-top so the vertical
// axis reads as the scalar value, the way level sets are usually drawn.
func ToDOT(g *graph.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph reeb {\n")
	buf.WriteString("  rankdir=BT;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=18];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes {
		fmt.Fprintf(&buf, "  %d [label=%q];\n", n.ID, fmtNodeLabel(n, opts.Detailed))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		if opts.Detailed && len(e.VertexIDs) > 0 {
			fmt.Fprintf(&buf, "  %d -> %d [label=%q];\n", e.From, e.To,
				fmt.Sprintf("%d", len(e.VertexIDs)))
			continue
		}
		fmt.Fprintf(&buf, "  %d -> %d;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtNodeLabel(n graph.Node, detailed bool) string {
	if !detailed {
		return fmt.Sprintf("v%d", n.VertexID)
	}
	return fmt.Sprintf("v%d\n%s", n.VertexID, strconv.FormatFloat(n.Scalar, 'g', -1, 64))
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root svg tag so the diagram scales
// cleanly when embedded.
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

// Formats supported by the render command.
var Formats = []string{"dot", "svg", "png"}

// Render renders DOT source to the requested format. "dot" returns the
// source unchanged.
func Render(dotSrc, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "dot":
		return []byte(dotSrc), nil
	case "svg":
		return RenderSVG(dotSrc)
	case "png":
		return RenderPNG(dotSrc)
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}
