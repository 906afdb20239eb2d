package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	pkgerrors "github.com/matzehuels/topograph/pkg/errors"
	"github.com/matzehuels/topograph/pkg/graph"
	"github.com/matzehuels/topograph/pkg/render/dot"
)

func newRenderCmd() *cobra.Command {
	var (
		format   string
		output   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "render [graph.json]",
		Short: "Render a published graph as a diagram",
		Long: `Render a published graph as a diagram.

The render command takes a published graph document (produced by 'build')
and renders it as a node-link diagram: DOT source, or SVG/PNG via the
embedded Graphviz. Minima are drawn at the bottom so the vertical axis
reads as the scalar value.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pkgerrors.ValidateFormat(format, dot.Formats); err != nil {
				return err
			}
			return runRender(args[0], format, output, detailed)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "dot", "output format: dot, svg, png")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include scalar values and sample counts in labels")

	return cmd
}

func runRender(path, format, output string, detailed bool) error {
	if err := pkgerrors.ValidatePath(path); err != nil {
		return err
	}
	g, err := graph.ReadGraphFile(path)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.ErrCodeInvalidGraph, err, "load graph %s", path)
	}
	src := dot.ToDOT(g, dot.Options{Detailed: detailed})
	data, err := dot.Render(src, format)
	if err != nil {
		return fmt.Errorf("render %s: %w", format, err)
	}
	if output == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(output, data, 0644)
}
