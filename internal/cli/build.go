package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/topograph/pkg/cache"
	pkgerrors "github.com/matzehuels/topograph/pkg/errors"
	"github.com/matzehuels/topograph/pkg/graph"
	"github.com/matzehuels/topograph/pkg/mesh"
	"github.com/matzehuels/topograph/pkg/reeb"
)

// cacheTTL bounds how long published graphs are served from cache.
const cacheTTL = 24 * time.Hour

// buildOpts holds the command-line flags for the build command.
type buildOpts struct {
	field     string  // scalar field name ("" = sole field or config default)
	threshold float64 // simplification threshold (0 = none)
	output    string  // output file path (stdout if empty)
	noCache   bool    // bypass the published-graph cache
}

func newBuildCmd(cfg *Config) *cobra.Command {
	opts := buildOpts{}

	cmd := &cobra.Command{
		Use:   "build [mesh.json]",
		Short: "Compute the Reeb graph of a mesh scalar field",
		Long: `Compute the Reeb graph of a mesh scalar field.

The build command streams the triangles or tetrahedra of a mesh document
through the online Reeb graph algorithm, optionally simplifies the result
by persistence, and writes the published graph as JSON.

Results are cached locally by mesh content hash for faster subsequent
runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.field == "" {
				opts.field = cfg.Field
			}
			if !cmd.Flags().Changed("simplify") {
				opts.threshold = cfg.Threshold
			}
			if err := pkgerrors.ValidateThreshold(opts.threshold); err != nil {
				return err
			}
			return runBuild(cmd.Context(), args[0], opts, cfg)
		},
	}

	cmd.Flags().StringVarP(&opts.field, "field", "f", "", "scalar field name (default: the mesh's only field)")
	cmd.Flags().Float64VarP(&opts.threshold, "simplify", "s", 0, "simplification threshold in [0,1] (0 = none)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runBuild loads the mesh, streams it, simplifies and publishes.
func runBuild(ctx context.Context, path string, opts buildOpts, cfg *Config) error {
	logger := loggerFromContext(ctx)
	if err := pkgerrors.ValidatePath(path); err != nil {
		return err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.ErrCodeFileNotFound, err, "read mesh %s", path)
	}
	m, err := mesh.Read(bytes.NewReader(raw))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.ErrCodeInvalidMesh, err, "parse mesh %s", path)
	}
	field, err := resolveField(m, opts.field)
	if err != nil {
		return err
	}

	c := openCache(cfg, opts.noCache)
	defer c.Close()
	key := cache.GraphKey(cache.Hash(raw), field, opts.threshold)
	if data, hit, err := c.Get(ctx, key); err == nil && hit {
		logger.Debug("Cache hit", "key", key)
		return writeOutput(data, opts.output)
	}

	p := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Streaming %d cells...", m.CellCount()))
	spinner.Start()

	g := reeb.New()
	buildErr := reeb.BuildByName(g, m, field)
	spinner.Stop()
	if buildErr != nil {
		return pkgerrors.Wrap(pkgerrors.ErrCodeInvalidMesh, buildErr,
			"build failed (code %d)", reeb.WireCode(buildErr))
	}
	p.done(fmt.Sprintf("Streamed %d cells", m.CellCount()))

	if opts.threshold > 0 {
		removed, err := g.Simplify(opts.threshold, nil)
		if err != nil {
			return err
		}
		logger.Info("Simplified", "threshold", opts.threshold, "removed_arcs", removed)
	}

	doc, err := g.Document()
	if err != nil {
		return err
	}
	logger.Info("Published",
		"nodes", doc.NodeCount(), "edges", doc.EdgeCount(), "loops", g.LoopCount())

	data, err := graph.MarshalGraph(doc)
	if err != nil {
		return err
	}
	if err := c.Set(ctx, key, data, cacheTTL); err != nil {
		logger.Debug("Cache write failed", "err", err)
	}
	return writeOutput(data, opts.output)
}

// resolveField picks the scalar field: an explicit name, or the mesh's
// single field.
func resolveField(m *mesh.Mesh, name string) (string, error) {
	if name != "" {
		if _, ok := m.Field(name); !ok {
			return "", pkgerrors.New(pkgerrors.ErrCodeFieldNotFound, "mesh has no field %q", name)
		}
		return name, nil
	}
	names := m.FieldNames()
	switch len(names) {
	case 0:
		return "", pkgerrors.New(pkgerrors.ErrCodeFieldNotFound, "mesh carries no scalar fields")
	case 1:
		return names[0], nil
	default:
		return "", pkgerrors.New(pkgerrors.ErrCodeInvalidField,
			"mesh carries %d fields, pick one with --field", len(names))
	}
}

// openCache builds the configured cache backend; --no-cache yields the
// null cache.
func openCache(cfg *Config, noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	dir := cfg.CacheDir
	if dir == "" {
		dir = defaultCacheDir()
	}
	c, err := cache.NewFileCache(dir)
	if err != nil {
		return cache.NewNullCache()
	}
	return c
}

// writeOutput writes data to path, or stdout when path is empty.
func writeOutput(data []byte, path string) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0644)
}
