package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/topograph/pkg/buildinfo"
)

// Execute runs the topograph CLI and returns an error if any command
// fails. This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands (build,
// info, render, serve, cache), configures logging based on the --verbose
// flag, loads the optional TOML config, and executes the command tree.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands
// via loggerFromContext.
func Execute(ctx context.Context) error {
	var (
		verbose    bool
		configPath string
	)
	cfg := Config{}

	root := &cobra.Command{
		Use:          appName,
		Short:        "topograph computes and simplifies Reeb graphs of scalar fields",
		Long:         `topograph streams simplicial meshes with piecewise-linear scalar fields, computes their Reeb graphs online, simplifies them by topological persistence, and publishes the result as graph documents or diagrams.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
			loaded, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			cfg = loaded
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/topograph/config.toml)")

	root.AddCommand(newBuildCmd(&cfg))
	root.AddCommand(newInfoCmd())
	root.AddCommand(newRenderCmd())
	root.AddCommand(newServeCmd(&cfg))
	root.AddCommand(newCacheCmd(&cfg))

	return root.ExecuteContext(ctx)
}
