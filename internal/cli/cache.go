package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newCacheCmd(cfg *Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the published-graph cache",
	}
	cmd.AddCommand(newCacheInfoCmd(cfg))
	cmd.AddCommand(newCacheCleanCmd(cfg))
	return cmd
}

func cacheDir(cfg *Config) string {
	if cfg.CacheDir != "" {
		return cfg.CacheDir
	}
	return defaultCacheDir()
}

func newCacheInfoCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show cache location and size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := cacheDir(cfg)
			var files int
			var size int64
			_ = filepath.Walk(dir, func(_ string, info os.FileInfo, err error) error {
				if err != nil || info.IsDir() {
					return nil
				}
				files++
				size += info.Size()
				return nil
			})
			fmt.Println(StyleTitle.Render("Cache"))
			printKV("location", dir)
			printKV("entries", files)
			printKV("size", fmt.Sprintf("%.1f KiB", float64(size)/1024))
			return nil
		},
	}
}

func newCacheCleanCmd(cfg *Config) *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove all cached published graphs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			dir := cacheDir(cfg)
			if err := os.RemoveAll(dir); err != nil {
				return err
			}
			logger.Info("Cache cleaned", "dir", dir)
			fmt.Printf("%s %s\n", styleIconSuccess.Render(iconSuccess), StyleSuccess.Render("cache cleaned"))
			return nil
		},
	}
}
