package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stepwall/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the rendered image cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand. It clears the
// backend selected in the config file.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached wallpapers",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cfg.Cache.Backend == cache.BackendNone {
				printInfo("Caching is disabled")
				return nil
			}

			store, err := cache.Open(cmd.Context(), cfg.CacheOptions())
			if err != nil {
				return err
			}
			defer store.Close()

			clearer, ok := store.(cache.Clearer)
			if !ok {
				return fmt.Errorf("%s cache cannot be cleared", cfg.Cache.Backend)
			}
			n, err := clearer.Clear(cmd.Context())
			if err != nil {
				return fmt.Errorf("clear %s cache: %w", cfg.Cache.Backend, err)
			}

			printSuccess("Cleared %d cached entries", n)
			printDetail("Backend: %s", cacheLocation(cfg.Cache.Backend, cfg.CacheOptions()))
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where cached wallpapers are stored",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cacheLocation(cfg.Cache.Backend, cfg.CacheOptions()))
			return nil
		},
	}
}

// cacheLocation describes where a backend keeps its entries.
func cacheLocation(backend string, opts cache.Options) string {
	switch backend {
	case cache.BackendFile:
		return opts.Dir
	case cache.BackendRedis:
		return "redis://" + opts.RedisAddr + "/" + opts.Prefix + "*"
	case cache.BackendMongo:
		return opts.MongoDatabase + "." + opts.MongoCollection
	}
	return "none"
}
