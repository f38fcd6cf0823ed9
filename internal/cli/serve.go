package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/stepwall/pkg/api"
	"github.com/matzehuels/stepwall/pkg/cache"
	"github.com/matzehuels/stepwall/pkg/config"
	"github.com/matzehuels/stepwall/pkg/observability"
)

// serveCommand creates the serve command, which runs the HTTP service until
// interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the wallpaper HTTP service",
		Long: `Run the wallpaper HTTP service.

Endpoints:
  GET /wallpaper?width=&height=&data=[&goal=&scale=&format=]
  GET /health
  GET /          usage, or a wallpaper when width, height and data are given

The listen address comes from --addr, then the PORT environment variable,
then the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
				if err := cfg.Validate(); err != nil {
					return err
				}
			}

			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			if c.verbose {
				observability.Register(observability.NewLogHooks(logger))
				defer observability.Reset()
			}

			runner, err := c.newRunner(ctx, cfg, false)
			if err != nil {
				return err
			}
			defer runner.Close()

			logger.Info("starting", "service", appName, "cache", cfg.Cache.Backend, "goal", cfg.Goal)
			if cfg.Cache.Backend != cache.BackendNone {
				logger.Debug("cache", "location", cacheLocation(cfg.Cache.Backend, cfg.CacheOptions()), "ttl", cfg.Cache.TTL)
			}
			return api.New(cfg, runner, logger).ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (default "+config.Default().Server.Addr+")")
	return cmd
}
