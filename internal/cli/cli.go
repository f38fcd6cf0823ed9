package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stepwall/pkg/buildinfo"
	"github.com/matzehuels/stepwall/pkg/cache"
	"github.com/matzehuels/stepwall/pkg/config"
	"github.com/matzehuels/stepwall/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "stepwall"

// Log levels accepted by New.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// ConfigPath is the TOML file read by commands that need settings.
	// Empty means the XDG default.
	ConfigPath string

	// Out receives rendered images and machine-readable output.
	Out io.Writer

	// verbose is bound to --verbose and switches the logger to debug.
	verbose bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:  newLogger(w, level),
		Out:     os.Stdout,
		verbose: level <= log.DebugLevel,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	c.verbose = level <= log.DebugLevel
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "Stepwall renders a year of daily step counts as a phone wallpaper",
		Long:          `Stepwall turns a list of daily step counts into a wallpaper: one circle per day of the year, white where the goal was met, red where it was missed, grey for the days still to come.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	flags := root.PersistentFlags()
	flags.StringVarP(&c.ConfigPath, "config", "c", "", "config file (default "+config.DefaultConfigPath()+")")
	flags.BoolVarP(&c.verbose, "verbose", "v", c.verbose, "log debug output")

	root.AddCommand(c.serveCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.healthCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config & Runner Factory
// =============================================================================

// loadConfig reads the configuration named by --config.
func (c *CLI) loadConfig() (config.Config, error) {
	path := c.ConfigPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	return config.Load(path)
}

// newRunner creates a pipeline runner for CLI use. With noCache the
// configured backend is ignored.
func (c *CLI) newRunner(ctx context.Context, cfg config.Config, noCache bool) (*pipeline.Runner, error) {
	store, err := newCache(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}
	runner := pipeline.NewRunner(cfg.Pipeline, store, cache.NewScopedKeyer(nil, cfg.Cache.Prefix), c.Logger)
	runner.TTL = cfg.Cache.TTL
	return runner, nil
}

func newCache(ctx context.Context, cfg config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	return cache.Open(ctx, cfg.CacheOptions())
}
