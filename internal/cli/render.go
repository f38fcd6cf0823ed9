package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/matzehuels/stepwall/pkg/config"
	"github.com/matzehuels/stepwall/pkg/errors"
	"github.com/matzehuels/stepwall/pkg/pipeline"
)

const (
	defaultWidthPt  = 393 // iPhone 15 screen width in points
	defaultHeightPt = 852 // iPhone 15 screen height in points
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string  // output file; empty or "-" writes to stdout
	width    int     // screen width in points
	height   int     // screen height in points
	scale    float64 // device pixel ratio; 0 uses the configured default
	data     string  // comma-separated step counts
	dataFile string  // file holding the step counts; "-" reads stdin
	goal     int     // 0 uses the configured goal
	format   string  // empty uses the configured format, or the output extension
	noCache  bool
	refresh  bool
	force    bool // write binary data to a terminal
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{
		width:  defaultWidthPt,
		height: defaultHeightPt,
	}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a wallpaper to a file or stdout",
		Long: `Render a wallpaper from a list of daily step counts, one per day starting
January 1st. The last entry is today.

Sizes are in points and multiplied by --scale to get pixels, the same way the
HTTP service treats them.`,
		Example: `  stepwall render --data 8500,12000,9500 -o wallpaper.png
  stepwall render --data-file steps.txt --format pdf > wallpaper.pdf`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), cmd.InOrStdin(), cfg, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().IntVarP(&opts.width, "width", "W", opts.width, "screen width in points")
	cmd.Flags().IntVarP(&opts.height, "height", "H", opts.height, "screen height in points")
	cmd.Flags().Float64VarP(&opts.scale, "scale", "s", 0, "device pixel ratio (default from config)")
	cmd.Flags().StringVarP(&opts.data, "data", "d", "", "comma-separated daily step counts")
	cmd.Flags().StringVar(&opts.dataFile, "data-file", "", "file with daily step counts, - for stdin")
	cmd.Flags().IntVarP(&opts.goal, "goal", "g", 0, "daily step goal (default from config)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: png, pdf (default from config or output extension)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the image cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "render again even if cached")
	cmd.Flags().BoolVar(&opts.force, "force", false, "write binary output to a terminal")
	cmd.MarkFlagsMutuallyExclusive("data", "data-file")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, stdin io.Reader, cfg config.Config, opts renderOpts) error {
	logger := loggerFromContext(ctx)

	pipeOpts, err := renderOptions(stdin, cfg, opts)
	if err != nil {
		return err
	}

	toStdout := opts.output == "" || opts.output == "-"
	if toStdout && !opts.force && isTerminal(c.Out) {
		return fmt.Errorf("refusing to write %s data to a terminal; use -o FILE or --force", pipeOpts.Format)
	}

	runner, err := c.newRunner(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	start := time.Now()
	stopSpinner := func() {}
	if isTerminal(statusOut) {
		stopSpinner = startSpinner(ctx, statusOut, fmt.Sprintf("Rendering %dx%d %s", pipeOpts.Width, pipeOpts.Height, pipeOpts.Format))
	}
	res, err := runner.Execute(ctx, pipeOpts)
	stopSpinner()
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	logElapsed(logger, start, "Rendered %dx%d %s", pipeOpts.Width, pipeOpts.Height, res.Format)

	if toStdout {
		if _, err := c.Out.Write(res.Artifact); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	} else {
		if err := writeFile(opts.output, res.Artifact); err != nil {
			return err
		}
		printSuccess("Wallpaper written")
		printFile(opts.output)
	}
	printStats(res.Counts, res.Stats, res.CacheHit)
	return nil
}

// renderOptions resolves flags against the configuration. Width and height
// become pixels.
func renderOptions(stdin io.Reader, cfg config.Config, opts renderOpts) (pipeline.Options, error) {
	scale := opts.scale
	if scale == 0 {
		scale = cfg.Server.DefaultScale
	}
	if err := errors.ValidateScale(scale); err != nil {
		return pipeline.Options{}, err
	}

	goal := opts.goal
	if goal == 0 {
		goal = cfg.Goal
	}

	format := opts.format
	if format == "" {
		format = formatFromPath(opts.output, cfg.Format)
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		return pipeline.Options{}, err
	}

	record, err := readRecord(stdin, opts.data, opts.dataFile)
	if err != nil {
		return pipeline.Options{}, err
	}

	return pipeline.Options{
		Width:   pipeline.PixelSize(opts.width, scale),
		Height:  pipeline.PixelSize(opts.height, scale),
		Record:  record,
		Goal:    goal,
		Format:  format,
		Refresh: opts.refresh,
	}, nil
}

// readRecord returns the step counts given inline or read from a file.
// Files may separate values with commas or whitespace.
func readRecord(stdin io.Reader, data, file string) ([]int, error) {
	switch {
	case data != "":
		return pipeline.ParseDailyRecord(data), nil
	case file == "":
		return nil, fmt.Errorf("no step data: pass --data or --data-file")
	}

	var (
		raw []byte
		err error
	)
	if file == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(file)
	}
	if err != nil {
		return nil, fmt.Errorf("read step data: %w", err)
	}
	fields := strings.FieldsFunc(string(raw), func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	return pipeline.ParseDailyRecord(strings.Join(fields, ",")), nil
}

// formatFromPath picks the format matching path's extension, or fallback.
func formatFromPath(path, fallback string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if pipeline.ValidFormats[ext] {
		return ext
	}
	return fallback
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
