// Package pipeline turns a daily step record into a rendered wallpaper.
//
// It ties the pure core together (grid layout, day classification and
// drawing) and adds what every entry point needs: input validation and
// defaults, output format selection, caching and logging. The CLI and the
// HTTP API both go through this package, so they behave identically.
//
// # Architecture
//
// One generation has two stages:
//
//  1. Layout: compute the 365 cell positions for the canvas and classify
//     each day against the goal
//  2. Render: draw onto a PNG or PDF surface and encode it
//
// # Usage
//
// The simplest entry point renders a PNG with the default look:
//
//	png, err := pipeline.GenerateImage(1179, 2556, []int{8500, 12000, 9500}, 10000)
//
// A Runner adds caching and logging:
//
//	runner := pipeline.NewRunner(pipeline.DefaultConfig(), c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Width:  1179,
//	    Height: 2556,
//	    Record: record,
//	    Format: "pdf",
//	})
package pipeline

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stepwall/pkg/cache"
	"github.com/matzehuels/stepwall/pkg/core/classify"
	"github.com/matzehuels/stepwall/pkg/core/grid"
	"github.com/matzehuels/stepwall/pkg/core/render"
	"github.com/matzehuels/stepwall/pkg/core/render/sink"
	"github.com/matzehuels/stepwall/pkg/errors"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultGoal is the daily step goal.
	DefaultGoal = 10000

	// DefaultScale converts points to pixels on modern phones.
	DefaultScale = 3.0

	// DefaultMaxDimension bounds width and height in pixels.
	DefaultMaxDimension = 5000

	// DefaultFormat is the output format.
	DefaultFormat = sink.FormatPNG
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	sink.FormatPNG: true,
	sink.FormatPDF: true,
}

// =============================================================================
// Config - the look of the wallpaper
// =============================================================================

// Config holds everything that stays fixed between requests.
type Config struct {
	Grid         grid.Config
	Style        render.Style
	MaxDimension int
}

// DefaultConfig returns the standard wallpaper configuration.
func DefaultConfig() Config {
	return Config{
		Grid:         grid.DefaultConfig(),
		Style:        render.DefaultStyle(),
		MaxDimension: DefaultMaxDimension,
	}
}

// Validate reports whether the configuration can render anything.
func (c Config) Validate() error {
	if err := c.Grid.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "grid")
	}
	if c.MaxDimension <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "max dimension must be positive, got %d", c.MaxDimension)
	}
	t := c.Style.Typography
	if t.TodayScale <= 0 || t.TodayScaleWide <= 0 || t.StatsScale <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "typography scales must be positive")
	}
	if t.StatsY < 0 || t.StatsY > 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "stats_y must be within [0, 1], got %v", t.StatsY)
	}
	return nil
}

// Fingerprint identifies the rendered look. Two configs with the same
// fingerprint produce identical images for identical input.
func (c Config) Fingerprint() string {
	p := c.Style.Palette
	return cache.Hash([]byte(fmt.Sprintf("%+v|%+v|%s %s %s %s %s %s",
		c.Grid,
		c.Style.Typography,
		render.Hex(p.Background), render.Hex(p.Met), render.Hex(p.Missed),
		render.Hex(p.Future), render.Hex(p.Today), render.Hex(p.Stats),
	)))
}

// =============================================================================
// Options - one generation request
// =============================================================================

// Options describes one wallpaper. Width and Height are in pixels.
type Options struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Record []int  `json:"data"`
	Goal   int    `json:"goal,omitempty"`
	Format string `json:"format,omitempty"`

	// Refresh skips the cache lookup; the result is still stored.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// ValidateAndSetDefaults checks the request against cfg and fills in the
// goal and format. It is idempotent.
func (o *Options) ValidateAndSetDefaults(cfg Config) error {
	if o.validated {
		return nil
	}
	if o.Goal == 0 {
		o.Goal = DefaultGoal
	}
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	if err := errors.ValidateDimensions(o.Width, o.Height, cfg.MaxDimension); err != nil {
		return err
	}
	if err := errors.ValidateGoal(o.Goal); err != nil {
		return err
	}
	if err := errors.ValidateRecord(o.Record, grid.DaysInYear); err != nil {
		return err
	}
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// KeyOpts returns the cache key options for o under cfg.
func (o *Options) KeyOpts(cfg Config) cache.ImageKeyOpts {
	return cache.ImageKeyOpts{
		Width:  o.Width,
		Height: o.Height,
		Format: o.Format,
		Goal:   o.Goal,
		Record: o.Record,
		Style:  cfg.Fingerprint(),
	}
}

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: png, pdf)", format)
	}
	return nil
}

// maxPixelSize bounds PixelSize so that any out-of-range product still
// compares as too large rather than wrapping around.
const maxPixelSize = math.MaxInt32

// PixelSize converts a length in points to pixels at the given scale. The
// result is clamped to ±maxPixelSize.
func PixelSize(points int, scale float64) int {
	px := math.Round(float64(points) * scale)
	switch {
	case math.IsNaN(px):
		return 0
	case px > maxPixelSize:
		return maxPixelSize
	case px < -maxPixelSize:
		return -maxPixelSize
	}
	return int(px)
}

// =============================================================================
// Result
// =============================================================================

// Result is the output of one generation.
type Result struct {
	Artifact    []byte
	Format      string
	ContentType string

	Stats  classify.Stats
	Counts classify.Counts

	Timing   Timing
	CacheHit bool
}

// Timing records how long each stage took. Both are zero on a cache hit.
type Timing struct {
	LayoutTime time.Duration
	RenderTime time.Duration
}
