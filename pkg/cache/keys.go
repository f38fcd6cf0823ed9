package cache

import (
	"strconv"
	"strings"
)

// ImageKeyOpts is everything that determines a rendered image.
type ImageKeyOpts struct {
	Width  int
	Height int
	Format string
	Goal   int
	Record []int
	// Style identifies the palette, typography and grid in effect, so a
	// config change never serves stale images.
	Style string
}

// Keyer derives cache keys.
type Keyer interface {
	ImageKey(opts ImageKeyOpts) string
}

// DefaultKeyer produces keys of the form "image:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ImageKey hashes every field of opts.
func (DefaultKeyer) ImageKey(opts ImageKeyOpts) string {
	return hashKey("image",
		opts.Width,
		opts.Height,
		opts.Format,
		opts.Goal,
		joinRecord(opts.Record),
		opts.Style,
	)
}

func joinRecord(record []int) string {
	var b strings.Builder
	for i, v := range record {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(v))
	}
	return b.String()
}

var _ Keyer = DefaultKeyer{}
