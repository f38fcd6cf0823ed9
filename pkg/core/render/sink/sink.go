package sink

import (
	"fmt"
	"image/color"

	"github.com/matzehuels/stepwall/pkg/core/render"
	"github.com/matzehuels/stepwall/pkg/errors"
)

// MaxPixels bounds the area of a surface.
const MaxPixels = 50_000_000

// Output format names.
const (
	FormatPNG = "png"
	FormatPDF = "pdf"
)

// ContentTypes maps formats to their MIME type.
var ContentTypes = map[string]string{
	FormatPNG: "image/png",
	FormatPDF: "application/pdf",
}

// ForFormat returns the surface factory for a format name.
func ForFormat(format string) (render.SurfaceFactory, error) {
	switch format {
	case FormatPNG:
		return NewPNG, nil
	case FormatPDF:
		return NewPDF, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: png, pdf)", format)
}

// checkSize rejects sizes no surface can be allocated for.
func checkSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return errors.New(errors.ErrCodeSurfaceAllocation, "cannot allocate a %dx%d surface", width, height)
	}
	if int64(width)*int64(height) > MaxPixels {
		return errors.New(errors.ErrCodeSurfaceAllocation, "%dx%d surface exceeds %d pixels", width, height, MaxPixels)
	}
	return nil
}

// allocationError converts a recovered allocation panic into an error.
func allocationError(width, height int, r any) error {
	return errors.Wrap(errors.ErrCodeSurfaceAllocation, fmt.Errorf("%v", r), "allocate %dx%d surface", width, height)
}

// rgb8 returns the 8-bit color channels of c.
func rgb8(c color.Color) (r, g, b int) {
	r32, g32, b32, _ := c.RGBA()
	return int(r32 >> 8), int(g32 >> 8), int(b32 >> 8)
}
