package render

import (
	"image/color"
	"io"
)

// Surface is a drawing target. Coordinates are in canvas units with the
// origin at the top-left corner.
//
// Implementations need not be safe for concurrent use; each render creates
// its own surface.
type Surface interface {
	// Size returns the canvas width and height.
	Size() (width, height float64)

	// FillRect fills an axis-aligned rectangle.
	FillRect(x, y, w, h float64, c color.Color)

	// FillCircle fills a circle centered on (x, y).
	FillCircle(x, y, r float64, c color.Color)

	// SetFont selects the face used by MeasureText and DrawText.
	SetFont(size float64, bold bool) error

	// MeasureText returns the advance width of s in the current font.
	MeasureText(s string) float64

	// DrawText draws s so that the anchor point (ax, ay) of its bounding box
	// lands on (x, y). (0, 0) is top-left, (0.5, 0.5) is the center.
	DrawText(s string, x, y, ax, ay float64, c color.Color)

	// Encode writes the finished surface in the sink's format.
	Encode(w io.Writer) error
}

// SurfaceFactory creates a surface of the given pixel size.
type SurfaceFactory func(width, height int) (Surface, error)
