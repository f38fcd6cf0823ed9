package render

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette holds the fill colors of the wallpaper.
type Palette struct {
	Background color.Color
	Met        color.Color
	Missed     color.Color
	Future     color.Color
	Today      color.Color
	Stats      color.Color
}

// Typography holds the text sizing rules, relative to the canvas.
type Typography struct {
	TodayScale     float64 // day number size as a multiple of the cell radius
	TodayScaleWide float64 // same, once the number has three digits
	StatsScale     float64 // summary size as a fraction of the canvas width
	StatsY         float64 // summary vertical center as a fraction of the height
}

// Style bundles palette and typography. It is an immutable value passed to
// [Draw] and [Render].
type Style struct {
	Palette    Palette
	Typography Typography
}

// DefaultStyle returns the standard black wallpaper: white for met goals and
// text, red for missed days, dark grey for the rest of the year.
func DefaultStyle() Style {
	return Style{
		Palette: Palette{
			Background: MustParseColor("#000000"),
			Met:        MustParseColor("#ffffff"),
			Missed:     MustParseColor("#ef4444"),
			Future:     MustParseColor("#2a2a2c"),
			Today:      MustParseColor("#ffffff"),
			Stats:      MustParseColor("#ffffff"),
		},
		Typography: Typography{
			TodayScale:     1.9,
			TodayScaleWide: 1.7,
			StatsScale:     0.028,
			StatsY:         0.92,
		},
	}
}

// ParseColor parses a hex color of the form "#rrggbb".
func ParseColor(hex string) (color.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// MustParseColor is like ParseColor but panics on error.
func MustParseColor(hex string) color.RGBA {
	c, err := ParseColor(hex)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats c as "#rrggbb".
func Hex(c color.Color) string {
	cf, _ := colorful.MakeColor(c)
	return cf.Hex()
}

// todaySize is the day number's font size for a given day and cell radius.
func (t Typography) todaySize(day int, radius float64) float64 {
	if day >= 100 {
		return radius * t.TodayScaleWide
	}
	return radius * t.TodayScale
}
