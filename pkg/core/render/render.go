package render

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/matzehuels/stepwall/pkg/core/classify"
	"github.com/matzehuels/stepwall/pkg/core/grid"
)

// Frame is everything drawn on one wallpaper.
type Frame struct {
	Layout grid.Layout
	States []classify.State
	Record []int
	Goal   int
}

// Draw paints f onto s: background, one cell per day, then the summary line.
func Draw(s Surface, f Frame, style Style) error {
	w, h := s.Size()
	p := style.Palette

	s.FillRect(0, 0, w, h, p.Background)

	n := min(len(f.Layout.Positions), len(f.States))
	r := f.Layout.Radius
	for i := 0; i < n; i++ {
		pos := f.Layout.Positions[i]
		switch f.States[i] {
		case classify.Today:
			day := i + 1
			if err := s.SetFont(style.Typography.todaySize(day, r), true); err != nil {
				return fmt.Errorf("set day font: %w", err)
			}
			s.DrawText(strconv.Itoa(day), pos.X, pos.Y, 0.5, 0.5, p.Today)
		case classify.Met:
			s.FillCircle(pos.X, pos.Y, r, p.Met)
		case classify.Missed:
			s.FillCircle(pos.X, pos.Y, r, p.Missed)
		case classify.Future:
			s.FillCircle(pos.X, pos.Y, r, p.Future)
		}
	}

	summary := classify.ComputeStats(f.Record, f.Goal).Summary()
	if err := s.SetFont(w*style.Typography.StatsScale, false); err != nil {
		return fmt.Errorf("set summary font: %w", err)
	}
	tw := s.MeasureText(summary)
	s.DrawText(summary, (w-tw)/2, h*style.Typography.StatsY, 0, 0.5, p.Stats)
	return nil
}

// Render creates a width x height surface with newSurface, draws f on it and
// returns the encoded bytes.
func Render(newSurface SurfaceFactory, width, height int, f Frame, style Style) ([]byte, error) {
	s, err := newSurface(width, height)
	if err != nil {
		return nil, err
	}
	if err := Draw(s, f, style); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := s.Encode(&buf); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return buf.Bytes(), nil
}
