package grid

import "fmt"

// DaysInYear is the number of cells on the wallpaper.
const DaysInYear = 365

// Margins are the fractions of the canvas reserved around the grid.
// Top and Bottom are fractions of the height, Side of the width (per side).
type Margins struct {
	Top    float64
	Bottom float64
	Side   float64
}

// Config holds the grid geometry. It is a plain value; callers pass it
// explicitly so alternate geometries can be tested without global state.
type Config struct {
	Columns     int     // columns in a full row
	Rows        int     // rows in the logical grid
	TaperRows   int     // trailing rows that lose columns
	MaxTaper    int     // columns removed from the last tapered row
	Cells       int     // positions to emit
	RadiusRatio float64 // circle radius as a fraction of the smaller cell side
	Margins     Margins
}

// DefaultConfig returns the wallpaper's standard 15x25 tapered grid.
func DefaultConfig() Config {
	return Config{
		Columns:     15,
		Rows:        25,
		TaperRows:   3,
		MaxTaper:    6,
		Cells:       DaysInYear,
		RadiusRatio: 0.42,
		Margins: Margins{
			Top:    0.32,
			Bottom: 0.18,
			Side:   0.10,
		},
	}
}

// Validate reports whether c describes a usable grid.
func (c Config) Validate() error {
	switch {
	case c.Columns <= 0:
		return fmt.Errorf("columns must be positive, got %d", c.Columns)
	case c.Rows <= 0:
		return fmt.Errorf("rows must be positive, got %d", c.Rows)
	case c.TaperRows < 0 || c.TaperRows > c.Rows:
		return fmt.Errorf("taper rows must be between 0 and %d, got %d", c.Rows, c.TaperRows)
	case c.MaxTaper < 0 || c.MaxTaper >= c.Columns:
		return fmt.Errorf("max taper must be between 0 and %d, got %d", c.Columns-1, c.MaxTaper)
	case c.Cells <= 0:
		return fmt.Errorf("cells must be positive, got %d", c.Cells)
	case c.RadiusRatio <= 0 || c.RadiusRatio > 0.5:
		return fmt.Errorf("radius ratio must be in (0, 0.5], got %g", c.RadiusRatio)
	}
	m := c.Margins
	if m.Top < 0 || m.Bottom < 0 || m.Side < 0 {
		return fmt.Errorf("margins must not be negative")
	}
	if m.Top+m.Bottom >= 1 {
		return fmt.Errorf("top and bottom margins leave no room (%g + %g)", m.Top, m.Bottom)
	}
	if 2*m.Side >= 1 {
		return fmt.Errorf("side margins leave no room (2 x %g)", m.Side)
	}
	return nil
}

// taperStart is the index of the first tapered row.
func (c Config) taperStart() int {
	return c.Rows - c.TaperRows
}

// columnsInRow applies the taper formula to row r. Integer arithmetic keeps
// floor((r-start+1)/TaperRows * MaxTaper) exact.
func (c Config) columnsInRow(r int) int {
	if c.TaperRows <= 0 || r < c.taperStart() {
		return c.Columns
	}
	reduction := (r - c.taperStart() + 1) * c.MaxTaper / c.TaperRows
	return max(c.Columns-reduction, 1)
}
