package grid

// Position is the center of one day's cell in canvas pixels.
type Position struct {
	X, Y float64
}

// Layout is the result of [Compute].
type Layout struct {
	// Positions holds one entry per day; index 0 is January 1st.
	Positions []Position

	// Radius is shared by every cell. It is never negative.
	Radius float64

	// CellWidth and CellHeight are the logical cell size.
	CellWidth  float64
	CellHeight float64
}

// RowSpec describes one emitted row of the grid.
type RowSpec struct {
	Index   int     // row number, 0 at the top
	Columns int     // cells emitted in this row
	Offset  float64 // distance from the side margin to the first cell, in cells
}

// Rows returns the row schedule for cfg: which rows are emitted, how many
// cells each holds and how far each is indented. The returned rows hold
// exactly cfg.Cells cells in total.
//
// Scheduled rows keep the indentation given by the taper formula even when the
// cell cap truncates them. Overflow rows (index >= cfg.Rows) continue the
// taper and are centered on the cells they hold.
func Rows(cfg Config) []RowSpec {
	if cfg.Columns <= 0 || cfg.Cells <= 0 {
		return nil
	}

	var rows []RowSpec
	remaining := cfg.Cells
	for r := 0; remaining > 0; r++ {
		cols := cfg.columnsInRow(r)
		if r >= cfg.Rows {
			cols = min(cols, remaining)
		}
		n := min(cols, remaining)
		rows = append(rows, RowSpec{
			Index:   r,
			Columns: n,
			Offset:  float64(cfg.Columns-cols) / 2,
		})
		remaining -= n
	}
	return rows
}

// Compute lays out cfg.Cells positions on a width x height canvas.
//
// Compute has no error path: any size yields a layout, and sizes close to
// zero yield a degenerate one (tiny radius, positions near the origin).
func Compute(cfg Config, width, height float64) Layout {
	m := cfg.Margins
	top := height * m.Top
	bottom := height * m.Bottom
	side := width * m.Side

	availW := width - 2*side
	availH := height - top - bottom

	var cellW, cellH float64
	if cfg.Columns > 0 {
		cellW = availW / float64(cfg.Columns)
	}
	if cfg.Rows > 0 {
		cellH = availH / float64(cfg.Rows)
	}

	l := Layout{
		Positions:  make([]Position, 0, max(cfg.Cells, 0)),
		Radius:     max(cfg.RadiusRatio*min(cellW, cellH), 0),
		CellWidth:  cellW,
		CellHeight: cellH,
	}

	for _, row := range Rows(cfg) {
		y := top + (float64(row.Index)+0.5)*cellH
		startX := side + row.Offset*cellW
		for col := 0; col < row.Columns; col++ {
			l.Positions = append(l.Positions, Position{
				X: startX + (float64(col)+0.5)*cellW,
				Y: y,
			})
		}
	}
	return l
}
