// Package grid computes the cell positions of the yearly step wallpaper.
//
// # Overview
//
// The wallpaper shows one cell per day of the year. This package maps those
// days onto a canvas of arbitrary size and returns a [Layout] holding one
// [Position] per day (in day order) plus a single circle radius shared by
// every cell.
//
// # Margins
//
// Phone lock screens cover the top and bottom of the wallpaper with the clock,
// widgets and the home indicator, so the grid is confined to the area left
// after reserving asymmetric margins ([Margins]): 32% of the height at the
// top, 18% at the bottom and 10% of the width on either side by default.
//
// # Taper
//
// The logical grid is [Config.Columns] wide and [Config.Rows] tall. The last
// [Config.TaperRows] rows lose progressively more columns (up to
// [Config.MaxTaper]) and are re-centered, so the block narrows symmetrically
// towards the bottom. The default 15x25 grid with a 3-row taper yields rows of
// 15, ..., 15, 13, 11, 9.
//
// Emission is count-based: exactly [Config.Cells] positions are produced.
// When the scheduled rows hold fewer cells than that (the default schedule
// holds 363), emission continues on overflow rows that keep tapering and are
// centered on the cells they actually hold.
//
// # Usage
//
//	l := grid.Compute(grid.DefaultConfig(), 1179, 2556)
//	for day, p := range l.Positions {
//	    // draw day at p.X, p.Y with radius l.Radius
//	}
package grid
