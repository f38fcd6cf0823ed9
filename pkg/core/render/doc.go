// Package render draws the yearly step wallpaper onto a drawing surface.
//
// # Overview
//
// Rendering is the last of three stages:
//
//  1. [grid.Compute] turns the canvas size into one position per day
//  2. [classify.Classify] turns the daily record into one [classify.State] per day
//  3. [Draw] paints both onto a [Surface]
//
// The surface is supplied by the caller through a [SurfaceFactory]; the
// [sink] subpackage provides PNG and PDF implementations. [Render] ties
// factory, drawing and encoding together and returns the encoded bytes.
//
// # Cells
//
// Each day is drawn according to its state:
//
//   - [classify.Met]: a filled circle in [Palette.Met]
//   - [classify.Missed]: a filled circle in [Palette.Missed]
//   - [classify.Future]: a filled circle in [Palette.Future]
//   - [classify.Today]: the 1-based day number in bold, centered on the cell
//
// # Summary
//
// A single line such as "362d left · 50% hit" is centered horizontally near
// the bottom of the canvas. The percentage covers completed days only; today
// is excluded until it is over.
//
// # Determinism
//
// Output depends only on the inputs: no timestamps or randomness are drawn or
// embedded, so identical inputs produce identical bytes.
package render
