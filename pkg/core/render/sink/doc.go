// Package sink provides the drawing surfaces the wallpaper is rendered onto.
//
// # Overview
//
// A sink implements [render.Surface] for one output format:
//
//   - PNG: an anti-aliased raster drawn with fogleman/gg, text set in the
//     embedded Go fonts ([NewPNG])
//   - PDF: a single vector page in points, text set in the core Helvetica
//     fonts ([NewPDF])
//
// Both constructors have the [render.SurfaceFactory] signature:
//
//	data, err := render.Render(sink.NewPNG, 1179, 2556, frame, style)
//
// [ForFormat] selects a factory by name.
//
// # Limits
//
// Surfaces larger than [MaxPixels] are refused with an
// errors.ErrCodeSurfaceAllocation error rather than attempting the
// allocation, and allocation panics are reported with the same code.
//
// # Determinism
//
// PNG encoding is a pure function of the pixels. The PDF sink pins the
// document creation date and sorts the catalog so repeated renders of the
// same input are byte-identical.
package sink
