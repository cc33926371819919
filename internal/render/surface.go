// Package render draws the ten animation stages onto a 2D drawing surface.
//
// Render is a pure function of (stage, progress, parts): it clears the
// surface, then draws the stage's visual. The Surface interface mirrors the
// subset of a canvas 2D context the stages need, so the same routines drive
// the raster backend used by the terminal UI and exporters as well as the
// recording backend used by tests and traces.
package render

// Logical drawing size. Backends may rasterize at a multiple of it.
const (
	Width  = 400
	Height = 300
)

// Surface is a stateful 2D drawing context. Colours are "#RRGGBB" strings;
// backends treat malformed colours as the default tint.
type Surface interface {
	// Size reports the logical drawing size.
	Size() (w, h float64)
	// Clear erases the whole surface.
	Clear()

	SetStrokeColor(hex string)
	SetFillColor(hex string)
	SetLineWidth(w float64)

	// BeginPath discards the current path.
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	// Stroke outlines the current path with the stroke colour and width.
	Stroke()

	// FillEllipse and FillCircle fill a closed shape with the fill colour,
	// applying the current shadow.
	FillEllipse(x, y, rx, ry float64)
	FillCircle(x, y, r float64)

	// SetShadow configures a glow drawn behind subsequent fills.
	SetShadow(hex string, blur float64)
	// ResetShadow disables the glow.
	ResetShadow()
}
