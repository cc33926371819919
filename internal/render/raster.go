package render

import (
	"image"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"

	"github.com/jask/centraldogma/internal/catalog"
)

// maxGlowRings caps how many halo rings approximate a shadow blur.
const maxGlowRings = 24

// Raster is a Surface backed by an RGBA image. The logical 400×300 surface
// is rasterized at an integer scale.
type Raster struct {
	dc     *gg.Context
	scale  float64
	stroke color.Color
	fill   color.Color
	lineW  float64

	shadow     color.RGBA
	shadowBlur float64
}

// NewRaster allocates a surface of Width*scale × Height*scale pixels.
func NewRaster(scale int) *Raster {
	if scale < 1 {
		scale = 1
	}
	dc := gg.NewContext(Width*scale, Height*scale)
	dc.Scale(float64(scale), float64(scale))
	def := mustColor(catalog.DefaultColor)
	return &Raster{dc: dc, scale: float64(scale), stroke: def, fill: def, lineW: 1}
}

func mustColor(hex string) color.RGBA {
	c, err := catalog.ParseColor(hex)
	if err != nil {
		c, _ = catalog.ParseColor(catalog.DefaultColor)
	}
	return c
}

func (r *Raster) Size() (float64, float64) { return Width, Height }

// Clear resets every pixel to transparent.
func (r *Raster) Clear() {
	r.dc.ClearPath()
	r.dc.SetColor(color.Transparent)
	r.dc.Clear()
}

func (r *Raster) SetStrokeColor(hex string) { r.stroke = mustColor(hex) }
func (r *Raster) SetFillColor(hex string)   { r.fill = mustColor(hex) }

// SetLineWidth takes a logical width; gg strokes in device pixels.
func (r *Raster) SetLineWidth(w float64) { r.lineW = w }

func (r *Raster) BeginPath()          { r.dc.ClearPath() }
func (r *Raster) MoveTo(x, y float64) { r.dc.MoveTo(x, y) }
func (r *Raster) LineTo(x, y float64) { r.dc.LineTo(x, y) }

func (r *Raster) Stroke() {
	r.dc.SetColor(r.stroke)
	r.dc.SetLineWidth(r.lineW * r.scale)
	r.dc.Stroke()
}

func (r *Raster) FillEllipse(x, y, rx, ry float64) {
	r.dc.ClearPath()
	r.glow(func(grow float64) { r.dc.DrawEllipse(x, y, rx+grow, ry+grow) })
	r.dc.SetColor(r.fill)
	r.dc.DrawEllipse(x, y, rx, ry)
	r.dc.Fill()
}

func (r *Raster) FillCircle(x, y, rad float64) {
	r.FillEllipse(x, y, rad, rad)
}

func (r *Raster) SetShadow(hex string, blur float64) {
	r.shadow = mustColor(hex)
	r.shadowBlur = math.Max(blur, 0)
}

func (r *Raster) ResetShadow() { r.shadowBlur = 0 }

// glow stacks translucent rings out to the blur radius; overlapping rings
// build a falloff that is densest at the shape's edge.
func (r *Raster) glow(shape func(grow float64)) {
	if r.shadowBlur <= 0 {
		return
	}
	rings := int(math.Min(math.Ceil(r.shadowBlur/2), maxGlowRings))
	alpha := uint8(math.Max(0xff/float64(rings+2), 8))
	for i := rings; i >= 1; i-- {
		r.dc.SetColor(color.NRGBA{R: r.shadow.R, G: r.shadow.G, B: r.shadow.B, A: alpha})
		shape(r.shadowBlur * float64(i) / float64(rings))
		r.dc.Fill()
	}
}

// Image returns the backing image. It is overwritten by later draws.
func (r *Raster) Image() image.Image { return r.dc.Image() }

// EncodePNG writes the current frame as PNG.
func (r *Raster) EncodePNG(w io.Writer) error { return r.dc.EncodePNG(w) }
