package render

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Cells down-samples img into cols×rows terminal cells. Each cell shows two
// vertically stacked pixels through an upper half block, with transparent
// pixels blended over bg.
func Cells(img image.Image, cols, rows int, bg color.Color) string {
	if img == nil || cols <= 0 || rows <= 0 {
		return ""
	}
	b := img.Bounds()
	pixRows := rows * 2
	var out strings.Builder
	for row := 0; row < rows; row++ {
		if row > 0 {
			out.WriteByte('\n')
		}
		for col := 0; col < cols; col++ {
			x0 := b.Min.X + col*b.Dx()/cols
			x1 := b.Min.X + (col+1)*b.Dx()/cols
			top := average(img, x0, x1, b.Min.Y+(2*row)*b.Dy()/pixRows, b.Min.Y+(2*row+1)*b.Dy()/pixRows, bg)
			bot := average(img, x0, x1, b.Min.Y+(2*row+1)*b.Dy()/pixRows, b.Min.Y+(2*row+2)*b.Dy()/pixRows, bg)
			out.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(hex(top))).
				Background(lipgloss.Color(hex(bot))).
				Render("▀"))
		}
	}
	return out.String()
}

// average blends the box [x0,x1)×[y0,y1) over bg and returns its mean.
func average(img image.Image, x0, x1, y0, y1 int, bg color.Color) color.RGBA {
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	br, bgG, bb, _ := bg.RGBA()
	var sr, sg, sb, n uint64
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			// RGBA() is alpha-premultiplied, so blending over bg is c + bg*(1-a).
			r, g, b, a := img.At(x, y).RGBA()
			inv := 0xffff - a
			sr += uint64(r) + uint64(br)*uint64(inv)/0xffff
			sg += uint64(g) + uint64(bgG)*uint64(inv)/0xffff
			sb += uint64(b) + uint64(bb)*uint64(inv)/0xffff
			n++
		}
	}
	return color.RGBA{
		R: uint8(sr / n >> 8),
		G: uint8(sg / n >> 8),
		B: uint8(sb / n >> 8),
		A: 0xff,
	}
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}
