package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Op is one recorded drawing call.
type Op struct {
	Name  string
	Args  []float64
	Color string
}

func (o Op) String() string {
	var b strings.Builder
	b.WriteString(o.Name)
	if o.Color != "" {
		b.WriteString(" ")
		b.WriteString(o.Color)
	}
	for _, a := range o.Args {
		b.WriteString(" ")
		b.WriteString(strconv.FormatFloat(a, 'f', 2, 64))
	}
	return b.String()
}

// Recorder is a Surface that records calls instead of drawing them.
type Recorder struct {
	W, H float64
	Ops  []Op
}

// NewRecorder returns a recorder with the logical drawing size.
func NewRecorder() *Recorder {
	return &Recorder{W: Width, H: Height}
}

func (r *Recorder) add(name, color string, args ...float64) {
	r.Ops = append(r.Ops, Op{Name: name, Color: color, Args: args})
}

func (r *Recorder) Size() (float64, float64) { return r.W, r.H }

// Clear records the clear and drops everything recorded before it, the way a
// cleared canvas forgets earlier pixels. Slices of Ops taken before the clear
// keep their contents.
func (r *Recorder) Clear() {
	r.Ops = nil
	r.add("clear", "")
}

func (r *Recorder) SetStrokeColor(hex string)        { r.add("stroke-color", hex) }
func (r *Recorder) SetFillColor(hex string)          { r.add("fill-color", hex) }
func (r *Recorder) SetLineWidth(w float64)           { r.add("line-width", "", w) }
func (r *Recorder) BeginPath()                       { r.add("begin-path", "") }
func (r *Recorder) MoveTo(x, y float64)              { r.add("move-to", "", x, y) }
func (r *Recorder) LineTo(x, y float64)              { r.add("line-to", "", x, y) }
func (r *Recorder) Stroke()                          { r.add("stroke", "") }
func (r *Recorder) FillEllipse(x, y, rx, ry float64) { r.add("fill-ellipse", "", x, y, rx, ry) }
func (r *Recorder) FillCircle(x, y, rad float64)     { r.add("fill-circle", "", x, y, rad) }
func (r *Recorder) SetShadow(hex string, blur float64) {
	r.add("shadow", hex, blur)
}
func (r *Recorder) ResetShadow() { r.add("shadow-reset", "") }

// Count returns how many recorded ops are named name.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, op := range r.Ops {
		if op.Name == name {
			n++
		}
	}
	return n
}

// WriteTo writes one op per line.
func (r *Recorder) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, op := range r.Ops {
		n, err := fmt.Fprintln(w, op.String())
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
