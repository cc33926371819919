package render

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/centraldogma/internal/catalog"
)

var progresses = []float64{0, 0.25, 0.5, 0.75, 1}

func TestRenderClearsFirstForEveryStage(t *testing.T) {
	parts := catalog.DefaultParts()[:1]
	rec := NewRecorder()
	for stage := 0; stage < catalog.StageCount; stage++ {
		for _, p := range progresses {
			rec.Ops = append(rec.Ops, Op{Name: "stale"})
			Render(rec, stage, p, parts)
			require.NotEmpty(t, rec.Ops, "stage %d progress %v", stage, p)
			require.Equal(t, "clear", rec.Ops[0].Name, "stage %d progress %v", stage, p)
			require.Zero(t, rec.Count("stale"))
			require.Equal(t, 1, rec.Count("clear"))
		}
	}
}

func TestRenderUnknownStageOnlyClears(t *testing.T) {
	for _, stage := range []int{-1, catalog.StageCount, 99} {
		rec := NewRecorder()
		Render(rec, stage, 0.5, nil)
		require.Len(t, rec.Ops, 1, "stage %d", stage)
		require.Equal(t, "clear", rec.Ops[0].Name)
	}
}

func TestRenderNilSurfaceIsNoop(t *testing.T) {
	require.NotPanics(t, func() { Render(nil, 3, 0.5, nil) })
}

func TestRenderClampsProgress(t *testing.T) {
	over, one := NewRecorder(), NewRecorder()
	Render(over, 2, 7, nil)
	Render(one, 2, 1, nil)
	require.Equal(t, one.Ops, over.Ops)
}

func maxX(ops []Op) float64 {
	m := -1.0
	for _, op := range ops {
		if op.Name == "move-to" || op.Name == "line-to" {
			if op.Args[0] > m {
				m = op.Args[0]
			}
		}
	}
	return m
}

func TestHelixSweepsWithProgress(t *testing.T) {
	rec := NewRecorder()
	Render(rec, 0, 0.5, nil)
	require.Equal(t, 2, rec.Count("stroke"))
	require.Less(t, maxX(rec.Ops), 200.0)
	require.GreaterOrEqual(t, maxX(rec.Ops), 196.0)

	Render(rec, 0, 0, nil)
	require.Zero(t, rec.Count("line-to"))
}

func TestUnwindingSeparation(t *testing.T) {
	rec := NewRecorder()
	Render(rec, 1, 0.5, nil)
	var ys []float64
	for _, op := range rec.Ops {
		if op.Name == "move-to" {
			ys = append(ys, op.Args[1])
		}
	}
	require.Equal(t, []float64{130, 170}, ys)
}

func TestLayeredStagesDrawPriorVisualsComplete(t *testing.T) {
	tests := []struct {
		stage   int
		strokes int
		circles int
		ellipse int
	}{
		{stage: 2, strokes: 2, ellipse: 1},
		{stage: 3, strokes: 3, ellipse: 1},
		{stage: 4, strokes: 3},
		{stage: 5, strokes: 1, circles: 2},
		{stage: 6, strokes: 1, circles: 8},
		{stage: 7, strokes: 2, circles: 2},
	}
	for _, tt := range tests {
		rec := NewRecorder()
		Render(rec, tt.stage, 0, nil)
		require.Equal(t, tt.strokes, rec.Count("stroke"), "stage %d strokes", tt.stage)
		require.Equal(t, tt.circles, rec.Count("fill-circle"), "stage %d circles", tt.stage)
		require.Equal(t, tt.ellipse, rec.Count("fill-ellipse"), "stage %d ellipses", tt.stage)
	}
}

func TestPolymeraseTranslates(t *testing.T) {
	at := func(stage int, p float64) float64 {
		rec := NewRecorder()
		Render(rec, stage, p, nil)
		for _, op := range rec.Ops {
			if op.Name == "fill-ellipse" {
				return op.Args[0]
			}
		}
		t.Fatalf("stage %d drew no polymerase", stage)
		return 0
	}
	require.InDelta(t, 50, at(2, 0), 1e-9)
	require.InDelta(t, 130, at(2, 1), 1e-9)
	require.InDelta(t, 290, at(3, 1), 1e-9)
}

func TestProteinStagesUseDesignatedColor(t *testing.T) {
	parts := []catalog.Part{
		{ID: "mrfp1", ColorHex: "#FF0000"},
		{ID: "egfp", ColorHex: "#00FF00"},
	}
	for _, stage := range []int{7, 8} {
		rec := NewRecorder()
		Render(rec, stage, 1, parts)
		var last string
		for _, op := range rec.Ops {
			if op.Name == "stroke-color" {
				last = op.Color
			}
		}
		require.Equal(t, "#FF0000", last, "stage %d", stage)

		Render(rec, stage, 1, nil)
		last = ""
		for _, op := range rec.Ops {
			if op.Name == "stroke-color" {
				last = op.Color
			}
		}
		require.Equal(t, catalog.DefaultColor, last, "stage %d default", stage)
	}
}

func TestFoldingSegmentsBoundedByProgress(t *testing.T) {
	rec := NewRecorder()
	Render(rec, 8, 0.25, nil)
	require.Equal(t, 1, rec.Count("move-to"))
	require.Equal(t, 2, rec.Count("line-to"))

	Render(rec, 8, 1, nil)
	require.Equal(t, 9, rec.Count("line-to"))
}

func TestFinalStageResetsGlow(t *testing.T) {
	rec := NewRecorder()
	Render(rec, 9, 0.5, catalog.DefaultParts())
	var shadow Op
	for _, op := range rec.Ops {
		if op.Name == "shadow" {
			shadow = op
		}
	}
	require.Equal(t, "#00FF00", shadow.Color)
	require.InDelta(t, 10, shadow.Args[0], 1e-9)
	require.Equal(t, "shadow-reset", rec.Ops[len(rec.Ops)-1].Name)
}

func alphaAt(img image.Image, x, y int) uint32 {
	_, _, _, a := img.At(x, y).RGBA()
	return a
}

func TestRasterClearLeavesNoResidue(t *testing.T) {
	r := NewRaster(1)
	Render(r, 9, 1, catalog.DefaultParts())
	require.NotZero(t, alphaAt(r.Image(), 280, 150))

	Render(r, 0, 0, nil)
	b := r.Image().Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if alphaAt(r.Image(), x, y) != 0 {
				t.Fatalf("residual pixel at (%d,%d)", x, y)
			}
		}
	}
}

func TestRasterFinalStageColorAndGlow(t *testing.T) {
	r := NewRaster(1)
	Render(r, 9, 1, catalog.DefaultParts())
	got := color.RGBAModel.Convert(r.Image().At(280, 150)).(color.RGBA)
	require.Equal(t, color.RGBA{R: 0, G: 0xff, B: 0, A: 0xff}, got)
	require.NotZero(t, alphaAt(r.Image(), 280+38, 150), "glow should extend past the disc")

	Render(r, 9, 0, catalog.DefaultParts())
	require.Zero(t, alphaAt(r.Image(), 280+38, 150), "no glow at zero progress")
}

func TestRasterIsIdempotent(t *testing.T) {
	r := NewRaster(2)
	require.Equal(t, image.Rect(0, 0, Width*2, Height*2), r.Image().Bounds())
	for stage := 0; stage < catalog.StageCount; stage++ {
		Render(r, stage, 0.6, catalog.DefaultParts())
		first := append([]byte(nil), r.Image().(*image.RGBA).Pix...)
		Render(r, stage, 0.6, catalog.DefaultParts())
		require.True(t, bytes.Equal(first, r.Image().(*image.RGBA).Pix), "stage %d", stage)
	}
}

func TestRasterEncodePNG(t *testing.T) {
	r := NewRaster(1)
	Render(r, 4, 0.5, nil)
	var buf bytes.Buffer
	require.NoError(t, r.EncodePNG(&buf))
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
}

func TestCellsDimensions(t *testing.T) {
	r := NewRaster(1)
	Render(r, 5, 1, nil)
	out := Cells(r.Image(), 40, 15, color.Black)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 15)
	require.Equal(t, 40*15, strings.Count(out, "▀"))
	require.Empty(t, Cells(nil, 10, 10, color.Black))
}

func TestRecorderTrace(t *testing.T) {
	rec := NewRecorder()
	Render(rec, 2, 0.5, nil)
	var buf bytes.Buffer
	_, err := rec.WriteTo(&buf)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(buf.String(), "clear\n"))
	require.Contains(t, buf.String(), "fill-ellipse 90.00 150.00 30.00 20.00")
}

func TestRecorderClearKeepsEarlierFrames(t *testing.T) {
	rec := NewRecorder()
	Render(rec, 2, 0.5, nil)
	first := rec.Ops
	kept := append([]Op(nil), first...)

	Render(rec, 0, 1, nil)
	require.Equal(t, kept, first)
	require.NotEqual(t, kept, rec.Ops)
}
