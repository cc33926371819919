package render

import (
	"math"

	"github.com/jask/centraldogma/internal/catalog"
)

// Stage palette.
const (
	colorDNA        = "#006D77"
	colorEnzyme     = "#83C5BE"
	colorMessenger  = "#E6FFB0"
	colorRibosome   = "#FFDDD2"
	colorAminoAcid  = "#006D77"
	baseLineWidth   = 3
	strandLineWidth = 4
	chainLineWidth  = 6
)

// PaletteColors lists the fixed colours the stage routines draw with. Protein
// visuals additionally use the designated part colour.
func PaletteColors() []string {
	return []string{colorDNA, colorEnzyme, colorMessenger, colorRibosome}
}

type stageFunc func(s Surface, w, h, progress float64, tint string)

var stageFuncs = [catalog.StageCount]stageFunc{
	0: func(s Surface, w, h, p float64, _ string) {
		drawHelix(s, w, h, p)
	},
	1: func(s Surface, w, h, p float64, _ string) {
		drawUnwinding(s, w, h, p)
	},
	2: func(s Surface, w, h, p float64, _ string) {
		drawUnwinding(s, w, h, 1)
		drawPolymerase(s, w, h, p)
	},
	3: func(s Surface, w, h, p float64, _ string) {
		drawUnwinding(s, w, h, 1)
		drawTranscription(s, w, h, p)
	},
	4: func(s Surface, w, h, p float64, _ string) {
		drawHelix(s, w, h, 1)
		drawMessenger(s, w, h, p)
	},
	5: func(s Surface, w, h, p float64, _ string) {
		drawMessenger(s, w, h, 1)
		drawRibosome(s, w, h, p)
	},
	6: func(s Surface, w, h, p float64, _ string) {
		drawMessenger(s, w, h, 1)
		drawRibosome(s, w, h, 1)
		drawCarriers(s, w, h, p)
	},
	7: func(s Surface, w, h, p float64, tint string) {
		drawMessenger(s, w, h, 1)
		drawRibosome(s, w, h, 1)
		drawChain(s, w, h, p, tint)
	},
	8: func(s Surface, w, h, p float64, tint string) {
		drawFolding(s, w, h, p, tint)
	},
	9: func(s Surface, w, h, p float64, tint string) {
		drawFinished(s, w, h, p, tint)
	},
}

// Render clears s and draws the given stage at progress (clamped to [0,1]),
// tinting protein visuals with the first selected part's colour. A nil
// surface or an unknown stage draws nothing.
func Render(s Surface, stage int, progress float64, parts []catalog.Part) {
	if s == nil {
		return
	}
	s.Clear()
	if stage < 0 || stage >= len(stageFuncs) {
		return
	}
	w, h := s.Size()
	s.ResetShadow()
	s.SetLineWidth(baseLineWidth)
	stageFuncs[stage](s, w, h, clamp01(progress), catalog.DesignatedColor(parts))
}

func clamp01(p float64) float64 {
	if math.IsNaN(p) || p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// drawHelix sweeps two phase-shifted sine strands from x=0 to w*progress.
func drawHelix(s Surface, w, h, progress float64) {
	const (
		amplitude = 20
		frequency = 0.02
	)
	cy := h / 2
	maxX := w * progress
	s.SetStrokeColor(colorDNA)
	s.SetLineWidth(baseLineWidth)
	for _, phase := range []float64{0, math.Pi} {
		s.BeginPath()
		for x := 0.0; x < maxX; x += 2 {
			y := cy + amplitude*math.Sin(frequency*x+phase)
			if x == 0 {
				s.MoveTo(x, y)
			} else {
				s.LineTo(x, y)
			}
		}
		s.Stroke()
	}
}

func drawUnwinding(s Surface, w, h, progress float64) {
	cy := h / 2
	sep := 40 * progress
	s.SetStrokeColor(colorDNA)
	s.SetLineWidth(baseLineWidth)
	for _, y := range []float64{cy - sep, cy + sep} {
		s.BeginPath()
		s.MoveTo(0, y)
		s.LineTo(w, y)
		s.Stroke()
	}
}

func drawPolymerase(s Surface, w, h, progress float64) {
	s.SetFillColor(colorEnzyme)
	s.FillEllipse(50+w*0.2*progress, h/2, 30, 20)
}

// drawTranscription moves the polymerase further along and trails the
// nascent strand behind it.
func drawTranscription(s Surface, w, h, progress float64) {
	cy := h / 2
	px := 50 + w*0.6*progress
	s.SetFillColor(colorEnzyme)
	s.FillEllipse(px, cy, 30, 20)

	s.SetStrokeColor(colorMessenger)
	s.SetLineWidth(strandLineWidth)
	s.BeginPath()
	s.MoveTo(50, cy)
	s.LineTo(px, cy-30)
	s.Stroke()
}

func drawMessenger(s Surface, w, h, progress float64) {
	y := h/2 - 30
	s.SetStrokeColor(colorMessenger)
	s.SetLineWidth(strandLineWidth)
	s.BeginPath()
	s.MoveTo(50, y)
	s.LineTo(w*0.8*progress, y)
	s.Stroke()
}

func drawRibosome(s Surface, w, h, progress float64) {
	x := w*0.3 + w*0.2*progress
	y := h/2 - 30
	s.SetFillColor(colorRibosome)
	s.FillCircle(x, y-15, 25)
	s.FillCircle(x, y+15, 20)
}

// drawCarriers brings three tRNA markers in from the right of the ribosome.
func drawCarriers(s Surface, w, h, progress float64) {
	rx := w * 0.5
	ry := h/2 - 30
	for i := 0; i < 3; i++ {
		x := rx + 100 - 100*progress + float64(i)*30
		y := ry + float64(i)*20
		if x <= rx-50 {
			continue
		}
		s.SetFillColor(colorEnzyme)
		s.FillCircle(x, y, 8)
		s.SetFillColor(colorAminoAcid)
		s.FillCircle(x-12, y-12, 4)
	}
}

func drawChain(s Surface, w, h, progress float64, tint string) {
	rx := w * 0.5
	ry := h/2 - 30
	length := 80 * progress
	s.SetStrokeColor(tint)
	s.SetLineWidth(chainLineWidth)
	s.BeginPath()
	s.MoveTo(rx+30, ry)
	s.LineTo(rx+30+length, ry+40)
	s.Stroke()
}

// drawFolding winds the chain into an inward spiral, one segment per tenth
// of progress.
func drawFolding(s Surface, w, h, progress float64, tint string) {
	cx, cy := w*0.7, h/2
	s.SetStrokeColor(tint)
	s.SetLineWidth(chainLineWidth)
	s.BeginPath()
	for i := 0; float64(i) < progress*10; i++ {
		angle := float64(i) / 10 * math.Pi * 4
		radius := 30 - float64(i)*2
		x := cx + radius*math.Cos(angle)
		y := cy + radius*math.Sin(angle)
		if i == 0 {
			s.MoveTo(x, y)
		} else {
			s.LineTo(x, y)
		}
	}
	s.Stroke()
}

func drawFinished(s Surface, w, h, progress float64, tint string) {
	s.SetFillColor(tint)
	s.SetShadow(tint, 20*progress)
	s.FillCircle(w*0.7, h/2, 30)
	s.ResetShadow()
}
