// Package export writes simulation frames to files: single PNG frames,
// drawing traces and animated GIFs of a whole run.
package export

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/jask/centraldogma/internal/catalog"
	"github.com/jask/centraldogma/internal/render"
	"github.com/jask/centraldogma/internal/sequencer"
)

// DefaultBackground is painted behind transparent canvas pixels in GIFs.
const DefaultBackground = "#FFFFFF"

// MaxFrameRate is the fastest rate GIF delays (hundredths of a second) can
// express. Faster rates are clamped to it.
const MaxFrameRate = 50

// ErrNoParts is returned when a run is requested without any coding sequence.
var ErrNoParts = errors.New("no parts selected")

// PNG draws one frame of stage at progress and encodes it as PNG.
func PNG(w io.Writer, stage int, progress float64, parts []catalog.Part, scale int) error {
	if _, ok := catalog.StageAt(stage); !ok {
		return fmt.Errorf("stage %d out of range 0..%d", stage, catalog.StageCount-1)
	}
	r := render.NewRaster(scale)
	render.Render(r, stage, progress, parts)
	return r.EncodePNG(w)
}

// Trace writes the drawing operations of one frame, one per line.
func Trace(w io.Writer, stage int, progress float64, parts []catalog.Part) error {
	rec := render.NewRecorder()
	render.Render(rec, stage, progress, parts)
	_, err := rec.WriteTo(w)
	return err
}

// GIFOptions configures an animated export.
type GIFOptions struct {
	StageDuration time.Duration
	FrameRate     int
	Scale         int
	Background    string
	Logger        *zap.Logger
}

// GIFStats summarises an export.
type GIFStats struct {
	RunID  string
	Frames int
	Stages int
}

// simClock is advanced by the exporter instead of by wall time.
type simClock struct{ now time.Time }

func (c *simClock) Now() time.Time { return c.now }

// GIF runs a full simulation over parts on a simulated clock, sampling one
// frame per frame interval, and encodes the frames as a looping GIF.
func GIF(ctx context.Context, w io.Writer, parts []catalog.Part, opts GIFOptions) (GIFStats, error) {
	if len(parts) == 0 {
		return GIFStats{}, ErrNoParts
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if opts.FrameRate <= 0 {
		opts.FrameRate = 20
	}
	opts.FrameRate = min(opts.FrameRate, MaxFrameRate)
	bgHex := opts.Background
	if bgHex == "" {
		bgHex = DefaultBackground
	}
	bg, err := catalog.ParseColor(bgHex)
	if err != nil {
		return GIFStats{}, fmt.Errorf("background: %w", err)
	}

	clock := &simClock{now: time.Unix(0, 0)}
	var stats GIFStats
	done := false
	seq := sequencer.New(
		sequencer.WithClock(clock),
		sequencer.WithStageDuration(opts.StageDuration),
		sequencer.WithLogger(log),
		sequencer.WithObserver(sequencer.Hooks{
			OnStageComplete:      func(int) { stats.Stages++ },
			OnSimulationComplete: func([]catalog.Part) { done = true },
		}),
	)

	raster := render.NewRaster(opts.Scale)
	pal := framePalette(bg, parts)
	step := time.Second / time.Duration(opts.FrameRate)
	delay := max(2, int(math.Round(100/float64(opts.FrameRate))))
	anim := gif.GIF{LoopCount: 0}

	seq.Start(parts)
	stats.RunID = seq.RunID()
	for !done {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		f := seq.Tick(raster)
		if f.Rendered {
			anim.Image = append(anim.Image, quantize(raster.Image(), bg, pal))
			anim.Delay = append(anim.Delay, delay)
		}
		clock.now = clock.now.Add(step)
	}
	stats.Frames = len(anim.Image)
	log.Info("gif encoded", zap.String("run", stats.RunID), zap.Int("frames", stats.Frames))
	if err := gif.EncodeAll(w, &anim); err != nil {
		return stats, fmt.Errorf("encode gif: %w", err)
	}
	return stats, nil
}

// framePalette puts the exact scene colours first so flat fills map without
// error; glow blends fall back to the nearest Plan 9 entry.
func framePalette(bg color.RGBA, parts []catalog.Part) color.Palette {
	pal := color.Palette{bg}
	seen := map[color.RGBA]bool{bg: true}
	add := func(hex string) {
		c, err := catalog.ParseColor(hex)
		if err != nil || seen[c] {
			return
		}
		seen[c] = true
		pal = append(pal, c)
	}
	for _, hex := range render.PaletteColors() {
		add(hex)
	}
	add(catalog.DesignatedColor(parts))
	for _, c := range palette.Plan9 {
		if len(pal) == 256 {
			break
		}
		rgba := color.RGBAModel.Convert(c).(color.RGBA)
		if !seen[rgba] {
			seen[rgba] = true
			pal = append(pal, rgba)
		}
	}
	return pal
}

func quantize(src image.Image, bg color.RGBA, pal color.Palette) *image.Paletted {
	b := src.Bounds()
	flat := image.NewRGBA(b)
	draw.Draw(flat, b, image.NewUniform(bg), image.Point{}, draw.Src)
	draw.Draw(flat, b, src, b.Min, draw.Over)
	dst := image.NewPaletted(b, pal)
	draw.Draw(dst, b, flat, b.Min, draw.Src)
	return dst
}
