// Package sequencer advances the ten-stage animation timeline.
//
// A Sequencer is a single-owner state machine: the host calls Start, Pause,
// Resume and Reset in response to user input and calls Tick once per display
// frame. Progress within a stage is derived from wall-clock time, not from the
// number of ticks, so irregular frame intervals do not change the timeline.
package sequencer

import (
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jask/centraldogma/internal/catalog"
	"github.com/jask/centraldogma/internal/render"
)

// Phase is the sequencer's control state. Completion is not a resting phase:
// the sequencer notifies the observer and returns to Idle in the same tick.
type Phase int

const (
	Idle Phase = iota
	Running
	Paused
)

func (p Phase) String() string {
	switch p {
	case Running:
		return "running"
	case Paused:
		return "paused"
	default:
		return "idle"
	}
}

// State is the host-visible simulation state.
type State struct {
	IsActive          bool
	IsPaused          bool
	CurrentStageIndex int
	ProgressPercent   float64
}

// Frame describes what a single Tick did.
type Frame struct {
	Stage    int
	Fraction float64
	// Rendered is false when the tick was skipped (not running, no surface).
	Rendered       bool
	StageCompleted bool
	Completed      bool
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// RenderFunc draws one frame. render.Render is the default.
type RenderFunc func(s render.Surface, stage int, progress float64, parts []catalog.Part)

// Observer receives timeline notifications. Callbacks run synchronously
// inside Tick and may call back into the Sequencer.
type Observer interface {
	StageComplete(stage int)
	SimulationComplete(parts []catalog.Part)
}

// Hooks is an Observer built from optional funcs.
type Hooks struct {
	OnStageComplete      func(stage int)
	OnSimulationComplete func(parts []catalog.Part)
}

func (h Hooks) StageComplete(stage int) {
	if h.OnStageComplete != nil {
		h.OnStageComplete(stage)
	}
}

func (h Hooks) SimulationComplete(parts []catalog.Part) {
	if h.OnSimulationComplete != nil {
		h.OnSimulationComplete(parts)
	}
}

// Sequencer owns SimulationState and the stage clock.
type Sequencer struct {
	clock    Clock
	draw     RenderFunc
	observer Observer
	duration time.Duration
	log      *zap.Logger

	phase      Phase
	state      State
	parts      []catalog.Part
	stageStart time.Time
	runID      string
	// epoch changes on every Start and Reset so a callback that restarts or
	// resets the run is not followed by a stale advance.
	epoch uint64
}

// Option configures a Sequencer.
type Option func(*Sequencer)

func WithClock(c Clock) Option { return func(q *Sequencer) { q.clock = c } }

func WithRenderer(f RenderFunc) Option { return func(q *Sequencer) { q.draw = f } }

func WithObserver(o Observer) Option { return func(q *Sequencer) { q.observer = o } }

func WithLogger(l *zap.Logger) Option { return func(q *Sequencer) { q.log = l } }

// WithStageDuration overrides the per-stage duration. Non-positive values are
// ignored.
func WithStageDuration(d time.Duration) Option {
	return func(q *Sequencer) {
		if d > 0 {
			q.duration = d
		}
	}
}

// New returns an idle sequencer.
func New(opts ...Option) *Sequencer {
	q := &Sequencer{
		clock:    ClockFunc(time.Now),
		draw:     render.Render,
		observer: Hooks{},
		duration: catalog.DefaultStageDuration,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(q)
	}
	if q.observer == nil {
		q.observer = Hooks{}
	}
	if q.log == nil {
		q.log = zap.NewNop()
	}
	return q
}

func (q *Sequencer) State() State { return q.state }

func (q *Sequencer) Phase() Phase { return q.phase }

// RunID identifies the current or most recent run; empty before the first
// Start.
func (q *Sequencer) RunID() string { return q.runID }

// Parts returns the parts the current run was started with.
func (q *Sequencer) Parts() []catalog.Part { return q.parts }

func (q *Sequencer) StageDuration() time.Duration { return q.duration }

// Start begins a run at stage 0. It does nothing when parts is empty.
func (q *Sequencer) Start(parts []catalog.Part) {
	if len(parts) == 0 {
		return
	}
	q.parts = append([]catalog.Part(nil), parts...)
	q.phase = Running
	q.state = State{IsActive: true}
	q.stageStart = q.clock.Now()
	q.runID = uuid.NewString()
	q.epoch++
	q.log.Info("simulation started",
		zap.String("run", q.runID),
		zap.Int("parts", len(q.parts)),
		zap.String("designated", catalog.DesignatedColor(q.parts)))
}

// Pause freezes the timeline. Ticks while paused draw nothing.
func (q *Sequencer) Pause() {
	if q.phase != Running {
		return
	}
	q.phase = Paused
	q.state.IsPaused = true
	q.log.Debug("simulation paused", zap.String("run", q.runID), zap.Int("stage", q.state.CurrentStageIndex))
}

// Resume continues from the paused stage. The stage clock restarts at the
// moment of resuming; time elapsed in the stage before the pause is dropped.
func (q *Sequencer) Resume() {
	if q.phase != Paused {
		return
	}
	q.phase = Running
	q.state.IsPaused = false
	q.stageStart = q.clock.Now()
	q.log.Debug("simulation resumed", zap.String("run", q.runID), zap.Int("stage", q.state.CurrentStageIndex))
}

// Reset returns to the initial idle state from any phase.
func (q *Sequencer) Reset() {
	if q.phase != Idle {
		q.log.Info("simulation reset", zap.String("run", q.runID), zap.Int("stage", q.state.CurrentStageIndex))
	}
	q.phase = Idle
	q.state = State{}
	q.parts = nil
	q.epoch++
}

// Fraction reports intra-stage progress at the clock's current time without
// drawing or advancing. It is zero unless running.
func (q *Sequencer) Fraction() float64 {
	if q.phase != Running {
		return 0
	}
	return q.fraction(q.clock.Now())
}

func (q *Sequencer) fraction(now time.Time) float64 {
	f := float64(now.Sub(q.stageStart)) / float64(q.duration)
	return math.Max(0, math.Min(f, 1))
}

// Tick draws the current stage onto s and advances the timeline when the
// stage's duration has elapsed. A tick that is not running, or that has no
// surface to draw on, does nothing.
func (q *Sequencer) Tick(s render.Surface) Frame {
	stage := q.state.CurrentStageIndex
	if q.phase != Running || s == nil {
		return Frame{Stage: stage}
	}
	now := q.clock.Now()
	fraction := q.fraction(now)
	q.draw(s, stage, fraction, q.parts)

	frame := Frame{Stage: stage, Fraction: fraction, Rendered: true}
	if fraction < 1 {
		return frame
	}

	frame.StageCompleted = true
	epoch := q.epoch
	q.log.Debug("stage complete", zap.String("run", q.runID), zap.Int("stage", stage))
	q.observer.StageComplete(stage)
	if q.epoch != epoch || q.phase == Idle {
		// The observer reset or restarted the run.
		return frame
	}

	if stage >= catalog.StageCount-1 {
		q.complete()
		frame.Completed = true
		return frame
	}
	q.state.CurrentStageIndex = stage + 1
	q.state.ProgressPercent = float64((stage+1)*100) / catalog.StageCount
	q.stageStart = now
	return frame
}

// complete finishes the run. The state keeps a 100% progress value for
// display until the next Start or Reset.
func (q *Sequencer) complete() {
	parts := q.parts
	q.log.Info("simulation complete", zap.String("run", q.runID))
	q.phase = Idle
	q.state = State{ProgressPercent: 100}
	q.parts = nil
	q.epoch++
	q.observer.SimulationComplete(parts)
}
