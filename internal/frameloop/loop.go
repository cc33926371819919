// Package frameloop schedules per-frame callbacks for hosts of the sequencer.
//
// Loop is the handle a bubbletea host keeps: each frame message carries the
// handle's generation, and a cancelled or restarted handle rejects frames
// that were already in flight. Ticker is the goroutine-driven equivalent for
// hosts without an event loop.
package frameloop

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultFrameRate is used when a non-positive rate is configured.
const DefaultFrameRate = 60

// FrameMsg is delivered once per scheduled frame.
type FrameMsg struct {
	Handle uint64
	Time   time.Time
}

// Interval converts a frame rate into a frame interval.
func Interval(frameRate int) time.Duration {
	if frameRate <= 0 {
		frameRate = DefaultFrameRate
	}
	return time.Second / time.Duration(frameRate)
}

// Loop is a cancellable frame request handle. It is not safe for concurrent
// use; bubbletea calls Update from a single goroutine.
type Loop struct {
	interval time.Duration
	gen      uint64
	active   bool
}

func New(frameRate int) *Loop {
	return &Loop{interval: Interval(frameRate)}
}

// Start activates the handle, invalidating frames from any earlier start, and
// requests the first frame.
func (l *Loop) Start() tea.Cmd {
	l.gen++
	l.active = true
	return l.request()
}

// Accept reports whether msg belongs to the live handle.
func (l *Loop) Accept(msg FrameMsg) bool {
	return l.active && msg.Handle == l.gen
}

// Next requests the following frame, or returns nil once cancelled.
func (l *Loop) Next() tea.Cmd {
	if !l.active {
		return nil
	}
	return l.request()
}

// Cancel deregisters the handle. Frames already in flight are rejected by
// Accept and no further frame is requested.
func (l *Loop) Cancel() {
	l.active = false
	l.gen++
}

func (l *Loop) Active() bool { return l.active }

// Handle returns the generation carried by frames of the live handle.
func (l *Loop) Handle() uint64 { return l.gen }

func (l *Loop) Interval() time.Duration { return l.interval }

func (l *Loop) request() tea.Cmd {
	gen := l.gen
	return tea.Tick(l.interval, func(t time.Time) tea.Msg {
		return FrameMsg{Handle: gen, Time: t}
	})
}
