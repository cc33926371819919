package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/centraldogma/internal/catalog"
	"github.com/jask/centraldogma/internal/config"
	"github.com/jask/centraldogma/internal/frameloop"
	"github.com/jask/centraldogma/internal/render"
	"github.com/jask/centraldogma/internal/sequencer"
)

const (
	toastTTL   = 3 * time.Second
	maxToasts  = 3
	canvasCols = 64
	canvasRows = 24
)

// App is the bubbletea model hosting the parts bin, the plasmid workspace and
// the simulation panel.
type App struct {
	log  *zap.Logger
	keys keyMap

	parts     []catalog.Part // registry, display order
	visible   []catalog.Part // parts bin after search filtering
	selection catalog.Selection

	seq    *sequencer.Sequencer
	loop   *frameloop.Loop
	canvas *render.Raster
	drawn  bool // canvas holds a frame worth showing

	focus      pane
	binCursor  int
	slotCursor int
	search     textinput.Model
	searching  bool
	bar        progress.Model

	toasts  []toast
	toastID int
	pending []tea.Cmd

	width  int
	height int
}

type pane int

const (
	paneBin pane = iota
	paneWorkspace
)

type toast struct {
	id    int
	kind  toastKind
	title string
	body  string
}

type toastExpiredMsg struct{ id int }

// New builds the app over the registry parts. Extra sequencer options are
// applied after the configured ones; tests use them to inject a clock.
func New(cfg config.Config, parts []catalog.Part, log *zap.Logger, opts ...sequencer.Option) *App {
	if log == nil {
		log = zap.NewNop()
	}
	a := &App{
		log:    log,
		keys:   defaultKeys(),
		parts:  parts,
		loop:   frameloop.New(cfg.Animation.FrameRate),
		canvas: render.NewRaster(cfg.Canvas.Scale),
	}
	a.visible = parts

	seqOpts := []sequencer.Option{
		sequencer.WithStageDuration(cfg.Animation.StageDuration),
		sequencer.WithLogger(log.Named("sequencer")),
		sequencer.WithObserver(sequencer.Hooks{
			OnSimulationComplete: a.simulationComplete,
		}),
	}
	a.seq = sequencer.New(append(seqOpts, opts...)...)

	a.search = textinput.New()
	a.search.Prompt = "/ "
	a.search.Placeholder = "search parts"
	a.search.CharLimit = 40

	a.bar = progress.New(progress.WithSolidFill(string(colorBrand)), progress.WithoutPercentage())
	a.bar.Width = canvasCols - 8
	return a
}

func (a *App) Init() tea.Cmd { return nil }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.bar.Width = max(10, min(canvasCols, a.width-8)-8)
		return a, nil
	case tea.KeyMsg:
		if a.searching {
			return a.handleSearchKey(m)
		}
		return a.handleKey(m)
	case frameloop.FrameMsg:
		return a, a.frame(m)
	case toastExpiredMsg:
		for i, t := range a.toasts {
			if t.id == m.id {
				a.toasts = append(a.toasts[:i:i], a.toasts[i+1:]...)
				break
			}
		}
		return a, nil
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Quit):
		a.loop.Cancel()
		a.seq.Reset()
		return a, tea.Quit
	case key.Matches(m, a.keys.Up):
		a.moveCursor(-1)
	case key.Matches(m, a.keys.Down):
		a.moveCursor(1)
	case key.Matches(m, a.keys.Focus):
		if a.focus == paneBin {
			a.focus = paneWorkspace
		} else {
			a.focus = paneBin
		}
	case key.Matches(m, a.keys.Add):
		if a.focus == paneBin {
			return a, a.addSelected()
		}
	case key.Matches(m, a.keys.Remove):
		return a, a.removeSelected()
	case key.Matches(m, a.keys.Clear):
		return a, a.clearSelection()
	case key.Matches(m, a.keys.Search):
		a.searching = true
		a.focus = paneBin
		return a, a.search.Focus()
	case key.Matches(m, a.keys.Cancel):
		a.applyFilter("")
	case key.Matches(m, a.keys.Start):
		return a, a.start()
	case key.Matches(m, a.keys.Pause):
		return a, a.togglePause()
	case key.Matches(m, a.keys.Reset):
		return a, a.reset()
	}
	return a, nil
}

func (a *App) handleSearchKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyEnter:
		a.searching = false
		a.search.Blur()
		return a, nil
	case tea.KeyEsc:
		a.searching = false
		a.search.Blur()
		a.applyFilter("")
		return a, nil
	}
	var cmd tea.Cmd
	a.search, cmd = a.search.Update(m)
	a.applyFilter(a.search.Value())
	return a, cmd
}

func (a *App) applyFilter(query string) {
	if query == "" {
		a.search.SetValue("")
		a.visible = a.parts
	} else {
		a.visible = catalog.Filter(a.parts, query)
	}
	if a.binCursor >= len(a.visible) {
		a.binCursor = max(0, len(a.visible)-1)
	}
}

func (a *App) moveCursor(delta int) {
	if a.focus == paneWorkspace {
		a.slotCursor = clampIndex(a.slotCursor+delta, a.selection.Len())
		return
	}
	a.binCursor = clampIndex(a.binCursor+delta, len(a.visible))
}

func clampIndex(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// ---------------------------------------------------------------------------
// Plasmid workspace
// ---------------------------------------------------------------------------

func (a *App) addSelected() tea.Cmd {
	if len(a.visible) == 0 {
		return nil
	}
	p := a.visible[a.binCursor]
	if err := a.selection.Add(p); err != nil {
		switch {
		case errors.Is(err, catalog.ErrSelectionFull):
			return a.notify(toastError, "Plasmid Full", fmt.Sprintf("At most %d coding sequences fit", catalog.MaxSelected))
		case errors.Is(err, catalog.ErrDuplicatePart):
			return a.notify(toastError, "Already Added", p.FullName+" is already in the plasmid")
		}
		return a.notify(toastError, "Error", err.Error())
	}
	a.log.Debug("part added", zap.String("part", p.ID), zap.Int("slots", a.selection.Len()))
	return a.notify(toastSuccess, "CDS Added", p.FullName+" added to plasmid workspace")
}

func (a *App) removeSelected() tea.Cmd {
	if a.selection.Len() == 0 {
		return nil
	}
	i := a.slotCursor
	if a.focus != paneWorkspace {
		i = a.selection.Len() - 1
	}
	p, err := a.selection.RemoveAt(i)
	if err != nil {
		return a.notify(toastError, "Error", err.Error())
	}
	a.slotCursor = clampIndex(a.slotCursor, a.selection.Len())
	return a.notify(toastInfo, "CDS Removed", p.FullName+" removed from plasmid")
}

func (a *App) clearSelection() tea.Cmd {
	if a.selection.Len() == 0 {
		return nil
	}
	a.selection.Clear()
	a.slotCursor = 0
	return a.notify(toastInfo, "All CDS Removed", "Plasmid is now empty")
}

// ---------------------------------------------------------------------------
// Simulation control
// ---------------------------------------------------------------------------

func (a *App) start() tea.Cmd {
	if a.selection.Len() == 0 || a.seq.State().IsActive {
		return nil
	}
	a.seq.Start(a.selection.Parts())
	return tea.Batch(
		a.loop.Start(),
		a.notify(toastSuccess, "Simulation Started", "Watch the Central Dogma unfold!"),
	)
}

func (a *App) togglePause() tea.Cmd {
	switch a.seq.Phase() {
	case sequencer.Running:
		a.seq.Pause()
		a.loop.Cancel()
		return a.notify(toastInfo, "Simulation Paused", "Press space to continue")
	case sequencer.Paused:
		a.seq.Resume()
		return tea.Batch(
			a.loop.Start(),
			a.notify(toastInfo, "Simulation Resumed", "Continuing animation"),
		)
	}
	return nil
}

func (a *App) reset() tea.Cmd {
	a.loop.Cancel()
	a.seq.Reset()
	a.canvas.Clear()
	a.drawn = false
	return a.notify(toastInfo, "Simulation Reset", "Ready to start again")
}

func (a *App) frame(m frameloop.FrameMsg) tea.Cmd {
	if !a.loop.Accept(m) {
		return nil
	}
	f := a.seq.Tick(a.canvas)
	if f.Rendered {
		a.drawn = true
	}
	cmds := a.pending
	a.pending = nil
	if a.seq.Phase() == sequencer.Running {
		cmds = append(cmds, a.loop.Next())
	} else {
		a.loop.Cancel()
	}
	return tea.Batch(cmds...)
}

func (a *App) simulationComplete(parts []catalog.Part) {
	a.loop.Cancel()
	a.pending = append(a.pending, a.notify(toastSuccess, "Simulation Complete!", catalog.ExpressedMessage(parts)))
}

// notify queues a toast and schedules its expiry.
func (a *App) notify(kind toastKind, title, body string) tea.Cmd {
	a.toastID++
	id := a.toastID
	a.toasts = append(a.toasts, toast{id: id, kind: kind, title: title, body: body})
	if len(a.toasts) > maxToasts {
		a.toasts = a.toasts[len(a.toasts)-maxToasts:]
	}
	a.log.Debug("toast", zap.String("title", title))
	return tea.Tick(toastTTL, func(time.Time) tea.Msg { return toastExpiredMsg{id: id} })
}
