package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/jask/centraldogma/internal/catalog"
	"github.com/jask/centraldogma/internal/config"
	"github.com/jask/centraldogma/internal/frameloop"
	"github.com/jask/centraldogma/internal/sequencer"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func testConfig() config.Config {
	var cfg config.Config
	cfg.Animation.StageDuration = 3 * time.Second
	cfg.Animation.FrameRate = 60
	cfg.Canvas.Scale = 1
	return cfg
}

func newTestApp(t *testing.T, parts []catalog.Part) (*App, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	return New(testConfig(), parts, nil, sequencer.WithClock(clock)), clock
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	enterKey = tea.KeyMsg{Type: tea.KeyEnter}
	tabKey   = tea.KeyMsg{Type: tea.KeyTab}
	escKey   = tea.KeyMsg{Type: tea.KeyEsc}
	spaceKey = tea.KeyMsg{Type: tea.KeySpace}
)

func press(a *App, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, m := range msgs {
		_, cmd = a.Update(m)
	}
	return cmd
}

// tick delivers a frame for the live loop handle.
func tick(a *App) tea.Cmd {
	return press(a, frameloop.FrameMsg{Handle: a.loop.Handle(), Time: time.Now()})
}

func lastToast(t *testing.T, a *App) toast {
	t.Helper()
	require.NotEmpty(t, a.toasts)
	return a.toasts[len(a.toasts)-1]
}

func TestAddPartToWorkspace(t *testing.T) {
	a, _ := newTestApp(t, catalog.DefaultParts())

	require.NotNil(t, press(a, enterKey))
	require.Equal(t, 1, a.selection.Len())
	require.True(t, a.selection.Contains("egfp"))
	require.Equal(t, "CDS Added", lastToast(t, a).title)
	require.Contains(t, lastToast(t, a).body, "Enhanced Green Fluorescent Protein")

	press(a, enterKey)
	require.Equal(t, 1, a.selection.Len(), "duplicates are ignored")
	require.Equal(t, "Already Added", lastToast(t, a).title)
}

func TestWorkspaceHoldsAtMostFourParts(t *testing.T) {
	parts := catalog.DefaultParts()
	parts = append(parts,
		catalog.Part{ID: "luc", ShortName: "Luc", FullName: "Luciferase", ColorHex: "#FFD166"},
		catalog.Part{ID: "cfp", ShortName: "CFP", FullName: "Cyan Fluorescent Protein", ColorHex: "#00FFFF"},
	)
	a, _ := newTestApp(t, parts)
	for range parts {
		press(a, enterKey, runes("j"))
	}
	require.Equal(t, catalog.MaxSelected, a.selection.Len())
	require.False(t, a.selection.Contains("cfp"))
	require.Equal(t, "Plasmid Full", lastToast(t, a).title)
}

func TestRemoveAndClearWorkspace(t *testing.T) {
	a, _ := newTestApp(t, catalog.DefaultParts())
	press(a, enterKey, runes("j"), enterKey, runes("j"), enterKey)
	require.Equal(t, 3, a.selection.Len())

	press(a, tabKey, runes("j"), runes("x"))
	require.Equal(t, "CDS Removed", lastToast(t, a).title)
	ids := []string{}
	for _, p := range a.selection.Parts() {
		ids = append(ids, p.ID)
	}
	require.Equal(t, []string{"egfp", "mtagbfp2"}, ids)

	press(a, runes("X"))
	require.Zero(t, a.selection.Len())
	require.Equal(t, "All CDS Removed", lastToast(t, a).title)
	require.Nil(t, press(a, runes("X")), "clearing an empty plasmid is silent")
}

func TestSearchFiltersPartsBin(t *testing.T) {
	a, _ := newTestApp(t, catalog.DefaultParts())

	press(a, runes("/"))
	require.True(t, a.searching)
	press(a, runes("r"), runes("e"), runes("d"))
	require.Len(t, a.visible, 1)
	require.Equal(t, "mrfp1", a.visible[0].ID)

	press(a, enterKey)
	require.False(t, a.searching)
	press(a, enterKey)
	require.True(t, a.selection.Contains("mrfp1"))

	press(a, escKey)
	require.Len(t, a.visible, 3)
	require.Empty(t, a.search.Value())
}

func TestStartRequiresParts(t *testing.T) {
	a, _ := newTestApp(t, catalog.DefaultParts())
	require.Nil(t, press(a, runes("s")))
	require.Equal(t, sequencer.Idle, a.seq.Phase())
	require.False(t, a.loop.Active())
	require.Empty(t, a.toasts)
}

func TestStartRunsToCompletion(t *testing.T) {
	a, clock := newTestApp(t, catalog.DefaultParts())
	press(a, enterKey)

	require.NotNil(t, press(a, runes("s")))
	require.True(t, a.loop.Active())
	require.Equal(t, "Simulation Started", lastToast(t, a).title)
	require.Equal(t, sequencer.State{IsActive: true}, a.seq.State())

	require.Nil(t, press(a, runes("s")), "start is ignored while active")

	clock.advance(1500 * time.Millisecond)
	require.NotNil(t, tick(a), "running frames request the next frame")
	require.True(t, a.drawn)
	require.Equal(t, 0, a.seq.State().CurrentStageIndex)

	for stage := 0; stage < catalog.StageCount; stage++ {
		clock.advance(3 * time.Second)
		tick(a)
	}
	require.Equal(t, sequencer.State{ProgressPercent: 100}, a.seq.State())
	require.False(t, a.loop.Active(), "completion cancels the frame handle")
	done := lastToast(t, a)
	require.Equal(t, "Simulation Complete!", done.title)
	require.Equal(t, "Enhanced Green Fluorescent Protein successfully expressed!", done.body)
}

func TestPauseRejectsInFlightFrames(t *testing.T) {
	a, clock := newTestApp(t, catalog.DefaultParts())
	press(a, enterKey, runes("s"))
	stale := frameloop.FrameMsg{Handle: a.loop.Handle()}

	press(a, spaceKey)
	require.Equal(t, sequencer.Paused, a.seq.Phase())
	require.False(t, a.loop.Active())
	require.Equal(t, "Simulation Paused", lastToast(t, a).title)

	clock.advance(10 * time.Second)
	require.Nil(t, press(a, stale))
	require.Equal(t, 0, a.seq.State().CurrentStageIndex)

	press(a, spaceKey)
	require.Equal(t, sequencer.Running, a.seq.Phase())
	require.True(t, a.loop.Active())
	require.Equal(t, "Simulation Resumed", lastToast(t, a).title)
	require.Nil(t, press(a, stale), "frames from before the pause stay rejected")

	clock.advance(3 * time.Second)
	tick(a)
	require.Equal(t, 1, a.seq.State().CurrentStageIndex)
}

func TestResetCancelsRun(t *testing.T) {
	a, clock := newTestApp(t, catalog.DefaultParts())
	press(a, enterKey, runes("s"))
	clock.advance(4 * time.Second)
	tick(a)
	require.Equal(t, 1, a.seq.State().CurrentStageIndex)

	press(a, runes("r"))
	require.Equal(t, sequencer.State{}, a.seq.State())
	require.False(t, a.loop.Active())
	require.False(t, a.drawn)
	require.Equal(t, "Simulation Reset", lastToast(t, a).title)
	require.Equal(t, 1, a.selection.Len(), "reset keeps the plasmid")
}

func TestQuitCancelsFrameHandle(t *testing.T) {
	a, _ := newTestApp(t, catalog.DefaultParts())
	press(a, enterKey, runes("s"))
	cmd := press(a, runes("q"))
	require.NotNil(t, cmd)
	require.Equal(t, tea.QuitMsg{}, cmd())
	require.False(t, a.loop.Active())
	require.Equal(t, sequencer.Idle, a.seq.Phase())
}

func TestToastExpires(t *testing.T) {
	a, _ := newTestApp(t, catalog.DefaultParts())
	press(a, enterKey, runes("j"), enterKey, runes("j"), enterKey, runes("X"))
	require.Len(t, a.toasts, maxToasts)

	first := a.toasts[0].id
	press(a, toastExpiredMsg{id: first})
	require.Len(t, a.toasts, maxToasts-1)
	for _, tt := range a.toasts {
		require.NotEqual(t, first, tt.id)
	}
}

func TestViewShowsStageInformation(t *testing.T) {
	a, clock := newTestApp(t, catalog.DefaultParts())
	press(a, tea.WindowSizeMsg{Width: 120, Height: 60})

	idle := ansi.Strip(a.View())
	require.Contains(t, idle, "Parts Bin")
	require.Contains(t, idle, "Plasmid Workspace (0/4)")
	require.Contains(t, idle, "Empty plasmid")
	require.Contains(t, idle, "watch the Central Dogma")

	press(a, enterKey, runes("s"))
	clock.advance(3 * time.Second)
	tick(a)
	clock.advance(time.Second)
	tick(a)
	press(a, spaceKey)

	require.Contains(t, ansi.Strip(a.View()), "Simulation Paused", "toasts overlay the view")

	a.toasts = nil
	view := ansi.Strip(a.View())
	require.Contains(t, view, "Plasmid Workspace (1/4)")
	require.Contains(t, view, "Step 2/10: DNA Unwinding")
	require.Contains(t, view, "10%")
	require.Contains(t, view, "Simulation paused")
	require.Contains(t, view, "Target Proteins")
	require.Contains(t, view, "Enhanced Green Fluorescent Protein")
	require.True(t, strings.Contains(view, "▀"), "canvas is drawn")
}
