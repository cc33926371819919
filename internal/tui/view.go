package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/centraldogma/internal/catalog"
	"github.com/jask/centraldogma/internal/render"
)

const introText = "Select a coding sequence and start the simulation to watch the Central Dogma in action - the fundamental process of gene expression from DNA to RNA to protein."

func (a *App) View() string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		a.renderHeader(),
		a.renderSetup(),
		a.renderSimulation(),
		a.renderFooter(),
	)
	if len(a.toasts) == 0 {
		return body
	}
	toasts := a.renderToasts()
	width := a.width
	if width == 0 {
		width = maxLineWidth(splitLines(body))
	}
	x := max(0, width-maxLineWidth(splitLines(toasts))-1)
	return overlayAt(body, toasts, x, 1, width)
}

func (a *App) renderHeader() string {
	line := headerAppStyle.Render("Central Dogma") + headerSubStyle.Render("  DNA → RNA → Protein")
	if a.width <= 0 {
		return headerBarStyle.Render(line)
	}
	return headerBarStyle.Width(a.width).Render(line)
}

func (a *App) panelWidth() int {
	if a.width <= 0 {
		return 38
	}
	return max(24, a.width/2-2)
}

// renderSetup draws the parts bin and the plasmid workspace side by side.
func (a *App) renderSetup() string {
	w := a.panelWidth()
	return lipgloss.JoinHorizontal(lipgloss.Top,
		a.panel("Parts Bin", a.renderBin(w-4), w, a.focus == paneBin),
		a.panel(fmt.Sprintf("Plasmid Workspace (%d/%d)", a.selection.Len(), catalog.MaxSelected), a.renderWorkspace(w-4), w, a.focus == paneWorkspace),
	)
}

func (a *App) panel(title, content string, width int, focused bool) string {
	style := panelStyle
	if focused {
		style = focusedPanelStyle
	}
	sep := lipgloss.NewStyle().Foreground(colorSurface2).Render(strings.Repeat("─", max(0, width-4)))
	return style.Width(width - 2).Render(titleStyle.Render(title) + "\n" + sep + "\n" + content)
}

func (a *App) renderBin(width int) string {
	var lines []string
	if a.searching || a.search.Value() != "" {
		lines = append(lines, a.search.View())
	}
	if len(a.visible) == 0 {
		lines = append(lines, mutedStyle.Render("No parts match"))
	}
	for i, p := range a.visible {
		prefix := "  "
		if a.focus == paneBin && i == a.binCursor {
			prefix = cursorStyle.Render("> ")
		}
		name := p.ShortName
		if a.selection.Contains(p.ID) {
			name = mutedStyle.Render(name + " ✓")
		}
		lines = append(lines, prefix+swatch(catalog.ColorOf(p))+" "+truncate(name+"  "+mutedStyle.Render(p.FullName), width-4))
	}
	return strings.Join(lines, "\n")
}

func (a *App) renderWorkspace(width int) string {
	parts := a.selection.Parts()
	if len(parts) == 0 {
		return mutedStyle.Render("Empty plasmid. Add a CDS from the parts bin.")
	}
	var lines []string
	for i, p := range parts {
		prefix := "  "
		if a.focus == paneWorkspace && i == a.slotCursor {
			prefix = cursorStyle.Render("> ")
		}
		label := fmt.Sprintf("%d. %s %s", i+1, swatch(catalog.ColorOf(p)), p.ShortName)
		lines = append(lines, prefix+truncate(label, width-2))
	}
	return strings.Join(lines, "\n")
}

// renderSimulation draws the controls, canvas and stage information.
func (a *App) renderSimulation() string {
	width := a.panelWidth() * 2
	state := a.seq.State()

	var b strings.Builder
	b.WriteString(a.renderCanvas())
	b.WriteString("\n")
	if state.IsActive {
		stage, _ := catalog.StageAt(state.CurrentStageIndex)
		b.WriteString(fmt.Sprintf("Progress %s %d%%\n", a.bar.ViewAs(state.ProgressPercent/100), int(math.Round(state.ProgressPercent))))
		b.WriteString(stepStyle.Render(fmt.Sprintf("Step %d/%d: %s", state.CurrentStageIndex+1, catalog.StageCount, stage.Title)))
		if state.IsPaused {
			b.WriteString("  " + pausedStyle.Render("Simulation paused"))
		}
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(width - 6).Render(stage.Description))
	} else {
		b.WriteString(lipgloss.NewStyle().Width(width - 6).Foreground(colorSubtext1).Render(introText))
	}
	if parts := a.targetProteins(); len(parts) > 0 {
		b.WriteString("\n\n" + titleStyle.Render("Target Proteins") + "\n")
		for _, p := range parts {
			b.WriteString(swatch(catalog.ColorOf(p)) + " " + textStyle.Render(p.FullName) + "\n")
			if p.Description != "" {
				b.WriteString("  " + mutedStyle.Render(truncate(p.Description, width-10)) + "\n")
			}
		}
	}
	return a.panel("Simulation", strings.TrimRight(b.String(), "\n"), width, false)
}

// targetProteins lists the running parts, or the current selection when idle.
func (a *App) targetProteins() []catalog.Part {
	if a.seq.State().IsActive {
		return a.seq.Parts()
	}
	return a.selection.Parts()
}

func (a *App) canvasSize() (int, int) {
	cols := canvasCols
	if a.width > 0 {
		cols = min(canvasCols, a.panelWidth()*2-6)
	}
	// Keep the 4:3 logical aspect with two pixel rows per cell.
	rows := cols * render.Height / render.Width / 2
	return cols, min(rows, canvasRows)
}

func (a *App) renderCanvas() string {
	cols, rows := a.canvasSize()
	if !a.drawn {
		blank := lipgloss.NewStyle().Background(canvasBackground).Width(cols).Height(rows).Render("")
		return blank
	}
	return render.Cells(a.canvas.Image(), cols, rows, hexColor(canvasBackground))
}

func (a *App) renderFooter() string {
	bg := colorMantle
	keyStyle := helpKeyStyle.Background(bg)
	descStyle := helpDescStyle.Background(bg)
	space := lipgloss.NewStyle().Background(bg).Render(" ")
	sep := lipgloss.NewStyle().Background(bg).Render("  ")

	bindings := a.keys.bindings(a.searching, a.seq.State().IsActive)
	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		if help.Key == "" && help.Desc == "" {
			continue
		}
		parts = append(parts, keyStyle.Render(help.Key)+space+descStyle.Render(help.Desc))
	}
	content := strings.Join(parts, sep)
	if a.width == 0 {
		return footerStyle.Render(content)
	}
	return footerStyle.Width(a.width).Render(truncate(content, a.width-4))
}

func (a *App) renderToasts() string {
	out := make([]string, 0, len(a.toasts))
	for _, t := range a.toasts {
		c := t.kind.color()
		title := lipgloss.NewStyle().Foreground(c).Bold(true).Render(t.title)
		out = append(out, toastStyle.BorderForeground(c).Render(title+"\n"+textStyle.Render(truncate(t.body, 40))))
	}
	return strings.Join(out, "\n")
}
