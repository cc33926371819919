package tui

import (
	"image/color"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/centraldogma/internal/catalog"
)

// ---------------------------------------------------------------------------
// Catppuccin Mocha palette
// https://catppuccin.com/palette
// ---------------------------------------------------------------------------

const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext1 lipgloss.Color = "#bac2de"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorSurface2 lipgloss.Color = "#585b70"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface0 lipgloss.Color = "#313244"
	colorBase     lipgloss.Color = "#1e1e2e"
	colorMantle   lipgloss.Color = "#181825"
)

const (
	colorAccent  = colorPink
	colorBrand   = colorTeal
	colorFocus   = colorLavender
	colorSuccess = colorGreen
	colorError   = colorRed
	colorWarning = colorYellow
	colorInfo    = colorTeal
)

// canvasBackground is the terminal colour behind transparent canvas pixels.
const canvasBackground = colorBase

var (
	titleStyle = lipgloss.NewStyle().Foreground(colorBrand).Bold(true)

	headerBarStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Background(colorMantle).
			Padding(0, 2)

	headerAppStyle = lipgloss.NewStyle().
			Foreground(colorBrand).
			Bold(true)

	headerSubStyle = lipgloss.NewStyle().
			Foreground(colorSubtext0).
			Background(colorMantle)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface1).
			Padding(0, 1)

	focusedPanelStyle = panelStyle.BorderForeground(colorFocus)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorSubtext0).
			Background(colorMantle).
			Padding(0, 2)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(colorSubtext0)

	cursorStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorOverlay1)
	textStyle   = lipgloss.NewStyle().Foreground(colorText)
	stepStyle   = lipgloss.NewStyle().Foreground(colorPeach).Bold(true)
	pausedStyle = lipgloss.NewStyle().Foreground(colorWarning).Italic(true)

	toastStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Background(colorSurface0)
)

type toastKind int

const (
	toastInfo toastKind = iota
	toastSuccess
	toastError
)

func (k toastKind) color() lipgloss.Color {
	switch k {
	case toastSuccess:
		return colorSuccess
	case toastError:
		return colorError
	default:
		return colorInfo
	}
}

// swatch renders a small block in the part's colour.
func swatch(hex string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("●")
}

func hexColor(c lipgloss.Color) color.Color {
	rgba, err := catalog.ParseColor(string(c))
	if err != nil {
		return color.Black
	}
	return rgba
}
