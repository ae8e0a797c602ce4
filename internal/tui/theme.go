package tui

import "github.com/charmbracelet/lipgloss"

// ---------------------------------------------------------------------------
// Catppuccin Mocha palette — true-color hex values
// https://catppuccin.com/palette
// ---------------------------------------------------------------------------

const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorMauve    lipgloss.Color = "#cba6f7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface0 lipgloss.Color = "#313244"
)

// ---------------------------------------------------------------------------
// Semantic color aliases
// ---------------------------------------------------------------------------

const (
	colorAccent  = colorPink
	colorFocus   = colorLavender
	colorSuccess = colorGreen
	colorError   = colorRed
	colorWarning = colorYellow
	colorInfo    = colorTeal
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	modeStyle      = lipgloss.NewStyle().Foreground(colorMauve).Bold(true)
	lineNumStyle   = lipgloss.NewStyle().Foreground(colorOverlay0)
	gutterStyle    = lipgloss.NewStyle().Foreground(colorSurface1)
	resultStyle    = lipgloss.NewStyle().Foreground(colorSuccess)
	errResultStyle = lipgloss.NewStyle().Foreground(colorError)
	statusBarStyle = lipgloss.NewStyle().Foreground(colorText).Background(colorSurface0).Padding(0, 1)
	statusErrStyle = lipgloss.NewStyle().Foreground(colorError).Background(colorSurface0).Padding(0, 1)
	footerStyle    = lipgloss.NewStyle().Foreground(colorSubtext0).Padding(0, 1)
	promptStyle    = lipgloss.NewStyle().Foreground(colorPeach)
	dirtyStyle     = lipgloss.NewStyle().Foreground(colorWarning)
	pickerHdrStyle = lipgloss.NewStyle().Bold(true).Foreground(colorInfo)
)
