package ui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Color palette shared by the logger and the log viewer.
const (
	ColorLime     = "154" // Info
	ColorGray     = "245" // Debug
	ColorDarkGray = "238"
	ColorRed      = "196" // Error, Critical
	ColorYellow   = "220" // Warning
)

// Styles holds the per-level styles for console log output.
type Styles struct {
	Debug    lipgloss.Style
	Info     lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Critical lipgloss.Style
	Dim      lipgloss.Style
}

// DefaultStyles returns colored styles bound to w's renderer.
// The color profile is forced to ANSI256 so styling survives non-terminal
// writers when the caller has already decided to color.
func DefaultStyles(w io.Writer) Styles {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.ANSI256)

	return Styles{
		Debug:    r.NewStyle().Foreground(lipgloss.Color(ColorGray)),
		Info:     r.NewStyle().Foreground(lipgloss.Color(ColorLime)),
		Warning:  r.NewStyle().Foreground(lipgloss.Color(ColorYellow)),
		Error:    r.NewStyle().Foreground(lipgloss.Color(ColorRed)),
		Critical: r.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorRed)),
		Dim:      r.NewStyle().Foreground(lipgloss.Color(ColorDarkGray)),
	}
}

// NoColorStyles returns unstyled components for plain mode.
func NoColorStyles() Styles {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)

	return Styles{
		Debug:    r.NewStyle(),
		Info:     r.NewStyle(),
		Warning:  r.NewStyle(),
		Error:    r.NewStyle(),
		Critical: r.NewStyle(),
		Dim:      r.NewStyle(),
	}
}

// GetStyles returns the styles for w under the given color mode.
func GetStyles(mode ColorMode, w io.Writer) Styles {
	if ShouldColor(mode, w) {
		return DefaultStyles(w)
	}
	return NoColorStyles()
}

// ForLevel returns the style for a level name (DEBUG, INFO, WARNING, ERROR,
// CRITICAL). Unknown names get an empty style.
func (s Styles) ForLevel(level string) lipgloss.Style {
	switch level {
	case "DEBUG":
		return s.Debug
	case "INFO":
		return s.Info
	case "WARNING", "WARN":
		return s.Warning
	case "ERROR":
		return s.Error
	case "CRITICAL":
		return s.Critical
	default:
		return lipgloss.NewStyle()
	}
}
