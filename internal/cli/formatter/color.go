package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vlanet/vridge/internal/domain"
	"github.com/vlanet/vridge/internal/palette"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// SeverityStyle returns the lipgloss style for a conflict severity.
func SeverityStyle(s domain.Severity) lipgloss.Style {
	switch s {
	case domain.SeverityCritical:
		return StyleRed
	case domain.SeverityWarning:
		return StyleYellow
	default:
		return StyleDim
	}
}

// SeverityIndicator returns a colored severity label such as "▲ CRITICAL".
func SeverityIndicator(s domain.Severity) string {
	switch s {
	case domain.SeverityCritical:
		return StyleRed.Render("▲ CRITICAL")
	case domain.SeverityWarning:
		return StyleYellow.Render("● WARNING")
	default:
		return StyleDim.Render("○ NONE")
	}
}

// ProjectStyle renders text on the project's primary color.
func ProjectStyle(p palette.Palette) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(p.Primary)).
		Foreground(lipgloss.Color(p.Text))
}

// ProjectForeground renders text in the project's primary color.
func ProjectForeground(p palette.Palette) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(p.Primary))
}

// Swatch renders a label as a colored chip.
func Swatch(p palette.Palette, label string) string {
	return ProjectStyle(p).Render(" " + label + " ")
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
