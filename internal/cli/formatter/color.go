package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/turno/internal/domain"
	"github.com/charmbracelet/lipgloss"
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

// SessionBadge returns a colored status indicator such as "● ACTIVE".
func SessionBadge(status domain.SessionStatus) string {
	switch status {
	case domain.SessionActive:
		return StyleGreen.Render("● ACTIVE")
	case domain.SessionPaused:
		return StyleYellow.Render("● PAUSED")
	case domain.SessionCompleted:
		return StyleBlue.Render("● COMPLETED")
	case domain.SessionCancelled:
		return StyleRed.Render("● CANCELLED")
	default:
		return StyleDim.Render("● UNKNOWN")
	}
}

// ItemMark returns the checkbox marker for a checklist progress status.
func ItemMark(status domain.ItemStatus) string {
	switch status {
	case domain.ItemCompleted:
		return StyleGreen.Render("[x]")
	case domain.ItemSkipped:
		return StyleDim.Render("[-]")
	default:
		return StyleFg.Render("[ ]")
	}
}

// SeverityTag renders an issue severity label in its color.
func SeverityTag(sev domain.IssueSeverity) string {
	switch sev {
	case domain.SeverityCritical:
		return StyleRed.Render("CRITICAL")
	case domain.SeverityHigh:
		return StyleRed.Render("HIGH")
	case domain.SeverityMedium:
		return StyleYellow.Render("MEDIUM")
	default:
		return StyleDim.Render("LOW")
	}
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
