package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/repsheet/internal/domain"
	"github.com/alexanderramin/repsheet/internal/snapshot"
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

var (
	StyleGreen      = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow     = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleYellowBold = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	StyleRed        = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue       = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple     = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim        = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg         = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader     = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold       = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}

// Warning renders a warning line for the status area or stderr.
func Warning(text string) string {
	return StyleYellow.Render("▲ " + text)
}

// ModeBadge labels a program as weekly or flat.
func ModeBadge(mode domain.ProgramMode) string {
	if mode == domain.ModeFlat {
		return StylePurple.Render("○ flat")
	}
	return StyleGreen.Render("● weekly")
}

// KindBadge labels a library entry by what it holds.
func KindBadge(kind snapshot.Kind) string {
	switch kind {
	case snapshot.KindProgram:
		return StyleBlue.Render("program")
	case snapshot.KindSession:
		return StylePurple.Render("session")
	default:
		return StyleDim.Render(string(kind))
	}
}
