package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/taskrange/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// DisableColor switches every style to plain text, for output that is not
// going to a terminal.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// SpecStyle colors a rule marker by how strict it is.
func SpecStyle(spec domain.RuleSpec) lipgloss.Style {
	switch spec {
	case domain.RuleForbidden:
		return StyleRed
	case domain.RuleExactlyOne, domain.RuleAtLeastOne:
		return StyleYellow
	case domain.RuleOptional:
		return StyleBlue
	default:
		return StyleDim
	}
}

// RangeIndicator renders "● IN" or "○ OUT".
func RangeIndicator(inRange bool) string {
	if inRange {
		return StyleGreen.Render("● IN")
	}
	return StyleDim.Render("○ OUT")
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
