package formatter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorOrange = lipgloss.Color("#fe8019")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = ColorOrange
)

// Predefined lipgloss styles.
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
	StyleItalic     = lipgloss.NewStyle().Foreground(ColorDim).Italic(true)
)

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// namedTagColors maps the colour names people tend to write in tags onto
// the palette.
var namedTagColors = map[string]lipgloss.Color{
	"green":  ColorGreen,
	"yellow": ColorYellow,
	"red":    ColorRed,
	"blue":   ColorBlue,
	"purple": ColorPurple,
	"orange": ColorOrange,
	"grey":   ColorDim,
	"gray":   ColorDim,
}

// TagColor resolves a tag colour for the terminal. Hex codes pass through,
// known names map onto the palette, anything else is dimmed.
func TagColor(color string) lipgloss.Color {
	color = strings.TrimSpace(color)
	if hexColorPattern.MatchString(color) {
		return lipgloss.Color(color)
	}
	if c, ok := namedTagColors[strings.ToLower(color)]; ok {
		return c
	}
	return ColorDim
}

// TagBadge renders a tag as a coloured pill.
func TagBadge(color, text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#1d2021")).
		Background(TagColor(color)).
		Padding(0, 1).
		Render(text)
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
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

// StepDone renders a completed pipeline step such as "✔ Wrote plan.md".
func StepDone(text string) string {
	return StyleGreen.Render("✔") + " " + text
}
