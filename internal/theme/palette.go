package theme

import "github.com/charmbracelet/lipgloss"

// ColorPalette defines the colors of a display mode.
type ColorPalette struct {
	// Primary accent (title, cursor)
	Primary lipgloss.Color
	// Text is the default foreground.
	Text lipgloss.Color
	// Muted is used for completed tasks, hints and borders.
	Muted lipgloss.Color
	// Surface is the dialog background.
	Surface lipgloss.Color

	Success lipgloss.Color
	Error   lipgloss.Color

	// Priority colors
	High   lipgloss.Color
	Medium lipgloss.Color
	Low    lipgloss.Color
}

// LightPalette returns the palette for light terminals.
func LightPalette() *ColorPalette {
	return &ColorPalette{
		Primary: lipgloss.Color("#6D28D9"), // Violet-700
		Text:    lipgloss.Color("#111827"), // Gray-900
		Muted:   lipgloss.Color("#6B7280"), // Gray-500
		Surface: lipgloss.Color("#F3F4F6"), // Gray-100

		Success: lipgloss.Color("#047857"), // Emerald-700
		Error:   lipgloss.Color("#B91C1C"), // Red-700

		High:   lipgloss.Color("#DC2626"), // Red-600
		Medium: lipgloss.Color("#B45309"), // Amber-700
		Low:    lipgloss.Color("#1D4ED8"), // Blue-700
	}
}

// DarkPalette returns the palette for dark terminals.
func DarkPalette() *ColorPalette {
	return &ColorPalette{
		Primary: lipgloss.Color("#A78BFA"), // Violet-400
		Text:    lipgloss.Color("#F9FAFB"), // Gray-50
		Muted:   lipgloss.Color("#9CA3AF"), // Gray-400
		Surface: lipgloss.Color("#1F2937"), // Gray-800

		Success: lipgloss.Color("#10B981"),
		Error:   lipgloss.Color("#F87171"),

		High:   lipgloss.Color("#F87171"), // Red-400
		Medium: lipgloss.Color("#F59E0B"), // Amber
		Low:    lipgloss.Color("#60A5FA"), // Blue-400
	}
}

// PaletteFor returns the palette of m. Unknown modes use the light palette.
func PaletteFor(m Mode) *ColorPalette {
	if m == Dark {
		return DarkPalette()
	}
	return LightPalette()
}
