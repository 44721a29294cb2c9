package styles

import "github.com/charmbracelet/lipgloss"

// Theme defines a complete color scheme for the application
type Theme struct {
	// Core colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color

	// Text colors
	TextPrimary   lipgloss.Color
	TextSecondary lipgloss.Color
	TextMuted     lipgloss.Color

	// Semantic colors
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color

	// Card colors
	CardBorder lipgloss.Color
	Highlight  lipgloss.Color
	Price      lipgloss.Color
	Boost      lipgloss.Color
}

var DarkTheme = Theme{
	Primary:   lipgloss.Color("#FF8A3D"), // carrot orange
	Secondary: lipgloss.Color("#22D3EE"), // Cyan 400
	Accent:    lipgloss.Color("#F472B6"), // Pink 400

	TextPrimary:   lipgloss.Color("#F1F5F9"), // Slate 100
	TextSecondary: lipgloss.Color("#94A3B8"), // Slate 400
	TextMuted:     lipgloss.Color("#64748B"), // Slate 500

	Success: lipgloss.Color("#34D399"), // Emerald 400
	Warning: lipgloss.Color("#FBBF24"), // Amber 400
	Error:   lipgloss.Color("#FB7185"), // Rose 400

	CardBorder: lipgloss.Color("#3F3F46"), // Zinc 700
	Highlight:  lipgloss.Color("#FBBF24"),
	Price:      lipgloss.Color("#FF8A3D"),
	Boost:      lipgloss.Color("#F87171"),
}

var LightTheme = Theme{
	Primary:   lipgloss.Color("#EA580C"), // Orange 600
	Secondary: lipgloss.Color("#0891B2"), // Cyan 600
	Accent:    lipgloss.Color("#DB2777"), // Pink 600

	TextPrimary:   lipgloss.Color("#18181B"), // Zinc 900
	TextSecondary: lipgloss.Color("#52525B"), // Zinc 600
	TextMuted:     lipgloss.Color("#A1A1AA"), // Zinc 400

	Success: lipgloss.Color("#10B981"), // Emerald 500
	Warning: lipgloss.Color("#F59E0B"), // Amber 500
	Error:   lipgloss.Color("#EF4444"), // Red 500

	CardBorder: lipgloss.Color("#D4D4D8"), // Zinc 300
	Highlight:  lipgloss.Color("#F59E0B"),
	Price:      lipgloss.Color("#EA580C"),
	Boost:      lipgloss.Color("#DC2626"),
}

// CurrentTheme holds the active theme (set at runtime based on terminal)
var CurrentTheme = DarkTheme

// GlamourStyle is the glamour style path matching CurrentTheme.
var GlamourStyle = "dark"

// InitTheme sets the current theme based on terminal background and rebuilds
// the card styles from it.
func InitTheme() {
	if lipgloss.HasDarkBackground() {
		CurrentTheme = DarkTheme
		GlamourStyle = "dark"
	} else {
		CurrentTheme = LightTheme
		GlamourStyle = "light"
	}
	buildCardStyles(CurrentTheme)
}
