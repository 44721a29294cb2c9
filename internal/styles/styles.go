package styles

import "github.com/charmbracelet/lipgloss"

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF8A3D")).
			Padding(0, 1)

	PaneTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#52525B", Dark: "#94A3B8"})

	UserLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#90CAF9")).
			Bold(true).
			Padding(0, 1).
			MarginRight(1)

	UserMsgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#E0E0E0"}).
			PaddingLeft(2).
			BorderLeft(true).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("#90CAF9"))

	AiLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#FF8A3D")).
			Bold(true).
			Padding(0, 1).
			MarginRight(1)

	AiMsgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#E0E0E0"}).
			BorderLeft(true).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("#FF8A3D"))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF9A9A")).
			Bold(true)

	SuggestionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#5C5C7A")).
			Padding(0, 1).
			MarginRight(1)

	InputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#FF8A3D")).
			Padding(0, 1)

	DisabledInputBoxStyle = InputBoxStyle.
				BorderForeground(lipgloss.Color("#545454"))

	PaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333333"))

	FocusedPaneStyle = PaneStyle.
				BorderForeground(lipgloss.Color("#FF8A3D"))

	EmptyStateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#545454")).
			Italic(true)

	HintColor = lipgloss.Color("#545454")
)

// Card styles depend on the theme and are rebuilt by InitTheme.
var (
	CardStyle            lipgloss.Style
	HighlightedCardStyle lipgloss.Style
	CardTitleStyle       lipgloss.Style
	CardPriceStyle       lipgloss.Style
	CardMetaStyle        lipgloss.Style
	CardBodyStyle        lipgloss.Style
	CardFooterStyle      lipgloss.Style
	BoostBadgeStyle      lipgloss.Style
)

func init() {
	buildCardStyles(CurrentTheme)
}

func buildCardStyles(t Theme) {
	CardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.CardBorder).
		Padding(0, 1)

	HighlightedCardStyle = CardStyle.
		Border(lipgloss.ThickBorder()).
		BorderForeground(t.Highlight)

	CardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(t.TextPrimary)
	CardPriceStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Price)
	CardMetaStyle = lipgloss.NewStyle().Foreground(t.TextSecondary)
	CardBodyStyle = lipgloss.NewStyle().Foreground(t.TextSecondary)
	CardFooterStyle = lipgloss.NewStyle().Foreground(t.TextMuted)
	BoostBadgeStyle = lipgloss.NewStyle().Foreground(t.Boost).Bold(true)
}
