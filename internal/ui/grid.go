package ui

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"jol/internal/format"
	"jol/internal/models"
	"jol/internal/styles"
)

// GridOptions controls one render of the listing grid.
type GridOptions struct {
	Width       int
	Locale      format.Locale
	Now         time.Time
	Highlighted map[int64]bool
}

// Grid is a rendered listing area. Empty and the card grid are mutually
// exclusive: an empty collection renders only the empty-state text.
type Grid struct {
	Content string
	Empty   bool
	Offsets map[int64]int // first content line of each card
	Heights map[int64]int
}

// RenderGrid lays the collection out in as many columns as fit. It is a
// pure function of its inputs, so rendering the same collection twice gives
// the same result.
func RenderGrid(items []models.Listing, opts GridOptions) Grid {
	g := Grid{Offsets: map[int64]int{}, Heights: map[int64]int{}}
	if len(items) == 0 {
		g.Empty = true
		g.Content = styles.EmptyStateStyle.Render(opts.Locale.EmptyState)
		return g
	}

	cols := opts.Width / CardWidth
	if cols < 1 {
		cols = 1
	}

	var rows []string
	line := 0
	for start := 0; start < len(items); start += cols {
		end := start + cols
		if end > len(items) {
			end = len(items)
		}
		cards := make([]string, 0, end-start)
		for _, l := range items[start:end] {
			card := renderCard(l, opts)
			g.Offsets[l.ID] = line
			g.Heights[l.ID] = lipgloss.Height(card)
			cards = append(cards, card)
		}
		row := lipgloss.JoinHorizontal(lipgloss.Top, cards...)
		rows = append(rows, row)
		line += lipgloss.Height(row)
	}
	g.Content = strings.Join(rows, "\n")
	return g
}

func renderCard(l models.Listing, opts GridOptions) string {
	inner := CardWidth - 4

	lines := []string{
		styles.CardFooterStyle.Render(listingID(l.ID)),
		styles.CardTitleStyle.Render(format.TruncateRunes(format.Escape(l.Title), inner)),
		styles.CardPriceStyle.Render(opts.Locale.Price(l.Price)),
		styles.CardMetaStyle.Render(format.TruncateRunes(format.Escape(l.Category)+" · "+format.Escape(l.Region), inner)),
		styles.CardBodyStyle.Render(format.TruncateRunes(format.Escape(l.Content), inner*2)),
	}
	if l.ImageURL != "" {
		lines = append(lines, styles.CardMetaStyle.Render("🖼 "+format.TruncateRunes(format.Escape(l.ImageURL), inner-3)))
	}

	footer := styles.CardFooterStyle.Render(opts.Locale.Date(l.DisplayTime(), opts.Now))
	if l.BoostCount > 0 {
		footer += "  " + styles.BoostBadgeStyle.Render(opts.Locale.Boost(l.BoostCount))
	}
	lines = append(lines, footer)

	style := styles.CardStyle
	if opts.Highlighted[l.ID] {
		style = styles.HighlightedCardStyle
	}
	return style.Width(CardWidth - 2).Render(strings.Join(lines, "\n"))
}

func listingID(id int64) string {
	return "ID " + strconv.FormatInt(id, 10)
}

// RenderChatCards renders the compact cards shown under an assistant reply.
// Listings without an image show placeholder instead.
func RenderChatCards(items []models.Listing, locale format.Locale, placeholder string, width int) string {
	if width > 2*CardWidth {
		width = 2 * CardWidth
	}
	inner := width - 4
	if inner < 10 {
		inner = 10
	}

	cards := make([]string, 0, len(items))
	for _, l := range items {
		image := l.ImageURL
		if image == "" {
			image = placeholder
		}
		lines := []string{
			styles.CardFooterStyle.Render(listingID(l.ID)),
			styles.CardTitleStyle.Render(format.TruncateRunes(format.Escape(l.Title), inner)),
			styles.CardPriceStyle.Render(locale.Price(l.Price)) + "  " +
				styles.CardMetaStyle.Render(format.Escape(l.Category)+" · "+format.Escape(l.Region)),
		}
		if image != "" {
			lines = append(lines, styles.CardFooterStyle.Render("🖼 "+format.TruncateRunes(format.Escape(image), inner-3)))
		}
		cards = append(cards, styles.CardStyle.Width(inner+2).Render(strings.Join(lines, "\n")))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}
