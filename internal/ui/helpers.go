package ui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"jol/internal/format"
	"jol/internal/models"
	"jol/internal/styles"
)

// WrappedLineCount is the number of rows value occupies when soft-wrapped
// at width display cells.
func WrappedLineCount(value string, width int) int {
	if width <= 0 {
		return 1
	}
	lines := strings.Split(value, "\n")
	if len(lines) == 0 {
		return 1
	}
	count := 0
	for _, line := range lines {
		w := runewidth.StringWidth(line)
		if w == 0 {
			count++
			continue
		}
		count += (w-1)/width + 1
	}
	return count
}

// ShortID trims a session id for the status bar.
func ShortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return format.TruncateRunes(id, 8)
}

func FormatUserMessage(content string, width int, isFirst bool) string {
	label := styles.UserLabelStyle.Render("나")
	msg := styles.UserMsgStyle.Width(max(width-4, 10)).Render(content)
	if isFirst {
		return fmt.Sprintf("\n%s\n%s", label, msg)
	}
	return fmt.Sprintf("%s\n%s", label, msg)
}

func FormatAIMessage(content string) string {
	label := styles.AiLabelStyle.Render("JOL")
	msg := styles.AiMsgStyle.Render(content)
	return fmt.Sprintf("%s\n%s", label, msg)
}

// FormatSuggestions renders suggested follow-ups as chips. They are hints
// only and are never run automatically.
func FormatSuggestions(actions []models.SuggestedAction) string {
	chips := make([]string, 0, len(actions))
	for _, a := range actions {
		label := a.Label
		if label == "" {
			label = a.Action
		}
		chips = append(chips, styles.SuggestionStyle.Render("💡 "+format.Escape(label)))
	}
	return strings.Join(chips, "")
}
