package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"jol/internal/format"
	"jol/internal/styles"
)

func GetWelcomeScreen(width, height int) string {
	art := `
 ╭────────────────────────────╮
 │                            │
 │     ░░█ █▀█ █░░            │
 │     █▄█ █▄█ █▄▄            │
 │                            │
 ╰────────────────────────────╯
`
	subtitle := "“우리 동네 중고거래, 말로 관리하세요.”"
	examples := []string{
		"가구 매물 보여줘",
		"3번 매물 끌어올려줘",
		"2번 가격 70000원으로 바꿔줘",
	}

	styledArt := styles.TitleStyle.Render(art)
	styledSubtitle := styles.EmptyStateStyle.Render(subtitle)
	var hints []string
	for _, e := range examples {
		hints = append(hints, styles.EmptyStateStyle.Render("› "+e))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, styledArt, "", styledSubtitle, "", strings.Join(hints, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) UpdateChatViewport() {
	if len(m.Messages) == 0 && !m.Loading {
		m.ChatViewport.SetContent(GetWelcomeScreen(m.ChatViewport.Width, m.ChatViewport.Height))
		return
	}

	content := strings.Join(m.Messages, "\n\n")
	if m.Loading {
		loadingMsg := strings.Join([]string{
			styles.AiLabelStyle.Render("JOL"),
			fmt.Sprintf("%s %s...", m.Spinner.View(), m.opts.Locale.Pending),
		}, "\n")
		if len(m.Messages) > 0 {
			content = content + "\n\n" + loadingMsg
		} else {
			content = loadingMsg
		}
	}
	m.ChatViewport.SetContent(content)
	m.ChatViewport.GotoBottom()
}

func (m *Model) renderPane(title, body string, width int, focused bool) string {
	style := styles.PaneStyle
	if focused {
		style = styles.FocusedPaneStyle
	}
	heading := styles.PaneTitleStyle.Render(title)
	return style.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, heading, body))
}

func (m *Model) RenderBottomBar() string {
	badge := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#FF8A3D")).
		Padding(0, 1).
		Render("JOL")

	api := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		Render(format.TruncateRunes(m.opts.APIBase, 30))

	session := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666666")).
		Render("session " + ShortID(m.opts.SessionID))

	status := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666666")).
		Render(fmt.Sprintf("listings:%d lit:%d", len(m.Listings), len(m.Highlighted)))
	if m.LastErr != nil {
		status = styles.ErrorStyle.Render("⚠ backend unreachable")
	}

	var hints []string
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		hints = append(hints, h.Key+" "+h.Desc)
	}
	help := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#555555")).
		Render(strings.Join(hints, " · "))

	leftSide := lipgloss.JoinHorizontal(lipgloss.Center, badge, "  ", api, "  ", session)
	rightSide := lipgloss.JoinHorizontal(lipgloss.Center, status, "  ", help)

	availableWidth := m.WindowWidth - lipgloss.Width(leftSide) - lipgloss.Width(rightSide) - 2
	if availableWidth < 0 {
		availableWidth = 0
	}
	spacer := strings.Repeat(" ", availableWidth)

	bar := lipgloss.JoinHorizontal(lipgloss.Center, leftSide, spacer, rightSide)

	return lipgloss.NewStyle().
		Width(m.WindowWidth).
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#333333")).
		Padding(0, 1).
		Render(bar)
}

func (m *Model) View() string {
	chatPane := m.renderPane("대화", m.ChatViewport.View(), m.ChatViewport.Width, m.Focus == focusChat)
	gridPane := m.renderPane(fmt.Sprintf("매물 (%d)", len(m.Listings)), m.GridViewport.View(), m.GridViewport.Width, m.Focus == focusGrid)

	var panes string
	if m.wide() {
		panes = lipgloss.JoinHorizontal(lipgloss.Top, chatPane, gridPane)
	} else {
		panes = lipgloss.JoinVertical(lipgloss.Left, gridPane, chatPane)
	}

	inputStyle := styles.InputBoxStyle
	if !m.InputEnabled {
		inputStyle = styles.DisabledInputBoxStyle
	}
	inputBox := inputStyle.Width(max(m.WindowWidth-4, 20)).Render(m.TextInput.View())

	return lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render("JOL 중고거래 어시스턴트"),
		panes,
		inputBox,
		m.RenderBottomBar(),
	)
}
