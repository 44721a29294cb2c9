package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"jol/internal/format"
	"jol/internal/logger"
	"jol/internal/session"
	"jol/internal/styles"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.Loading {
			return m, nil
		}
		var spCmd tea.Cmd
		m.Spinner, spCmd = m.Spinner.Update(msg)
		m.UpdateChatViewport()
		return m, spCmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Refresh):
			return m, m.refreshCmd()

		case key.Matches(msg, m.keys.SwitchFocus):
			if m.Focus == focusChat {
				m.Focus = focusGrid
			} else {
				m.Focus = focusChat
			}
			return m, nil

		case key.Matches(msg, m.keys.Newline):
			if m.InputEnabled {
				m.TextInput.InsertString("\n")
				m.updateLayout()
			}
			return m, nil

		case key.Matches(msg, m.keys.Send):
			return m, m.submit()

		case m.keys.scrolls(msg):
			return m, m.updateFocusedPane(msg)
		}

		if !m.InputEnabled {
			return m, m.updateFocusedPane(msg)
		}

	case tea.MouseMsg:
		return m, m.updateFocusedPane(msg)

	case inputGateMsg:
		m.setInputEnabled(msg.enabled)
		return m, nil

	case userTurnMsg:
		m.Messages = append(m.Messages, FormatUserMessage(format.EscapeBlock(msg.text), m.ChatViewport.Width, len(m.Messages) == 0))
		m.UpdateChatViewport()
		return m, nil

	case pendingMsg:
		m.Loading = msg.on
		m.UpdateChatViewport()
		if msg.on {
			return m, m.Spinner.Tick
		}
		return m, nil

	case assistantTurnMsg:
		m.Messages = append(m.Messages, m.formatReply(msg.reply))
		m.UpdateChatViewport()
		return m, nil

	case listingsMsg:
		m.Listings = msg.items
		m.LastErr = nil
		m.renderGrid()
		return m, nil

	case scrollToListingMsg:
		m.scrollToListing(msg.id)
		return m, nil

	case highlightMsg:
		if msg.on {
			m.Highlighted[msg.id] = true
		} else {
			delete(m.Highlighted, msg.id)
		}
		m.renderGrid()
		return m, nil

	case turnDoneMsg:
		m.setInputEnabled(true)
		if msg.err != nil && !errors.Is(msg.err, session.ErrTurnInFlight) {
			m.LastErr = msg.err
		}
		logger.Debug("Turn finished", "outcome", msg.outcome.String())
		return m, nil

	case refreshDoneMsg:
		m.LastErr = msg.err
		return m, nil

	case tea.WindowSizeMsg:
		m.WindowWidth = msg.Width
		m.WindowHeight = msg.Height
		m.updateLayout()

		renderer, err := glamour.NewTermRenderer(
			glamour.WithStylePath(styles.GlamourStyle),
			glamour.WithWordWrap(max(m.ChatViewport.Width-4, 20)),
		)
		if err != nil {
			logger.Warn("Markdown renderer unavailable", "error", err)
		} else {
			m.Renderer = renderer
		}
		m.renderGrid()
		m.UpdateChatViewport()
		return m, nil
	}

	var tiCmd tea.Cmd
	m.TextInput, tiCmd = m.TextInput.Update(msg)

	// Terminal background and cursor position replies can leak into the input.
	val := m.TextInput.Value()
	if strings.Contains(val, "]11;rgb:") || strings.Contains(val, "1;rgb:") || strings.Contains(val, "[1;1R") {
		m.TextInput.Reset()
	}
	m.updateLayout()

	return m, tiCmd
}

// submit sends the current input as a turn. Input is gated locally right
// away so a second Enter cannot race the controller's own gate message.
func (m *Model) submit() tea.Cmd {
	if !m.InputEnabled || m.opts.Controller == nil {
		return nil
	}
	text := m.TextInput.Value()
	if strings.TrimSpace(text) == "" {
		return nil
	}
	m.TextInput.Reset()
	m.setInputEnabled(false)
	m.updateLayout()
	return m.submitCmd(text)
}

func (m *Model) setInputEnabled(enabled bool) {
	m.InputEnabled = enabled
	if enabled {
		m.TextInput.Focus()
	} else {
		m.TextInput.Blur()
	}
}

func (m *Model) updateFocusedPane(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if m.Focus == focusGrid {
		m.GridViewport, cmd = m.GridViewport.Update(msg)
	} else {
		m.ChatViewport, cmd = m.ChatViewport.Update(msg)
	}
	return cmd
}

func (m *Model) formatReply(reply session.Reply) string {
	var body string
	if reply.Fallback {
		body = styles.ErrorStyle.Render(reply.Text)
	} else {
		body = format.EscapeBlock(reply.Text)
		if m.Renderer != nil {
			if rendered, err := m.Renderer.Render(body); err == nil {
				body = strings.TrimSpace(rendered)
			} else {
				logger.Warn("Markdown render failed", "error", err)
			}
		}
	}

	parts := []string{body}
	if len(reply.Listings) > 0 {
		parts = append(parts, RenderChatCards(reply.Listings, m.opts.Locale, m.opts.Placeholder, m.ChatViewport.Width-2))
	}
	if len(reply.Suggestions) > 0 {
		parts = append(parts, FormatSuggestions(reply.Suggestions))
	}
	return FormatAIMessage(strings.Join(parts, "\n\n"))
}

func (m *Model) renderGrid() {
	g := RenderGrid(m.Listings, GridOptions{
		Width:       m.GridViewport.Width,
		Locale:      m.opts.Locale,
		Now:         m.opts.Now(),
		Highlighted: m.Highlighted,
	})
	m.gridOffsets = g.Offsets
	m.gridHeights = g.Heights
	m.GridViewport.SetContent(g.Content)
}

// scrollToListing centers the card in the grid pane when it can.
func (m *Model) scrollToListing(id int64) {
	offset, ok := m.gridOffsets[id]
	if !ok {
		return
	}
	y := offset + m.gridHeights[id]/2 - m.GridViewport.Height/2
	if y < 0 {
		y = 0
	}
	m.GridViewport.SetYOffset(y)
}

func (m *Model) wide() bool {
	return m.WindowWidth >= WideLayoutThresh
}

// updateLayout sizes the input to its content and splits the remaining
// height between the chat and grid panes.
func (m *Model) updateLayout() {
	if m.WindowWidth == 0 || m.WindowHeight == 0 {
		return
	}

	inputWidth := m.WindowWidth - 6
	if inputWidth < 20 {
		inputWidth = 20
	}
	contentWidth := inputWidth - 2
	if contentWidth < 1 {
		contentWidth = 1
	}

	lineCount := WrappedLineCount(m.TextInput.Value(), contentWidth)
	if lineCount < 1 {
		lineCount = 1
	}
	if lineCount > MaxInputHeight {
		lineCount = MaxInputHeight
	}
	m.TextInput.MaxHeight = MaxInputHeight
	m.TextInput.SetWidth(inputWidth)
	m.TextInput.SetHeight(lineCount)

	// title, input box with border, bottom bar with border
	available := m.WindowHeight - 1 - (m.TextInput.Height() + 2) - 2
	if available < 8 {
		available = 8
	}

	// Each pane has a border and a one-line heading.
	const chrome = 3
	if m.wide() {
		gridPane := (m.WindowWidth * 45) / 100
		if gridPane < CardWidth+2 {
			gridPane = CardWidth + 2
		}
		m.GridViewport.Width = gridPane - 2
		m.ChatViewport.Width = m.WindowWidth - gridPane - 2
		m.GridViewport.Height = available - chrome
		m.ChatViewport.Height = available - chrome
		return
	}

	gridPane := available * 2 / 5
	m.GridViewport.Width = m.WindowWidth - 2
	m.ChatViewport.Width = m.WindowWidth - 2
	m.GridViewport.Height = max(gridPane-chrome, 1)
	m.ChatViewport.Height = max(available-gridPane-chrome, 1)
}
