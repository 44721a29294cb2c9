package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"jol/internal/api"
	"jol/internal/config"
	"jol/internal/format"
	"jol/internal/highlight"
	"jol/internal/listings"
	"jol/internal/logger"
	"jol/internal/session"
	"jol/internal/styles"
)

func NewModel(opts Options) *Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.SortBy == "" {
		opts.SortBy = listings.DefaultSortBy
	}
	if opts.SortOrder == "" {
		opts.SortOrder = listings.DefaultSortOrder
	}
	if opts.Locale.CurrencySuffix == "" {
		opts.Locale = format.Korean
	}

	ti := textarea.New()
	ti.Placeholder = "매물을 조회하거나 끌어올려 달라고 말해보세요..."
	ti.Prompt = "❯ "
	ti.ShowLineNumbers = false
	ti.CharLimit = 0
	ti.MaxHeight = MaxInputHeight
	ti.SetHeight(1)
	ti.SetWidth(80)
	ti.KeyMap.InsertNewline.SetEnabled(false)
	ti.FocusedStyle.Prompt = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8A3D")).Bold(true)
	ti.BlurredStyle.Prompt = lipgloss.NewStyle().Foreground(lipgloss.Color("#545454"))
	ti.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(lipgloss.Color("#545454"))
	ti.BlurredStyle.Placeholder = lipgloss.NewStyle().Foreground(lipgloss.Color("#545454"))
	ti.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ti.BlurredStyle.CursorLine = lipgloss.NewStyle()
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8A3D"))

	chat := viewport.New(60, 15)
	chat.KeyMap = paneKeyMap()
	grid := viewport.New(CardWidth, 15)
	grid.KeyMap = paneKeyMap()

	return &Model{
		opts:         opts,
		keys:         defaultKeyMap(),
		ChatViewport: chat,
		GridViewport: grid,
		TextInput:    ti,
		Spinner:      sp,
		Messages:     []string{},
		Listings:     nil,
		Highlighted:  map[int64]bool{},
		gridOffsets:  map[int64]int{},
		gridHeights:  map[int64]int{},
		InputEnabled: true,
		Focus:        focusChat,
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.refreshCmd(),
	)
}

func (m *Model) refreshCmd() tea.Cmd {
	if m.opts.Store == nil {
		return nil
	}
	store, sortBy, sortOrder := m.opts.Store, m.opts.SortBy, m.opts.SortOrder
	return func() tea.Msg {
		return refreshDoneMsg{err: store.Refresh(context.Background(), sortBy, sortOrder)}
	}
}

func (m *Model) submitCmd(text string) tea.Cmd {
	ctrl := m.opts.Controller
	return func() tea.Msg {
		outcome, err := ctrl.SubmitTurn(context.Background(), text)
		return turnDoneMsg{outcome: outcome, err: err}
	}
}

// NewProgram wires the transport, listing store, highlight scheduler and
// session controller to a full-screen program.
func NewProgram(cfg *config.Config, client *api.Client) *tea.Program {
	styles.InitTheme()
	locale := format.LocaleFor(cfg.Locale)

	store := listings.NewStore(client, nil)
	bridge := NewBridge(store.Contains)
	store.SetPresenter(bridge)

	scheduler := highlight.NewScheduler(highlight.RealClock, bridge, cfg.ScrollDelay, cfg.HighlightHold)
	ctrl := session.NewController(session.Options{
		Transport:   client,
		Transcript:  bridge,
		Listings:    store,
		Highlighter: scheduler,
		SortBy:      cfg.SortBy,
		SortOrder:   cfg.SortOrder,
		Fallback:    locale.Fallback,
	})

	m := NewModel(Options{
		Controller:  ctrl,
		Store:       store,
		Locale:      locale,
		SortBy:      cfg.SortBy,
		SortOrder:   cfg.SortOrder,
		Placeholder: cfg.PlaceholderImage,
		APIBase:     client.BaseURL(),
		SessionID:   client.SessionID(),
	})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	bridge.Attach(p)

	logger.Info("Session started", "api_base", client.BaseURL(), "session_id", client.SessionID())
	return p
}
