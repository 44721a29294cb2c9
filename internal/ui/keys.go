package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	Send        key.Binding
	Newline     key.Binding
	Refresh     key.Binding
	SwitchFocus key.Binding
	Quit        key.Binding
	Pane        viewport.KeyMap
}

func defaultKeyMap() keyMap {
	return keyMap{
		Send: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		Newline: key.NewBinding(
			key.WithKeys("alt+enter", "ctrl+j"),
			key.WithHelp("alt+enter", "newline"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("^R", "refresh"),
		),
		SwitchFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "scroll chat/grid"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "quit"),
		),
		Pane: paneKeyMap(),
	}
}

// scrolls reports whether msg is one of the pane scrolling keys.
func (k keyMap) scrolls(msg tea.KeyMsg) bool {
	p := k.Pane
	return key.Matches(msg, p.PageDown, p.PageUp, p.HalfPageDown, p.HalfPageUp, p.Down, p.Up)
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Send, k.Refresh, k.SwitchFocus, k.Quit}
}

// paneKeyMap keeps viewport scrolling off the letter keys so typing in the
// input never scrolls a pane.
func paneKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Down:         key.NewBinding(key.WithKeys("ctrl+down")),
		Up:           key.NewBinding(key.WithKeys("ctrl+up")),
	}
}
