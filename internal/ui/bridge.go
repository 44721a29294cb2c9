package ui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"jol/internal/models"
	"jol/internal/session"
)

// Bridge turns controller, store and scheduler callbacks into messages for
// the running program. It satisfies session.Transcript, listings.Presenter
// and highlight.Targets. Callbacks arrive on worker goroutines; Program.Send
// keeps them in order.
type Bridge struct {
	mu       sync.RWMutex
	send     func(tea.Msg)
	contains func(id int64) bool
}

// NewBridge creates a bridge that checks card existence with contains.
// Messages are dropped until Attach is called.
func NewBridge(contains func(id int64) bool) *Bridge {
	return &Bridge{contains: contains}
}

// Attach routes messages to p.
func (b *Bridge) Attach(p *tea.Program) {
	b.AttachFunc(p.Send)
}

func (b *Bridge) AttachFunc(send func(tea.Msg)) {
	b.mu.Lock()
	b.send = send
	b.mu.Unlock()
}

func (b *Bridge) emit(msg tea.Msg) {
	b.mu.RLock()
	send := b.send
	b.mu.RUnlock()
	if send != nil {
		send(msg)
	}
}

func (b *Bridge) SetInputEnabled(enabled bool) { b.emit(inputGateMsg{enabled: enabled}) }

func (b *Bridge) AppendUserTurn(text string) { b.emit(userTurnMsg{text: text}) }

func (b *Bridge) ShowPending() { b.emit(pendingMsg{on: true}) }

func (b *Bridge) HidePending() { b.emit(pendingMsg{on: false}) }

func (b *Bridge) AppendAssistantTurn(reply session.Reply) { b.emit(assistantTurnMsg{reply: reply}) }

func (b *Bridge) ShowListings(items []models.Listing) { b.emit(listingsMsg{items: items}) }

// Has reports whether the card is part of the collection last presented.
func (b *Bridge) Has(id int64) bool {
	return b.contains != nil && b.contains(id)
}

func (b *Bridge) ScrollIntoView(id int64) { b.emit(scrollToListingMsg{id: id}) }

func (b *Bridge) SetHighlighted(id int64, on bool) { b.emit(highlightMsg{id: id, on: on}) }
