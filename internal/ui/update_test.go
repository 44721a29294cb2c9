package ui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jol/internal/format"
	"jol/internal/models"
	"jol/internal/session"
)

type fakeRunner struct {
	mu    sync.Mutex
	texts []string
}

func (f *fakeRunner) SubmitTurn(_ context.Context, text string) (session.Outcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.texts = append(f.texts, text)
	return session.Completed, nil
}

type fakeRefresher struct {
	calls int
	err   error
}

func (f *fakeRefresher) Refresh(context.Context, string, string) error {
	f.calls++
	return f.err
}

func newTestModel(t *testing.T, width, height int) (*Model, *fakeRunner, *fakeRefresher) {
	t.Helper()
	runner := &fakeRunner{}
	refresher := &fakeRefresher{}
	m := NewModel(Options{
		Controller:  runner,
		Store:       refresher,
		Locale:      format.Korean,
		Placeholder: "https://placeholder/img.png",
		Now:         func() time.Time { return gridNow },
	})
	m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	return m, runner, refresher
}

func TestModel_SubmitGatesInput(t *testing.T) {
	m, runner, _ := newTestModel(t, 120, 40)
	m.TextInput.SetValue("가구 매물 보여줘")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.False(t, m.InputEnabled)
	assert.Empty(t, m.TextInput.Value())

	m.TextInput.SetValue("again")
	_, second := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, second, "a second Enter while a turn runs is ignored")

	done := cmd()
	require.IsType(t, turnDoneMsg{}, done)
	assert.Equal(t, []string{"가구 매물 보여줘"}, runner.texts)

	m.Update(done)
	assert.True(t, m.InputEnabled)
}

func TestModel_BlankInputIgnored(t *testing.T) {
	m, runner, _ := newTestModel(t, 120, 40)
	m.TextInput.SetValue("   ")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.True(t, m.InputEnabled)
	assert.Empty(t, runner.texts)
}

func TestModel_TranscriptFlow(t *testing.T) {
	m, _, _ := newTestModel(t, 120, 40)

	m.Update(inputGateMsg{enabled: false})
	assert.False(t, m.InputEnabled)

	m.Update(userTurnMsg{text: "<b>안녕</b>"})
	_, cmd := m.Update(pendingMsg{on: true})
	assert.True(t, m.Loading)
	assert.NotNil(t, cmd, "spinner starts with the pending indicator")

	m.Update(pendingMsg{on: false})
	m.Update(assistantTurnMsg{reply: session.Reply{
		Text:     "매물을 찾았어요",
		Listings: []models.Listing{listing(7, "원목 책상")},
	}})
	m.Update(assistantTurnMsg{reply: session.Reply{Text: format.Korean.Fallback, Fallback: true}})
	m.Update(inputGateMsg{enabled: true})

	assert.False(t, m.Loading)
	assert.True(t, m.InputEnabled)
	require.Len(t, m.Messages, 3)
	assert.Contains(t, m.Messages[0], "<b>안녕</b>")
	assert.Contains(t, m.Messages[1], "원목 책상")
	assert.Contains(t, m.Messages[1], "https://placeholder/img.png")
	assert.Contains(t, m.Messages[2], format.Korean.Fallback)
}

func TestModel_GridEmptyStateAndListings(t *testing.T) {
	m, _, _ := newTestModel(t, 120, 40)

	m.Update(listingsMsg{items: []models.Listing{}})
	assert.Contains(t, m.GridViewport.View(), format.Korean.EmptyState)

	m.Update(listingsMsg{items: []models.Listing{listing(1, "아이폰")}})
	view := m.GridViewport.View()
	assert.Contains(t, view, "아이폰")
	assert.NotContains(t, view, format.Korean.EmptyState)
	assert.Contains(t, m.View(), "매물 (1)")
}

func TestModel_HighlightAndScroll(t *testing.T) {
	m, _, _ := newTestModel(t, 60, 30)
	items := []models.Listing{listing(1, "a"), listing(2, "b"), listing(3, "c"), listing(4, "d"), listing(5, "e")}
	m.Update(listingsMsg{items: items})
	require.Equal(t, 0, m.GridViewport.YOffset)

	m.Update(scrollToListingMsg{id: 5})
	assert.Greater(t, m.GridViewport.YOffset, 0)

	m.Update(scrollToListingMsg{id: 99})
	m.Update(highlightMsg{id: 5, on: true})
	assert.True(t, m.Highlighted[5])
	m.Update(highlightMsg{id: 5, on: false})
	assert.False(t, m.Highlighted[5])
}

func TestModel_RefreshKey(t *testing.T) {
	m, _, refresher := newTestModel(t, 120, 40)
	refresher.err = errors.New("down")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	require.NotNil(t, cmd)
	msg := cmd()
	assert.Equal(t, 1, refresher.calls)

	m.Update(msg)
	assert.Error(t, m.LastErr)
	assert.Contains(t, m.RenderBottomBar(), "backend unreachable")

	m.Update(listingsMsg{items: []models.Listing{listing(1, "a")}})
	assert.NoError(t, m.LastErr)
}

func TestModel_SwitchFocus(t *testing.T) {
	m, _, _ := newTestModel(t, 120, 40)
	assert.Equal(t, focusChat, m.Focus)
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, focusGrid, m.Focus)
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, focusChat, m.Focus)
}

func TestModel_ScrollGridWhileInputEnabled(t *testing.T) {
	m, _, _ := newTestModel(t, 80, 30)
	items := make([]models.Listing, 0, 30)
	for i := int64(1); i <= 30; i++ {
		items = append(items, listing(i, "매물"))
	}
	m.Update(listingsMsg{items: items})
	require.True(t, m.InputEnabled)

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, focusGrid, m.Focus)
	m.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	assert.Greater(t, m.GridViewport.YOffset, 0)
	assert.True(t, m.InputEnabled)

	m.TextInput.SetValue("")
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	assert.Equal(t, "j", m.TextInput.Value(), "letter keys still type into the input")
}

func TestModel_NewlineKeys(t *testing.T) {
	assert.Equal(t, []string{"alt+enter", "ctrl+j"}, defaultKeyMap().Newline.Keys())

	m, runner, _ := newTestModel(t, 120, 40)
	m.TextInput.SetValue("첫 줄")
	m.TextInput.CursorEnd()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlJ})
	assert.Nil(t, cmd)
	assert.Equal(t, "첫 줄\n", m.TextInput.Value())
	assert.Empty(t, runner.texts)
}

func TestBridge_EmitsInOrder(t *testing.T) {
	var got []tea.Msg
	b := NewBridge(func(id int64) bool { return id == 1 })
	b.SetInputEnabled(false) // dropped, not attached yet
	b.AttachFunc(func(msg tea.Msg) { got = append(got, msg) })

	b.SetInputEnabled(false)
	b.AppendUserTurn("hi")
	b.ShowPending()
	b.HidePending()
	b.AppendAssistantTurn(session.Reply{Text: "ok"})
	b.ShowListings(nil)
	b.ScrollIntoView(1)
	b.SetHighlighted(1, true)
	b.SetInputEnabled(true)

	assert.Equal(t, []tea.Msg{
		inputGateMsg{enabled: false},
		userTurnMsg{text: "hi"},
		pendingMsg{on: true},
		pendingMsg{on: false},
		assistantTurnMsg{reply: session.Reply{Text: "ok"}},
		listingsMsg{items: nil},
		scrollToListingMsg{id: 1},
		highlightMsg{id: 1, on: true},
		inputGateMsg{enabled: true},
	}, got)
	assert.True(t, b.Has(1))
	assert.False(t, b.Has(2))
}

func TestWrappedLineCount(t *testing.T) {
	assert.Equal(t, 1, WrappedLineCount("", 10))
	assert.Equal(t, 2, WrappedLineCount("a\nb", 10))
	assert.Equal(t, 2, WrappedLineCount("가나다라마바", 10))
	assert.Equal(t, 1, WrappedLineCount("abc", 0))
}
