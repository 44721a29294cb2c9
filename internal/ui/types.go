package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"

	"jol/internal/format"
	"jol/internal/models"
	"jol/internal/session"
)

const (
	WideLayoutThresh = 110 // Width at or above which chat and grid sit side by side
	MaxInputHeight   = 6
	CardWidth        = 34
)

type focusPane int

const (
	focusChat focusPane = iota
	focusGrid
)

// Messages delivered from controller, store and scheduler goroutines.
type (
	inputGateMsg       struct{ enabled bool }
	userTurnMsg        struct{ text string }
	pendingMsg         struct{ on bool }
	assistantTurnMsg   struct{ reply session.Reply }
	listingsMsg        struct{ items []models.Listing }
	scrollToListingMsg struct{ id int64 }
	highlightMsg       struct {
		id int64
		on bool
	}
	turnDoneMsg struct {
		outcome session.Outcome
		err     error
	}
	refreshDoneMsg struct{ err error }
)

// TurnRunner runs one conversational turn. *session.Controller satisfies it.
type TurnRunner interface {
	SubmitTurn(ctx context.Context, text string) (session.Outcome, error)
}

// Refresher reloads the listing collection. *listings.Store satisfies it.
type Refresher interface {
	Refresh(ctx context.Context, sortBy, sortOrder string) error
}

// Options configures the TUI model.
type Options struct {
	Controller  TurnRunner
	Store       Refresher
	Locale      format.Locale
	SortBy      string
	SortOrder   string
	Placeholder string
	APIBase     string
	SessionID   string
	Now         func() time.Time
}

type Model struct {
	opts Options
	keys keyMap

	ChatViewport viewport.Model
	GridViewport viewport.Model
	TextInput    textarea.Model
	Spinner      spinner.Model
	Renderer     *glamour.TermRenderer

	Messages     []string
	Listings     []models.Listing
	Highlighted  map[int64]bool
	gridOffsets  map[int64]int
	gridHeights  map[int64]int
	InputEnabled bool
	Loading      bool
	Focus        focusPane
	LastErr      error

	WindowWidth  int
	WindowHeight int
	chatWidth    int
	gridWidth    int
}
