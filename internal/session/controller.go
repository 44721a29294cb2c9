// Package session owns the conversation: the chat history and the lifecycle
// of a single turn from user input to rendered reply.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	"jol/internal/actions"
	"jol/internal/logger"
	"jol/internal/models"
)

// ErrTurnInFlight is returned when a turn is submitted while input is disabled.
var ErrTurnInFlight = errors.New("a chat turn is already in flight")

// Outcome describes how a submitted turn settled.
type Outcome int

const (
	Skipped Outcome = iota
	Completed
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	default:
		return "skipped"
	}
}

type Transport interface {
	SendMessage(ctx context.Context, message string, history []models.ChatTurn) (*models.ChatResponse, error)
}

// Transcript is the visible side of the conversation.
type Transcript interface {
	SetInputEnabled(enabled bool)
	AppendUserTurn(text string)
	ShowPending()
	HidePending()
	AppendAssistantTurn(reply Reply)
}

// Reply is everything rendered for one assistant turn.
type Reply struct {
	Text        string
	Listings    []models.Listing // inline cards, nil when none
	Suggestions []models.SuggestedAction
	Fallback    bool // Text is the local failure notice, not an agent reply
}

type Refresher interface {
	Refresh(ctx context.Context, sortBy, sortOrder string) error
}

type Highlighter interface {
	HighlightAll(ids []int64) int
}

type Options struct {
	Transport   Transport
	Transcript  Transcript
	Listings    Refresher
	Highlighter Highlighter
	SortBy      string
	SortOrder   string
	Fallback    string
}

type Controller struct {
	opts Options

	mu       sync.Mutex
	history  []models.ChatTurn
	inFlight bool
}

func NewController(opts Options) *Controller {
	return &Controller{opts: opts, history: []models.ChatTurn{}}
}

// History returns a copy of the conversation so far.
func (c *Controller) History() []models.ChatTurn {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.ChatTurn, len(c.history))
	copy(out, c.history)
	return out
}

// InFlight reports whether input is currently disabled by a turn.
func (c *Controller) InFlight() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}

// SubmitTurn runs one conversational turn to completion. Blank input is
// ignored. Chat transport failures are turned into the fallback notice and
// never touch the history. Input is re-enabled as the very last step.
func (c *Controller) SubmitTurn(ctx context.Context, text string) (Outcome, error) {
	message := strings.TrimSpace(text)
	if message == "" {
		return Skipped, nil
	}

	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return Skipped, ErrTurnInFlight
	}
	c.inFlight = true
	prior := make([]models.ChatTurn, len(c.history))
	copy(prior, c.history)
	view := c.opts.Transcript
	c.mu.Unlock()

	view.SetInputEnabled(false)
	defer func() {
		c.mu.Lock()
		c.inFlight = false
		c.mu.Unlock()
		view.SetInputEnabled(true)
	}()

	view.AppendUserTurn(message)
	view.ShowPending()

	resp, err := c.opts.Transport.SendMessage(ctx, message, prior)
	if err != nil {
		view.HidePending()
		logger.Error("Chat API error", "error", err)
		view.AppendAssistantTurn(Reply{Text: c.opts.Fallback, Fallback: true})
		return Failed, nil
	}

	view.HidePending()

	inline, _ := actions.FirstQueriedListings(resp.ActionsTaken)
	logger.Debug("Chat response received",
		"actions", len(resp.ActionsTaken),
		"query_actions", actions.CountQueries(resp.ActionsTaken),
		"inline_listings", len(inline),
		"updated_listings", resp.UpdatedListings)

	view.AppendAssistantTurn(Reply{
		Text:        resp.Response,
		Listings:    inline,
		Suggestions: resp.SuggestedActions,
	})

	c.mu.Lock()
	c.history = append(c.history,
		models.ChatTurn{Role: models.RoleUser, Content: message},
		models.ChatTurn{Role: models.RoleAssistant, Content: resp.Response},
	)
	c.mu.Unlock()

	if len(resp.UpdatedListings) > 0 {
		if c.opts.Listings != nil {
			// A failed refresh is logged by the store and the previous grid
			// stays, so highlighting still targets whatever is rendered.
			_ = c.opts.Listings.Refresh(ctx, c.opts.SortBy, c.opts.SortOrder)
		}
		if c.opts.Highlighter != nil {
			c.opts.Highlighter.HighlightAll(resp.UpdatedListings)
		}
	}

	return Completed, nil
}
