package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cast"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ToolQueryListings is the action name the agent reports for listing searches.
const ToolQueryListings = "query_listings"

// ChatTurn is one entry of the conversation history sent back to the agent.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Message string     `json:"message"`
	History []ChatTurn `json:"history"`
}

// ActionRecord is a tool invocation reported by the agent. Result is kept raw
// because every tool answers with its own shape.
type ActionRecord struct {
	Tool   string          `json:"tool"`
	Result json.RawMessage `json:"result,omitempty"`
}

type SuggestedAction struct {
	Label  string         `json:"label"`
	Action string         `json:"action"`
	Params map[string]any `json:"params,omitempty"`
}

type ChatResponse struct {
	Response         string            `json:"response"`
	Reasoning        string            `json:"reasoning,omitempty"`
	ActionsTaken     []ActionRecord    `json:"actions_taken,omitempty"`
	SuggestedActions []SuggestedAction `json:"suggested_actions,omitempty"`
	UpdatedListings  []int64           `json:"updated_listings,omitempty"`
}

type Listing struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	Content       string     `json:"content"`
	Price         int64      `json:"price"`
	Category      string     `json:"category"`
	Region        string     `json:"region"`
	ImageURL      string     `json:"image_url,omitempty"`
	Status        string     `json:"status,omitempty"`
	BoostCount    int        `json:"boost_count"`
	CreatedAt     Timestamp  `json:"created_at"`
	UpdatedAt     *Timestamp `json:"updated_at,omitempty"`
	LastBoostedAt *Timestamp `json:"last_boosted_at,omitempty"`
}

// DisplayTime is the moment shown on a card: the last boost, or creation.
func (l Listing) DisplayTime() time.Time {
	if l.LastBoostedAt != nil && !l.LastBoostedAt.IsZero() {
		return l.LastBoostedAt.Time
	}
	return l.CreatedAt.Time
}

// Timestamp accepts both RFC 3339 values and the zone-less
// "2006-01-02 15:04:05" form SQLite produces. Zone-less values are local time.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		t.Time = time.Time{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	parsed, err := cast.ToTimeInDefaultLocationE(raw, time.Local)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q: %w", raw, err)
	}
	t.Time = parsed
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339))
}
