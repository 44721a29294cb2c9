// Package highlight sequences the scroll-then-flash effect on listing cards
// that changed as a side effect of a chat turn.
package highlight

import (
	"sync"
	"time"

	"jol/internal/logger"
)

const (
	DefaultScrollDelay  = 500 * time.Millisecond
	DefaultHoldDuration = 3 * time.Second
)

// Phase is the per-card state: Idle -> Scrolling -> Highlighted -> Idle.
type Phase int

const (
	Idle Phase = iota
	Scrolling
	Highlighted
)

func (p Phase) String() string {
	switch p {
	case Scrolling:
		return "scrolling"
	case Highlighted:
		return "highlighted"
	default:
		return "idle"
	}
}

// Clock runs f once after d.
type Clock interface {
	AfterFunc(d time.Duration, f func())
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) { time.AfterFunc(d, f) }

// RealClock schedules on the runtime timer.
var RealClock Clock = realClock{}

// Targets is the rendered grid as the scheduler sees it.
type Targets interface {
	Has(id int64) bool
	ScrollIntoView(id int64)
	SetHighlighted(id int64, on bool)
}

type Scheduler struct {
	clock        Clock
	targets      Targets
	scrollDelay  time.Duration
	holdDuration time.Duration

	mu     sync.Mutex
	phases map[int64]Phase
}

func NewScheduler(clock Clock, targets Targets, scrollDelay, hold time.Duration) *Scheduler {
	if clock == nil {
		clock = RealClock
	}
	return &Scheduler{
		clock:        clock,
		targets:      targets,
		scrollDelay:  scrollDelay,
		holdDuration: hold,
		phases:       map[int64]Phase{},
	}
}

// Highlight schedules the effect for one card. A card that is not rendered
// is silently skipped. Requests are never cancelled or merged, so two
// requests for the same card may interleave their transitions.
func (s *Scheduler) Highlight(id int64) bool {
	if s.targets == nil || !s.targets.Has(id) {
		logger.Debug("Highlight target not rendered", "listing_id", id)
		return false
	}

	s.setPhase(id, Scrolling)
	s.targets.ScrollIntoView(id)

	s.clock.AfterFunc(s.scrollDelay, func() {
		s.setPhase(id, Highlighted)
		s.targets.SetHighlighted(id, true)

		s.clock.AfterFunc(s.holdDuration, func() {
			s.setPhase(id, Idle)
			s.targets.SetHighlighted(id, false)
		})
	})
	return true
}

// HighlightAll schedules every id independently and returns how many were found.
func (s *Scheduler) HighlightAll(ids []int64) int {
	found := 0
	for _, id := range ids {
		if s.Highlight(id) {
			found++
		}
	}
	return found
}

func (s *Scheduler) Phase(id int64) Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phases[id]
}

func (s *Scheduler) setPhase(id int64, p Phase) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p == Idle {
		delete(s.phases, id)
		return
	}
	s.phases[id] = p
}
