// Package listings owns the collection currently shown in the grid.
package listings

import (
	"context"
	"sync"

	"jol/internal/logger"
	"jol/internal/models"
)

const (
	DefaultSortBy    = "last_boosted_at"
	DefaultSortOrder = "DESC"
)

type Fetcher interface {
	FetchListings(ctx context.Context, sortBy, sortOrder string) ([]models.Listing, error)
}

// Presenter receives every fresh collection for rendering.
type Presenter interface {
	ShowListings(items []models.Listing)
}

type Store struct {
	fetcher   Fetcher
	presenter Presenter

	mu    sync.RWMutex
	items []models.Listing
	ids   map[int64]struct{}
}

func NewStore(fetcher Fetcher, presenter Presenter) *Store {
	return &Store{
		fetcher:   fetcher,
		presenter: presenter,
		items:     []models.Listing{},
		ids:       map[int64]struct{}{},
	}
}

// SetPresenter swaps the render target; used once the TUI program exists.
func (s *Store) SetPresenter(p Presenter) {
	s.mu.Lock()
	s.presenter = p
	s.mu.Unlock()
}

// Refresh fetches the full collection and replaces the current one in a
// single step. On failure the previous collection stays in place and the
// error is logged and returned. Overlapping refreshes resolve to whichever
// fetch completes last.
func (s *Store) Refresh(ctx context.Context, sortBy, sortOrder string) error {
	items, err := s.fetcher.FetchListings(ctx, sortBy, sortOrder)
	if err != nil {
		logger.Error("Failed to load listings", "sort_by", sortBy, "sort_order", sortOrder, "error", err)
		return err
	}
	s.Replace(items)
	logger.Debug("Listings refreshed", "count", len(items), "sort_by", sortBy)
	return nil
}

// Replace installs items as the current collection and presents it.
func (s *Store) Replace(items []models.Listing) {
	snapshot := make([]models.Listing, len(items))
	copy(snapshot, items)
	ids := make(map[int64]struct{}, len(snapshot))
	for _, l := range snapshot {
		ids[l.ID] = struct{}{}
	}

	s.mu.Lock()
	s.items = snapshot
	s.ids = ids
	presenter := s.presenter
	s.mu.Unlock()

	if presenter != nil {
		presenter.ShowListings(s.Listings())
	}
}

// Listings returns a copy of the current collection.
func (s *Store) Listings() []models.Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Listing, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Contains reports whether a listing with id is part of the current collection.
func (s *Store) Contains(id int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.ids[id]
	return ok
}
