package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Cascade is notified after an item is removed so dependent in-memory
// stores can mirror the schema's ON DELETE CASCADE.
type Cascade interface {
	ItemDeleted(ctx context.Context, itemID string)
}

// InMemoryItemStore is a development-only in-memory implementation.
type InMemoryItemStore struct {
	mu       sync.RWMutex
	items    map[string]Item // id -> item
	cascades []Cascade
}

func NewInMemoryItemStore(cascades ...Cascade) *InMemoryItemStore {
	return &InMemoryItemStore{items: make(map[string]Item), cascades: cascades}
}

func (s *InMemoryItemStore) Create(_ context.Context, it Item) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	it.ID = uuid.NewString()
	it.CreatedAt = now
	it.UpdatedAt = now
	s.items[it.ID] = it
	return it, nil
}

func (s *InMemoryItemStore) FindByID(_ context.Context, id string) (Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	it, ok := s.items[id]
	if !ok {
		return Item{}, ErrNotFound
	}
	return it, nil
}

func (s *InMemoryItemStore) ListByArtist(_ context.Context, artistID string) ([]Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []Item{}
	for _, it := range s.items {
		if it.ArtistID == artistID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *InMemoryItemStore) Update(_ context.Context, id string, p UpdateParams) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.items[id]
	if !ok {
		return Item{}, ErrNotFound
	}
	it.Title = p.Title
	it.Description = p.Description
	it.ImageURL = p.ImageURL
	it.Position = p.Position
	it.UpdatedAt = time.Now().UTC()
	s.items[id] = it
	return it, nil
}

func (s *InMemoryItemStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	if _, ok := s.items[id]; !ok {
		s.mu.Unlock()
		return ErrNotFound
	}
	delete(s.items, id)
	s.mu.Unlock()

	for _, c := range s.cascades {
		c.ItemDeleted(ctx, id)
	}
	return nil
}
