package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// StatusSource reports whether an artist is publicly visible. The Postgres
// store joins the artists table; the in-memory store asks this instead.
type StatusSource interface {
	IsApproved(ctx context.Context, artistID string) bool
}

// InMemoryShowcaseStore is a development-only in-memory implementation.
type InMemoryShowcaseStore struct {
	mu        sync.RWMutex
	showcases map[string]Showcase
	statuses  StatusSource
}

func NewInMemoryShowcaseStore(statuses StatusSource) *InMemoryShowcaseStore {
	return &InMemoryShowcaseStore{showcases: make(map[string]Showcase), statuses: statuses}
}

func (s *InMemoryShowcaseStore) Create(_ context.Context, sc Showcase) (Showcase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	sc.ID = uuid.NewString()
	sc.CreatedAt = now
	sc.UpdatedAt = now
	s.showcases[sc.ID] = sc
	return sc, nil
}

func (s *InMemoryShowcaseStore) FindByID(_ context.Context, id string) (Showcase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sc, ok := s.showcases[id]
	if !ok {
		return Showcase{}, ErrNotFound
	}
	return sc, nil
}

func (s *InMemoryShowcaseStore) ListUpcoming(ctx context.Context, now time.Time) ([]Showcase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []Showcase{}
	for _, sc := range s.showcases {
		if sc.StartsAt.Before(now) {
			continue
		}
		if s.statuses != nil && !s.statuses.IsApproved(ctx, sc.ArtistID) {
			continue
		}
		out = append(out, sc)
	}
	sortByStart(out)
	return out, nil
}

func (s *InMemoryShowcaseStore) ListByArtist(_ context.Context, artistID string) ([]Showcase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []Showcase{}
	for _, sc := range s.showcases {
		if sc.ArtistID == artistID {
			out = append(out, sc)
		}
	}
	sortByStart(out)
	return out, nil
}

func (s *InMemoryShowcaseStore) Update(_ context.Context, id string, p UpdateParams) (Showcase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc, ok := s.showcases[id]
	if !ok {
		return Showcase{}, ErrNotFound
	}
	sc.Title = p.Title
	sc.Description = p.Description
	sc.Venue = p.Venue
	sc.StartsAt = p.StartsAt
	sc.EndsAt = p.EndsAt
	sc.UpdatedAt = time.Now().UTC()
	s.showcases[id] = sc
	return sc, nil
}

func (s *InMemoryShowcaseStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.showcases[id]; !ok {
		return ErrNotFound
	}
	delete(s.showcases, id)
	return nil
}

func sortByStart(list []Showcase) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].StartsAt.Equal(list[j].StartsAt) {
			return list[i].StartsAt.Before(list[j].StartsAt)
		}
		return list[i].ID < list[j].ID
	})
}
