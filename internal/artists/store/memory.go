package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryArtistStore is a development-only in-memory implementation.
type InMemoryArtistStore struct {
	mu      sync.RWMutex
	artists map[string]Artist // id -> artist
}

func NewInMemoryArtistStore() *InMemoryArtistStore {
	return &InMemoryArtistStore{artists: make(map[string]Artist)}
}

func (s *InMemoryArtistStore) Create(_ context.Context, a Artist) (Artist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.artists {
		if existing.UserID == a.UserID || existing.Slug == a.Slug {
			return Artist{}, ErrConflict
		}
	}

	now := time.Now().UTC()
	a.ID = uuid.NewString()
	a.CreatedAt = now
	a.UpdatedAt = now
	s.artists[a.ID] = a
	return a, nil
}

func (s *InMemoryArtistStore) FindByID(_ context.Context, id string) (Artist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.artists[id]
	if !ok {
		return Artist{}, ErrNotFound
	}
	return a, nil
}

func (s *InMemoryArtistStore) FindByUserID(_ context.Context, userID string) (Artist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.artists {
		if a.UserID == userID {
			return a, nil
		}
	}
	return Artist{}, ErrNotFound
}

func (s *InMemoryArtistStore) FindBySlug(_ context.Context, slug string) (Artist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.artists {
		if a.Slug == slug {
			return a, nil
		}
	}
	return Artist{}, ErrNotFound
}

func (s *InMemoryArtistStore) SlugExists(_ context.Context, slug string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.artists {
		if a.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (s *InMemoryArtistStore) List(_ context.Context, p ListParams) ([]Artist, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p.Limit <= 0 || p.Limit > 100 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}

	var matched []Artist
	for _, a := range s.artists {
		if a.Status != p.Status {
			continue
		}
		if p.Query != "" && !strings.Contains(strings.ToLower(a.DisplayName), strings.ToLower(p.Query)) {
			continue
		}
		matched = append(matched, a)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	total := len(matched)
	if p.Offset >= total {
		return []Artist{}, total, nil
	}
	matched = matched[p.Offset:]
	if len(matched) > p.Limit {
		matched = matched[:p.Limit]
	}
	return matched, total, nil
}

func (s *InMemoryArtistStore) UpdateProfile(_ context.Context, id string, p UpdateProfileParams) (Artist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.artists[id]
	if !ok {
		return Artist{}, ErrNotFound
	}
	a.DisplayName = p.DisplayName
	a.Bio = p.Bio
	a.ProfilePhoto = p.ProfilePhoto
	a.Status = p.Status
	a.UpdatedAt = time.Now().UTC()
	s.artists[id] = a
	return a, nil
}

func (s *InMemoryArtistStore) UpdateStatus(_ context.Context, id string, status Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.artists[id]
	if !ok {
		return ErrNotFound
	}
	a.Status = status
	a.UpdatedAt = time.Now().UTC()
	s.artists[id] = a
	return nil
}
