package store

import (
	"context"
	"sync"
)

type pair struct{ a, b string }

// InMemorySocialStore is a development-only in-memory implementation.
type InMemorySocialStore struct {
	mu        sync.RWMutex
	follows   map[pair]bool // (user, artist)
	followSeq []pair        // insertion order for Following
	likes     map[pair]bool // (user, item)
}

func NewInMemorySocialStore() *InMemorySocialStore {
	return &InMemorySocialStore{
		follows: make(map[pair]bool),
		likes:   make(map[pair]bool),
	}
}

func (s *InMemorySocialStore) Follow(_ context.Context, userID, artistID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := pair{userID, artistID}
	if s.follows[p] {
		return false, nil
	}
	s.follows[p] = true
	s.followSeq = append(s.followSeq, p)
	return true, nil
}

func (s *InMemorySocialStore) Unfollow(_ context.Context, userID, artistID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.follows, pair{userID, artistID})
	return nil
}

func (s *InMemorySocialStore) FollowerCount(_ context.Context, artistID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for p := range s.follows {
		if p.b == artistID {
			n++
		}
	}
	return n, nil
}

func (s *InMemorySocialStore) Following(_ context.Context, userID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []string{}
	// newest first
	for i := len(s.followSeq) - 1; i >= 0; i-- {
		p := s.followSeq[i]
		if p.a == userID && s.follows[p] {
			out = append(out, p.b)
		}
	}
	return out, nil
}

func (s *InMemorySocialStore) Like(_ context.Context, userID, itemID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := pair{userID, itemID}
	if s.likes[p] {
		return false, nil
	}
	s.likes[p] = true
	return true, nil
}

func (s *InMemorySocialStore) Unlike(_ context.Context, userID, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.likes, pair{userID, itemID})
	return nil
}

func (s *InMemorySocialStore) LikeCount(_ context.Context, itemID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for p := range s.likes {
		if p.b == itemID {
			n++
		}
	}
	return n, nil
}
