package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memNotification struct {
	Notification
	seq int64
}

// InMemoryNotificationStore is a development-only in-memory implementation.
type InMemoryNotificationStore struct {
	mu      sync.RWMutex
	byID    map[string]memNotification
	nextSeq int64
}

func NewInMemoryNotificationStore() *InMemoryNotificationStore {
	return &InMemoryNotificationStore{byID: make(map[string]memNotification)}
}

func (s *InMemoryNotificationStore) Create(_ context.Context, n Notification) (Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n.ID = uuid.NewString()
	n.IsRead = false
	n.CreatedAt = time.Now().UTC()
	s.nextSeq++
	s.byID[n.ID] = memNotification{Notification: n, seq: s.nextSeq}
	return n, nil
}

func (s *InMemoryNotificationStore) ListByUser(_ context.Context, userID string, unreadOnly bool) ([]Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []memNotification
	for _, n := range s.byID {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		matched = append(matched, n)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].seq > matched[j].seq
	})

	out := make([]Notification, len(matched))
	for i, n := range matched {
		out[i] = n.Notification
	}
	return out, nil
}

func (s *InMemoryNotificationStore) MarkRead(_ context.Context, userID string, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(ids) == 0 {
		for id, n := range s.byID {
			if n.UserID == userID {
				n.IsRead = true
				s.byID[id] = n
			}
		}
		return nil
	}
	for _, id := range ids {
		if n, ok := s.byID[id]; ok && n.UserID == userID {
			n.IsRead = true
			s.byID[id] = n
		}
	}
	return nil
}
