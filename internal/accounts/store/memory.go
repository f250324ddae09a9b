package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryUserStore is a development-only in-memory implementation.
type InMemoryUserStore struct {
	mu     sync.RWMutex
	users  map[string]User   // id -> user
	hashes map[string]string // id -> password hash
}

func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{
		users:  make(map[string]User),
		hashes: make(map[string]string),
	}
}

func (s *InMemoryUserStore) CreateUser(_ context.Context, p CreateUserParams) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, p.Email) || strings.EqualFold(u.Username, p.Username) {
			return User{}, ErrConflict
		}
	}

	u := User{
		ID:        uuid.NewString(),
		Email:     p.Email,
		Username:  p.Username,
		Role:      "user",
		CreatedAt: time.Now().UTC(),
	}
	s.users[u.ID] = u
	s.hashes[u.ID] = p.PasswordHash
	return u, nil
}

func (s *InMemoryUserStore) FindByLogin(_ context.Context, login string) (UserRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	login = strings.TrimSpace(login)
	for _, u := range s.users {
		if strings.EqualFold(u.Email, login) || strings.EqualFold(u.Username, login) {
			return UserRow{User: u, PasswordHash: s.hashes[u.ID]}, nil
		}
	}
	return UserRow{}, ErrNotFound
}

func (s *InMemoryUserStore) FindByID(_ context.Context, id string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

// SetRole promotes or demotes a user. Development helper.
func (s *InMemoryUserStore) SetRole(id, role string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		u.Role = role
		s.users[id] = u
	}
}
