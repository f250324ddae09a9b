package store

import (
	"context"
	"errors"
	"time"
)

var (
	ErrConflict = errors.New("conflict")
	ErrNotFound = errors.New("not found")
)

// User is a platform login identity. Artists are a separate profile entity
// keyed by user id.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateUserParams struct {
	Email        string
	Username     string
	PasswordHash string
}

// UserRow pairs a user with its password hash for credential checks.
type UserRow struct {
	User         User
	PasswordHash string
}

type UserStore interface {
	CreateUser(ctx context.Context, p CreateUserParams) (User, error)
	FindByLogin(ctx context.Context, login string) (UserRow, error)
	FindByID(ctx context.Context, id string) (User, error)
}
