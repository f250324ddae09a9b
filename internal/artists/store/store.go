package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	slugify "github.com/gosimple/slug"
)

var (
	ErrNotFound = errors.New("artist not found")
	ErrConflict = errors.New("artist already exists")
)

// Status is the moderation state of an artist profile. Only approved
// profiles are visible in the public directory and commentable.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusSuspended Status = "suspended"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusApproved, StatusRejected, StatusSuspended:
		return true
	}
	return false
}

type Artist struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	DisplayName  string    `json:"display_name"`
	Slug         string    `json:"slug"`
	Bio          string    `json:"bio"`
	ProfilePhoto *string   `json:"profile_photo,omitempty"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type UpdateProfileParams struct {
	DisplayName  string
	Bio          string
	ProfilePhoto *string
	Status       Status
}

type ListParams struct {
	Query  string // case-insensitive substring match on display name
	Status Status
	Limit  int
	Offset int
}

type ArtistStore interface {
	Create(ctx context.Context, a Artist) (Artist, error)
	FindByID(ctx context.Context, id string) (Artist, error)
	FindByUserID(ctx context.Context, userID string) (Artist, error)
	FindBySlug(ctx context.Context, s string) (Artist, error)
	SlugExists(ctx context.Context, s string) (bool, error)
	List(ctx context.Context, p ListParams) ([]Artist, int, error)
	UpdateProfile(ctx context.Context, id string, p UpdateProfileParams) (Artist, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
}

// GenerateSlug derives a URL slug from the display name. A single existence
// check is made; on collision a random hex suffix is appended.
func GenerateSlug(ctx context.Context, s ArtistStore, displayName string) (string, error) {
	base := slugify.Make(displayName)
	if base == "" {
		base = "artist"
	}
	exists, err := s.SlugExists(ctx, base)
	if err != nil {
		return "", err
	}
	if !exists {
		return base, nil
	}
	return base + "-" + randomSuffix(), nil
}

func randomSuffix() string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
