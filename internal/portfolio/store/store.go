package store

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("portfolio item not found")

type Item struct {
	ID          string    `json:"id"`
	ArtistID    string    `json:"artist_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	Position    int       `json:"position"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type UpdateParams struct {
	Title       string
	Description string
	ImageURL    string
	Position    int
}

type ItemStore interface {
	Create(ctx context.Context, it Item) (Item, error)
	FindByID(ctx context.Context, id string) (Item, error)
	// ListByArtist returns all items for an artist ordered by position,
	// oldest first among equal positions.
	ListByArtist(ctx context.Context, artistID string) ([]Item, error)
	Update(ctx context.Context, id string, p UpdateParams) (Item, error)
	Delete(ctx context.Context, id string) error
}
