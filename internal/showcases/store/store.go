package store

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("showcase not found")

// Showcase is a dated artist event: an exhibition, fair, or workshop.
type Showcase struct {
	ID          string     `json:"id"`
	ArtistID    string     `json:"artist_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Venue       string     `json:"venue"`
	StartsAt    time.Time  `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type UpdateParams struct {
	Title       string
	Description string
	Venue       string
	StartsAt    time.Time
	EndsAt      *time.Time
}

type ShowcaseStore interface {
	Create(ctx context.Context, s Showcase) (Showcase, error)
	FindByID(ctx context.Context, id string) (Showcase, error)
	// ListUpcoming returns showcases starting at or after now for approved
	// artists only, soonest first.
	ListUpcoming(ctx context.Context, now time.Time) ([]Showcase, error)
	// ListByArtist returns all of one artist's showcases, soonest first.
	ListByArtist(ctx context.Context, artistID string) ([]Showcase, error)
	Update(ctx context.Context, id string, p UpdateParams) (Showcase, error)
	Delete(ctx context.Context, id string) error
}
