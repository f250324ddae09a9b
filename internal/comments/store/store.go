package store

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("comment not found")

// Comment is the write-side row. Author display fields are assembled only
// for reads; they never live on the entity itself.
type Comment struct {
	ID              string    `json:"id"`
	PortfolioItemID string    `json:"portfolio_item_id"`
	ArtistID        string    `json:"artist_id"`
	ParentID        *string   `json:"parent_id,omitempty"`
	Content         string    `json:"content"`
	IsEdited        bool      `json:"is_edited"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Author is the denormalized artist projection attached to comment reads.
type Author struct {
	ArtistID     string  `json:"artist_id"`
	DisplayName  string  `json:"display_name"`
	Slug         string  `json:"slug"`
	ProfilePhoto *string `json:"profile_photo,omitempty"`
}

type CommentWithAuthor struct {
	Comment
	Author Author `json:"author"`
}

// ThreadNode is a top-level comment with its direct replies.
type ThreadNode struct {
	CommentWithAuthor
	Replies []CommentWithAuthor `json:"replies"`
}

// CommentStore defines the contract for comment persistence.
type CommentStore interface {
	// ListForItem returns the two-level thread for a portfolio item:
	// top-level comments newest-first, each with its replies oldest-first,
	// plus the total number of comments (top-level and replies) on the item.
	// Replies are fetched in one batched query, never per parent.
	ListForItem(ctx context.Context, portfolioItemID string) ([]ThreadNode, int, error)
	Create(ctx context.Context, c Comment) (Comment, error)
	FindByID(ctx context.Context, id string) (Comment, error)
	// UpdateContent sets the content, marks the comment edited, and bumps
	// updated_at. Author, item, and parent are immutable.
	UpdateContent(ctx context.Context, id, content string) error
	// Delete removes the comment and its direct replies atomically.
	Delete(ctx context.Context, id string) error
}
