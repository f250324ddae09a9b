package store

import (
	"context"
	"time"
)

// Kind classifies what a notification is about.
type Kind string

const (
	KindComment Kind = "comment"
	KindReply   Kind = "reply"
	KindFollow  Kind = "follow"
	KindLike    Kind = "like"
)

type Notification struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	ActorUserID string    `json:"actor_user_id,omitempty"`
	Kind        Kind      `json:"kind"`
	SubjectID   string    `json:"subject_id,omitempty"`
	Body        string    `json:"body"`
	IsRead      bool      `json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
}

type NotificationStore interface {
	Create(ctx context.Context, n Notification) (Notification, error)
	// ListByUser returns the user's notifications newest first.
	ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]Notification, error)
	// MarkRead marks the given ids as read, or everything for the user when
	// ids is empty.
	MarkRead(ctx context.Context, userID string, ids []string) error
}
