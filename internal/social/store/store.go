package store

import "context"

// SocialStore tracks follows (user -> artist) and likes (user -> portfolio
// item). All writes are idempotent upserts; Follow and Like report whether
// the call actually changed state so event publishing can skip repeats.
type SocialStore interface {
	Follow(ctx context.Context, userID, artistID string) (bool, error)
	Unfollow(ctx context.Context, userID, artistID string) error
	FollowerCount(ctx context.Context, artistID string) (int, error)
	Following(ctx context.Context, userID string) ([]string, error)

	Like(ctx context.Context, userID, itemID string) (bool, error)
	Unlike(ctx context.Context, userID, itemID string) error
	LikeCount(ctx context.Context, itemID string) (int, error)
}
