package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSocialStore persists follows and likes in Postgres. Both tables
// have a composite primary key, so upserts use ON CONFLICT DO NOTHING.
type PostgresSocialStore struct {
	pool *pgxpool.Pool
}

func NewPostgresSocialStore(pool *pgxpool.Pool) *PostgresSocialStore {
	return &PostgresSocialStore{pool: pool}
}

func (s *PostgresSocialStore) Follow(ctx context.Context, userID, artistID string) (bool, error) {
	tag, err := s.pool.Exec(ctx,
		`INSERT INTO follows (user_id, artist_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		userID, artistID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *PostgresSocialStore) Unfollow(ctx context.Context, userID, artistID string) error {
	_, err := s.pool.Exec(ctx,
		`DELETE FROM follows WHERE user_id = $1 AND artist_id = $2`, userID, artistID)
	return err
}

func (s *PostgresSocialStore) FollowerCount(ctx context.Context, artistID string) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM follows WHERE artist_id = $1`, artistID).Scan(&n)
	return n, err
}

func (s *PostgresSocialStore) Following(ctx context.Context, userID string) ([]string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT artist_id::text FROM follows WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (s *PostgresSocialStore) Like(ctx context.Context, userID, itemID string) (bool, error) {
	tag, err := s.pool.Exec(ctx,
		`INSERT INTO likes (user_id, item_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		userID, itemID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *PostgresSocialStore) Unlike(ctx context.Context, userID, itemID string) error {
	_, err := s.pool.Exec(ctx,
		`DELETE FROM likes WHERE user_id = $1 AND item_id = $2`, userID, itemID)
	return err
}

func (s *PostgresSocialStore) LikeCount(ctx context.Context, itemID string) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM likes WHERE item_id = $1`, itemID).Scan(&n)
	return n, err
}
