package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresNotificationStore persists notifications in Postgres.
type PostgresNotificationStore struct {
	pool *pgxpool.Pool
}

func NewPostgresNotificationStore(pool *pgxpool.Pool) *PostgresNotificationStore {
	return &PostgresNotificationStore{pool: pool}
}

func (s *PostgresNotificationStore) Create(ctx context.Context, n Notification) (Notification, error) {
	const q = `INSERT INTO notifications (id, user_id, actor_user_id, kind, subject_id, body)
	           VALUES ($1, $2, $3, $4, $5, $6)
	           RETURNING id::text, user_id::text, COALESCE(actor_user_id::text, ''), kind, COALESCE(subject_id, ''), body, is_read, created_at`
	row := s.pool.QueryRow(ctx, q, uuid.New(), n.UserID, nullable(n.ActorUserID), n.Kind, nullable(n.SubjectID), n.Body)
	var out Notification
	err := row.Scan(&out.ID, &out.UserID, &out.ActorUserID, &out.Kind, &out.SubjectID,
		&out.Body, &out.IsRead, &out.CreatedAt)
	return out, err
}

func (s *PostgresNotificationStore) ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]Notification, error) {
	q := `SELECT id::text, user_id::text, COALESCE(actor_user_id::text, ''), kind, COALESCE(subject_id, ''), body, is_read, created_at
	      FROM notifications WHERE user_id = $1`
	if unreadOnly {
		q += ` AND is_read = false`
	}
	q += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Notification{}
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.ActorUserID, &n.Kind, &n.SubjectID,
			&n.Body, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (s *PostgresNotificationStore) MarkRead(ctx context.Context, userID string, ids []string) error {
	if len(ids) == 0 {
		_, err := s.pool.Exec(ctx,
			`UPDATE notifications SET is_read = true WHERE user_id = $1 AND is_read = false`, userID)
		return err
	}
	_, err := s.pool.Exec(ctx,
		`UPDATE notifications SET is_read = true WHERE user_id = $1 AND id = ANY($2)`, userID, ids)
	return err
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
