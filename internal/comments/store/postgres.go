package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const commentWithAuthorColumns = `c.id::text, c.portfolio_item_id::text, c.artist_id::text, c.parent_id::text,
	c.content, c.is_edited, c.created_at, c.updated_at,
	a.id::text, a.display_name, a.slug, a.profile_photo`

// PostgresCommentStore persists comments in Postgres. Reads join the artists
// table for the author projection.
type PostgresCommentStore struct {
	pool *pgxpool.Pool
}

func NewPostgresCommentStore(pool *pgxpool.Pool) *PostgresCommentStore {
	return &PostgresCommentStore{pool: pool}
}

func (s *PostgresCommentStore) ListForItem(ctx context.Context, portfolioItemID string) ([]ThreadNode, int, error) {
	const rootsQ = `SELECT ` + commentWithAuthorColumns + `
	                FROM comments c
	                JOIN artists a ON a.id = c.artist_id
	                WHERE c.portfolio_item_id = $1 AND c.parent_id IS NULL
	                ORDER BY c.created_at DESC, c.id DESC`
	roots, err := s.scanComments(ctx, rootsQ, portfolioItemID)
	if err != nil {
		return nil, 0, err
	}

	replyMap := make(map[string][]CommentWithAuthor)
	if len(roots) > 0 {
		rootIDs := make([]string, len(roots))
		for i, r := range roots {
			rootIDs[i] = r.ID
		}
		const repliesQ = `SELECT ` + commentWithAuthorColumns + `
		                  FROM comments c
		                  JOIN artists a ON a.id = c.artist_id
		                  WHERE c.parent_id = ANY($1)
		                  ORDER BY c.created_at ASC, c.id ASC`
		replies, err := s.scanComments(ctx, repliesQ, rootIDs)
		if err != nil {
			return nil, 0, err
		}
		for _, r := range replies {
			replyMap[*r.ParentID] = append(replyMap[*r.ParentID], r)
		}
	}

	var total int
	err = s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM comments WHERE portfolio_item_id = $1`, portfolioItemID).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	nodes := make([]ThreadNode, len(roots))
	for i, r := range roots {
		nodes[i] = ThreadNode{CommentWithAuthor: r, Replies: replyMap[r.ID]}
		if nodes[i].Replies == nil {
			nodes[i].Replies = []CommentWithAuthor{}
		}
	}
	return nodes, total, nil
}

func (s *PostgresCommentStore) Create(ctx context.Context, c Comment) (Comment, error) {
	const q = `INSERT INTO comments (id, portfolio_item_id, artist_id, parent_id, content)
	           VALUES ($1, $2, $3, $4, $5)
	           RETURNING id::text, portfolio_item_id::text, artist_id::text, parent_id::text,
	                     content, is_edited, created_at, updated_at`
	row := s.pool.QueryRow(ctx, q, uuid.New(), c.PortfolioItemID, c.ArtistID, c.ParentID, c.Content)
	var out Comment
	err := row.Scan(&out.ID, &out.PortfolioItemID, &out.ArtistID, &out.ParentID,
		&out.Content, &out.IsEdited, &out.CreatedAt, &out.UpdatedAt)
	return out, err
}

func (s *PostgresCommentStore) FindByID(ctx context.Context, id string) (Comment, error) {
	const q = `SELECT id::text, portfolio_item_id::text, artist_id::text, parent_id::text,
	                  content, is_edited, created_at, updated_at
	           FROM comments WHERE id = $1`
	var out Comment
	err := s.pool.QueryRow(ctx, q, id).Scan(&out.ID, &out.PortfolioItemID, &out.ArtistID,
		&out.ParentID, &out.Content, &out.IsEdited, &out.CreatedAt, &out.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Comment{}, ErrNotFound
	}
	return out, err
}

func (s *PostgresCommentStore) UpdateContent(ctx context.Context, id, content string) error {
	const q = `UPDATE comments SET content = $1, is_edited = true, updated_at = now() WHERE id = $2`
	tag, err := s.pool.Exec(ctx, q, content, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes replies first, then the comment, in one transaction. The
// schema also carries an ON DELETE CASCADE foreign key, but the two-step
// delete keeps the behavior independent of it.
func (s *PostgresCommentStore) Delete(ctx context.Context, id string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM comments WHERE parent_id = $1`, id); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return tx.Commit(ctx)
}

func (s *PostgresCommentStore) scanComments(ctx context.Context, q string, args ...any) ([]CommentWithAuthor, error) {
	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CommentWithAuthor
	for rows.Next() {
		var c CommentWithAuthor
		if err := rows.Scan(&c.ID, &c.PortfolioItemID, &c.ArtistID, &c.ParentID,
			&c.Content, &c.IsEdited, &c.CreatedAt, &c.UpdatedAt,
			&c.Author.ArtistID, &c.Author.DisplayName, &c.Author.Slug, &c.Author.ProfilePhoto); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
