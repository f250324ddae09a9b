package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const itemColumns = `id::text, artist_id::text, title, description, image_url, position, created_at, updated_at`

// PostgresItemStore persists portfolio items in Postgres. Comments hang off
// items via an ON DELETE CASCADE foreign key, so deleting an item here also
// removes its thread.
type PostgresItemStore struct {
	pool *pgxpool.Pool
}

func NewPostgresItemStore(pool *pgxpool.Pool) *PostgresItemStore {
	return &PostgresItemStore{pool: pool}
}

func (s *PostgresItemStore) Create(ctx context.Context, it Item) (Item, error) {
	const q = `INSERT INTO portfolio_items (id, artist_id, title, description, image_url, position)
	           VALUES ($1, $2, $3, $4, $5, $6)
	           RETURNING ` + itemColumns
	row := s.pool.QueryRow(ctx, q, uuid.New(), it.ArtistID, it.Title, it.Description, it.ImageURL, it.Position)
	return scanItem(row)
}

func (s *PostgresItemStore) FindByID(ctx context.Context, id string) (Item, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+itemColumns+` FROM portfolio_items WHERE id = $1`, id)
	it, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Item{}, ErrNotFound
		}
		return Item{}, err
	}
	return it, nil
}

func (s *PostgresItemStore) ListByArtist(ctx context.Context, artistID string) ([]Item, error) {
	const q = `SELECT ` + itemColumns + ` FROM portfolio_items
	           WHERE artist_id = $1
	           ORDER BY position ASC, created_at ASC, id ASC`
	rows, err := s.pool.Query(ctx, q, artistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (s *PostgresItemStore) Update(ctx context.Context, id string, p UpdateParams) (Item, error) {
	const q = `UPDATE portfolio_items
	           SET title = $1, description = $2, image_url = $3, position = $4, updated_at = now()
	           WHERE id = $5
	           RETURNING ` + itemColumns
	row := s.pool.QueryRow(ctx, q, p.Title, p.Description, p.ImageURL, p.Position, id)
	it, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Item{}, ErrNotFound
		}
		return Item{}, err
	}
	return it, nil
}

func (s *PostgresItemStore) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM portfolio_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanItem(row pgx.Row) (Item, error) {
	var it Item
	err := row.Scan(&it.ID, &it.ArtistID, &it.Title, &it.Description, &it.ImageURL,
		&it.Position, &it.CreatedAt, &it.UpdatedAt)
	return it, err
}
