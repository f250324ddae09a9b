package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const showcaseColumns = `id::text, artist_id::text, title, description, venue, starts_at, ends_at, created_at, updated_at`

// PostgresShowcaseStore persists showcases in Postgres.
type PostgresShowcaseStore struct {
	pool *pgxpool.Pool
}

func NewPostgresShowcaseStore(pool *pgxpool.Pool) *PostgresShowcaseStore {
	return &PostgresShowcaseStore{pool: pool}
}

func (s *PostgresShowcaseStore) Create(ctx context.Context, sc Showcase) (Showcase, error) {
	const q = `INSERT INTO showcases (id, artist_id, title, description, venue, starts_at, ends_at)
	           VALUES ($1, $2, $3, $4, $5, $6, $7)
	           RETURNING ` + showcaseColumns
	row := s.pool.QueryRow(ctx, q, uuid.New(), sc.ArtistID, sc.Title, sc.Description, sc.Venue, sc.StartsAt, sc.EndsAt)
	return scanShowcase(row)
}

func (s *PostgresShowcaseStore) FindByID(ctx context.Context, id string) (Showcase, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+showcaseColumns+` FROM showcases WHERE id = $1`, id)
	sc, err := scanShowcase(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Showcase{}, ErrNotFound
		}
		return Showcase{}, err
	}
	return sc, nil
}

func (s *PostgresShowcaseStore) ListUpcoming(ctx context.Context, now time.Time) ([]Showcase, error) {
	const q = `SELECT s.id::text, s.artist_id::text, s.title, s.description, s.venue,
	                  s.starts_at, s.ends_at, s.created_at, s.updated_at
	           FROM showcases s
	           JOIN artists a ON a.id = s.artist_id
	           WHERE s.starts_at >= $1 AND a.status = 'approved'
	           ORDER BY s.starts_at ASC, s.id ASC`
	return s.list(ctx, q, now)
}

func (s *PostgresShowcaseStore) ListByArtist(ctx context.Context, artistID string) ([]Showcase, error) {
	const q = `SELECT ` + showcaseColumns + ` FROM showcases
	           WHERE artist_id = $1
	           ORDER BY starts_at ASC, id ASC`
	return s.list(ctx, q, artistID)
}

func (s *PostgresShowcaseStore) Update(ctx context.Context, id string, p UpdateParams) (Showcase, error) {
	const q = `UPDATE showcases
	           SET title = $1, description = $2, venue = $3, starts_at = $4, ends_at = $5, updated_at = now()
	           WHERE id = $6
	           RETURNING ` + showcaseColumns
	row := s.pool.QueryRow(ctx, q, p.Title, p.Description, p.Venue, p.StartsAt, p.EndsAt, id)
	sc, err := scanShowcase(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Showcase{}, ErrNotFound
		}
		return Showcase{}, err
	}
	return sc, nil
}

func (s *PostgresShowcaseStore) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM showcases WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresShowcaseStore) list(ctx context.Context, q string, arg any) ([]Showcase, error) {
	rows, err := s.pool.Query(ctx, q, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Showcase{}
	for rows.Next() {
		sc, err := scanShowcase(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

func scanShowcase(row pgx.Row) (Showcase, error) {
	var sc Showcase
	err := row.Scan(&sc.ID, &sc.ArtistID, &sc.Title, &sc.Description, &sc.Venue,
		&sc.StartsAt, &sc.EndsAt, &sc.CreatedAt, &sc.UpdatedAt)
	return sc, err
}
