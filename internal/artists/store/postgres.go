package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const artistColumns = `id::text, user_id::text, display_name, slug, bio, profile_photo, status, created_at, updated_at`

// PostgresArtistStore persists artist profiles in Postgres.
type PostgresArtistStore struct {
	pool *pgxpool.Pool
}

func NewPostgresArtistStore(pool *pgxpool.Pool) *PostgresArtistStore {
	return &PostgresArtistStore{pool: pool}
}

func (s *PostgresArtistStore) Create(ctx context.Context, a Artist) (Artist, error) {
	const q = `INSERT INTO artists (id, user_id, display_name, slug, bio, profile_photo, status)
	           VALUES ($1, $2, $3, $4, $5, $6, $7)
	           RETURNING ` + artistColumns
	row := s.pool.QueryRow(ctx, q, uuid.New(), a.UserID, a.DisplayName, a.Slug, a.Bio, a.ProfilePhoto, a.Status)
	out, err := scanArtist(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Artist{}, ErrConflict
		}
		return Artist{}, err
	}
	return out, nil
}

func (s *PostgresArtistStore) FindByID(ctx context.Context, id string) (Artist, error) {
	return s.findOne(ctx, `SELECT `+artistColumns+` FROM artists WHERE id = $1`, id)
}

func (s *PostgresArtistStore) FindByUserID(ctx context.Context, userID string) (Artist, error) {
	return s.findOne(ctx, `SELECT `+artistColumns+` FROM artists WHERE user_id = $1`, userID)
}

func (s *PostgresArtistStore) FindBySlug(ctx context.Context, slug string) (Artist, error) {
	return s.findOne(ctx, `SELECT `+artistColumns+` FROM artists WHERE slug = $1`, slug)
}

func (s *PostgresArtistStore) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM artists WHERE slug = $1)`, slug).Scan(&exists)
	return exists, err
}

func (s *PostgresArtistStore) List(ctx context.Context, p ListParams) ([]Artist, int, error) {
	if p.Limit <= 0 || p.Limit > 100 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}

	where := `WHERE status = $1`
	args := []any{p.Status}
	if p.Query != "" {
		args = append(args, "%"+p.Query+"%")
		where += fmt.Sprintf(` AND display_name ILIKE $%d`, len(args))
	}

	var total int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM artists `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, p.Limit, p.Offset)
	q := fmt.Sprintf(`SELECT %s FROM artists %s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		artistColumns, where, len(args)-1, len(args))

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []Artist{}
	for rows.Next() {
		a, err := scanArtist(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, a)
	}
	return out, total, rows.Err()
}

func (s *PostgresArtistStore) UpdateProfile(ctx context.Context, id string, p UpdateProfileParams) (Artist, error) {
	const q = `UPDATE artists
	           SET display_name = $1, bio = $2, profile_photo = $3, status = $4, updated_at = now()
	           WHERE id = $5
	           RETURNING ` + artistColumns
	row := s.pool.QueryRow(ctx, q, p.DisplayName, p.Bio, p.ProfilePhoto, p.Status, id)
	out, err := scanArtist(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Artist{}, ErrNotFound
		}
		return Artist{}, err
	}
	return out, nil
}

func (s *PostgresArtistStore) UpdateStatus(ctx context.Context, id string, status Status) error {
	tag, err := s.pool.Exec(ctx, `UPDATE artists SET status = $1, updated_at = now() WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresArtistStore) findOne(ctx context.Context, q string, arg any) (Artist, error) {
	out, err := scanArtist(s.pool.QueryRow(ctx, q, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Artist{}, ErrNotFound
		}
		return Artist{}, err
	}
	return out, nil
}

func scanArtist(row pgx.Row) (Artist, error) {
	var a Artist
	err := row.Scan(&a.ID, &a.UserID, &a.DisplayName, &a.Slug, &a.Bio, &a.ProfilePhoto,
		&a.Status, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}
