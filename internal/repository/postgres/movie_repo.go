package postgres

import (
	"context"
	"errors"
	"strconv"

	"github.com/avelines/moviedesk/internal/errs"
	"github.com/avelines/moviedesk/internal/model"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
)

// MovieRepo implements MovieRepository using PostgreSQL.
type MovieRepo struct{ db *DB }

// NewMovieRepo constructs a movie repository.
func NewMovieRepo(db *DB) *MovieRepo { return &MovieRepo{db: db} }

// Create inserts a new movie row. The unique index on title is the
// authoritative duplicate check.
func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) error {
	const q = `
INSERT INTO movies (id, title, director, year, color, duration)
VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.Pool.Exec(ctx, q, m.ID, m.Title, m.Director, m.Year, m.Color, m.Duration)
	if isUniqueViolation(err) {
		return errs.ErrAlreadyExists
	}
	return err
}

// GetByID selects a movie by ID.
func (r *MovieRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Movie, error) {
	const q = `
SELECT id, title, director, year, color, duration
FROM movies WHERE id=$1`
	return r.scanOne(r.db.Pool.QueryRow(ctx, q, id))
}

// GetByTitle selects a movie by its unique title.
func (r *MovieRepo) GetByTitle(ctx context.Context, title string) (*model.Movie, error) {
	const q = `
SELECT id, title, director, year, color, duration
FROM movies WHERE title=$1`
	return r.scanOne(r.db.Pool.QueryRow(ctx, q, title))
}

// List selects movies matching the filter, building the WHERE clause from
// the set fields only.
func (r *MovieRepo) List(ctx context.Context, f model.MovieFilter) ([]model.Movie, error) {
	q := `SELECT id, title, director, year, color, duration FROM movies`
	var args []any
	if f.Color != nil {
		args = append(args, *f.Color)
		q += ` WHERE color=$` + strconv.Itoa(len(args))
	}
	if f.MaxDuration != nil {
		args = append(args, *f.MaxDuration)
		if f.Color != nil {
			q += ` AND duration<=$` + strconv.Itoa(len(args))
		} else {
			q += ` WHERE duration<=$` + strconv.Itoa(len(args))
		}
	}
	q += ` ORDER BY title`

	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Movie
	for rows.Next() {
		var m model.Movie
		if err := rows.Scan(&m.ID, &m.Title, &m.Director, &m.Year, &m.Color, &m.Duration); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Update overwrites a movie row by ID.
func (r *MovieRepo) Update(ctx context.Context, m *model.Movie) error {
	const q = `
UPDATE movies
SET title=$2, director=$3, year=$4, color=$5, duration=$6
WHERE id=$1`
	tag, err := r.db.Pool.Exec(ctx, q, m.ID, m.Title, m.Director, m.Year, m.Color, m.Duration)
	if isUniqueViolation(err) {
		return errs.ErrAlreadyExists
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Delete removes a movie row by ID.
func (r *MovieRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM movies WHERE id=$1`
	tag, err := r.db.Pool.Exec(ctx, q, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func (r *MovieRepo) scanOne(row pgx.Row) (*model.Movie, error) {
	var m model.Movie
	if err := row.Scan(&m.ID, &m.Title, &m.Director, &m.Year, &m.Color, &m.Duration); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}
