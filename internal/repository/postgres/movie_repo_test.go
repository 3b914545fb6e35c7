package postgres

import (
	"context"
	"testing"

	"github.com/avelines/moviedesk/internal/errs"
	"github.com/avelines/moviedesk/internal/model"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
)

func movieFixture() *model.Movie {
	return &model.Movie{
		ID:       uuid.Must(uuid.NewV4()),
		Title:    "Alien",
		Director: "Ridley Scott",
		Year:     "1979",
		Color:    1,
		Duration: 116,
	}
}

func TestMovieRepo_Create_OK_and_DuplicateTitle(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewMovieRepo(db)
	ctx := context.Background()
	m := movieFixture()

	mock.ExpectExec(`INSERT INTO movies \(id, title, director, year, color, duration\) VALUES \(\$1, \$2, \$3, \$4, \$5, \$6\)`).
		WithArgs(m.ID, m.Title, m.Director, m.Year, m.Color, m.Duration).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	require.NoError(t, r.Create(ctx, m))

	mock.ExpectExec(`INSERT INTO movies \(id, title, director, year, color, duration\) VALUES \(\$1, \$2, \$3, \$4, \$5, \$6\)`).
		WithArgs(m.ID, m.Title, m.Director, m.Year, m.Color, m.Duration).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	require.ErrorIs(t, r.Create(ctx, m), errs.ErrAlreadyExists)
}

func TestMovieRepo_GetByID(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewMovieRepo(db)
	ctx := context.Background()
	m := movieFixture()

	mock.ExpectQuery(`SELECT id, title, director, year, color, duration FROM movies WHERE id=\$1`).
		WithArgs(m.ID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "title", "director", "year", "color", "duration"}).
			AddRow(m.ID, m.Title, m.Director, m.Year, m.Color, m.Duration))
	got, err := r.GetByID(ctx, m.ID)
	require.NoError(t, err)
	require.Equal(t, m, got)

	mock.ExpectQuery(`SELECT id, title, director, year, color, duration FROM movies WHERE id=\$1`).
		WithArgs(m.ID).
		WillReturnError(pgx.ErrNoRows)
	_, err = r.GetByID(ctx, m.ID)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestMovieRepo_List_Filters(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewMovieRepo(db)
	ctx := context.Background()
	m := movieFixture()
	rows := func() *pgxmock.Rows {
		return pgxmock.NewRows([]string{"id", "title", "director", "year", "color", "duration"}).
			AddRow(m.ID, m.Title, m.Director, m.Year, m.Color, m.Duration)
	}

	// no filter
	mock.ExpectQuery(`SELECT id, title, director, year, color, duration FROM movies ORDER BY title`).
		WillReturnRows(rows())
	out, err := r.List(ctx, model.MovieFilter{})
	require.NoError(t, err)
	require.Len(t, out, 1)

	// color only
	color := 1
	mock.ExpectQuery(`SELECT id, title, director, year, color, duration FROM movies WHERE color=\$1 ORDER BY title`).
		WithArgs(1).
		WillReturnRows(rows())
	_, err = r.List(ctx, model.MovieFilter{Color: &color})
	require.NoError(t, err)

	// max_duration only
	dur := 120
	mock.ExpectQuery(`SELECT id, title, director, year, color, duration FROM movies WHERE duration<=\$1 ORDER BY title`).
		WithArgs(120).
		WillReturnRows(rows())
	_, err = r.List(ctx, model.MovieFilter{MaxDuration: &dur})
	require.NoError(t, err)

	// both
	mock.ExpectQuery(`SELECT id, title, director, year, color, duration FROM movies WHERE color=\$1 AND duration<=\$2 ORDER BY title`).
		WithArgs(1, 120).
		WillReturnRows(rows())
	_, err = r.List(ctx, model.MovieFilter{Color: &color, MaxDuration: &dur})
	require.NoError(t, err)
}

func TestMovieRepo_Update(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewMovieRepo(db)
	ctx := context.Background()
	m := movieFixture()

	mock.ExpectExec(`UPDATE movies SET title=\$2, director=\$3, year=\$4, color=\$5, duration=\$6 WHERE id=\$1`).
		WithArgs(m.ID, m.Title, m.Director, m.Year, m.Color, m.Duration).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	require.NoError(t, r.Update(ctx, m))

	mock.ExpectExec(`UPDATE movies SET title=\$2, director=\$3, year=\$4, color=\$5, duration=\$6 WHERE id=\$1`).
		WithArgs(m.ID, m.Title, m.Director, m.Year, m.Color, m.Duration).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	require.ErrorIs(t, r.Update(ctx, m), errs.ErrNotFound)

	mock.ExpectExec(`UPDATE movies SET title=\$2, director=\$3, year=\$4, color=\$5, duration=\$6 WHERE id=\$1`).
		WithArgs(m.ID, m.Title, m.Director, m.Year, m.Color, m.Duration).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	require.ErrorIs(t, r.Update(ctx, m), errs.ErrAlreadyExists)
}

func TestMovieRepo_Delete(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewMovieRepo(db)
	ctx := context.Background()
	id := uuid.Must(uuid.NewV4())

	mock.ExpectExec(`DELETE FROM movies WHERE id=\$1`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	require.NoError(t, r.Delete(ctx, id))

	mock.ExpectExec(`DELETE FROM movies WHERE id=\$1`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	require.ErrorIs(t, r.Delete(ctx, id), errs.ErrNotFound)
}
