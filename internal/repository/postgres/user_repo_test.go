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

func userFixture() *model.User {
	return &model.User{
		ID:        uuid.Must(uuid.NewV4()),
		Firstname: "Ada",
		Lastname:  "Lovelace",
		Email:     "ada@lovelace.dev",
		Language:  "en",
	}
}

func TestUserRepo_Create_OK_and_DuplicateEmail(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepo(db)
	ctx := context.Background()
	u := userFixture()

	mock.ExpectExec(`INSERT INTO users \(id, firstname, lastname, email, language\) VALUES \(\$1, \$2, \$3, \$4, \$5\)`).
		WithArgs(u.ID, u.Firstname, u.Lastname, u.Email, u.Language).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	require.NoError(t, r.Create(ctx, u))

	mock.ExpectExec(`INSERT INTO users \(id, firstname, lastname, email, language\) VALUES \(\$1, \$2, \$3, \$4, \$5\)`).
		WithArgs(u.ID, u.Firstname, u.Lastname, u.Email, u.Language).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	require.ErrorIs(t, r.Create(ctx, u), errs.ErrAlreadyExists)
}

func TestUserRepo_GetByID_and_GetByEmail(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepo(db)
	ctx := context.Background()
	u := userFixture()
	rows := func() *pgxmock.Rows {
		return pgxmock.NewRows([]string{"id", "firstname", "lastname", "email", "language"}).
			AddRow(u.ID, u.Firstname, u.Lastname, u.Email, u.Language)
	}

	mock.ExpectQuery(`SELECT id, firstname, lastname, email, language FROM users WHERE id=\$1`).
		WithArgs(u.ID).
		WillReturnRows(rows())
	got, err := r.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u, got)

	mock.ExpectQuery(`SELECT id, firstname, lastname, email, language FROM users WHERE email=\$1`).
		WithArgs(u.Email).
		WillReturnRows(rows())
	got, err = r.GetByEmail(ctx, u.Email)
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)

	mock.ExpectQuery(`SELECT id, firstname, lastname, email, language FROM users WHERE email=\$1`).
		WithArgs("nobody@example.com").
		WillReturnError(pgx.ErrNoRows)
	_, err = r.GetByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestUserRepo_List_LanguageFilter(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepo(db)
	ctx := context.Background()
	u := userFixture()
	rows := func() *pgxmock.Rows {
		return pgxmock.NewRows([]string{"id", "firstname", "lastname", "email", "language"}).
			AddRow(u.ID, u.Firstname, u.Lastname, u.Email, u.Language)
	}

	mock.ExpectQuery(`SELECT id, firstname, lastname, email, language FROM users ORDER BY lastname, firstname`).
		WillReturnRows(rows())
	out, err := r.List(ctx, model.UserFilter{})
	require.NoError(t, err)
	require.Len(t, out, 1)

	mock.ExpectQuery(`SELECT id, firstname, lastname, email, language FROM users WHERE language=\$1 ORDER BY lastname, firstname`).
		WithArgs("en").
		WillReturnRows(rows())
	out, err = r.List(ctx, model.UserFilter{Language: "en"})
	require.NoError(t, err)
	require.Len(t, out, 1)
}

func TestUserRepo_Update_and_Delete(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewUserRepo(db)
	ctx := context.Background()
	u := userFixture()

	mock.ExpectExec(`UPDATE users SET firstname=\$2, lastname=\$3, email=\$4, language=\$5 WHERE id=\$1`).
		WithArgs(u.ID, u.Firstname, u.Lastname, u.Email, u.Language).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	require.NoError(t, r.Update(ctx, u))

	mock.ExpectExec(`UPDATE users SET firstname=\$2, lastname=\$3, email=\$4, language=\$5 WHERE id=\$1`).
		WithArgs(u.ID, u.Firstname, u.Lastname, u.Email, u.Language).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	require.ErrorIs(t, r.Update(ctx, u), errs.ErrNotFound)

	mock.ExpectExec(`DELETE FROM users WHERE id=\$1`).
		WithArgs(u.ID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	require.NoError(t, r.Delete(ctx, u.ID))

	mock.ExpectExec(`DELETE FROM users WHERE id=\$1`).
		WithArgs(u.ID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	require.ErrorIs(t, r.Delete(ctx, u.ID), errs.ErrNotFound)
}
