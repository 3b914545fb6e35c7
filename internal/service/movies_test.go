package service

import (
	"context"
	"testing"

	"github.com/avelines/moviedesk/internal/errs"
	"github.com/avelines/moviedesk/internal/model"
	"github.com/avelines/moviedesk/internal/repository"
	"github.com/avelines/moviedesk/internal/validate"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/require"
)

type fakeMovies struct {
	byID map[uuid.UUID]*model.Movie
}

var _ repository.MovieRepository = (*fakeMovies)(nil)

func newFakeMovies() *fakeMovies {
	return &fakeMovies{byID: map[uuid.UUID]*model.Movie{}}
}

func (f *fakeMovies) Create(_ context.Context, m *model.Movie) error {
	for _, x := range f.byID {
		if x.Title == m.Title {
			return errs.ErrAlreadyExists
		}
	}
	cpy := *m
	f.byID[m.ID] = &cpy
	return nil
}

func (f *fakeMovies) GetByID(_ context.Context, id uuid.UUID) (*model.Movie, error) {
	m, ok := f.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := *m
	return &c, nil
}

func (f *fakeMovies) GetByTitle(_ context.Context, title string) (*model.Movie, error) {
	for _, m := range f.byID {
		if m.Title == title {
			c := *m
			return &c, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (f *fakeMovies) List(_ context.Context, filter model.MovieFilter) ([]model.Movie, error) {
	var out []model.Movie
	for _, m := range f.byID {
		if filter.Color != nil && m.Color != *filter.Color {
			continue
		}
		if filter.MaxDuration != nil && m.Duration > *filter.MaxDuration {
			continue
		}
		out = append(out, *m)
	}
	return out, nil
}

func (f *fakeMovies) Update(_ context.Context, m *model.Movie) error {
	if _, ok := f.byID[m.ID]; !ok {
		return errs.ErrNotFound
	}
	cpy := *m
	f.byID[m.ID] = &cpy
	return nil
}

func (f *fakeMovies) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.byID[id]; !ok {
		return errs.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func intp(v int) *int       { return &v }
func strp(v string) *string { return &v }

func alienInput() CreateMovie {
	return CreateMovie{Title: "Alien", Director: "Ridley Scott", Year: "1979", Color: intp(1), Duration: intp(116)}
}

func TestMovies_Create_RoundTrip(t *testing.T) {
	t.Parallel()
	s := NewMovieService(newFakeMovies())

	created, err := s.Create(context.Background(), alienInput())
	require.NoError(t, err)

	got, err := s.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, created, got)
}

func TestMovies_Create_DuplicateTitle(t *testing.T) {
	t.Parallel()
	s := NewMovieService(newFakeMovies())

	_, err := s.Create(context.Background(), alienInput())
	require.NoError(t, err)

	_, err = s.Create(context.Background(), alienInput())
	require.ErrorIs(t, err, errs.ErrAlreadyExists)
}

func TestMovies_Create_ValidationListsAllFields(t *testing.T) {
	t.Parallel()
	s := NewMovieService(newFakeMovies())

	_, err := s.Create(context.Background(), CreateMovie{Title: "Alien"})
	var verrs validate.Errors
	require.ErrorAs(t, err, &verrs)
	require.Contains(t, verrs, "director")
	require.Contains(t, verrs, "year")
	require.Contains(t, verrs, "color")
	require.Contains(t, verrs, "duration")
}

func TestMovies_Update_Partial(t *testing.T) {
	t.Parallel()
	s := NewMovieService(newFakeMovies())

	created, err := s.Create(context.Background(), alienInput())
	require.NoError(t, err)

	upd, err := s.Update(context.Background(), created.ID, model.MovieUpdate{Duration: intp(117)})
	require.NoError(t, err)
	require.Equal(t, 117, upd.Duration)
	require.Equal(t, "Alien", upd.Title) // untouched fields kept

	_, err = s.Update(context.Background(), uuid.Must(uuid.NewV4()), model.MovieUpdate{Title: strp("x")})
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestMovies_Delete_ThenGet(t *testing.T) {
	t.Parallel()
	s := NewMovieService(newFakeMovies())

	created, err := s.Create(context.Background(), alienInput())
	require.NoError(t, err)

	require.NoError(t, s.Delete(context.Background(), created.ID))
	_, err = s.Get(context.Background(), created.ID)
	require.ErrorIs(t, err, errs.ErrNotFound)

	require.ErrorIs(t, s.Delete(context.Background(), created.ID), errs.ErrNotFound)
}

func TestMovies_List_Filtered(t *testing.T) {
	t.Parallel()
	s := NewMovieService(newFakeMovies())

	_, err := s.Create(context.Background(), alienInput())
	require.NoError(t, err)
	_, err = s.Create(context.Background(), CreateMovie{Title: "Stalker", Director: "Andrei Tarkovsky", Year: "1979", Color: intp(0), Duration: intp(162)})
	require.NoError(t, err)

	all, err := s.List(context.Background(), model.MovieFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)

	short, err := s.List(context.Background(), model.MovieFilter{MaxDuration: intp(120)})
	require.NoError(t, err)
	require.Len(t, short, 1)
	require.Equal(t, "Alien", short[0].Title)
}
