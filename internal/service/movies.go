package service

import (
	"context"
	"errors"

	"github.com/avelines/moviedesk/internal/errs"
	"github.com/avelines/moviedesk/internal/model"
	"github.com/avelines/moviedesk/internal/repository"
	"github.com/avelines/moviedesk/internal/validate"
	"github.com/gofrs/uuid/v5"
)

// CreateMovie is a creation payload. Numeric fields are pointers so that a
// missing value is a validation failure, not a silent zero.
type CreateMovie struct {
	Title    string
	Director string
	Year     string
	Color    *int
	Duration *int
}

// MovieService defines CRUD operations for the movie catalog.
type MovieService interface {
	List(ctx context.Context, f model.MovieFilter) ([]model.Movie, error)
	Get(ctx context.Context, id uuid.UUID) (model.Movie, error)
	Create(ctx context.Context, in CreateMovie) (model.Movie, error)
	Update(ctx context.Context, id uuid.UUID, upd model.MovieUpdate) (model.Movie, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type MovieServiceImpl struct {
	movies repository.MovieRepository
}

// NewMovieService constructs a MovieService.
func NewMovieService(movies repository.MovieRepository) *MovieServiceImpl {
	return &MovieServiceImpl{movies: movies}
}

// List returns movies matching the filter.
func (s *MovieServiceImpl) List(ctx context.Context, f model.MovieFilter) ([]model.Movie, error) {
	return s.movies.List(ctx, f)
}

// Get loads one movie.
func (s *MovieServiceImpl) Get(ctx context.Context, id uuid.UUID) (model.Movie, error) {
	m, err := s.movies.GetByID(ctx, id)
	if err != nil {
		return model.Movie{}, err
	}
	return *m, nil
}

// Create validates and inserts a movie. The duplicate-title fast path keeps
// the error friendly; the unique index is authoritative.
func (s *MovieServiceImpl) Create(ctx context.Context, in CreateMovie) (model.Movie, error) {
	if _, err := s.movies.GetByTitle(ctx, in.Title); err == nil {
		return model.Movie{}, errs.ErrAlreadyExists
	} else if !errors.Is(err, errs.ErrNotFound) {
		return model.Movie{}, err
	}

	if verrs := validate.Movie(in.Title, in.Director, in.Year, in.Color, in.Duration); verrs != nil {
		return model.Movie{}, verrs
	}

	id, err := uuid.NewV4()
	if err != nil {
		return model.Movie{}, err
	}
	m := model.Movie{
		ID:       id,
		Title:    in.Title,
		Director: in.Director,
		Year:     in.Year,
		Color:    *in.Color,
		Duration: *in.Duration,
	}
	if err := s.movies.Create(ctx, &m); err != nil {
		return model.Movie{}, err
	}
	return m, nil
}

// Update loads the movie, overlays the set fields, and writes it back.
func (s *MovieServiceImpl) Update(ctx context.Context, id uuid.UUID, upd model.MovieUpdate) (model.Movie, error) {
	m, err := s.movies.GetByID(ctx, id)
	if err != nil {
		return model.Movie{}, err
	}
	if upd.Title != nil {
		m.Title = *upd.Title
	}
	if upd.Director != nil {
		m.Director = *upd.Director
	}
	if upd.Year != nil {
		m.Year = *upd.Year
	}
	if upd.Color != nil {
		m.Color = *upd.Color
	}
	if upd.Duration != nil {
		m.Duration = *upd.Duration
	}
	if err := s.movies.Update(ctx, m); err != nil {
		return model.Movie{}, err
	}
	return *m, nil
}

// Delete removes a movie.
func (s *MovieServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return s.movies.Delete(ctx, id)
}
