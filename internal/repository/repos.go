// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/avelines/moviedesk/internal/model"
	"github.com/gofrs/uuid/v5"
)

// AccountRepository provides access to credential records.
type AccountRepository interface {
	// Create inserts a new account. A duplicate email yields errs.ErrAlreadyExists.
	Create(ctx context.Context, a *model.Account) error
	// GetByID loads an account by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Account, error)
	// GetByEmail loads an account by email.
	GetByEmail(ctx context.Context, email string) (*model.Account, error)
}

// MovieRepository provides CRUD access for movies.
type MovieRepository interface {
	// Create inserts a new movie. A duplicate title yields errs.ErrAlreadyExists.
	Create(ctx context.Context, m *model.Movie) error
	// GetByID loads a movie by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Movie, error)
	// GetByTitle loads a movie by its unique title.
	GetByTitle(ctx context.Context, title string) (*model.Movie, error)
	// List returns movies matching the filter.
	List(ctx context.Context, f model.MovieFilter) ([]model.Movie, error)
	// Update overwrites a movie row by ID.
	Update(ctx context.Context, m *model.Movie) error
	// Delete removes a movie by ID.
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserRepository provides CRUD access for user records.
type UserRepository interface {
	// Create inserts a new user. A duplicate email yields errs.ErrAlreadyExists.
	Create(ctx context.Context, u *model.User) error
	// GetByID loads a user by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	// GetByEmail loads a user by email.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// List returns users matching the filter.
	List(ctx context.Context, f model.UserFilter) ([]model.User, error)
	// Update overwrites a user row by ID.
	Update(ctx context.Context, u *model.User) error
	// Delete removes a user by ID.
	Delete(ctx context.Context, id uuid.UUID) error
}
