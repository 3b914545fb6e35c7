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

// CreateUser is a user creation payload.
type CreateUser struct {
	Firstname string
	Lastname  string
	Email     string
	Language  string
}

// UserService defines CRUD operations for user records.
type UserService interface {
	List(ctx context.Context, f model.UserFilter) ([]model.User, error)
	Get(ctx context.Context, id uuid.UUID) (model.User, error)
	Create(ctx context.Context, in CreateUser) (model.User, error)
	Update(ctx context.Context, id uuid.UUID, upd model.UserUpdate) (model.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type UserServiceImpl struct {
	users repository.UserRepository
}

// NewUserService constructs a UserService.
func NewUserService(users repository.UserRepository) *UserServiceImpl {
	return &UserServiceImpl{users: users}
}

// List returns users matching the filter.
func (s *UserServiceImpl) List(ctx context.Context, f model.UserFilter) ([]model.User, error) {
	return s.users.List(ctx, f)
}

// Get loads one user.
func (s *UserServiceImpl) Get(ctx context.Context, id uuid.UUID) (model.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return model.User{}, err
	}
	return *u, nil
}

// Create validates and inserts a user. The duplicate-email fast path keeps
// the error friendly; the unique index is authoritative.
func (s *UserServiceImpl) Create(ctx context.Context, in CreateUser) (model.User, error) {
	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return model.User{}, errs.ErrAlreadyExists
	} else if !errors.Is(err, errs.ErrNotFound) {
		return model.User{}, err
	}

	if verrs := validate.User(in.Firstname, in.Lastname, in.Email); verrs != nil {
		return model.User{}, verrs
	}

	id, err := uuid.NewV4()
	if err != nil {
		return model.User{}, err
	}
	u := model.User{
		ID:        id,
		Firstname: in.Firstname,
		Lastname:  in.Lastname,
		Email:     in.Email,
		Language:  in.Language,
	}
	if err := s.users.Create(ctx, &u); err != nil {
		return model.User{}, err
	}
	return u, nil
}

// Update loads the user, overlays the set fields, and writes it back.
func (s *UserServiceImpl) Update(ctx context.Context, id uuid.UUID, upd model.UserUpdate) (model.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return model.User{}, err
	}
	if upd.Firstname != nil {
		u.Firstname = *upd.Firstname
	}
	if upd.Lastname != nil {
		u.Lastname = *upd.Lastname
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.Language != nil {
		u.Language = *upd.Language
	}
	if err := s.users.Update(ctx, u); err != nil {
		return model.User{}, err
	}
	return *u, nil
}

// Delete removes a user.
func (s *UserServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return s.users.Delete(ctx, id)
}
