// Package service contains application services for authentication and resources.
package service

import (
	"context"
	"errors"

	pkgcrypto "github.com/avelines/moviedesk/internal/crypto"
	"github.com/avelines/moviedesk/internal/errs"
	"github.com/avelines/moviedesk/internal/limiter"
	"github.com/avelines/moviedesk/internal/model"
	"github.com/avelines/moviedesk/internal/repository"
	"github.com/avelines/moviedesk/internal/token"
	"github.com/avelines/moviedesk/internal/validate"
	"github.com/gofrs/uuid/v5"
)

// AuthService defines registration and login operations.
type AuthService interface {
	// Register creates a new account and issues a bearer token for it.
	Register(ctx context.Context, email, password string) (model.Account, model.Token, error)
	// LoginWithIP applies rate limiting and authenticates the account.
	LoginWithIP(ctx context.Context, email, password, ip string) (model.Account, model.Token, error)
	// AccountByID loads an account for an already-verified identity.
	AccountByID(ctx context.Context, id uuid.UUID) (model.Account, error)
}

type AuthServiceImpl struct {
	accounts   repository.AccountRepository
	issuer     *token.Issuer
	bcryptCost int
	lim        limiter.Limiter
}

// NewAuthService constructs AuthService with required dependencies.
func NewAuthService(accounts repository.AccountRepository, issuer *token.Issuer, bcryptCost int, lim limiter.Limiter) *AuthServiceImpl {
	return &AuthServiceImpl{accounts: accounts, issuer: issuer, bcryptCost: bcryptCost, lim: lim}
}

// Register creates a new account record and issues its first token.
//
// The pre-insert lookup is only a fast path for a friendly error; the unique
// index on email is what actually prevents two concurrent registrations from
// both succeeding.
func (s *AuthServiceImpl) Register(ctx context.Context, email, password string) (model.Account, model.Token, error) {
	if _, err := s.accounts.GetByEmail(ctx, email); err == nil {
		return model.Account{}, model.Token{}, errs.ErrAlreadyExists
	} else if !errors.Is(err, errs.ErrNotFound) {
		return model.Account{}, model.Token{}, err
	}

	if verrs := validate.Credentials(email, password); verrs != nil {
		return model.Account{}, model.Token{}, verrs
	}

	hash, err := pkgcrypto.HashPassword(password, s.bcryptCost)
	if err != nil {
		return model.Account{}, model.Token{}, err
	}
	id, err := uuid.NewV4()
	if err != nil {
		return model.Account{}, model.Token{}, err
	}

	a := model.Account{ID: id, Email: email, PasswordHash: hash}
	if err := s.accounts.Create(ctx, &a); err != nil {
		return model.Account{}, model.Token{}, err
	}

	tok, err := s.issue(id)
	if err != nil {
		return model.Account{}, model.Token{}, err
	}
	return a, tok, nil
}

// LoginWithIP authenticates with rate limiting by (email, ip).
func (s *AuthServiceImpl) LoginWithIP(ctx context.Context, email, password, ip string) (model.Account, model.Token, error) {
	ipHash := limiter.HashIP(ip)

	allowed, _, err := s.lim.Allow(ctx, email, ipHash)
	if err != nil {
		return model.Account{}, model.Token{}, err
	}
	if !allowed {
		return model.Account{}, model.Token{}, errs.ErrRateLimited
	}

	a, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if blocked, _, ferr := s.lim.Failure(ctx, email, ipHash); ferr == nil && blocked {
			return model.Account{}, model.Token{}, errs.ErrRateLimited
		}
		if errors.Is(err, errs.ErrNotFound) {
			return model.Account{}, model.Token{}, errs.ErrUnknownEmail
		}
		return model.Account{}, model.Token{}, err
	}
	if !pkgcrypto.VerifyPassword(password, a.PasswordHash) {
		if blocked, _, ferr := s.lim.Failure(ctx, email, ipHash); ferr == nil && blocked {
			return model.Account{}, model.Token{}, errs.ErrRateLimited
		}
		return model.Account{}, model.Token{}, errs.ErrWrongPassword
	}

	// Success: reset counters (best-effort).
	_ = s.lim.Success(ctx, email, ipHash)

	tok, err := s.issue(a.ID)
	if err != nil {
		return model.Account{}, model.Token{}, err
	}
	return *a, tok, nil
}

// AccountByID loads an account record by its identifier.
func (s *AuthServiceImpl) AccountByID(ctx context.Context, id uuid.UUID) (model.Account, error) {
	a, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return model.Account{}, err
	}
	return *a, nil
}

// issue binds a token to the account identifier. The subject is always the
// ID so tokens from register and login are interchangeable.
func (s *AuthServiceImpl) issue(id uuid.UUID) (model.Token, error) {
	raw, exp, err := s.issuer.Issue(id)
	if err != nil {
		return model.Token{}, err
	}
	return model.Token{Value: raw, ExpiresAt: exp}, nil
}
