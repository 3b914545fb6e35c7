// Package model defines domain entities used by services and repositories.
package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// Account is a registered credential record. The password is only ever stored hashed.
type Account struct {
	ID           uuid.UUID // PK
	Email        string    // unique
	PasswordHash []byte    // bcrypt(password)
	CreatedAt    time.Time
}

// Token is an issued bearer token with its signed expiry (for diagnostics).
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// Movie is a catalog record. Title is unique.
type Movie struct {
	ID       uuid.UUID
	Title    string
	Director string
	Year     string
	Color    int
	Duration int
}

// MovieFilter narrows movie listings. Nil fields are ignored.
type MovieFilter struct {
	Color       *int
	MaxDuration *int
}

// MovieUpdate carries a partial update. Nil fields keep the stored value.
type MovieUpdate struct {
	Title    *string
	Director *string
	Year     *string
	Color    *int
	Duration *int
}

// User is a profile record, unrelated to accounts. Email is unique.
type User struct {
	ID        uuid.UUID
	Firstname string
	Lastname  string
	Email     string
	Language  string
}

// UserFilter narrows user listings. An empty language matches everything.
type UserFilter struct {
	Language string
}

// UserUpdate carries a partial update. Nil fields keep the stored value.
type UserUpdate struct {
	Firstname *string
	Lastname  *string
	Email     *string
	Language  *string
}
