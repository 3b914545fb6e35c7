// Package session implements the server-side session store.
//
// A session links an opaque client-held cookie to an authenticated account
// with a fixed expiry. The store is owned by the server process: the client
// only ever sees the signed cookie value, never the account mapping.
package session

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
)

const keyBytes = 32

// Session associates a cookie key with an account until expiry.
type Session struct {
	Key       string
	AccountID uuid.UUID
	ExpiresAt time.Time
}

// Store is an in-process session store safe for concurrent use.
// Writes to the same key are last-writer-wins; keys are per client and
// never shared across clients.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]Session

	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewStore constructs a Store. secret signs cookie values so a tampered
// cookie never reaches the map lookup.
func NewStore(secret []byte, ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]Session),
		secret:   secret,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create starts a session for the account and returns the signed cookie
// value to hand to the client.
func (s *Store) Create(accountID uuid.UUID) (string, error) {
	kb := make([]byte, keyBytes)
	if _, err := rand.Read(kb); err != nil {
		return "", err
	}
	key := base64.RawURLEncoding.EncodeToString(kb)

	s.mu.Lock()
	s.sessions[key] = Session{
		Key:       key,
		AccountID: accountID,
		ExpiresAt: s.now().Add(s.ttl),
	}
	s.mu.Unlock()

	return key + "." + s.sign(key), nil
}

// Get resolves a cookie value to a live session. Expired sessions are
// dropped on access; a tampered or unknown cookie yields false.
func (s *Store) Get(cookieValue string) (Session, bool) {
	key, ok := s.verify(cookieValue)
	if !ok {
		return Session{}, false
	}

	s.mu.RLock()
	sess, ok := s.sessions[key]
	s.mu.RUnlock()
	if !ok {
		return Session{}, false
	}
	if s.now().After(sess.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, key)
		s.mu.Unlock()
		return Session{}, false
	}
	return sess, true
}

// Destroy removes the session for the cookie value. It reports whether a
// session existed.
func (s *Store) Destroy(cookieValue string) bool {
	key, ok := s.verify(cookieValue)
	if !ok {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[key]; !ok {
		return false
	}
	delete(s.sessions, key)
	return true
}

// sign returns the MAC for a session key.
func (s *Store) sign(key string) string {
	h := hmac.New(sha256.New, s.secret)
	h.Write([]byte(key))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}

// verify splits "key.mac" and checks the MAC in constant time.
func (s *Store) verify(cookieValue string) (string, bool) {
	key, mac, ok := strings.Cut(cookieValue, ".")
	if !ok || key == "" {
		return "", false
	}
	if !hmac.Equal([]byte(mac), []byte(s.sign(key))) {
		return "", false
	}
	return key, true
}
