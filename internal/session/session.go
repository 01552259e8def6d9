package session

import (
	"fmt"

	"github.com/99designs/keyring"
)

// Keyring entry names for the persisted session.
const (
	tokenKey  = "token"
	userIDKey = "userid"
)

// Store owns the authentication state of the current user: the bearer
// token and the user id the server issued at sign-in. Both live in
// memory for the lifetime of the process and in the keyring across
// restarts. All other components read the session through this type
// and never mutate it directly.
type Store struct {
	ring   keyring.Keyring
	token  string
	userID string
}

// New creates a session store backed by ring. The store starts signed
// out; call Load to restore a persisted session.
func New(ring keyring.Keyring) *Store {
	return &Store{ring: ring}
}

// Load restores a previously persisted session from the keyring. A
// missing or partial entry leaves the store signed out without error.
func (s *Store) Load() error {
	token, err := s.ring.Get(tokenKey)
	if err != nil {
		return nil
	}
	userID, err := s.ring.Get(userIDKey)
	if err != nil {
		return nil
	}

	s.token = string(token.Data)
	s.userID = string(userID.Data)
	return nil
}

// SignIn records the credential for the lifetime of the session and
// persists it so the session survives a restart.
func (s *Store) SignIn(token, userID string) error {
	s.token = token
	s.userID = userID

	if err := s.ring.Set(keyring.Item{Key: tokenKey, Data: []byte(token)}); err != nil {
		return fmt.Errorf("persisting token: %w", err)
	}
	if err := s.ring.Set(keyring.Item{Key: userIDKey, Data: []byte(userID)}); err != nil {
		return fmt.Errorf("persisting user id: %w", err)
	}
	return nil
}

// SignOut clears the session. The in-memory credential is dropped
// first, so any fetch that consults the store after this call sees an
// unauthenticated session regardless of keyring state.
func (s *Store) SignOut() error {
	s.token = ""
	s.userID = ""

	if err := s.ring.Remove(tokenKey); err != nil {
		return fmt.Errorf("removing token: %w", err)
	}
	if err := s.ring.Remove(userIDKey); err != nil {
		return fmt.Errorf("removing user id: %w", err)
	}
	return nil
}

// IsAuthenticated reports whether both the token and the user id are
// present.
func (s *Store) IsAuthenticated() bool {
	return s.token != "" && s.userID != ""
}

// Token returns the current bearer token, or "" when signed out.
// Implements api.TokenSource.
func (s *Store) Token() string {
	return s.token
}

// UserID returns the signed-in user's id, or "" when signed out.
func (s *Store) UserID() string {
	return s.userID
}
