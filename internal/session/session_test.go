package session

import (
	"testing"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreStartsSignedOut(t *testing.T) {
	s := New(keyring.NewArrayKeyring(nil))

	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.Token())
	assert.Empty(t, s.UserID())
}

func TestLoadMissingEntryLeavesSignedOut(t *testing.T) {
	s := New(keyring.NewArrayKeyring(nil))

	require.NoError(t, s.Load())
	assert.False(t, s.IsAuthenticated())
}

func TestLoadPartialEntryLeavesSignedOut(t *testing.T) {
	ring := keyring.NewArrayKeyring([]keyring.Item{
		{Key: "token", Data: []byte("tok-123")},
	})
	s := New(ring)

	require.NoError(t, s.Load())
	assert.False(t, s.IsAuthenticated())
}

func TestSignInPersistsAcrossRestart(t *testing.T) {
	ring := keyring.NewArrayKeyring(nil)

	s := New(ring)
	require.NoError(t, s.SignIn("tok-123", "user-1"))
	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, "tok-123", s.Token())
	assert.Equal(t, "user-1", s.UserID())

	// A fresh store over the same ring restores the session.
	restored := New(ring)
	require.NoError(t, restored.Load())
	assert.True(t, restored.IsAuthenticated())
	assert.Equal(t, "tok-123", restored.Token())
	assert.Equal(t, "user-1", restored.UserID())
}

func TestSignOutClearsMemoryAndKeyring(t *testing.T) {
	ring := keyring.NewArrayKeyring(nil)

	s := New(ring)
	require.NoError(t, s.SignIn("tok-123", "user-1"))
	require.NoError(t, s.SignOut())

	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.Token())
	assert.Empty(t, s.UserID())

	restored := New(ring)
	require.NoError(t, restored.Load())
	assert.False(t, restored.IsAuthenticated())
}
