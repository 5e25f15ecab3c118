package session_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/realspace/realspace/internal/dto"
	"github.com/realspace/realspace/internal/session"
)

func newStore(t *testing.T) *session.Store {
	t.Helper()
	keyring.MockInit()
	return session.New(session.Config{}, nil)
}

func TestNew_InitialState(t *testing.T) {
	t.Run("nothing stored", func(t *testing.T) {
		s := newStore(t)
		assert.False(t, s.IsAuthenticated())
		assert.Nil(t, s.CurrentUser())

		_, ok := s.Get()
		assert.False(t, ok)
		_, err := s.Token()
		assert.ErrorIs(t, err, session.ErrNoToken)
	})

	t.Run("token survives a restart", func(t *testing.T) {
		keyring.MockInit()
		require.NoError(t, keyring.Set(session.DefaultService, session.DefaultAccount, "jwt"))

		s := session.New(session.Config{}, nil)
		assert.True(t, s.IsAuthenticated())
		assert.Nil(t, s.CurrentUser(), "the user snapshot is not persisted")
	})

	t.Run("unusable credential store", func(t *testing.T) {
		keyring.MockInitWithError(errors.New("secret service unavailable"))
		t.Cleanup(keyring.MockInit)

		s := session.New(session.Config{}, nil)
		require.NotNil(t, s)
		assert.False(t, s.IsAuthenticated())
		_, err := s.Token()
		assert.ErrorIs(t, err, session.ErrNoToken)
	})
}

func TestStore_SaveAndClear(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.Save("first"))
	require.NoError(t, s.Save("second"))
	assert.True(t, s.IsAuthenticated())

	tok, err := s.Token()
	require.NoError(t, err)
	assert.Equal(t, "second", tok.AccessToken)
	assert.Equal(t, "Bearer", tok.Type())

	require.NoError(t, s.Clear())
	assert.False(t, s.IsAuthenticated())
	_, ok := s.Get()
	assert.False(t, ok)

	// Clearing an empty store is fine.
	assert.NoError(t, s.Clear())
}

func TestStore_SaveEmptyToken(t *testing.T) {
	s := newStore(t)
	assert.Error(t, s.Save(""))
	assert.False(t, s.IsAuthenticated())
}

func TestStore_LoginLogout(t *testing.T) {
	s := newStore(t)
	alice := dto.UserResponse{ID: "u1", Username: "alice", DisplayName: "Alice"}

	require.NoError(t, s.Login("jwt", alice))
	assert.True(t, s.IsAuthenticated())
	require.NotNil(t, s.CurrentUser())
	assert.Equal(t, "u1", s.CurrentUser().ID)

	tok, ok := s.Get()
	assert.True(t, ok)
	assert.Equal(t, "jwt", tok)

	require.NoError(t, s.Logout())
	assert.False(t, s.IsAuthenticated())
	assert.Nil(t, s.CurrentUser())
}

func TestStore_Subscribe(t *testing.T) {
	s := newStore(t)
	changes, cancel := s.Subscribe()
	defer cancel()

	require.NoError(t, s.Login("jwt", dto.UserResponse{ID: "u1", Username: "alice", DisplayName: "Alice"}))
	state := <-changes
	assert.True(t, state.Authenticated)
	require.NotNil(t, state.User)
	assert.Equal(t, "u1", state.User.ID)

	require.NoError(t, s.Logout())
	state = <-changes
	assert.False(t, state.Authenticated)
	assert.Nil(t, state.User)
}

func TestStore_CustomCoordinates(t *testing.T) {
	keyring.MockInit()
	s := session.New(session.Config{Service: "test.service", Account: "acct"}, nil)
	require.NoError(t, s.Save("jwt"))

	got, err := keyring.Get("test.service", "acct")
	require.NoError(t, err)
	assert.Equal(t, "jwt", got)

	_, err = keyring.Get(session.DefaultService, session.DefaultAccount)
	assert.ErrorIs(t, err, keyring.ErrNotFound)
}

func TestStore_Close(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Save("jwt"))
	changes, cancel := s.Subscribe()
	defer cancel()

	s.Close()
	_, ok := <-changes
	assert.False(t, ok)
	assert.True(t, s.IsAuthenticated(), "closing keeps the stored token")
}
