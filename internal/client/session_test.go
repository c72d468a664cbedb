package client

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/payments-portal/internal/auth"
)

func testState() SessionState {
	return SessionState{
		Token:     "token-1",
		Role:      auth.RoleAdmin,
		UserID:    uuid.Must(uuid.NewV4()),
		Email:     "root@example.com",
		ExpiresAt: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// -- FileStore tests --

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := NewFileStore(path)

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)

	state := testState()
	require.NoError(t, store.Save(&state))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, state, *loaded)

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())
	loaded, err = store.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestFileStore_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFileStore(path).Load()
	assert.Error(t, err)
}

// -- Session tests --

func TestSession_InitRestoresCompleteState(t *testing.T) {
	store := NewMemoryStore()
	state := testState()
	require.NoError(t, store.Save(&state))

	var session Session
	require.NoError(t, session.Init(store))

	assert.True(t, session.Authenticated())
	assert.True(t, session.IsAdmin())
	assert.Equal(t, "token-1", session.Token())
}

func TestSession_InitIgnoresPartialState(t *testing.T) {
	for name, state := range map[string]SessionState{
		"no token": {Role: auth.RoleUser},
		"no role":  {Token: "token-1"},
		"bad role": {Token: "token-1", Role: "owner"},
	} {
		t.Run(name, func(t *testing.T) {
			store := NewMemoryStore()
			require.NoError(t, store.Save(&state))

			var session Session
			require.NoError(t, session.Init(store))

			assert.False(t, session.Authenticated())
			assert.Empty(t, session.Role())
		})
	}
}

func TestSession_LoginAndTeardown(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	var session Session
	require.NoError(t, session.Init(store))
	assert.False(t, session.Authenticated())

	require.NoError(t, session.Login(testState()))

	var restored Session
	require.NoError(t, restored.Init(store))
	assert.Equal(t, "token-1", restored.Token())

	require.NoError(t, session.Teardown())
	assert.False(t, session.Authenticated())
	assert.Nil(t, session.State())

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestSession_LoginRejectsIncompleteState(t *testing.T) {
	var session Session
	assert.Error(t, session.Login(SessionState{Token: "t"}))
	assert.False(t, session.Authenticated())
}
