package orbit_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orbit "github.com/autonyze/orbit-go"
)

func TestFileTokenStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orbit", "session.json")
	store := orbit.NewFileTokenStore(path)

	// missing file is an empty session, not an error
	session, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, session.AccessToken)

	require.NoError(t, store.Save(orbit.Session{AccessToken: "A1", RefreshToken: "R1"}))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "A1", loaded.AccessToken)
	assert.Equal(t, "R1", loaded.RefreshToken)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.NoError(t, store.Clear())
	cleared, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, cleared.AccessToken)
	assert.Empty(t, cleared.RefreshToken)
}

func TestFileTokenStoreDropsLegacyToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"access_token": "A1",
		"refresh_token": "R1",
		"auth_token": "legacy"
	}`), 0o600))

	store := orbit.NewFileTokenStore(path)

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "legacy", loaded.LegacyAuthToken)

	// saving rewrites the file without the legacy entry
	require.NoError(t, store.Save(loaded))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "auth_token")
	assert.Contains(t, string(data), "A1")
}

func TestFileTokenStoreClearTwice(t *testing.T) {
	store := orbit.NewFileTokenStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())
}

func TestFileTokenStoreRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	_, err := orbit.NewFileTokenStore(path).Load()
	require.Error(t, err)
}
