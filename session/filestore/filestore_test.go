package filestore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voyago-app/voyago-cli/session"
	"github.com/voyago-app/voyago-cli/session/filestore"
)

func newStore(t *testing.T) (*filestore.Store, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := filestore.New(dir)
	require.NoError(t, err)
	return store, dir
}

func TestTokenRoundTrip(t *testing.T) {
	store, _ := newStore(t)

	require.NoError(t, store.SetTokens("access-a", "refresh-b"))
	require.Equal(t, "access-a", store.AccessToken())
	require.Equal(t, "refresh-b", store.RefreshToken())

	require.NoError(t, store.Clear())
	require.Empty(t, store.AccessToken())
	require.Empty(t, store.RefreshToken())
}

func TestSetTokensWithoutRefreshKeepsExisting(t *testing.T) {
	store, _ := newStore(t)

	require.NoError(t, store.SetTokens("access-1", "refresh-1"))
	require.NoError(t, store.SetTokens("access-2", ""))

	require.Equal(t, "access-2", store.AccessToken())
	require.Equal(t, "refresh-1", store.RefreshToken())
}

func TestSessionSummaryRoundTrip(t *testing.T) {
	store, _ := newStore(t)

	user := session.UserSummary{UserID: 7, FullName: "Jane Doe", Email: "jane@example.com"}
	require.NoError(t, store.SetSession(session.RoleClient, user))

	require.Equal(t, session.RoleClient, store.Role())
	got := store.User()
	require.NotNil(t, got)
	require.Equal(t, user, *got)
}

func TestClearRemovesAllKeys(t *testing.T) {
	store, _ := newStore(t)

	require.NoError(t, store.SetTokens("a", "b"))
	require.NoError(t, store.SetSession(session.RoleAdmin, session.UserSummary{UserID: 1, FullName: "Root", Email: "root@example.com"}))
	require.NoError(t, store.Clear())

	require.Empty(t, store.AccessToken())
	require.Empty(t, store.RefreshToken())
	require.Empty(t, store.Role())
	require.Nil(t, store.User())
}

func TestClearIsIdempotent(t *testing.T) {
	store, _ := newStore(t)
	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())
}

func TestSurvivesReopen(t *testing.T) {
	store, dir := newStore(t)
	require.NoError(t, store.SetTokens("persisted-access", "persisted-refresh"))

	reopened, err := filestore.New(dir)
	require.NoError(t, err)
	require.Equal(t, "persisted-access", reopened.AccessToken())
	require.Equal(t, "persisted-refresh", reopened.RefreshToken())
}

func TestWritesVisibleAcrossInstances(t *testing.T) {
	first, dir := newStore(t)
	second, err := filestore.New(dir)
	require.NoError(t, err)

	require.NoError(t, first.SetTokens("from-first", "r1"))
	require.Equal(t, "from-first", second.AccessToken())

	require.NoError(t, second.Clear())
	require.Empty(t, first.AccessToken())
}

func TestCorruptFileReadsAsLoggedOut(t *testing.T) {
	store, dir := newStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "session.json"), []byte("{not json"), 0o600))

	require.Empty(t, store.AccessToken())
	require.Empty(t, store.RefreshToken())
	require.Nil(t, store.User())
}
