package allowlist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chat-gateway/internal/infra/logger"
)

func writeWhitelist(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "whitelist.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testLogger() *logger.Logger {
	return logger.NewLogger("error", false)
}

func TestLoadAndLookup(t *testing.T) {
	path := writeWhitelist(t, "username,limit,system,discord,cmd\n"+
		"alice,4000,You are talking to Alice.,111,local\n"+
		"bob,2000,,222,\n")

	store, err := Load(path, testLogger())
	require.NoError(t, err)

	account, ok := store.Lookup("discord", "111")
	require.True(t, ok)
	assert.Equal(t, "alice", account.Username)
	assert.Equal(t, 4000, account.TokenLimit)
	assert.Equal(t, "You are talking to Alice.", account.SystemMessage)

	account, ok = store.Lookup("cmd", "local")
	require.True(t, ok)
	assert.Equal(t, "alice", account.Username)

	account, ok = store.Lookup("discord", "222")
	require.True(t, ok)
	assert.Equal(t, "bob", account.Username)
	assert.Empty(t, account.SystemMessage)

	// bob has no cmd identity.
	assert.False(t, store.IsAuthorized("cmd", "222"))
	assert.False(t, store.IsAuthorized("discord", "999"))
	assert.False(t, store.IsAuthorized("webhook", "111"))
}

func TestLoadEmptyFileRejectsEveryone(t *testing.T) {
	store, err := Load(writeWhitelist(t, ""), testLogger())
	require.NoError(t, err)
	assert.False(t, store.IsAuthorized("discord", "111"))
}

func TestLoadHeaderOnlyRejectsEveryone(t *testing.T) {
	store, err := Load(writeWhitelist(t, "username,limit,system,discord\n"), testLogger())
	require.NoError(t, err)
	assert.False(t, store.IsAuthorized("discord", "111"))
}

func TestLoadIsIdempotent(t *testing.T) {
	path := writeWhitelist(t, "username,limit,system,discord\nalice,4000,,111\n")

	first, err := Load(path, testLogger())
	require.NoError(t, err)
	second, err := Load(path, testLogger())
	require.NoError(t, err)

	for _, id := range []string{"111", "222", ""} {
		assert.Equal(t, first.IsAuthorized("discord", id), second.IsAuthorized("discord", id))
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"), testLogger())
	assert.Error(t, err)
}

func TestLoadRejectsBadHeader(t *testing.T) {
	_, err := Load(writeWhitelist(t, "user,limit,system,discord\n"), testLogger())
	assert.Error(t, err)

	_, err = Load(writeWhitelist(t, "username,limit,system\n"), testLogger())
	assert.Error(t, err, "header without any channel column")
}

func TestLoadRejectsMalformedRows(t *testing.T) {
	_, err := Load(writeWhitelist(t, "username,limit,system,discord\n,4000,,111\n"), testLogger())
	assert.Error(t, err, "empty username")

	_, err = Load(writeWhitelist(t, "username,limit,system,discord\nalice,lots,,111\n"), testLogger())
	assert.Error(t, err, "non-numeric limit")

	_, err = Load(writeWhitelist(t, "username,limit,system,discord\nalice,4000,,111,extra\n"), testLogger())
	assert.Error(t, err, "too many columns")

	_, err = Load(writeWhitelist(t, "username,limit,system,discord\n../alice,4000,,111\n"), testLogger())
	assert.Error(t, err, "path separator in username")
}

func TestLoadRejectsDuplicateIdentity(t *testing.T) {
	_, err := Load(writeWhitelist(t, "username,limit,system,discord\n"+
		"alice,4000,,111\n"+
		"bob,2000,,111\n"), testLogger())
	assert.Error(t, err)
}
