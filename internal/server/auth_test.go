package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func writeUsersFile(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "users.json")
	content := `[
		{"name": "Alice", "hashed_password": "` + string(hash) + `", "admin": true},
		{"name": "bob", "hashed_password": "` + string(hash) + `", "allowed_template": "custom"}
	]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadUsers_AuthenticateAndLookup(t *testing.T) {
	store, err := LoadUsers(writeUsersFile(t, "hunter2"))
	require.NoError(t, err)

	user, ok := store.Authenticate("alice", "hunter2")
	require.True(t, ok, "name match is case-insensitive")
	assert.True(t, user.Admin)

	_, ok = store.Authenticate("alice", "wrong")
	assert.False(t, ok)

	_, ok = store.Authenticate("nobody", "hunter2")
	assert.False(t, ok)

	bob, ok := store.Lookup("BOB")
	require.True(t, ok)
	assert.Equal(t, "custom", bob.AllowedTemplate)
}

func TestLoadUsers_MissingFile(t *testing.T) {
	_, err := LoadUsers(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Minute)

	token, err := issuer.Issue("alice")
	require.NoError(t, err)

	subject, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestTokenIssuer_RejectsExpired(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", -time.Minute)

	token, err := issuer.Issue("alice")
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	assert.Error(t, err)
}

func TestTokenIssuer_RejectsForeignSignature(t *testing.T) {
	token, err := NewTokenIssuer("secret-a", time.Minute).Issue("alice")
	require.NoError(t, err)

	_, err = NewTokenIssuer("secret-b", time.Minute).Verify(token)
	assert.Error(t, err)
}
