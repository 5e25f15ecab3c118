package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
	"golang.org/x/crypto/bcrypt"

	"github.com/realspace/realspace/internal/server"
)

// setup points the client config at a fresh dev API.
func setup(t *testing.T) {
	t.Helper()
	srv, err := server.New(server.Config{
		DBPath:       ":memory:",
		JWTSecret:    "test-secret-at-least-16-chars!!",
		PasswordCost: bcrypt.MinCost,
	}, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	t.Cleanup(func() { srv.Close() })

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	keyring.MockInit()
	t.Chdir(t.TempDir())
	t.Setenv("REALSPACE_API_BASE_URL", ts.URL+"/api")
	t.Setenv("REALSPACE_KEYRING_SERVICE", "com.realspace.cli-test")
}

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := run(context.Background(), args, &out, io.Discard)
	return out.String(), err
}

func TestRun(t *testing.T) {
	setup(t)

	out, err := runCmd(t, "register", "alice", "Alice", "a@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "registered alice\n", out)

	// Each run builds a new app, so this reads the token back from the keyring.
	out, err = runCmd(t, "whoami")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Alice (@alice) "))

	out, err = runCmd(t, "post", "watched", "Dune", "loved it")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "posted "))

	out, err = runCmd(t, "feed")
	require.NoError(t, err)
	assert.Contains(t, out, "@alice watched Dune  (0 likes)")
	assert.Contains(t, out, "    loved it")

	require.NoError(t, keyring.Set("com.realspace.cli-test", "jwt_token", "not-a-jwt"))
	_, err = runCmd(t, "whoami")
	assert.ErrorContains(t, err, "Please log in again")

	_, err = runCmd(t, "feed")
	assert.ErrorContains(t, err, "Please log in again", "the rejected token was discarded")

	out, err = runCmd(t, "login", "a@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "logged in as alice\n", out)

	_, err = runCmd(t, "logout")
	require.NoError(t, err)
	_, err = runCmd(t, "feed")
	assert.Error(t, err)
}

func TestRun_Usage(t *testing.T) {
	setup(t)

	tests := [][]string{
		nil,
		{"login", "a@x.com"},
		{"post", "watched"},
		{"dance"},
	}
	for _, args := range tests {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			_, err := runCmd(t, args...)
			assert.ErrorIs(t, err, errUsage)
		})
	}

	_, err := runCmd(t, "post", "ate", "Soup")
	assert.ErrorContains(t, err, "cannot post")
}
