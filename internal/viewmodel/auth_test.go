package viewmodel_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/realspace/realspace/internal/client"
	"github.com/realspace/realspace/internal/dto"
	"github.com/realspace/realspace/internal/session"
	"github.com/realspace/realspace/internal/viewmodel"
)

const aliceJSON = `{"id":"u1","username":"alice","displayName":"Alice","bio":""}`

// newAuthVM wires a real client and session store to a stub server.
func newAuthVM(t *testing.T, handler http.HandlerFunc) (*viewmodel.AuthViewModel, *session.Store, *atomic.Int32) {
	t.Helper()
	keyring.MockInit()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	store := session.New(session.Config{}, nil)

	c, err := client.New(srv.URL+"/api", client.WithTokenSource(store))
	require.NoError(t, err)

	return viewmodel.NewAuthViewModel(c, store, nil), store, &hits
}

func respond(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	io.WriteString(w, body)
}

func TestAuthViewModel_Register(t *testing.T) {
	ctx := context.Background()
	req := dto.RegisterRequest{Username: "alice", DisplayName: "Alice", Email: "a@x.com", Password: "secret1"}

	t.Run("username taken", func(t *testing.T) {
		vm, store, _ := newAuthVM(t, func(w http.ResponseWriter, r *http.Request) {
			respond(w, http.StatusUnprocessableEntity, `{"error":true,"reason":"username taken"}`)
		})

		assert.False(t, vm.Register(ctx, req))
		assert.Contains(t, vm.ErrorMessage(), "username taken")
		assert.False(t, store.IsAuthenticated())
		assert.False(t, vm.IsLoading())
	})

	t.Run("success logs in", func(t *testing.T) {
		vm, store, _ := newAuthVM(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/auth/register", r.URL.Path)
			respond(w, http.StatusOK, `{"token":"jwt-1","user":`+aliceJSON+`}`)
		})

		require.True(t, vm.Register(ctx, req))
		assert.True(t, vm.IsAuthenticated())
		require.NotNil(t, vm.CurrentUser())
		assert.Equal(t, "u1", vm.CurrentUser().ID)

		tok, ok := store.Get()
		assert.True(t, ok)
		assert.Equal(t, "jwt-1", tok)
	})

	t.Run("short username never leaves the process", func(t *testing.T) {
		vm, _, hits := newAuthVM(t, func(w http.ResponseWriter, r *http.Request) {})

		bad := req
		bad.Username = "al"
		assert.False(t, vm.Register(ctx, bad))
		assert.Contains(t, vm.ErrorMessage(), "username must be at least 3 characters")
		assert.Equal(t, int32(0), hits.Load())
	})
}

func TestAuthViewModel_Login(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		form    viewmodel.LoginForm
		wantMsg string
	}{
		{"bad email", viewmodel.LoginForm{Email: "alice", Password: "secret1"}, "email must be a valid email address"},
		{"short password", viewmodel.LoginForm{Email: "a@x.com", Password: "12345"}, "password must be at least 6 characters"},
		{"empty", viewmodel.LoginForm{}, "email is required"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			vm, _, hits := newAuthVM(t, func(w http.ResponseWriter, r *http.Request) {})
			assert.False(t, vm.Login(ctx, tc.form))
			assert.Contains(t, vm.ErrorMessage(), tc.wantMsg)
			assert.Equal(t, int32(0), hits.Load())
		})
	}

	t.Run("bad credentials", func(t *testing.T) {
		vm, store, _ := newAuthVM(t, func(w http.ResponseWriter, r *http.Request) {
			respond(w, http.StatusUnauthorized, `{"error":true,"reason":"invalid email or password"}`)
		})
		assert.False(t, vm.Login(ctx, viewmodel.LoginForm{Email: "a@x.com", Password: "wrong!!"}))
		assert.Equal(t, "Login failed: invalid email or password", vm.ErrorMessage())
		assert.False(t, store.IsAuthenticated())
	})

	t.Run("success then logout", func(t *testing.T) {
		vm, store, _ := newAuthVM(t, func(w http.ResponseWriter, r *http.Request) {
			respond(w, http.StatusOK, `{"token":"jwt-2","user":`+aliceJSON+`}`)
		})
		require.True(t, vm.Login(ctx, viewmodel.LoginForm{Email: " a@x.com ", Password: "secret1"}))
		assert.True(t, store.IsAuthenticated())

		require.NoError(t, vm.Logout())
		assert.False(t, vm.IsAuthenticated())
		assert.Nil(t, vm.CurrentUser())
	})
}

func TestAuthViewModel_RestoreSession(t *testing.T) {
	ctx := context.Background()

	t.Run("nothing stored", func(t *testing.T) {
		vm, _, hits := newAuthVM(t, func(w http.ResponseWriter, r *http.Request) {})
		assert.False(t, vm.RestoreSession(ctx))
		assert.Equal(t, int32(0), hits.Load())
		assert.Empty(t, vm.ErrorMessage())
	})

	t.Run("valid token", func(t *testing.T) {
		vm, store, _ := newAuthVM(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer jwt-3", r.Header.Get("Authorization"))
			respond(w, http.StatusOK, aliceJSON)
		})
		require.NoError(t, store.Save("jwt-3"))

		require.True(t, vm.RestoreSession(ctx))
		require.NotNil(t, vm.CurrentUser())
		assert.Equal(t, "alice", vm.CurrentUser().Username)
	})

	t.Run("rejected token is discarded", func(t *testing.T) {
		vm, store, _ := newAuthVM(t, func(w http.ResponseWriter, r *http.Request) {
			respond(w, http.StatusUnauthorized, `{"error":true,"reason":"token expired"}`)
		})
		require.NoError(t, store.Save("expired"))

		assert.False(t, vm.RestoreSession(ctx))
		assert.False(t, store.IsAuthenticated())
		assert.Equal(t, viewmodel.MsgLoginAgain, vm.ErrorMessage())
	})

	t.Run("server down keeps the token", func(t *testing.T) {
		vm, store, _ := newAuthVM(t, func(w http.ResponseWriter, r *http.Request) {
			respond(w, http.StatusServiceUnavailable, `oops`)
		})
		require.NoError(t, store.Save("jwt-4"))

		assert.False(t, vm.RestoreSession(ctx))
		assert.True(t, store.IsAuthenticated())
		assert.Equal(t, "Error restoring session: Unknown error", vm.ErrorMessage())
	})
}
