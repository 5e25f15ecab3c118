package app_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/realspace/realspace/internal/app"
	"github.com/realspace/realspace/internal/client"
	"github.com/realspace/realspace/internal/config"
	"github.com/realspace/realspace/internal/session"
	"github.com/realspace/realspace/internal/viewmodel"
)

func testConfig(baseURL string) *config.Client {
	return &config.Client{
		APIBaseURL:     baseURL,
		KeyringService: "realspace.test",
		KeyringAccount: "token",
		HTTPTimeout:    50 * time.Millisecond,
		LogLevel:       "debug",
		LogFormat:      "json",
	}
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	cfg := testConfig("localhost/api")
	_, err := app.New(cfg, nil)
	assert.ErrorContains(t, err, "API_BASE_URL")

	cfg = testConfig("http://localhost:8080/api")
	cfg.LogLevel = "loud"
	_, err = app.New(cfg, nil)
	assert.ErrorContains(t, err, "log level")
}

func TestNew_UsesKeyringCoordinates(t *testing.T) {
	keyring.MockInit()
	require.NoError(t, keyring.Set("realspace.test", "token", "jwt"))

	a, err := app.New(testConfig("http://localhost:8080/api"), &bytes.Buffer{})
	require.NoError(t, err)
	t.Cleanup(a.Close)

	assert.True(t, a.Session.IsAuthenticated())
	_, err = keyring.Get(session.DefaultService, session.DefaultAccount)
	assert.ErrorIs(t, err, keyring.ErrNotFound, "default coordinates are not touched")
}

func TestNew_HTTPTimeoutAndLogger(t *testing.T) {
	keyring.MockInit()
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/entities" {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte("[]"))
			return
		}
		<-release
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	var logs bytes.Buffer
	a, err := app.New(testConfig(srv.URL+"/api"), &logs)
	require.NoError(t, err)
	t.Cleanup(a.Close)

	_, err = a.API.ListEntities(context.Background())
	require.NoError(t, err)
	assert.Contains(t, logs.String(), `"component":"client"`)

	_, err = a.API.ListTopics(context.Background())
	var netErr *client.NetworkError
	require.ErrorAs(t, err, &netErr, "the configured timeout fires")

	assert.False(t, a.Topics.Load(context.Background()))
	assert.Equal(t, viewmodel.MsgNetworkError, a.Topics.ErrorMessage())
	assert.Contains(t, logs.String(), `"component":"viewmodel"`)
}

func TestClose_EndsSubscriptions(t *testing.T) {
	keyring.MockInit()
	a, err := app.New(testConfig("http://localhost:8080/api"), &bytes.Buffer{})
	require.NoError(t, err)

	feed, cancelFeed := a.Feed.Subscribe()
	defer cancelFeed()
	auth, cancelAuth := a.Session.Subscribe()
	defer cancelAuth()

	a.Close()
	_, ok := <-feed
	assert.False(t, ok)
	_, ok = <-auth
	assert.False(t, ok)
}
