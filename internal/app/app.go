// Package app is the composition root of the realspace client. It turns a
// config.Client into a logger, the keyring session, the HTTP client and one
// view-model per screen, all sharing that session.
package app

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/realspace/realspace/internal/client"
	"github.com/realspace/realspace/internal/config"
	"github.com/realspace/realspace/internal/logger"
	"github.com/realspace/realspace/internal/session"
	"github.com/realspace/realspace/internal/viewmodel"
)

// App holds the wired client side. Screens read their view-model from it.
type App struct {
	Logger  *slog.Logger
	Session *session.Store
	API     *client.Client

	Auth      *viewmodel.AuthViewModel
	Feed      *viewmodel.FeedViewModel
	Topics    *viewmodel.TopicsViewModel
	TopicFeed *viewmodel.TopicFeedViewModel
	Community *viewmodel.CommunityViewModel
	List      *viewmodel.ListViewModel
	Profile   *viewmodel.ProfileViewModel
}

// New wires everything from cfg. Logs go to logOut (stdout when nil).
func New(cfg *config.Client, logOut io.Writer) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Writer: logOut})
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	store := session.New(session.Config{
		Service: cfg.KeyringService,
		Account: cfg.KeyringAccount,
	}, log.With(slog.String("component", "session")))

	api, err := client.New(cfg.APIBaseURL,
		client.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
		client.WithTokenSource(store),
		client.WithLogger(log.With(slog.String("component", "client"))),
	)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	vmLog := log.With(slog.String("component", "viewmodel"))
	return &App{
		Logger:    log,
		Session:   store,
		API:       api,
		Auth:      viewmodel.NewAuthViewModel(api, store, vmLog),
		Feed:      viewmodel.NewFeedViewModel(api, vmLog),
		Topics:    viewmodel.NewTopicsViewModel(api, vmLog),
		TopicFeed: viewmodel.NewTopicFeedViewModel(api, vmLog),
		Community: viewmodel.NewCommunityViewModel(api, vmLog),
		List:      viewmodel.NewListViewModel(api, vmLog),
		Profile:   viewmodel.NewProfileViewModel(api, vmLog),
	}, nil
}

// PostComments returns a comments screen for a friends-feed post.
func (a *App) PostComments(postID string) *viewmodel.CommentsViewModel {
	return viewmodel.NewPostCommentsViewModel(a.API, postID, a.Logger)
}

// TopicPostComments returns a comments screen for a topic-post.
func (a *App) TopicPostComments(topicPostID string) *viewmodel.CommentsViewModel {
	return viewmodel.NewTopicPostCommentsViewModel(a.API, topicPostID, a.Logger)
}

// Close ends every subscription held on the session and the view-models.
func (a *App) Close() {
	for _, vm := range []interface{ Close() }{
		a.Auth, a.Feed, a.Topics, a.TopicFeed, a.Community, a.List, a.Profile,
	} {
		vm.Close()
	}
	a.Session.Close()
}
