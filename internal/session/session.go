// Package session is the single source of truth for "is someone logged in".
//
// The bearer token lives in the OS credential store (Keychain, Secret Service,
// Windows Credential Manager) through go-keyring, so it survives restarts. The
// user snapshot is kept in memory only. Store implements oauth2.TokenSource and
// is what the HTTP client reads tokens from.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/zalando/go-keyring"
	"golang.org/x/oauth2"

	"github.com/realspace/realspace/internal/dto"
	"github.com/realspace/realspace/internal/notify"
)

// Keyring coordinates used when Config leaves them empty.
const (
	DefaultService = "com.realspace.app"
	DefaultAccount = "jwt_token"
)

// ErrNoToken is returned by Token when nothing is stored.
var ErrNoToken = errors.New("session: no stored token")

// Config selects the keyring entry holding the token.
type Config struct {
	Service string
	Account string
}

// State is what subscribers receive whenever authentication changes.
type State struct {
	Authenticated bool
	User          *dto.UserResponse
}

// Store persists the token and tracks the logged-in user. Create one per
// process and share it; it is safe for concurrent use.
type Store struct {
	service string
	account string
	logger  *slog.Logger

	mu            sync.RWMutex
	authenticated bool
	user          *dto.UserResponse

	changes notify.Hub[State]
}

var _ oauth2.TokenSource = (*Store)(nil)

// New opens the store. The initial state is authenticated exactly when a
// token is already stored. An unreadable credential store counts as empty.
func New(cfg Config, logger *slog.Logger) *Store {
	if cfg.Service == "" {
		cfg.Service = DefaultService
	}
	if cfg.Account == "" {
		cfg.Account = DefaultAccount
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &Store{
		service: cfg.Service,
		account: cfg.Account,
		logger:  logger,
	}

	_, s.authenticated = s.Get()

	logger.Debug("session store opened",
		slog.String("service", s.service),
		slog.Bool("authenticated", s.authenticated),
	)
	return s
}

// Save stores token, replacing any previous one, and marks the session authenticated.
func (s *Store) Save(token string) error {
	if err := s.save(token); err != nil {
		return err
	}
	s.publish()
	return nil
}

func (s *Store) save(token string) error {
	if token == "" {
		return errors.New("session: empty token")
	}
	if err := keyring.Set(s.service, s.account, token); err != nil {
		return fmt.Errorf("session: saving token: %w", err)
	}

	s.mu.Lock()
	s.authenticated = true
	s.mu.Unlock()
	return nil
}

// Get returns the stored token. ok is false when there is none or the
// credential store cannot be read.
func (s *Store) Get() (token string, ok bool) {
	tok, err := keyring.Get(s.service, s.account)
	if err != nil {
		if !errors.Is(err, keyring.ErrNotFound) {
			s.logger.Warn("reading token failed", slog.String("error", err.Error()))
		}
		return "", false
	}
	return tok, tok != ""
}

// Token implements oauth2.TokenSource.
func (s *Store) Token() (*oauth2.Token, error) {
	tok, ok := s.Get()
	if !ok {
		return nil, ErrNoToken
	}
	return &oauth2.Token{AccessToken: tok, TokenType: "Bearer"}, nil
}

// Clear removes the stored token and forgets the user. The session is
// unauthenticated afterwards even if the credential store reports an error.
func (s *Store) Clear() error {
	err := keyring.Delete(s.service, s.account)
	if errors.Is(err, keyring.ErrNotFound) {
		err = nil
	}

	s.mu.Lock()
	s.authenticated = false
	s.user = nil
	s.mu.Unlock()
	s.publish()

	if err != nil {
		return fmt.Errorf("session: deleting token: %w", err)
	}
	return nil
}

// Login saves token and records user as the current user.
func (s *Store) Login(token string, user dto.UserResponse) error {
	if err := s.save(token); err != nil {
		return err
	}

	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()

	s.logger.Info("logged in", slog.String("userID", user.ID))
	s.publish()
	return nil
}

// Logout is Clear.
func (s *Store) Logout() error {
	return s.Clear()
}

// SetCurrentUser records the user a restored token belongs to.
func (s *Store) SetCurrentUser(user dto.UserResponse) {
	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
	s.publish()
}

// IsAuthenticated reports whether a token is stored.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// CurrentUser returns a copy of the logged-in user, or nil.
func (s *Store) CurrentUser() *dto.UserResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// State returns the current authentication state.
func (s *Store) State() State {
	return State{Authenticated: s.IsAuthenticated(), User: s.CurrentUser()}
}

// Subscribe returns a channel that receives the new State after every change.
// Call cancel when done.
func (s *Store) Subscribe() (<-chan State, func()) {
	return s.changes.Subscribe()
}

// Close ends every subscription. The stored token is left alone.
func (s *Store) Close() {
	s.changes.Close()
}

func (s *Store) publish() {
	s.changes.Publish(s.State())
}
