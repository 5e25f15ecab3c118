// Package client is the HTTP client for the realspace REST API.
//
// Every exported method maps to exactly one endpoint and performs exactly one
// HTTP request (or none, when it fails locally). Results are the transfer
// representations from internal/dto; failures are one of the error kinds in
// errors.go. The client never retries and never recovers: the caller (a
// view-model) decides what the user sees.
//
// The client holds no mutable state. The bearer token is looked up per call
// from an oauth2.TokenSource, normally the session store.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/realspace/realspace/internal/dto"
	"github.com/realspace/realspace/internal/validation"
)

// DefaultBaseURL is where the dev API listens.
const DefaultBaseURL = "http://localhost:8080/api"

// unknownErrorReason is used when an error response body is not {error, reason}.
const unknownErrorReason = "Unknown error"

// auth describes whether an operation sends the bearer token.
type auth int

const (
	authNone     auth = iota // never send a token (register, login)
	authOptional             // send it when there is one; the server personalises the answer
	authRequired             // fail with ErrUnauthorized before any I/O when there is none
)

// Client talks to one API base URL. It is safe for concurrent use.
type Client struct {
	baseURL   string
	http      *http.Client
	tokens    oauth2.TokenSource
	validator *validation.Validator
	logger    *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces http.DefaultClient. Tests pass one with a spy transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTokenSource sets where bearer tokens come from.
// Without one, every authenticated operation fails with ErrUnauthorized.
func WithTokenSource(ts oauth2.TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithLogger sets the logger used for per-request debug lines.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New creates a Client for baseURL, e.g. "http://localhost:8080/api".
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidURL, baseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q must be an absolute http(s) URL", ErrInvalidURL, baseURL)
	}

	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      http.DefaultClient,
		validator: validation.New(),
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the API root the client was created with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// endpoint joins path segments under the base URL, escaping each one.
// endpoint("posts", id, "like") -> {base}/posts/{id}/like
func (c *Client) endpoint(segments ...string) (string, error) {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		if s == "" {
			return "", fmt.Errorf("%w: empty path segment in %v", ErrInvalidURL, segments)
		}
		escaped[i] = url.PathEscape(s)
	}
	raw := c.baseURL + "/" + strings.Join(escaped, "/")
	if _, err := url.Parse(raw); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	return raw, nil
}

// do performs one request and returns the status and body of a response with
// status < 400. Everything else comes back as a typed error.
func (c *Client) do(ctx context.Context, method string, mode auth, body any, path ...string) (int, []byte, error) {
	target, err := c.endpoint(path...)
	if err != nil {
		return 0, nil, err
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return 0, nil, &EncodingError{Err: err}
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	if err := c.authorize(req, mode); err != nil {
		return 0, nil, err
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, &NetworkError{Err: err}
	}

	c.logger.Debug("api call",
		slog.String("method", method),
		slog.String("url", target),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
		slog.String("requestID", req.Header.Get("X-Request-ID")),
	)

	if resp.StatusCode >= http.StatusBadRequest {
		return resp.StatusCode, nil, httpError(resp.StatusCode, data)
	}
	return resp.StatusCode, data, nil
}

// authorize attaches the bearer token according to mode.
func (c *Client) authorize(req *http.Request, mode auth) error {
	if mode == authNone {
		return nil
	}

	var tok *oauth2.Token
	var err error
	if c.tokens != nil {
		tok, err = c.tokens.Token()
	}
	if tok == nil || tok.AccessToken == "" {
		if mode == authRequired {
			if err != nil {
				return fmt.Errorf("%w: %w", ErrUnauthorized, err)
			}
			return ErrUnauthorized
		}
		return nil
	}

	tok.SetAuthHeader(req)
	return nil
}

// httpError builds an HTTPError from an error response body.
func httpError(status int, data []byte) *HTTPError {
	var apiErr dto.APIError
	if err := json.Unmarshal(data, &apiErr); err != nil || apiErr.Reason == "" {
		return &HTTPError{Status: status, Reason: unknownErrorReason}
	}
	return &HTTPError{Status: status, Reason: apiErr.Reason}
}

// getOne performs a call that returns a single representation.
func getOne[T any](ctx context.Context, c *Client, method string, mode auth, body any, path ...string) (*T, error) {
	_, data, err := c.do(ctx, method, mode, body, path...)
	if err != nil {
		return nil, err
	}

	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, &DecodingError{Err: err}
	}
	if err := c.validator.Struct(out); err != nil {
		return nil, &DecodingError{Err: err}
	}
	return &out, nil
}

// getList performs a call that returns a JSON array of representations.
// A JSON null decodes as an empty, non-nil slice.
func getList[T any](ctx context.Context, c *Client, mode auth, path ...string) ([]T, error) {
	_, data, err := c.do(ctx, http.MethodGet, mode, nil, path...)
	if err != nil {
		return nil, err
	}

	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, &DecodingError{Err: err}
	}
	for i := range out {
		if err := c.validator.Struct(out[i]); err != nil {
			return nil, &DecodingError{Err: fmt.Errorf("item %d: %w", i, err)}
		}
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// deleteResource performs a DELETE that must answer 204 No Content.
func (c *Client) deleteResource(ctx context.Context, path ...string) error {
	status, _, err := c.do(ctx, http.MethodDelete, authRequired, nil, path...)
	if err != nil {
		return err
	}
	if status != http.StatusNoContent {
		return fmt.Errorf("%w: DELETE %s answered %d, want 204", ErrInvalidResponse, strings.Join(path, "/"), status)
	}
	return nil
}

// IsAuthError reports whether err means the session is missing or rejected:
// either no token was available, or the server answered 401.
func IsAuthError(err error) bool {
	if errors.Is(err, ErrUnauthorized) {
		return true
	}
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.Status == http.StatusUnauthorized
}
