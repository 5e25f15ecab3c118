// Package viewmodel holds per-screen state: a collection of transfer
// representations, loading and busy flags, and a user-facing error message.
//
// STATE FLOW:
// A screen calls an operation (Load, Create..., Delete..., ToggleLike). The
// operation calls the HTTP client, then updates the collection in place:
//
//	create      -> insert the returned item at the head
//	delete      -> remove the item by id
//	like/unlike -> replace the item by id with the returned representation
//
// Nothing is re-fetched after a mutation. Two view-models for the same kind of
// screen do not see each other's changes until their next Load.
//
// Every change is announced on the channels returned by Subscribe. The screen
// then reads a fresh snapshot (Items, IsLoading, ErrorMessage, IsBusy).
//
// All methods are safe for concurrent use. When two loads overlap, the one
// that finishes last wins.
package viewmodel

import (
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/realspace/realspace/internal/client"
	"github.com/realspace/realspace/internal/notify"
	"github.com/realspace/realspace/internal/validation"
)

// Messages shown for failures that are not server-reported.
const (
	MsgLoginAgain   = "Please log in again"
	MsgNetworkError = "Network error. Is the API running?"
)

// Op names a mutation for IsBusy.
type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
	OpLike   Op = "like"
)

// Identifiable is implemented by every response type held in a collection.
type Identifiable interface {
	GetID() string
}

var validate = validation.New()

// ErrorMessage turns an error from the HTTP client into text for the user.
// failure describes what was attempted, e.g. "Failed to create post".
func ErrorMessage(failure string, err error) string {
	var httpErr *client.HTTPError
	var netErr *client.NetworkError

	switch {
	case errors.As(err, &httpErr):
		return failure + ": " + httpErr.Reason
	case errors.Is(err, client.ErrUnauthorized):
		return MsgLoginAgain
	case errors.As(err, &netErr):
		return MsgNetworkError
	default:
		return "Unexpected error: " + err.Error()
	}
}

// base is the state every view-model shares.
type base struct {
	mu      sync.RWMutex
	loading bool
	errMsg  string
	busy    map[Op]int
	logger  *slog.Logger
	changes notify.Hub[struct{}]
}

func (b *base) init(logger *slog.Logger) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	b.busy = make(map[Op]int)
	b.logger = logger
}

// IsLoading reports whether a load is in flight.
func (b *base) IsLoading() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.loading
}

// ErrorMessage returns the last error shown to the user, or "".
func (b *base) ErrorMessage() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.errMsg
}

// IsBusy reports whether at least one mutation of kind op is in flight.
func (b *base) IsBusy(op Op) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.busy[op] > 0
}

// ClearError dismisses the current error message.
func (b *base) ClearError() {
	b.update(func() { b.errMsg = "" })
}

// Subscribe returns a channel that receives a value after every state change.
func (b *base) Subscribe() (<-chan struct{}, func()) {
	return b.changes.Subscribe()
}

// Close closes every subscriber channel. The view-model stays usable but
// no longer notifies anyone.
func (b *base) Close() {
	b.changes.Close()
}

// update applies fn under the lock, then notifies subscribers.
func (b *base) update(fn func()) {
	b.mu.Lock()
	fn()
	b.mu.Unlock()
	b.changes.Publish(struct{}{})
}

// setError shows msg without any request having been made.
func (b *base) setError(msg string) {
	b.update(func() { b.errMsg = msg })
}

func (b *base) logFailure(failure string, err error) {
	b.logger.Warn(failure, slog.String("error", err.Error()))
}

// load replaces *items with the result of fetch. loading is true for the
// duration and false afterwards, whatever the outcome.
func load[T any](b *base, items *[]T, failure string, fetch func() ([]T, error)) bool {
	b.update(func() {
		b.loading = true
		b.errMsg = ""
	})

	got, err := fetch()
	if err != nil {
		b.logFailure(failure, err)
	}

	b.update(func() {
		b.loading = false
		if err != nil {
			b.errMsg = ErrorMessage(failure, err)
			return
		}
		*items = got
	})
	return err == nil
}

// mutate runs call with op marked busy. On success the returned edit is applied
// to *items; on failure the error message is set and *items is untouched.
func mutate[T any](b *base, items *[]T, op Op, failure string, call func() (func([]T) []T, error)) bool {
	b.update(func() {
		b.busy[op]++
		b.errMsg = ""
	})

	edit, err := call()
	if err != nil {
		b.logFailure(failure, err)
	}

	b.update(func() {
		if b.busy[op]--; b.busy[op] <= 0 {
			delete(b.busy, op)
		}
		if err != nil {
			b.errMsg = ErrorMessage(failure, err)
			return
		}
		if edit != nil {
			*items = edit(*items)
		}
	})
	return err == nil
}

func prepend[T any](item T) func([]T) []T {
	return func(items []T) []T {
		return slices.Insert(items, 0, item)
	}
}

func removeID[T Identifiable](id string) func([]T) []T {
	return func(items []T) []T {
		return slices.DeleteFunc(items, func(it T) bool { return it.GetID() == id })
	}
}

func replaceID[T Identifiable](item T) func([]T) []T {
	return func(items []T) []T {
		if i := slices.IndexFunc(items, func(it T) bool { return it.GetID() == item.GetID() }); i >= 0 {
			items[i] = item
		}
		return items
	}
}

// collection is a base plus one ordered list of items.
type collection[T Identifiable] struct {
	base
	items []T
}

// Items returns a snapshot of the collection in display order.
func (c *collection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.items)
}

// Find returns the item with id.
func (c *collection[T]) Find(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, it := range c.items {
		if it.GetID() == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}
