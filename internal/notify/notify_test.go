package notify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/realspace/realspace/internal/notify"
)

func TestHub_LatestValueWins(t *testing.T) {
	var h notify.Hub[int]
	ch, cancel := h.Subscribe()
	defer cancel()

	h.Publish(1)
	h.Publish(2)
	h.Publish(3)

	require.Len(t, ch, 1)
	assert.Equal(t, 3, <-ch)
}

func TestHub_EverySubscriberReceives(t *testing.T) {
	var h notify.Hub[string]
	a, cancelA := h.Subscribe()
	defer cancelA()
	b, cancelB := h.Subscribe()
	defer cancelB()

	h.Publish("changed")

	assert.Equal(t, "changed", <-a)
	assert.Equal(t, "changed", <-b)
}

func TestHub_Cancel(t *testing.T) {
	var h notify.Hub[bool]
	ch, cancel := h.Subscribe()

	cancel()
	cancel()

	_, ok := <-ch
	assert.False(t, ok, "channel is closed after cancel")

	// Publishing with no subscribers is a no-op.
	h.Publish(true)
}

func TestHub_Close(t *testing.T) {
	var h notify.Hub[struct{}]
	ch, cancel := h.Subscribe()
	defer cancel()

	h.Close()
	_, ok := <-ch
	assert.False(t, ok)

	late, lateCancel := h.Subscribe()
	defer lateCancel()
	_, ok = <-late
	assert.False(t, ok)
}
