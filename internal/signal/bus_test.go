package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusDeliversToAllSubscribers(t *testing.T) {
	bus := NewBus()
	a, cancelA := bus.Subscribe(1)
	b, cancelB := bus.Subscribe(1)
	defer cancelA()
	defer cancelB()

	ev := AccessChanged{UserID: "u1", LessonID: "l1"}
	bus.Publish(ev)

	assert.Equal(t, ev, <-a)
	assert.Equal(t, ev, <-b)
}

func TestBusUnsubscribeClosesChannel(t *testing.T) {
	bus := NewBus()
	ch, cancel := bus.Subscribe(1)

	cancel()
	cancel() // second call is a no-op

	_, open := <-ch
	assert.False(t, open)

	// Publishing after unsubscribe must not panic on the closed channel.
	bus.Publish(AccessChanged{UserID: "u1"})
}

func TestBusPublishNeverBlocks(t *testing.T) {
	bus := NewBus()
	ch, cancel := bus.Subscribe(1)
	defer cancel()

	bus.Publish(AccessChanged{UserID: "u1", LessonID: "l1"})
	bus.Publish(AccessChanged{UserID: "u1", LessonID: "l2"}) // buffer full, dropped

	first := <-ch
	assert.Equal(t, "l1", first.LessonID)

	select {
	case ev, open := <-ch:
		require.True(t, open)
		t.Fatalf("expected dropped event, got %+v", ev)
	default:
	}
}
