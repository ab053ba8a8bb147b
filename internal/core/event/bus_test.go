package event

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusPublishSubscribe(t *testing.T) {
	bus := NewBus()

	var got []Event
	bus.Subscribe(EventJobCreated, func(_ context.Context, e Event) error {
		got = append(got, e)
		return nil
	})

	err := bus.Publish(context.Background(), Event{
		Type:    EventJobCreated,
		Payload: JobEvent{JobID: "j1", URL: "https://example.com/v"},
	})
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.False(t, got[0].Timestamp.IsZero())
	payload, ok := got[0].Payload.(JobEvent)
	require.True(t, ok)
	assert.Equal(t, "j1", payload.JobID)
}

func TestBusUnsubscribe(t *testing.T) {
	bus := NewBus()

	calls := 0
	unsubscribe := bus.Subscribe(EventJobFailed, func(context.Context, Event) error {
		calls++
		return nil
	})

	require.NoError(t, bus.Publish(context.Background(), Event{Type: EventJobFailed}))
	unsubscribe()
	require.NoError(t, bus.Publish(context.Background(), Event{Type: EventJobFailed}))

	assert.Equal(t, 1, calls)
}

func TestBusIgnoresOtherEventTypes(t *testing.T) {
	bus := NewBus()

	calls := 0
	bus.Subscribe(EventJobCompleted, func(context.Context, Event) error {
		calls++
		return nil
	})

	require.NoError(t, bus.Publish(context.Background(), Event{Type: EventJobCreated}))
	assert.Zero(t, calls)
}
