package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishInvokesSubscribersOfType(t *testing.T) {
	d := NewInMemoryDispatcher()

	var issued, rejected int
	d.Subscribe(EventCredentialIssued, func(context.Context, Event) error {
		issued++
		return nil
	})
	d.Subscribe(EventCredentialRejected, func(context.Context, Event) error {
		rejected++
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventCredentialIssued}))
	assert.Equal(t, 1, issued)
	assert.Equal(t, 0, rejected)
}

func TestPublishRunsAllHandlersAndJoinsErrors(t *testing.T) {
	d := NewInMemoryDispatcher()
	errA := errors.New("a")
	errB := errors.New("b")

	var calls int
	d.Subscribe(EventCredentialReissued, func(context.Context, Event) error {
		calls++
		return errA
	})
	d.Subscribe(EventCredentialReissued, func(context.Context, Event) error {
		calls++
		return nil
	})
	d.Subscribe(EventCredentialReissued, func(context.Context, Event) error {
		calls++
		return errB
	})

	err := d.Publish(context.Background(), Event{Type: EventCredentialReissued})
	assert.Equal(t, 3, calls)
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
}

func TestPublishWithoutSubscribers(t *testing.T) {
	assert.NoError(t, NewInMemoryDispatcher().Publish(context.Background(), Event{Type: EventCredentialIssued}))
}
