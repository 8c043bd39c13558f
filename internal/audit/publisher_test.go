package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notarium/pkg/requestcontext"
)

func TestEmit_PersistsAndStampsTimestamp(t *testing.T) {
	store := NewInMemoryStore()
	pub := NewPublisher(store)

	err := pub.Emit(context.Background(), Event{
		Action:  string(EventListingVerified),
		Subject: "listing-1",
	})
	require.NoError(t, err)

	events, err := store.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "listing_verified", events[0].Action)
	assert.False(t, events[0].Timestamp.IsZero())
}

func TestEmit_EnrichesFromContext(t *testing.T) {
	store := NewInMemoryStore()
	pub := NewPublisher(store)

	ctx := requestcontext.WithRequestID(context.Background(), "req-123")
	ctx = requestcontext.WithActorEmail(ctx, "ops@example.com")

	require.NoError(t, pub.Emit(ctx, Event{Action: string(EventListingHidden), Subject: "listing-2"}))

	events, err := store.ListBySubject(ctx, "listing-2")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "req-123", events[0].RequestID)
	assert.Equal(t, "ops@example.com", events[0].ActorEmail)
}

func TestEmit_AsyncDrainsOnClose(t *testing.T) {
	store := NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(16))

	for i := 0; i < 5; i++ {
		require.NoError(t, pub.Emit(context.Background(), Event{
			Action:    string(EventListingSubmitted),
			Subject:   "listing-3",
			Timestamp: time.Now(),
		}))
	}
	pub.Close()

	events, err := store.ListBySubject(context.Background(), "listing-3")
	require.NoError(t, err)
	assert.Len(t, events, 5)
}

func TestListRecent_NewestFirstAndLimited(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	for _, action := range []string{"first", "second", "third"} {
		require.NoError(t, store.Append(ctx, Event{Action: action, Timestamp: time.Now()}))
	}

	events, err := store.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "third", events[0].Action)
	assert.Equal(t, "second", events[1].Action)
}
