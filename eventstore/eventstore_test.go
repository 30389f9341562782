package eventstore

import (
	"fmt"
	"sync"
	"testing"

	"github.com/lazharichir/holdem/domain/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type unscopedEvent struct{}

func (unscopedEvent) Name() string { return "UNSCOPED" }

func TestInMemoryEventStore(t *testing.T) {
	store := NewInMemoryEventStore(0)
	roomID := "room-123"

	t.Run("Append and load events", func(t *testing.T) {
		require.NoError(t, store.Append(events.HandStarted{RoomID: roomID, Players: []string{"a", "b"}}))
		require.NoError(t, store.Append(events.BlindPosted{RoomID: roomID, PlayerID: "a", Blind: "small", Amount: 10}))
		require.NoError(t, store.Append(events.BlindPosted{RoomID: roomID, PlayerID: "b", Blind: "big", Amount: 20}))

		loaded, err := store.LoadEvents(roomID)
		require.NoError(t, err)
		require.Len(t, loaded, 3)
		assert.Equal(t, "HAND_STARTED", loaded[0].Name())
		assert.Equal(t, "b", loaded[2].(events.BlindPosted).PlayerID)
	})

	t.Run("Rooms are isolated", func(t *testing.T) {
		loaded, err := store.LoadEvents("other-room")
		require.NoError(t, err)
		assert.Empty(t, loaded)
		assert.NotNil(t, loaded)
	})

	t.Run("Events without a room are rejected", func(t *testing.T) {
		assert.Error(t, store.Append(unscopedEvent{}))
	})

	t.Run("Delete forgets a room", func(t *testing.T) {
		store.Delete(roomID)
		loaded, err := store.LoadEvents(roomID)
		require.NoError(t, err)
		assert.Empty(t, loaded)
	})
}

func TestInMemoryEventStoreKeepsCurrentHand(t *testing.T) {
	store := NewInMemoryEventStore(0)

	require.NoError(t, store.Append(events.PlayerSeated{RoomID: "r", PlayerID: "a"}))
	require.NoError(t, store.Append(events.HandStarted{RoomID: "r"}))
	require.NoError(t, store.Append(events.PlayerActed{RoomID: "r", PlayerID: "a"}))
	require.NoError(t, store.Append(events.HandStarted{RoomID: "r"}))
	require.NoError(t, store.Append(events.BlindPosted{RoomID: "r", PlayerID: "a"}))

	loaded, err := store.LoadEvents("r")
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "HAND_STARTED", loaded[0].Name())
	assert.Equal(t, "BLIND_POSTED", loaded[1].Name())
}

func TestInMemoryEventStoreCapacity(t *testing.T) {
	store := NewInMemoryEventStore(3)

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Append(events.PlayerActed{RoomID: "r", PlayerID: fmt.Sprint(i)}))
	}

	loaded, err := store.LoadEvents("r")
	require.NoError(t, err)
	require.Len(t, loaded, 3)
	assert.Equal(t, "2", loaded[0].(events.PlayerActed).PlayerID)
	assert.Equal(t, "4", loaded[2].(events.PlayerActed).PlayerID)
}

func TestInMemoryEventStoreConcurrentAppends(t *testing.T) {
	store := NewInMemoryEventStore(1000)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = store.Append(events.PlayerActed{RoomID: "r"})
			}
		}()
	}
	wg.Wait()

	loaded, err := store.LoadEvents("r")
	require.NoError(t, err)
	assert.Len(t, loaded, 500)
}
