package table

import (
	"context"
	"testing"

	"github.com/lazharichir/holdem/domain"
	"github.com/lazharichir/holdem/domain/commands"
	"github.com/lazharichir/holdem/eventstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLobbyCreateAndLookup(t *testing.T) {
	lobby := NewLobby(eventstore.NewInMemoryEventStore(0), nil, testLogger())
	t.Cleanup(lobby.Close)

	loop := lobby.CreateRoom("", domain.DefaultRules())
	assert.Len(t, loop.RoomID(), 8)

	found, err := lobby.Room(loop.RoomID())
	require.NoError(t, err)
	assert.Same(t, loop, found)

	info, err := found.Info(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Room "+loop.RoomID(), info.Name)

	_, err = lobby.Room("missing")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestLobbyRooms(t *testing.T) {
	ctx := context.Background()
	lobby := NewLobby(nil, nil, testLogger())
	t.Cleanup(lobby.Close)

	a := lobby.CreateRoom("A", domain.DefaultRules())
	b := lobby.CreateRoom("B", domain.Rules{SmallBlind: 5, BigBlind: 10, StartingStack: 200, MaxPlayers: 6})
	require.NoError(t, b.Submit(ctx, commands.SeatPlayer{PlayerID: "alice", PlayerName: "Alice"}))

	rooms, err := lobby.Rooms(ctx)
	require.NoError(t, err)
	require.Len(t, rooms, 2)

	byID := map[string]Info{}
	for _, info := range rooms {
		byID[info.ID] = info
	}
	assert.Equal(t, 0, byID[a.RoomID()].Players)
	assert.Equal(t, 1, byID[b.RoomID()].Players)
	assert.Equal(t, 10, byID[b.RoomID()].BigBlind)
	assert.Equal(t, 6, byID[b.RoomID()].MaxPlayers)
	assert.True(t, rooms[0].ID < rooms[1].ID)
}

func TestLobbyRemoveRoom(t *testing.T) {
	ctx := context.Background()
	store := eventstore.NewInMemoryEventStore(0)
	lobby := NewLobby(store, nil, testLogger())
	t.Cleanup(lobby.Close)

	loop := lobby.CreateRoom("A", domain.DefaultRules())
	id := loop.RoomID()
	require.NoError(t, loop.Submit(ctx, commands.SeatPlayer{PlayerID: "alice", PlayerName: "Alice"}))

	require.NoError(t, lobby.RemoveRoom(id))

	_, err := lobby.Room(id)
	assert.ErrorIs(t, err, ErrRoomNotFound)
	assert.ErrorIs(t, lobby.RemoveRoom(id), ErrRoomNotFound)
	assert.ErrorIs(t, loop.Submit(ctx, commands.StartHand{}), ErrRoomClosed)

	stored, err := store.LoadEvents(id)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestLobbyPassesChangeHandler(t *testing.T) {
	ctx := context.Background()
	changed := make(chan string, 1)
	lobby := NewLobby(nil, func(roomID string, render RenderFunc) {
		changed <- render("").RoomID
	}, testLogger())
	t.Cleanup(lobby.Close)

	loop := lobby.CreateRoom("A", domain.DefaultRules())
	require.NoError(t, loop.Submit(ctx, commands.SeatPlayer{PlayerID: "alice", PlayerName: "Alice"}))

	assert.Equal(t, loop.RoomID(), <-changed)
}
