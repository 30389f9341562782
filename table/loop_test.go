package table

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/lazharichir/holdem/domain"
	"github.com/lazharichir/holdem/domain/commands"
	"github.com/lazharichir/holdem/eventstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestLoop(t *testing.T, onChange ChangeHandler) (*Loop, *eventstore.InMemoryEventStore) {
	t.Helper()
	store := eventstore.NewInMemoryEventStore(0)
	loop := NewLoop(domain.NewRoom("room-1", "Test Room", domain.DefaultRules()), store, onChange, testLogger())
	loop.Start()
	t.Cleanup(loop.Stop)
	return loop, store
}

func TestLoopAppliesCommands(t *testing.T) {
	ctx := context.Background()

	var mu sync.Mutex
	var seen []domain.Snapshot
	loop, store := newTestLoop(t, func(roomID string, render RenderFunc) {
		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, "room-1", roomID)
		seen = append(seen, render("alice"))
	})

	require.NoError(t, loop.Submit(ctx, commands.SeatPlayer{PlayerID: "alice", PlayerName: "Alice"}))
	require.NoError(t, loop.Submit(ctx, commands.SeatPlayer{PlayerID: "bob", PlayerName: "Bob"}))
	require.NoError(t, loop.Submit(ctx, commands.StartHand{}))
	require.NoError(t, loop.Submit(ctx, commands.ApplyAction{PlayerID: "alice", Action: domain.Call{}}))

	snap, err := loop.Snapshot(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, domain.StageFlop, snap.Stage)
	assert.Equal(t, 40, snap.Pot)
	assert.Len(t, snap.Players["bob"].HoleCards, 2)
	assert.Empty(t, snap.Players["alice"].HoleCards)

	mu.Lock()
	require.Len(t, seen, 4)
	assert.Len(t, seen[2].Players["alice"].HoleCards, 2)
	assert.Empty(t, seen[2].Players["bob"].HoleCards)
	mu.Unlock()

	stored, err := store.LoadEvents("room-1")
	require.NoError(t, err)
	assert.NotEmpty(t, stored)
	assert.Equal(t, "HAND_STARTED", stored[0].Name())
}

func TestLoopRejectionsDoNotNotify(t *testing.T) {
	ctx := context.Background()

	var calls atomic.Int32
	loop, _ := newTestLoop(t, func(string, RenderFunc) { calls.Add(1) })

	require.NoError(t, loop.Submit(ctx, commands.SeatPlayer{PlayerID: "alice", PlayerName: "Alice"}))

	err := loop.Submit(ctx, commands.StartHand{})
	assert.ErrorIs(t, err, domain.ErrNotEnoughPlayers)

	err = loop.Submit(ctx, commands.ApplyAction{PlayerID: "ghost", Action: domain.Fold{}})
	assert.ErrorIs(t, err, domain.ErrPlayerNotFound)

	_, err = loop.Snapshot(ctx, "alice")
	require.NoError(t, err)

	assert.Equal(t, int32(1), calls.Load())
}

func TestLoopInfo(t *testing.T) {
	ctx := context.Background()
	loop, _ := newTestLoop(t, nil)

	require.NoError(t, loop.Submit(ctx, commands.SeatPlayer{PlayerID: "alice", PlayerName: "Alice"}))

	info, err := loop.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, Info{
		ID:         "room-1",
		Name:       "Test Room",
		Players:    1,
		MaxPlayers: 9,
		Stage:      domain.StageWaiting,
		SmallBlind: 10,
		BigBlind:   20,
	}, info)
}

func TestLoopSerializesConcurrentCommands(t *testing.T) {
	ctx := context.Background()
	loop, _ := newTestLoop(t, nil)

	var ok, full atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := loop.Submit(ctx, commands.SeatPlayer{PlayerID: fmt.Sprintf("p%d", i), PlayerName: "P"})
			switch {
			case err == nil:
				ok.Add(1)
			case assert.ErrorIs(t, err, domain.ErrRoomFull):
				full.Add(1)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(9), ok.Load())
	assert.Equal(t, int32(11), full.Load())

	snap, err := loop.Snapshot(ctx, "")
	require.NoError(t, err)
	assert.Len(t, snap.Players, 9)
}

func TestLoopStopped(t *testing.T) {
	loop := NewLoop(domain.NewRoom("room-1", "Test Room", domain.DefaultRules()), nil, nil, testLogger())
	loop.Start()
	loop.Stop()

	err := loop.Submit(context.Background(), commands.StartHand{})
	assert.ErrorIs(t, err, ErrRoomClosed)

	_, err = loop.Snapshot(context.Background(), "")
	assert.ErrorIs(t, err, ErrRoomClosed)
}
