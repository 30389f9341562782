package events

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/lazharichir/holdem/domain"
	"github.com/lazharichir/holdem/server/connection"
	"github.com/lazharichir/holdem/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameStateEnvelope(t *testing.T) {
	data, err := GameState(domain.Snapshot{RoomID: "room-1", Stage: domain.StageWaiting})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "game_state", decoded["type"])
	assert.NotContains(t, decoded, "message")

	state := decoded["data"].(map[string]any)
	assert.Equal(t, "room-1", state["room_id"])
	assert.Equal(t, "waiting", state["stage"])
}

func TestErrorEnvelope(t *testing.T) {
	assert.JSONEq(t, `{"type":"error","message":"not your turn"}`, string(Error("not your turn")))
}

func TestDispatcherRendersPerClient(t *testing.T) {
	connMgr := connection.NewManager(nil)
	alice := connection.NewClient("c1", "room-1", "alice", nil, 4)
	bob := connection.NewClient("c2", "room-1", "bob", nil, 4)
	connMgr.Register(alice)
	connMgr.Register(bob)

	room := domain.NewRoom("room-1", "Test", domain.DefaultRules())
	require.NoError(t, room.Seat("alice", "Alice"))
	require.NoError(t, room.Seat("bob", "Bob"))
	require.NoError(t, room.StartHand())

	d := NewDispatcher(connMgr, slog.New(slog.NewTextHandler(io.Discard, nil)))
	var render table.RenderFunc = func(viewerID string) domain.Snapshot {
		return domain.Redact(room, viewerID)
	}
	d.HandleChange("room-1", render)

	for _, client := range []*connection.Client{alice, bob} {
		var env Envelope
		require.NoError(t, json.Unmarshal(<-client.Send, &env))
		require.NotNil(t, env.Data)
		assert.Equal(t, TypeGameState, env.Type)
		for id, p := range env.Data.Players {
			if id == client.PlayerID {
				assert.Len(t, p.HoleCards, 2)
			} else {
				assert.Empty(t, p.HoleCards)
			}
		}
	}
}
