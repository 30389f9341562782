package events

import (
	"encoding/json"
	"log/slog"

	"github.com/lazharichir/holdem/domain"
	"github.com/lazharichir/holdem/server/connection"
	"github.com/lazharichir/holdem/table"
)

const (
	TypeGameState = "game_state"
	TypeError     = "error"
)

// Envelope is every message the server sends over a websocket
type Envelope struct {
	Type    string           `json:"type"`
	Data    *domain.Snapshot `json:"data,omitempty"`
	Message string           `json:"message,omitempty"`
}

// GameState encodes a snapshot for one viewer
func GameState(snapshot domain.Snapshot) ([]byte, error) {
	return json.Marshal(Envelope{Type: TypeGameState, Data: &snapshot})
}

// Error encodes a rejection sent back to the connection that caused it
func Error(message string) []byte {
	data, _ := json.Marshal(Envelope{Type: TypeError, Message: message})
	return data
}

// Dispatcher pushes room changes to the connected clients
type Dispatcher struct {
	connMgr *connection.Manager
	logger  *slog.Logger
}

// NewDispatcher creates a new event dispatcher
func NewDispatcher(connMgr *connection.Manager, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		connMgr: connMgr,
		logger:  logger,
	}
}

// HandleChange sends every client of the room the state it is allowed to see.
// It satisfies table.ChangeHandler.
func (d *Dispatcher) HandleChange(roomID string, render table.RenderFunc) {
	d.connMgr.Broadcast(roomID, func(playerID string) ([]byte, error) {
		data, err := GameState(render(playerID))
		if err != nil {
			d.logger.Error("failed to encode game state", "room", roomID, "player", playerID, "error", err)
		}
		return data, err
	})
}
