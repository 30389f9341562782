package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lazharichir/holdem/domain"
	"github.com/lazharichir/holdem/domain/commands"
	"github.com/lazharichir/holdem/server/connection"
	"github.com/lazharichir/holdem/server/events"
	"github.com/lazharichir/holdem/table"
)

// Inbound message types
const (
	TypeJoin      = "join"
	TypeStartHand = "start_hand"
	TypeAction    = "action"
	TypeGetState  = "get_state"
)

// Message is the union of every inbound message
type Message struct {
	Type   string `json:"type"`
	Name   string `json:"name,omitempty"`
	Action string `json:"action,omitempty"`
	Amount int    `json:"amount,omitempty"`
}

// CommandRouter routes incoming messages to the room loop of the sending client
type CommandRouter struct {
	lobby   *table.Lobby
	connMgr *connection.Manager
	logger  *slog.Logger
}

// NewCommandRouter creates a new command router
func NewCommandRouter(lobby *table.Lobby, connMgr *connection.Manager, logger *slog.Logger) *CommandRouter {
	return &CommandRouter{
		lobby:   lobby,
		connMgr: connMgr,
		logger:  logger,
	}
}

// HandleCommand processes an incoming message. Rejections are reported to the
// client as error messages and returned.
func (r *CommandRouter) HandleCommand(ctx context.Context, client *connection.Client, message []byte) error {
	var msg Message
	if err := json.Unmarshal(message, &msg); err != nil {
		r.reply(client, events.Error("Invalid message"))
		return fmt.Errorf("decode message: %w", err)
	}

	err := r.route(ctx, client, msg)
	if err != nil {
		r.reply(client, events.Error(errorMessage(err)))
	}
	return err
}

// reply sends message to client if it is still its player's connection. A
// client that cannot keep up is dropped.
func (r *CommandRouter) reply(client *connection.Client, message []byte) {
	current, ok := r.connMgr.Client(client.RoomID, client.PlayerID)
	if !ok || current != client {
		return
	}
	r.connMgr.SendToPlayer(client.RoomID, client.PlayerID, message)
}

func (r *CommandRouter) route(ctx context.Context, client *connection.Client, msg Message) error {
	loop, err := r.lobby.Room(client.RoomID)
	if err != nil {
		return err
	}

	switch msg.Type {
	case TypeJoin:
		name := strings.TrimSpace(msg.Name)
		if name == "" {
			name = DefaultName(client.PlayerID)
		}
		return loop.Submit(ctx, commands.SeatPlayer{PlayerID: client.PlayerID, PlayerName: name})

	case TypeStartHand:
		return loop.Submit(ctx, commands.StartHand{})

	case TypeAction:
		action, err := domain.ParseAction(msg.Action, msg.Amount)
		if err != nil {
			return err
		}
		return loop.Submit(ctx, commands.ApplyAction{PlayerID: client.PlayerID, Action: action})

	case TypeGetState:
		snapshot, err := loop.Snapshot(ctx, client.PlayerID)
		if err != nil {
			return err
		}
		data, err := events.GameState(snapshot)
		if err != nil {
			return err
		}
		r.reply(client, data)
		return nil

	default:
		return fmt.Errorf("%w: %q", ErrUnknownMessage, msg.Type)
	}
}

// HandleDisconnect unseats the player of a dropped connection. Spectators
// were never seated, which is not an error.
func (r *CommandRouter) HandleDisconnect(ctx context.Context, client *connection.Client) error {
	loop, err := r.lobby.Room(client.RoomID)
	if err != nil {
		return nil
	}

	err = loop.Submit(ctx, commands.UnseatPlayer{PlayerID: client.PlayerID})
	if errors.Is(err, domain.ErrPlayerNotFound) || errors.Is(err, table.ErrRoomClosed) {
		return nil
	}
	if err == nil {
		r.logger.Info("player left", "room", client.RoomID, "player", client.PlayerID)
	}
	return err
}

// ErrUnknownMessage is returned for message types the router does not know.
var ErrUnknownMessage = errors.New("unknown message type")

// DefaultName is the seat name used when a join carries none
func DefaultName(playerID string) string {
	if len(playerID) > 4 {
		playerID = playerID[:4]
	}
	return "Player " + playerID
}

// errorMessage is the short reason shown to players
func errorMessage(err error) string {
	switch {
	case errors.Is(err, ErrUnknownMessage):
		return "Unknown message type"
	case errors.Is(err, table.ErrRoomNotFound):
		return "Room not found"
	case errors.Is(err, domain.ErrUnknownAction):
		return "Unknown action"
	}
	return err.Error()
}
