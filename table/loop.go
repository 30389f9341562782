package table

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/lazharichir/holdem/domain"
	"github.com/lazharichir/holdem/domain/commands"
	"github.com/lazharichir/holdem/domain/events"
	"github.com/lazharichir/holdem/eventstore"
	"github.com/sanity-io/litter"
)

// ErrRoomClosed is returned for commands submitted after Stop.
var ErrRoomClosed = errors.New("room is closed")

// RenderFunc builds the snapshot one viewer is allowed to see. It is only
// valid for the duration of the ChangeHandler call it is passed to.
type RenderFunc func(viewerID string) domain.Snapshot

// ChangeHandler is called from the loop goroutine after every successful mutation.
type ChangeHandler func(roomID string, render RenderFunc)

// Info is the public metadata of a room
type Info struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Players    int          `json:"player_count"`
	MaxPlayers int          `json:"max_players"`
	Stage      domain.Stage `json:"stage"`
	SmallBlind int          `json:"small_blind"`
	BigBlind   int          `json:"big_blind"`
}

type request struct {
	cmd   commands.Command
	reply chan response
}

type response struct {
	snapshot domain.Snapshot
	info     Info
	err      error
}

// Loop owns one room and applies every command to it from a single goroutine
type Loop struct {
	roomID     string
	room       *domain.Room
	requests   chan request
	ctx        context.Context
	cancel     context.CancelFunc
	eventStore eventstore.EventStore
	onChange   ChangeHandler
	logger     *slog.Logger
	wg         sync.WaitGroup
}

// NewLoop creates the loop for room. Start must be called before submitting commands.
func NewLoop(room *domain.Room, eventStore eventstore.EventStore, onChange ChangeHandler, logger *slog.Logger) *Loop {
	ctx, cancel := context.WithCancel(context.Background())

	loop := &Loop{
		roomID:     room.ID,
		room:       room,
		requests:   make(chan request, 64),
		ctx:        ctx,
		cancel:     cancel,
		eventStore: eventStore,
		onChange:   onChange,
		logger:     logger.With("room", room.ID),
	}

	room.RegisterEventHandler(loop.handleRoomEvent)

	return loop
}

// RoomID returns the id of the room owned by the loop
func (l *Loop) RoomID() string {
	return l.roomID
}

// Start begins processing commands
func (l *Loop) Start() {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		l.run()
	}()
}

// Stop stops the loop and waits for the command in flight to finish
func (l *Loop) Stop() {
	l.cancel()
	l.wg.Wait()
}

// Submit applies a mutating command and waits for its outcome
func (l *Loop) Submit(ctx context.Context, cmd commands.Command) error {
	res, err := l.do(ctx, cmd)
	if err != nil {
		return err
	}
	return res.err
}

// Snapshot returns the room as viewerID is allowed to see it
func (l *Loop) Snapshot(ctx context.Context, viewerID string) (domain.Snapshot, error) {
	res, err := l.do(ctx, commands.GetState{ViewerID: viewerID})
	if err != nil {
		return domain.Snapshot{}, err
	}
	return res.snapshot, nil
}

// Info returns the room metadata
func (l *Loop) Info(ctx context.Context) (Info, error) {
	res, err := l.do(ctx, commands.DescribeRoom{})
	if err != nil {
		return Info{}, err
	}
	return res.info, nil
}

func (l *Loop) do(ctx context.Context, cmd commands.Command) (response, error) {
	req := request{cmd: cmd, reply: make(chan response, 1)}

	select {
	case l.requests <- req:
	case <-l.ctx.Done():
		return response{}, ErrRoomClosed
	case <-ctx.Done():
		return response{}, ctx.Err()
	}

	select {
	case res := <-req.reply:
		return res, nil
	case <-l.ctx.Done():
		return response{}, ErrRoomClosed
	case <-ctx.Done():
		return response{}, ctx.Err()
	}
}

// run is the main loop that serializes every command sent to the room
func (l *Loop) run() {
	for {
		select {
		case <-l.ctx.Done():
			return

		case req := <-l.requests:
			req.reply <- l.handle(req.cmd)
		}
	}
}

func (l *Loop) handle(cmd commands.Command) response {
	var err error

	switch c := cmd.(type) {
	case commands.GetState:
		return response{snapshot: domain.Redact(l.room, c.ViewerID)}

	case commands.DescribeRoom:
		return response{info: l.describe()}

	case commands.SeatPlayer:
		err = l.room.Seat(c.PlayerID, c.PlayerName)

	case commands.UnseatPlayer:
		err = l.room.Unseat(c.PlayerID)

	case commands.StartHand:
		err = l.room.StartHand()

	case commands.ApplyAction:
		err = l.room.ApplyAction(c.PlayerID, c.Action)

	default:
		err = fmt.Errorf("unsupported command %s", cmd.Name())
	}

	if err != nil {
		l.logger.Debug("command rejected", "command", cmd.Name(), "error", err)
		return response{err: err}
	}

	if commands.Mutates(cmd) && l.onChange != nil {
		l.onChange(l.roomID, func(viewerID string) domain.Snapshot {
			return domain.Redact(l.room, viewerID)
		})
	}

	return response{}
}

func (l *Loop) describe() Info {
	return Info{
		ID:         l.room.ID,
		Name:       l.room.Name,
		Players:    len(l.room.Players()),
		MaxPlayers: l.room.Rules.MaxPlayers,
		Stage:      l.room.Stage,
		SmallBlind: l.room.Rules.SmallBlind,
		BigBlind:   l.room.Rules.BigBlind,
	}
}

func (l *Loop) handleRoomEvent(event events.Event) {
	if l.logger.Enabled(l.ctx, slog.LevelDebug) {
		l.logger.Debug("room event", "event", event.Name(), "payload", litter.Sdump(event))
	}

	if l.eventStore == nil {
		return
	}
	if err := l.eventStore.Append(event); err != nil {
		l.logger.Warn("failed to store event", "event", event.Name(), "error", err)
	}
}
