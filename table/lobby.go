package table

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/lazharichir/holdem/domain"
	"github.com/lazharichir/holdem/eventstore"
)

// ErrRoomNotFound is returned when no room has the given id.
var ErrRoomNotFound = errors.New("room not found")

// Lobby is the registry of live rooms. Every room runs in its own Loop.
type Lobby struct {
	loops      map[string]*Loop
	mu         sync.RWMutex
	eventStore eventstore.EventStore
	onChange   ChangeHandler
	logger     *slog.Logger
}

// NewLobby creates an empty lobby. onChange is handed to every room it creates.
func NewLobby(eventStore eventstore.EventStore, onChange ChangeHandler, logger *slog.Logger) *Lobby {
	return &Lobby{
		loops:      make(map[string]*Loop),
		eventStore: eventStore,
		onChange:   onChange,
		logger:     logger,
	}
}

// CreateRoom opens a new room with a fresh id and starts its loop
func (l *Lobby) CreateRoom(name string, rules domain.Rules) *Loop {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := uuid.NewString()[:8]
	for l.loops[id] != nil {
		id = uuid.NewString()[:8]
	}
	if name == "" {
		name = "Room " + id
	}

	loop := NewLoop(domain.NewRoom(id, name, rules), l.eventStore, l.onChange, l.logger)
	loop.Start()
	l.loops[id] = loop

	l.logger.Info("room created", "room", id, "name", name, "small_blind", rules.SmallBlind, "big_blind", rules.BigBlind)

	return loop
}

// Room looks a room up by id
func (l *Lobby) Room(id string) (*Loop, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	loop, exists := l.loops[id]
	if !exists {
		return nil, ErrRoomNotFound
	}
	return loop, nil
}

// RemoveRoom stops the room's loop and forgets it along with its events
func (l *Lobby) RemoveRoom(id string) error {
	l.mu.Lock()
	loop, exists := l.loops[id]
	delete(l.loops, id)
	l.mu.Unlock()

	if !exists {
		return ErrRoomNotFound
	}

	loop.Stop()
	if l.eventStore != nil {
		l.eventStore.Delete(id)
	}

	l.logger.Info("room removed", "room", id)

	return nil
}

// Rooms returns the metadata of every live room, ordered by id
func (l *Lobby) Rooms(ctx context.Context) ([]Info, error) {
	l.mu.RLock()
	loops := make([]*Loop, 0, len(l.loops))
	for _, loop := range l.loops {
		loops = append(loops, loop)
	}
	l.mu.RUnlock()

	infos := make([]Info, 0, len(loops))
	for _, loop := range loops {
		info, err := loop.Info(ctx)
		if errors.Is(err, ErrRoomClosed) {
			// removed while listing
			continue
		}
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })

	return infos, nil
}

// Close stops every room
func (l *Lobby) Close() {
	l.mu.Lock()
	loops := l.loops
	l.loops = make(map[string]*Loop)
	l.mu.Unlock()

	for _, loop := range loops {
		loop.Stop()
	}
}
