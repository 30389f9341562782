package eventstore

import (
	"fmt"
	"sync"

	"github.com/lazharichir/holdem/domain/events"
)

// DefaultCapacity is the number of events kept per room when none is configured.
const DefaultCapacity = 512

// EventStore is the interface for storing and retrieving room events.
type EventStore interface {
	Append(event events.Event) error
	LoadEvents(roomID string) ([]events.Event, error)
	Delete(roomID string)
}

// InMemoryEventStore keeps the events of the current hand of every room in
// memory. A HandStarted event starts a new log; older events are also dropped
// once a room reaches its capacity.
type InMemoryEventStore struct {
	events   map[string][]events.Event
	capacity int
	mutex    sync.RWMutex
}

// NewInMemoryEventStore creates a new in-memory event store.
func NewInMemoryEventStore(capacity int) *InMemoryEventStore {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &InMemoryEventStore{
		events:   make(map[string][]events.Event),
		capacity: capacity,
	}
}

// Append adds a new event to the store.
func (s *InMemoryEventStore) Append(event events.Event) error {
	roomID := events.ExtractRoomID(event)
	if roomID == "" {
		return fmt.Errorf("event %s has no room id", event.Name())
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	log := s.events[roomID]
	if _, ok := event.(events.HandStarted); ok {
		log = nil
	}
	log = append(log, event)
	if over := len(log) - s.capacity; over > 0 {
		log = append([]events.Event(nil), log[over:]...)
	}
	s.events[roomID] = log

	return nil
}

// LoadEvents retrieves the stored events for roomID, oldest first.
func (s *InMemoryEventStore) LoadEvents(roomID string) ([]events.Event, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	log, exists := s.events[roomID]
	if !exists {
		return []events.Event{}, nil
	}

	// Make a copy to avoid potential race conditions
	result := make([]events.Event, len(log))
	copy(result, log)
	return result, nil
}

// Delete forgets every event of roomID.
func (s *InMemoryEventStore) Delete(roomID string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.events, roomID)
}
