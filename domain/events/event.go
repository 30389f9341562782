package events

// Event is the interface that all room events implement.
type Event interface {
	Name() string
}

// EventHandler receives events as they are emitted.
type EventHandler func(event Event)
