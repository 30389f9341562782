package connection

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Client is one live websocket bound to a (room, player) pair
type Client struct {
	ID       string
	RoomID   string
	PlayerID string
	Conn     *websocket.Conn
	Send     chan []byte

	mu     sync.Mutex
	closed bool
}

// NewClient creates a client with an outbound buffer of size messages
func NewClient(id, roomID, playerID string, conn *websocket.Conn, size int) *Client {
	return &Client{
		ID:       id,
		RoomID:   roomID,
		PlayerID: playerID,
		Conn:     conn,
		Send:     make(chan []byte, size),
	}
}

// Enqueue queues message for the write pump without blocking. It returns
// false when the client is closed or its buffer is full.
func (c *Client) Enqueue(message []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}

	select {
	case c.Send <- message:
		return true
	default:
		return false
	}
}

// Close closes the outbound channel, which makes the write pump hang up.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.Send)
	}
}

// DropHandler runs once for every authoritative client that goes away
type DropHandler func(client *Client)

// Manager tracks the authoritative connection of every player in every room
type Manager struct {
	rooms  map[string]map[string]*Client // room id -> player id -> client
	onDrop DropHandler
	mutex  sync.RWMutex
}

// NewManager creates a new connection manager
func NewManager(onDrop DropHandler) *Manager {
	return &Manager{
		rooms:  make(map[string]map[string]*Client),
		onDrop: onDrop,
	}
}

// Register makes client the connection of its player, closing and returning
// the connection it replaces, if any. A replaced connection is not dropped.
func (m *Manager) Register(client *Client) *Client {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	players, ok := m.rooms[client.RoomID]
	if !ok {
		players = make(map[string]*Client)
		m.rooms[client.RoomID] = players
	}

	previous := players[client.PlayerID]
	players[client.PlayerID] = client

	if previous != nil && previous != client {
		previous.Close()
		return previous
	}
	return nil
}

// Drop removes client if it is still the player's connection and runs the
// drop handler exactly once. Dropping a replaced or already dropped client
// is a no-op that returns false.
func (m *Manager) Drop(client *Client) bool {
	m.mutex.Lock()
	players := m.rooms[client.RoomID]
	current := players[client.PlayerID] == client
	if current {
		delete(players, client.PlayerID)
		if len(players) == 0 {
			delete(m.rooms, client.RoomID)
		}
	}
	m.mutex.Unlock()

	client.Close()

	if !current {
		return false
	}

	if m.onDrop != nil {
		m.onDrop(client)
	}
	return true
}

// RenderFunc builds the message a given player should receive
type RenderFunc func(playerID string) ([]byte, error)

// Broadcast sends every client of the room its own rendering. Clients that
// cannot take the message are dropped after the loop.
func (m *Manager) Broadcast(roomID string, render RenderFunc) {
	m.mutex.RLock()
	clients := make([]*Client, 0, len(m.rooms[roomID]))
	for _, client := range m.rooms[roomID] {
		clients = append(clients, client)
	}
	m.mutex.RUnlock()

	var failed []*Client
	for _, client := range clients {
		message, err := render(client.PlayerID)
		if err != nil {
			continue
		}
		if !client.Enqueue(message) {
			failed = append(failed, client)
		}
	}

	for _, client := range failed {
		m.Drop(client)
	}
}

// SendToPlayer sends a message to a specific player of a room
func (m *Manager) SendToPlayer(roomID, playerID string, message []byte) bool {
	m.mutex.RLock()
	client, exists := m.rooms[roomID][playerID]
	m.mutex.RUnlock()

	if !exists {
		return false
	}
	if !client.Enqueue(message) {
		m.Drop(client)
		return false
	}
	return true
}

// Client returns the connection of playerID in roomID
func (m *Manager) Client(roomID, playerID string) (*Client, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	client, exists := m.rooms[roomID][playerID]
	return client, exists
}

// Count returns the number of connections in a room
func (m *Manager) Count(roomID string) int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	return len(m.rooms[roomID])
}

// CloseRoom hangs up every connection of a room without running the drop handler
func (m *Manager) CloseRoom(roomID string) {
	m.mutex.Lock()
	players := m.rooms[roomID]
	delete(m.rooms, roomID)
	m.mutex.Unlock()

	for _, client := range players {
		client.Close()
	}
}
