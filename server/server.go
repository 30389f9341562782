package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/lazharichir/holdem/config"
	"github.com/lazharichir/holdem/domain"
	"github.com/lazharichir/holdem/eventstore"
	"github.com/lazharichir/holdem/server/connection"
	"github.com/lazharichir/holdem/server/events"
	"github.com/lazharichir/holdem/server/handlers"
	"github.com/lazharichir/holdem/table"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 4096

	// Outbound messages buffered per connection before it counts as dead.
	sendBufferSize = 256

	// Bound on any single command round-trip to a room.
	commandTimeout = 5 * time.Second
)

// Server represents the poker HTTP and WebSocket server
type Server struct {
	cfg        config.Config
	lobby      *table.Lobby
	connMgr    *connection.Manager
	cmdRouter  *handlers.CommandRouter
	dispatcher *events.Dispatcher
	eventStore *eventstore.InMemoryEventStore
	upgrader   websocket.Upgrader
	logger     *slog.Logger
}

// RoomResponse represents a room in API responses
type RoomResponse struct {
	RoomID      string       `json:"room_id"`
	Name        string       `json:"name"`
	PlayerCount int          `json:"player_count"`
	MaxPlayers  int          `json:"max_players"`
	Stage       domain.Stage `json:"stage"`
	SmallBlind  int          `json:"small_blind"`
	BigBlind    int          `json:"big_blind"`
}

// CreateRoomRequest represents the request to create a new room
type CreateRoomRequest struct {
	Name       string `json:"name"`
	SmallBlind int    `json:"small_blind"`
	BigBlind   int    `json:"big_blind"`
}

// CreateRoomResponse is returned once a room exists
type CreateRoomResponse struct {
	RoomID  string `json:"room_id"`
	Message string `json:"message"`
}

// EventResponse is one entry of a room's hand log
type EventResponse struct {
	Name    string `json:"name"`
	Payload any    `json:"payload"`
}

// NewServer wires the lobby, connection manager and routers together
func NewServer(cfg config.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		cfg:        cfg,
		eventStore: eventstore.NewInMemoryEventStore(eventstore.DefaultCapacity),
		logger:     logger,
	}

	s.connMgr = connection.NewManager(s.handleDrop)
	s.dispatcher = events.NewDispatcher(s.connMgr, logger)
	s.lobby = table.NewLobby(s.eventStore, s.dispatcher.HandleChange, logger)
	s.cmdRouter = handlers.NewCommandRouter(s.lobby, s.connMgr, logger)
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}

	return s
}

// Lobby exposes the room registry
func (s *Server) Lobby() *table.Lobby {
	return s.lobby
}

// Handler returns the HTTP routes of the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /ws/{room}/{player}", s.handleWebSocket)

	mux.HandleFunc("GET /{$}", s.corsMiddleware(s.handleIndex))
	mux.HandleFunc("GET /health", s.corsMiddleware(s.handleHealth))
	mux.HandleFunc("GET /api/rooms", s.corsMiddleware(s.handleGetRooms))
	mux.HandleFunc("POST /api/rooms/create", s.corsMiddleware(s.handleCreateRoom))
	mux.HandleFunc("GET /api/rooms/{id}", s.corsMiddleware(s.handleGetRoom))
	mux.HandleFunc("DELETE /api/rooms/{id}", s.corsMiddleware(s.handleDeleteRoom))
	mux.HandleFunc("GET /api/rooms/{id}/events", s.corsMiddleware(s.handleGetRoomEvents))
	mux.HandleFunc("OPTIONS /", s.corsMiddleware(func(http.ResponseWriter, *http.Request) {}))

	return mux
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := srv.Shutdown(shutdownCtx)
	s.lobby.Close()
	if err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// corsMiddleware adds CORS headers to all responses
func (s *Server) corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		switch {
		case len(s.cfg.AllowedOrigins) == 0:
			w.Header().Set("Access-Control-Allow-Origin", "*")
		case origin != "" && s.originAllowed(origin):
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		// Handle preflight requests
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

func (s *Server) originAllowed(origin string) bool {
	for _, allowed := range s.cfg.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || len(s.cfg.AllowedOrigins) == 0 {
		return true
	}
	return s.originAllowed(origin)
}

// handleWebSocket attaches a connection to a room. The client gets the
// current state straight away and only takes a seat once it sends join.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	roomID := r.PathValue("room")
	playerID := r.PathValue("player")

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("error upgrading to websocket", "error", err)
		return
	}

	loop, err := s.lobby.Room(roomID)
	if err != nil {
		msg := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "Room not found")
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
		conn.Close()
		return
	}

	client := connection.NewClient(uuid.NewString(), roomID, playerID, conn, sendBufferSize)
	if previous := s.connMgr.Register(client); previous != nil {
		s.logger.Info("connection replaced", "room", roomID, "player", playerID, "previous", previous.ID)
	}
	s.logger.Info("client connected", "room", roomID, "player", playerID, "remote", r.RemoteAddr, "client", client.ID)

	go s.writePump(client)

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	snapshot, err := loop.Snapshot(ctx, playerID)
	cancel()
	if err == nil {
		if data, err := events.GameState(snapshot); err == nil {
			client.Enqueue(data)
		}
	}

	s.readPump(client)
}

// readPump reads messages from the WebSocket connection
func (s *Server) readPump(client *connection.Client) {
	defer func() {
		s.connMgr.Drop(client)
		client.Conn.Close()
	}()

	client.Conn.SetReadLimit(maxMessageSize)
	_ = client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	client.Conn.SetPongHandler(func(string) error {
		return client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Info("websocket read error", "room", client.RoomID, "player", client.PlayerID, "error", err)
			}
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		err = s.cmdRouter.HandleCommand(ctx, client, message)
		cancel()
		if err != nil {
			s.logger.Debug("command rejected", "room", client.RoomID, "player", client.PlayerID, "error", err)
		}
	}
}

// writePump sends queued messages and keeps the connection alive with pings
func (s *Server) writePump(client *connection.Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.Send:
			_ = client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Channel closed
				_ = client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				s.logger.Info("error writing message", "room", client.RoomID, "player", client.PlayerID, "error", err)
				s.connMgr.Drop(client)
				return
			}

		case <-ticker.C:
			_ = client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.connMgr.Drop(client)
				return
			}
		}
	}
}

// handleDrop unseats the player of a dead connection. It goes through the
// room loop like any other command, off the caller's goroutine because
// drops can be detected while the loop itself is broadcasting.
func (s *Server) handleDrop(client *connection.Client) {
	s.logger.Info("client disconnected", "room", client.RoomID, "player", client.PlayerID, "client", client.ID)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		if err := s.cmdRouter.HandleDisconnect(ctx, client); err != nil {
			s.logger.Warn("disconnect cleanup failed", "room", client.RoomID, "player", client.PlayerID, "error", err)
		}
	}()
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Texas Hold'em server",
		"status":  "running",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleGetRooms returns a list of all rooms
func (s *Server) handleGetRooms(w http.ResponseWriter, r *http.Request) {
	infos, err := s.lobby.Rooms(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	rooms := make([]RoomResponse, 0, len(infos))
	for _, info := range infos {
		rooms = append(rooms, roomResponse(info))
	}

	writeJSON(w, http.StatusOK, rooms)
}

// handleCreateRoom creates a new room, using the configured blinds unless the request sets them
func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var createReq CreateRoomRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
	}

	rules := s.cfg.Rules
	if createReq.SmallBlind > 0 {
		rules.SmallBlind = createReq.SmallBlind
	}
	if createReq.BigBlind > 0 {
		rules.BigBlind = createReq.BigBlind
	}
	if err := config.ValidateRules(rules); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	loop := s.lobby.CreateRoom(createReq.Name, rules)

	writeJSON(w, http.StatusCreated, CreateRoomResponse{
		RoomID:  loop.RoomID(),
		Message: "Room created",
	})
}

func (s *Server) handleGetRoom(w http.ResponseWriter, r *http.Request) {
	loop, err := s.lobby.Room(r.PathValue("id"))
	if err != nil {
		http.Error(w, "Room not found", http.StatusNotFound)
		return
	}

	info, err := loop.Info(r.Context())
	if err != nil {
		http.Error(w, "Room not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, roomResponse(info))
}

func (s *Server) handleDeleteRoom(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.lobby.RemoveRoom(id); err != nil {
		http.Error(w, "Room not found", http.StatusNotFound)
		return
	}
	s.connMgr.CloseRoom(id)

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetRoomEvents(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := s.lobby.Room(id); err != nil {
		http.Error(w, "Room not found", http.StatusNotFound)
		return
	}

	stored, err := s.eventStore.LoadEvents(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	out := make([]EventResponse, 0, len(stored))
	for _, e := range stored {
		out = append(out, EventResponse{Name: e.Name(), Payload: e})
	}

	writeJSON(w, http.StatusOK, out)
}

func roomResponse(info table.Info) RoomResponse {
	return RoomResponse{
		RoomID:      info.ID,
		Name:        info.Name,
		PlayerCount: info.Players,
		MaxPlayers:  info.MaxPlayers,
		Stage:       info.Stage,
		SmallBlind:  info.SmallBlind,
		BigBlind:    info.BigBlind,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
