package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/lazharichir/holdem/server/connection"
	serverevents "github.com/lazharichir/holdem/server/events"
	"github.com/lazharichir/holdem/server/handlers"
	"github.com/lazharichir/holdem/table"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // In production, implement proper origin checks
	},
}

// Server exposes the tables over WebSocket plus a small REST surface for
// room management
type Server struct {
	rooms      *table.Manager
	connMgr    *connection.Manager
	cmdRouter  *handlers.CommandRouter
	dispatcher *serverevents.Dispatcher
	logger     *log.Logger
}

// RoomResponse represents a room in API responses
type RoomResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	SeatCount  int    `json:"seatCount"`
	SmallBlind int    `json:"smallBlind"`
	BigBlind   int    `json:"bigBlind"`
	Stage      string `json:"stage"`
	Pot        int    `json:"pot"`
}

// CreateRoomRequest represents the request to create a new room
type CreateRoomRequest struct {
	Name       string `json:"name"`
	SeatCount  int    `json:"seatCount"`
	SmallBlind int    `json:"smallBlind"`
	BigBlind   int    `json:"bigBlind"`
}

// ErrorEnvelope is sent back to a client whose command failed
type ErrorEnvelope struct {
	Name  string `json:"name"`
	Error string `json:"error"`
}

// corsMiddleware adds CORS headers to all responses
func corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

// NewServer wires the connection manager, command router and event
// dispatcher around an existing room manager
func NewServer(rooms *table.Manager, logger *log.Logger) *Server {
	connMgr := connection.NewManager()
	dispatcher := serverevents.NewDispatcher(connMgr, logger)
	cmdRouter := handlers.NewCommandRouter(rooms, connMgr, logger)

	return &Server{
		rooms:      rooms,
		connMgr:    connMgr,
		cmdRouter:  cmdRouter,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Dispatcher exposes the event dispatcher so callers can subscribe rooms
// created outside the HTTP API
func (s *Server) Dispatcher() *serverevents.Dispatcher {
	return s.dispatcher
}

// Start begins the server on the specified port
func (s *Server) Start(port string) error {
	go s.connMgr.Start()

	http.HandleFunc("/ws", s.handleWebSocket)
	http.HandleFunc("/api/rooms", corsMiddleware(s.handleGetRooms))
	http.HandleFunc("/api/rooms/create", corsMiddleware(s.handleCreateRoom))

	s.logger.Info("starting server", "port", port)
	return http.ListenAndServe("0.0.0.0:"+port, nil)
}

// handleWebSocket handles incoming WebSocket connections
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("error upgrading to WebSocket", "err", err)
		return
	}

	clientID := uuid.NewString()
	s.logger.Info("new client connected", "remote", r.RemoteAddr, "id", clientID)

	client := &connection.Client{
		ID:   clientID,
		Conn: conn,
		Send: make(chan []byte, 256),
	}

	s.connMgr.Register <- client

	go s.readPump(client)
	go s.writePump(client)
}

// readPump reads messages from the WebSocket connection
func (s *Server) readPump(client *connection.Client) {
	defer func() {
		s.connMgr.Unregister <- client
		client.Conn.Close()
	}()

	for {
		_, message, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.logger.Error("read error", "client", client.ID, "err", err)
			}
			break
		}

		if err := s.cmdRouter.HandleCommand(client, message); err != nil {
			s.logger.Warn("command failed", "client", client.ID, "err", err)
			s.sendError(client, err)
		}
	}
}

// writePump sends messages to the WebSocket connection and keeps it alive
func (s *Server) writePump(client *connection.Client) {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		client.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.Send:
			if !ok {
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				s.logger.Error("write error", "client", client.ID, "err", err)
				return
			}

		case <-ticker.C:
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (s *Server) sendError(client *connection.Client, cmdErr error) {
	payload, err := json.Marshal(ErrorEnvelope{Name: "ERROR", Error: cmdErr.Error()})
	if err != nil {
		return
	}
	select {
	case client.Send <- payload:
	default:
		// client's buffer is full; drop the notice rather than block
	}
}

// handleGetRooms returns a list of all rooms
func (s *Server) handleGetRooms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rooms := s.rooms.Rooms()
	responses := make([]RoomResponse, 0, len(rooms))
	for _, room := range rooms {
		response := RoomResponse{
			ID:         room.ID,
			Name:       room.Name,
			SeatCount:  room.Rules.SeatCount,
			SmallBlind: room.Rules.SmallBlind,
			BigBlind:   room.Rules.BigBlind,
		}
		if view, err := room.PublicView(); err == nil {
			response.Stage = view.Stage
			response.Pot = view.Pot
		}
		responses = append(responses, response)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(responses)
}

// handleCreateRoom creates a new room
func (s *Server) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.SeatCount < 2 || req.SmallBlind <= 0 || req.BigBlind < req.SmallBlind {
		http.Error(w, "Invalid room parameters", http.StatusBadRequest)
		return
	}

	room := s.rooms.CreateRoom(req.Name, table.Rules{
		SeatCount:   req.SeatCount,
		SmallBlind:  req.SmallBlind,
		BigBlind:    req.BigBlind,
		TurnTimeout: 30 * time.Second,
	})
	room.RegisterObserver(s.dispatcher.HandleEvent)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(RoomResponse{
		ID:         room.ID,
		Name:       room.Name,
		SeatCount:  room.Rules.SeatCount,
		SmallBlind: room.Rules.SmallBlind,
		BigBlind:   room.Rules.BigBlind,
	})
}
