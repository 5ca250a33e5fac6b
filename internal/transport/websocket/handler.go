package websocket

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iamasit07/connect4/internal/service/game"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

// Handler manages WebSocket dependencies
type Handler struct {
	ConnManager *ConnectionManager
	Game        *game.Service
	Upgrader    websocket.Upgrader
	logger      *slog.Logger
}

// NewHandler creates a new WebSocket handler. checkOrigin may be nil to
// accept same-origin upgrades only.
func NewHandler(cm *ConnectionManager, gs *game.Service, checkOrigin func(r *http.Request) bool, logger *slog.Logger) *Handler {
	return &Handler{
		ConnManager: cm,
		Game:        gs,
		Upgrader: websocket.Upgrader{
			CheckOrigin:     checkOrigin,
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: logger.With("component", "ws"),
	}
}

// HandleWebSocket is the HTTP handler that upgrades the connection
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("upgrade failed", "error", err)
		return
	}

	h.handleConnection(conn)
}

// handleConnection manages the lifecycle of a single view
func (h *Handler) handleConnection(conn *websocket.Conn) {
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	done := make(chan struct{})
	defer close(done)
	go h.keepAlive(conn, done)

	// attach and catch up in one step so no move slips in between
	var attachErr error
	h.Game.Observe(func(snap game.Snapshot) {
		h.ConnManager.AddConnection(conn)
		attachErr = h.ConnManager.SendMessage(conn, ServerMessage{Type: TypeState, State: &snap})
	})
	defer h.ConnManager.RemoveConnection(conn)
	if attachErr != nil {
		h.logger.Warn("failed to send initial state", "error", attachErr)
		return
	}

	h.logger.Info("view connected", "views", h.ConnManager.Count())

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Info("view disconnected unexpectedly", "error", err)
			}
			break
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			h.logger.Debug("invalid message format", "error", err)
			continue
		}

		h.processMessage(msg)
	}

	h.logger.Info("view closed")
}

func (h *Handler) keepAlive(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

// processMessage routes client actions. Rejections are only logged; the
// board simply does not change.
func (h *Handler) processMessage(msg ClientMessage) {
	switch msg.Type {
	case TypeStartGame:
		h.Game.Start(msg.Player1Color, msg.Player2Color)

	case TypeDropPiece:
		if msg.Column == nil {
			h.logger.Debug("drop_piece without column")
			return
		}
		if _, err := h.Game.DropPiece(*msg.Column); err != nil {
			h.logger.Debug("move ignored", "column", *msg.Column, "reason", err)
		}

	default:
		h.logger.Debug("unknown message type", "type", msg.Type)
	}
}
