package websocket

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/iamasit07/connect4/internal/domain"
)

const (
	writeWait = 10 * time.Second
	// broadcasts run while the game is locked, a stalled view gets dropped
	// after this instead of holding every other event up
	broadcastWait = 2 * time.Second
)

// ConnectionManager tracks every open view of the game. It is the Renderer
// the game service draws through, TurnRenderer and LineRenderer included:
// each call becomes one broadcast message.
type ConnectionManager struct {
	// each socket has its own write lock, conn.WriteJSON is not safe
	// for concurrent use
	connections map[*websocket.Conn]*sync.Mutex
	mu          sync.RWMutex
	logger      *slog.Logger
}

func NewConnectionManager(logger *slog.Logger) *ConnectionManager {
	return &ConnectionManager{
		connections: make(map[*websocket.Conn]*sync.Mutex),
		logger:      logger.With("component", "ws"),
	}
}

func (cm *ConnectionManager) AddConnection(conn *websocket.Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.connections[conn] = &sync.Mutex{}
}

func (cm *ConnectionManager) RemoveConnection(conn *websocket.Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if _, exists := cm.connections[conn]; exists {
		conn.Close()
		delete(cm.connections, conn)
	}
}

func (cm *ConnectionManager) Count() int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.connections)
}

// SendMessage writes message to a single connection.
func (cm *ConnectionManager) SendMessage(conn *websocket.Conn, message ServerMessage) error {
	return cm.send(conn, message, writeWait)
}

func (cm *ConnectionManager) send(conn *websocket.Conn, message ServerMessage, wait time.Duration) error {
	cm.mu.RLock()
	mu, exists := cm.connections[conn]
	cm.mu.RUnlock()

	if !exists {
		return nil // already gone
	}

	mu.Lock()
	defer mu.Unlock()

	conn.SetWriteDeadline(time.Now().Add(wait))
	return conn.WriteJSON(message)
}

// BroadcastMessage sends message to every view in turn. Sends are not fanned
// out to goroutines: views must see reset, pieces and game over in order.
func (cm *ConnectionManager) BroadcastMessage(message ServerMessage) {
	cm.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(cm.connections))
	for conn := range cm.connections {
		conns = append(conns, conn)
	}
	cm.mu.RUnlock()

	for _, conn := range conns {
		if err := cm.send(conn, message, broadcastWait); err != nil {
			cm.logger.Warn("dropping view after failed write", "type", message.Type, "error", err)
			cm.RemoveConnection(conn)
		}
	}
}

func (cm *ConnectionManager) ResetBoardView() {
	cm.BroadcastMessage(ServerMessage{Type: TypeResetBoard})
}

func (cm *ConnectionManager) RenderPiece(row, column int, color string) {
	cm.BroadcastMessage(ServerMessage{Type: TypePiecePlaced, Row: &row, Column: &column, Color: color})
}

func (cm *ConnectionManager) RenderMove(move domain.Move, next domain.PlayerID) {
	cm.BroadcastMessage(ServerMessage{
		Type:          TypePiecePlaced,
		Row:           &move.Row,
		Column:        &move.Column,
		Color:         move.Color,
		CurrentPlayer: int(next),
	})
}

func (cm *ConnectionManager) RenderGameOver(message string) {
	cm.BroadcastMessage(ServerMessage{Type: TypeGameOver, Message: message})
}

func (cm *ConnectionManager) RenderResult(message string, line []domain.Position) {
	cm.BroadcastMessage(ServerMessage{Type: TypeGameOver, Message: message, Line: line})
}

// CloseAll drops every view, used on shutdown.
func (cm *ConnectionManager) CloseAll() {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	for conn := range cm.connections {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		conn.Close()
		delete(cm.connections, conn)
	}
}
