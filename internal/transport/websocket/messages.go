package websocket

import (
	"github.com/iamasit07/connect4/internal/domain"
	"github.com/iamasit07/connect4/internal/service/game"
)

// client -> server
const (
	TypeStartGame = "start_game"
	TypeDropPiece = "drop_piece"
)

// server -> client
const (
	TypeState       = "state"
	TypeResetBoard  = "reset_board"
	TypePiecePlaced = "piece_placed"
	TypeGameOver    = "game_over"
)

type ClientMessage struct {
	Type         string `json:"type"`
	Column       *int   `json:"column,omitempty"`
	Player1Color string `json:"player1Color,omitempty"`
	Player2Color string `json:"player2Color,omitempty"`
}

type ServerMessage struct {
	Type    string `json:"type"`
	Message string `json:"message,omitempty"`
	Row     *int   `json:"row,omitempty"`
	Column  *int   `json:"column,omitempty"`
	Color   string `json:"color,omitempty"`
	// next player after a piece_placed, 0 when that piece ended the game
	CurrentPlayer int               `json:"currentPlayer,omitempty"`
	Line          []domain.Position `json:"line,omitempty"`
	State         *game.Snapshot    `json:"state,omitempty"`
}
