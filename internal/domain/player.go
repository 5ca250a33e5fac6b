package domain

import "strings"

const (
	DefaultPlayer1Color = "#e63946"
	DefaultPlayer2Color = "#f4d35e"
)

type Player struct {
	ID    PlayerID `json:"id"`
	Color string   `json:"color"`
}

// NewPlayer trims color and falls back to the player's default when it is blank.
func NewPlayer(id PlayerID, color string) Player {
	color = strings.TrimSpace(color)
	if color == "" {
		color = DefaultColor(id)
	}
	return Player{ID: id, Color: color}
}

func DefaultColor(id PlayerID) string {
	if id == Player2 {
		return DefaultPlayer2Color
	}
	return DefaultPlayer1Color
}

func (p Player) Name() string {
	switch p.ID {
	case Player1:
		return "Player 1"
	case Player2:
		return "Player 2"
	}
	return ""
}
