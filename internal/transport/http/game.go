package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4/internal/domain"
	"github.com/iamasit07/connect4/internal/service/game"
)

type GameHandler struct {
	Game *game.Service
}

func NewGameHandler(gs *game.Service) *GameHandler {
	return &GameHandler{Game: gs}
}

type startRequest struct {
	Player1Color string `json:"player1Color"`
	Player2Color string `json:"player2Color"`
}

type moveRequest struct {
	Column *int `json:"column" binding:"required"`
}

type moveResponse struct {
	Accepted bool          `json:"accepted"`
	Reason   string        `json:"reason,omitempty"`
	Move     *domain.Move  `json:"move,omitempty"`
	Game     game.Snapshot `json:"game"`
}

// GetGame returns the current state of the board
func (h *GameHandler) GetGame(c *gin.Context) {
	c.JSON(http.StatusOK, h.Game.Snapshot())
}

// StartGame starts a new game. An empty body uses the default colors.
func (h *GameHandler) StartGame(c *gin.Context) {
	var req startRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	c.JSON(http.StatusOK, h.Game.Start(req.Player1Color, req.Player2Color))
}

// DropPiece applies a column click. Rejected moves are not an HTTP error:
// the board is simply unchanged and the reason is reported.
func (h *GameHandler) DropPiece(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "column is required"})
		return
	}

	move, err := h.Game.DropPiece(*req.Column)
	if err != nil {
		var reason domain.Error
		if !errors.As(err, &reason) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to apply move"})
			return
		}
		c.JSON(http.StatusOK, moveResponse{Accepted: false, Reason: string(reason), Game: h.Game.Snapshot()})
		return
	}

	c.JSON(http.StatusOK, moveResponse{Accepted: true, Move: &move, Game: h.Game.Snapshot()})
}
