package game

import "github.com/iamasit07/connect4/internal/domain"

// Snapshot is the view-facing copy of a session. Board holds a color per
// cell, "" when empty.
type Snapshot struct {
	GameID        string                              `json:"gameId,omitempty"`
	Status        domain.Status                       `json:"status"`
	Result        domain.Result                       `json:"result,omitempty"`
	Message       string                              `json:"message,omitempty"`
	CurrentPlayer int                                 `json:"currentPlayer"`
	CurrentColor  string                              `json:"currentColor,omitempty"`
	Players       []domain.Player                     `json:"players,omitempty"`
	MoveCount     int                                 `json:"moveCount"`
	Board         [domain.Rows][domain.Columns]string `json:"board"`
	WinningLine   []domain.Position                   `json:"winningLine,omitempty"`
}

func NewSnapshot(gameID string, session domain.Session) Snapshot {
	snap := Snapshot{
		GameID:        gameID,
		Status:        session.Status,
		Result:        session.Result,
		Message:       session.Message(),
		CurrentPlayer: int(session.Current),
		CurrentColor:  session.CurrentColor(),
		MoveCount:     session.MoveCount,
	}

	for _, p := range session.Players {
		if p.ID.Valid() {
			snap.Players = append(snap.Players, p)
		}
	}

	for r := 0; r < domain.Rows; r++ {
		for c := 0; c < domain.Columns; c++ {
			if p, ok := session.Player(session.Board[r][c]); ok {
				snap.Board[r][c] = p.Color
			}
		}
	}

	if winner := session.Winner(); winner != domain.Empty {
		if line, ok := domain.WinningLine(&session.Board, winner); ok {
			snap.WinningLine = line[:]
		}
	}

	return snap
}
