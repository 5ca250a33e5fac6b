package tui

import "github.com/iamasit07/connect4/internal/domain"

// boardView is the terminal's copy of what has been drawn so far. The game
// service draws into it through the Renderer calls.
type boardView struct {
	cells  [domain.Rows][domain.Columns]string
	banner string
}

func (v *boardView) ResetBoardView() {
	v.cells = [domain.Rows][domain.Columns]string{}
	v.banner = ""
}

func (v *boardView) RenderPiece(row, column int, color string) {
	v.cells[row][column] = color
}

func (v *boardView) RenderGameOver(message string) {
	v.banner = message
}
