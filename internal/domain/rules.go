package domain

// Position addresses one board cell.
type Position struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

// Line is a candidate run of ToWin cells.
type Line [ToWin]Position

// the four orientations a line can take from its anchor:
// horizontal, vertical, diagonal down-right and diagonal down-left
var directions = [4][2]int{
	{0, 1},
	{1, 0},
	{1, 1},
	{1, -1},
}

// HasWin reports whether player owns ToWin aligned cells anywhere on the board.
func HasWin(board *Board, player PlayerID) bool {
	_, ok := WinningLine(board, player)
	return ok
}

// WinningLine returns the first line owned entirely by player. Every anchor
// is tried in every direction; a line leaving the grid simply fails.
func WinningLine(board *Board, player PlayerID) (Line, bool) {
	if player == Empty {
		return Line{}, false
	}

	for row := 0; row < Rows; row++ {
		for column := 0; column < Columns; column++ {
			for _, d := range directions {
				var line Line
				for k := 0; k < ToWin; k++ {
					line[k] = Position{Row: row + k*d[0], Column: column + k*d[1]}
				}
				if owns(board, line, player) {
					return line, true
				}
			}
		}
	}

	return Line{}, false
}

func owns(board *Board, line Line, player PlayerID) bool {
	for _, cell := range line {
		if !inBounds(cell.Row, cell.Column) || board[cell.Row][cell.Column] != player {
			return false
		}
	}
	return true
}
