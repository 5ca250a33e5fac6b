package domain

// Board is the grid of cells; row 0 is the top row and Rows-1 the bottom one.
type Board [Rows][Columns]PlayerID

func NewBoard() Board {
	return Board{}
}

func inBounds(row, column int) bool {
	return row >= 0 && row < Rows && column >= 0 && column < Columns
}

func (b *Board) At(row, column int) PlayerID {
	if !inBounds(row, column) {
		return Empty
	}
	return b[row][column]
}

// LowestEmptyRow scans the column from the bottom up. ok is false when the
// column is full or does not exist.
func (b *Board) LowestEmptyRow(column int) (row int, ok bool) {
	if column < 0 || column >= Columns {
		return -1, false
	}

	for r := Rows - 1; r >= 0; r-- {
		if b[r][column] == Empty {
			return r, true
		}
	}

	return -1, false
}

// Place marks the cell for player. Only call it on a cell LowestEmptyRow
// just returned.
func (b *Board) Place(row, column int, player PlayerID) {
	b[row][column] = player
}

func (b *Board) IsFull() bool {
	for r := 0; r < Rows; r++ {
		for c := 0; c < Columns; c++ {
			if b[r][c] == Empty {
				return false
			}
		}
	}

	return true
}

// Mirror returns the board reflected left to right.
func (b *Board) Mirror() Board {
	var out Board
	for r := 0; r < Rows; r++ {
		for c := 0; c < Columns; c++ {
			out[r][Columns-1-c] = b[r][c]
		}
	}
	return out
}

// ValidColumns lists the columns that can still take a disk.
func (b *Board) ValidColumns() []int {
	valid := []int{}
	for c := 0; c < Columns; c++ {
		if b[0][c] == Empty {
			valid = append(valid, c)
		}
	}
	return valid
}
