package domain

// Session is one game of Connect Four. It is a plain value: transitions
// return a new Session and leave the receiver untouched.
type Session struct {
	Board     Board
	Players   [2]Player
	Current   PlayerID
	Status    Status
	Result    Result
	MoveCount int
}

// Move describes one accepted placement.
type Move struct {
	Row    int      `json:"row"`
	Column int      `json:"column"`
	Player PlayerID `json:"player"`
	Color  string   `json:"color"`
}

// NewSession returns a session waiting for Start.
func NewSession() Session {
	return Session{Status: StatusNotStarted}
}

// Start returns a fresh in-progress session with Player 1 to move.
func Start(player1Color, player2Color string) Session {
	return Session{
		Board: NewBoard(),
		Players: [2]Player{
			NewPlayer(Player1, player1Color),
			NewPlayer(Player2, player2Color),
		},
		Current: Player1,
		Status:  StatusInProgress,
		Result:  ResultNone,
	}
}

// ApplyMove drops the current player's disk into column. On error the
// returned session is s unchanged.
func (s Session) ApplyMove(column int) (Session, Move, error) {
	if s.Status != StatusInProgress {
		return s, Move{}, ErrGameNotInProgress
	}

	if column < 0 || column >= Columns {
		return s, Move{}, ErrInvalidColumn
	}

	if !s.Current.Valid() {
		return s, Move{}, ErrMissingPlayerIdentity
	}

	row, ok := s.Board.LowestEmptyRow(column)
	if !ok {
		return s, Move{}, ErrColumnFull
	}

	next := s
	next.Board.Place(row, column, next.Current)
	next.MoveCount++

	move := Move{
		Row:    row,
		Column: column,
		Player: next.Current,
		Color:  next.CurrentColor(),
	}

	if HasWin(&next.Board, next.Current) {
		next.Status = StatusFinished
		if next.Current == Player1 {
			next.Result = ResultPlayer1Won
		} else {
			next.Result = ResultPlayer2Won
		}
		return next, move, nil
	}

	if next.Board.IsFull() {
		next.Status = StatusFinished
		next.Result = ResultTie
		return next, move, nil
	}

	next.Current = next.Current.Other()
	return next, move, nil
}

func (s Session) IsFinished() bool {
	return s.Status == StatusFinished
}

// Player returns the player registered under id.
func (s Session) Player(id PlayerID) (Player, bool) {
	if !id.Valid() || !s.Players[id-1].ID.Valid() {
		return Player{}, false
	}
	return s.Players[id-1], true
}

func (s Session) CurrentColor() string {
	p, _ := s.Player(s.Current)
	return p.Color
}

// Winner is the player who won, or Empty for a tie or an unfinished game.
func (s Session) Winner() PlayerID {
	switch s.Result {
	case ResultPlayer1Won:
		return Player1
	case ResultPlayer2Won:
		return Player2
	}
	return Empty
}

// Message is the human readable summary of a finished session.
func (s Session) Message() string {
	switch s.Result {
	case ResultPlayer1Won:
		return "Player 1 won!"
	case ResultPlayer2Won:
		return "Player 2 won!"
	case ResultTie:
		return "Tie!"
	}
	return ""
}
