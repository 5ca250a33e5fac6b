package domain

type PlayerID int

const (
	Empty   PlayerID = 0
	Player1 PlayerID = 1
	Player2 PlayerID = 2
)

// Other returns the opponent of p. Empty has no opponent.
func (p PlayerID) Other() PlayerID {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	}
	return Empty
}

func (p PlayerID) Valid() bool {
	return p == Player1 || p == Player2
}

const (
	Rows    = 6
	Columns = 7
	ToWin   = 4
)

// lifecycle of a session
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusFinished   Status = "finished"
)

// how a finished session ended
type Result string

const (
	ResultNone       Result = ""
	ResultPlayer1Won Result = "player1_won"
	ResultPlayer2Won Result = "player2_won"
	ResultTie        Result = "tie"
)

// basic errors a move can be rejected with
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidColumn         Error = "invalid column"
	ErrColumnFull            Error = "column is full"
	ErrGameNotInProgress     Error = "game is not in progress"
	ErrMissingPlayerIdentity Error = "no active player"
)
