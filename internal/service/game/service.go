package game

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/iamasit07/connect4/internal/domain"
	"github.com/iamasit07/connect4/pkg/uid"
)

// Renderer is whatever draws the game: a browser page, a terminal, a test.
// Calls for one game arrive in order: ResetBoardView first, then one
// RenderPiece per accepted move, then at most one RenderGameOver.
type Renderer interface {
	ResetBoardView()
	RenderPiece(row, column int, color string)
	RenderGameOver(message string)
}

// TurnRenderer is implemented by views that also show whose move it is.
// The service calls RenderMove in place of RenderPiece for them. next is
// Empty once the move has ended the game.
type TurnRenderer interface {
	RenderMove(move domain.Move, next domain.PlayerID)
}

// LineRenderer is implemented by views that mark the winning discs. The
// service calls RenderResult in place of RenderGameOver for them; line is
// nil after a tie.
type LineRenderer interface {
	RenderResult(message string, line []domain.Position)
}

type Options struct {
	Player1Color string
	Player2Color string
}

// Service owns the one live session. Every event runs to completion under
// mu, renderer calls included, before the next one is looked at.
type Service struct {
	mu       sync.Mutex
	session  domain.Session
	gameID   string
	renderer Renderer
	options  Options
	logger   *slog.Logger
}

func NewService(renderer Renderer, logger *slog.Logger, options Options) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		session:  domain.NewSession(),
		renderer: renderer,
		options:  options,
		logger:   logger.With("component", "game"),
	}
}

// Start begins a new game, replacing whatever was on the board.
// Blank colors fall back to the configured defaults.
func (s *Service) Start(player1Color, player2Color string) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(player1Color) == "" {
		player1Color = s.options.Player1Color
	}
	if strings.TrimSpace(player2Color) == "" {
		player2Color = s.options.Player2Color
	}

	s.session = domain.Start(player1Color, player2Color)
	s.gameID = uid.GenerateGameID()

	s.logger.Info("game started",
		"game_id", s.gameID,
		"player1_color", s.session.Players[0].Color,
		"player2_color", s.session.Players[1].Color,
	)

	s.renderer.ResetBoardView()

	return s.snapshotLocked()
}

// DropPiece handles a click on column. A rejected move leaves the game as it
// was, draws nothing and returns the reason.
func (s *Service) DropPiece(column int) (domain.Move, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.Debug("before move", "game_id", s.gameID, "column", column, "current_player", int(s.session.Current))

	next, move, err := s.session.ApplyMove(column)
	if err != nil {
		s.logger.Debug("move rejected", "game_id", s.gameID, "column", column, "reason", err)
		return domain.Move{}, err
	}
	s.session = next

	s.renderMove(move)

	if s.session.IsFinished() {
		s.logger.Info("game over",
			"game_id", s.gameID,
			"result", string(s.session.Result),
			"moves", s.session.MoveCount,
		)
		s.renderResult()
		return move, nil
	}

	s.logger.Debug("after move", "game_id", s.gameID, "row", move.Row, "current_player", int(s.session.Current))
	return move, nil
}

// Session returns a copy of the current session.
func (s *Service) Session() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Observe calls fn with the current snapshot while no event can run, so a
// new viewer can catch up without missing or repeating a move.
func (s *Service) Observe(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.snapshotLocked())
}

func (s *Service) renderMove(move domain.Move) {
	tr, ok := s.renderer.(TurnRenderer)
	if !ok {
		s.renderer.RenderPiece(move.Row, move.Column, move.Color)
		return
	}
	next := domain.Empty
	if !s.session.IsFinished() {
		next = s.session.Current
	}
	tr.RenderMove(move, next)
}

func (s *Service) renderResult() {
	lr, ok := s.renderer.(LineRenderer)
	if !ok {
		s.renderer.RenderGameOver(s.session.Message())
		return
	}
	var line []domain.Position
	if winner := s.session.Winner(); winner != domain.Empty {
		if l, found := domain.WinningLine(&s.session.Board, winner); found {
			line = l[:]
		}
	}
	lr.RenderResult(s.session.Message(), line)
}

func (s *Service) snapshotLocked() Snapshot {
	return NewSnapshot(s.gameID, s.session)
}
