package tictactoe

import (
	"github.com/rocketscienceinc/threeinarow-relay/internal/apperror"
	"github.com/rocketscienceinc/threeinarow-relay/internal/entity"
)

// Game is the rule-bearing state of one match. It is not safe for concurrent use;
// the owning session serialises access.
type Game struct {
	board  *entity.Board
	turn   entity.Mark
	status entity.Status
	winner entity.Mark
	line   entity.Line
}

func NewGame() *Game {
	return &Game{
		board:  entity.NewBoard(),
		turn:   entity.MarkFirst,
		status: entity.StatusAwaitingSecondPlayer,
	}
}

// Start moves a game waiting for its second player into play. The first mark moves first.
func (that *Game) Start() error {
	switch {
	case that.status.IsTerminal():
		return apperror.ErrGameOver
	case that.status != entity.StatusAwaitingSecondPlayer:
		return apperror.ErrUnknownSession
	}

	that.status = entity.StatusPlaying
	that.turn = entity.MarkFirst

	return nil
}

// Abort ends a game that has not reached a result. It returns false when the game
// was already terminal.
func (that *Game) Abort() bool {
	if that.status.IsTerminal() {
		return false
	}

	that.status = entity.StatusErrored

	return true
}

func (that *Game) finish(status entity.Status, winner entity.Mark, line entity.Line) {
	that.status = status
	that.winner = winner
	that.line = line
}

func (that *Game) Board() *entity.Board {
	return that.board
}

func (that *Game) Turn() entity.Mark {
	return that.turn
}

func (that *Game) Status() entity.Status {
	return that.status
}

func (that *Game) Winner() entity.Mark {
	return that.winner
}

// WinningLine is empty unless the game was won.
func (that *Game) WinningLine() entity.Line {
	if that.line == nil {
		return entity.Line{}
	}

	line := make(entity.Line, len(that.line))
	copy(line, that.line)

	return line
}
