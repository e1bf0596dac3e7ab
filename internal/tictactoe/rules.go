package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/threeinarow-relay/internal/apperror"
	"github.com/rocketscienceinc/threeinarow-relay/internal/entity"
)

// lines lists every row, then every column, then both diagonals.
var lines = buildLines(entity.BoardSize)

func buildLines(size int) []entity.Line {
	result := make([]entity.Line, 0, 2*size+2)

	for row := 0; row < size; row++ {
		line := make(entity.Line, 0, size)
		for column := 0; column < size; column++ {
			line = append(line, entity.Position{Row: row, Column: column})
		}
		result = append(result, line)
	}

	for column := 0; column < size; column++ {
		line := make(entity.Line, 0, size)
		for row := 0; row < size; row++ {
			line = append(line, entity.Position{Row: row, Column: column})
		}
		result = append(result, line)
	}

	diagonal := make(entity.Line, 0, size)
	antiDiagonal := make(entity.Line, 0, size)
	for i := 0; i < size; i++ {
		diagonal = append(diagonal, entity.Position{Row: i, Column: i})
		antiDiagonal = append(antiDiagonal, entity.Position{Row: i, Column: size - 1 - i})
	}

	return append(result, diagonal, antiDiagonal)
}

// MakeTurn validates the move, places it and advances the game: either the turn passes
// to the other mark or the game ends in a win or a draw.
func MakeTurn(game *Game, mark entity.Mark, column, row int) error {
	if err := validateMove(game, mark, column, row); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	if line, ok := DetectWin(game.board, mark); ok {
		game.finish(entity.StatusWon, mark, line)
		return nil
	}

	if DetectDraw(game.board) {
		game.finish(entity.StatusDrawn, entity.MarkNone, entity.Line{})
		return nil
	}

	game.turn = mark.Other()

	return nil
}

// validateMove - checks the game state and places the mark on the board.
func validateMove(game *Game, mark entity.Mark, column, row int) error {
	switch {
	case game.status.IsTerminal():
		return apperror.ErrGameOver
	case game.status == entity.StatusAwaitingSecondPlayer:
		return apperror.ErrNotReady
	case mark != game.turn:
		return apperror.ErrNotYourTurn
	}

	return game.board.Place(column, row, mark) //nolint: wrapcheck // board errors are already descriptive
}

// DetectWin returns the first line fully held by mark.
func DetectWin(board *entity.Board, mark entity.Mark) (entity.Line, bool) {
	if !mark.IsValid() {
		return nil, false
	}

	for _, line := range lines {
		if holds(board, line, mark) {
			winning := make(entity.Line, len(line))
			copy(winning, line)
			return winning, true
		}
	}

	return nil, false
}

// DetectDraw reports a full board where neither mark completed a line.
func DetectDraw(board *entity.Board) bool {
	if !board.IsFull() {
		return false
	}

	for _, mark := range []entity.Mark{entity.MarkFirst, entity.MarkSecond} {
		if _, ok := DetectWin(board, mark); ok {
			return false
		}
	}

	return true
}

func holds(board *entity.Board, line entity.Line, mark entity.Mark) bool {
	for _, pos := range line {
		if board.At(pos.Column, pos.Row) != mark {
			return false
		}
	}

	return true
}
