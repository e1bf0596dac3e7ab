package entity

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/threeinarow-relay/internal/apperror"
)

const BoardSize = 3

// Position addresses a single cell. On the wire it is a [row, column] pair.
type Position struct {
	Row    int
	Column int
}

func (that Position) InRange() bool {
	return inRange(that.Row) && inRange(that.Column)
}

func (that Position) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{that.Row, that.Column})
}

func (that *Position) UnmarshalJSON(data []byte) error {
	var pair []int
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("position must be a [row, column] pair: %w", err)
	}

	if len(pair) != 2 {
		return fmt.Errorf("position must have 2 coordinates, got %d", len(pair))
	}

	pos := Position{Row: pair[0], Column: pair[1]}
	if !pos.InRange() {
		return fmt.Errorf("%w: [%d, %d]", apperror.ErrOutOfRange, pos.Row, pos.Column)
	}

	*that = pos

	return nil
}

// Line is an ordered run of cells. A winning line always holds BoardSize positions,
// a draw is reported with an empty one.
type Line []Position

// Board is a 3x3 grid, indexed [row][column]. An occupied cell never reverts.
type Board struct {
	cells [BoardSize][BoardSize]Mark
}

func NewBoard() *Board {
	return &Board{}
}

// Place puts mark on (column, row).
func (that *Board) Place(column, row int, mark Mark) error {
	if !inRange(column) || !inRange(row) {
		return fmt.Errorf("%w: column %d, row %d", apperror.ErrOutOfRange, column, row)
	}

	if that.cells[row][column] != MarkNone {
		return fmt.Errorf("%w: column %d, row %d", apperror.ErrCellOccupied, column, row)
	}

	that.cells[row][column] = mark

	return nil
}

// At returns the mark on (column, row), MarkNone for an empty or out of range cell.
func (that *Board) At(column, row int) Mark {
	if !inRange(column) || !inRange(row) {
		return MarkNone
	}

	return that.cells[row][column]
}

func (that *Board) IsFull() bool {
	for _, row := range that.cells {
		for _, cell := range row {
			if cell == MarkNone {
				return false
			}
		}
	}

	return true
}

// Cells returns a copy of the grid.
func (that *Board) Cells() [BoardSize][BoardSize]Mark {
	return that.cells
}

func inRange(v int) bool {
	return v >= 0 && v < BoardSize
}
