package entity

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Mark is the symbol a player places on the board.
type Mark uint8

const (
	MarkNone Mark = iota
	MarkFirst
	MarkSecond
)

const (
	markFirstName  = "cross"
	markSecondName = "circle"
)

var ErrUnknownMark = errors.New("unknown mark")

// Other returns the opposing mark. MarkNone has no opponent.
func (that Mark) Other() Mark {
	switch that {
	case MarkFirst:
		return MarkSecond
	case MarkSecond:
		return MarkFirst
	default:
		return MarkNone
	}
}

func (that Mark) IsValid() bool {
	return that == MarkFirst || that == MarkSecond
}

func (that Mark) String() string {
	switch that {
	case MarkFirst:
		return markFirstName
	case MarkSecond:
		return markSecondName
	default:
		return ""
	}
}

// ParseMark converts a wire name into a Mark.
func ParseMark(name string) (Mark, error) {
	switch name {
	case markFirstName:
		return MarkFirst, nil
	case markSecondName:
		return MarkSecond, nil
	default:
		return MarkNone, fmt.Errorf("%w: %q", ErrUnknownMark, name)
	}
}

func (that Mark) MarshalJSON() ([]byte, error) {
	if !that.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMark, that)
	}

	return json.Marshal(that.String())
}

func (that *Mark) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("mark must be a string: %w", err)
	}

	mark, err := ParseMark(name)
	if err != nil {
		return err
	}

	*that = mark

	return nil
}
