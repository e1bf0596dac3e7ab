package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/threeinarow-relay/internal/apperror"
	"github.com/rocketscienceinc/threeinarow-relay/internal/entity"
)

type envelope struct {
	Type *Type `json:"type"`
}

type initFrame struct {
	Type    Type    `json:"type"`
	JoinKey *string `json:"join_key,omitempty"`
}

type playFrame struct {
	Type   Type         `json:"type"`
	Player *entity.Mark `json:"player,omitempty"`
	Column *int         `json:"column"`
	Row    *int         `json:"row"`
}

type winFrame struct {
	Type       Type         `json:"type"`
	Player     *entity.Mark `json:"player,omitempty"`
	WinningPos *entity.Line `json:"winning_pos"`
}

type errorFrame struct {
	Type    Type    `json:"type"`
	Message *string `json:"message"`
}

// Encode serialises event into a text frame.
func Encode(event Event) ([]byte, error) {
	var frame any

	switch e := event.(type) {
	case Init:
		f := initFrame{Type: TypeInit}
		if e.JoinKey != "" {
			f.JoinKey = &e.JoinKey
		}
		frame = f
	case Play:
		f := playFrame{Type: TypePlay, Column: &e.Column, Row: &e.Row}
		if e.Player != entity.MarkNone {
			f.Player = &e.Player
		}
		frame = f
	case Win:
		line := e.WinningPos
		if line == nil {
			line = entity.Line{}
		}
		f := winFrame{Type: TypeWin, WinningPos: &line}
		if e.Player != entity.MarkNone {
			f.Player = &e.Player
		}
		frame = f
	case Error:
		frame = errorFrame{Type: TypeError, Message: &e.Message}
	default:
		return nil, fmt.Errorf("%w: %T", apperror.ErrUnknownEventType, event)
	}

	data, err := json.Marshal(frame)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s event: %w", event.Type(), err)
	}

	return data, nil
}

// Decode parses a text frame into one of the four event kinds. A frame with a missing or
// mistyped field fails with ErrMalformedEvent, an unrecognised tag with ErrUnknownEventType.
func Decode(data []byte) (Event, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, malformed(err)
	}

	if env.Type == nil {
		return nil, fmt.Errorf("%w: missing type", apperror.ErrMalformedEvent)
	}

	switch *env.Type {
	case TypeInit:
		return decodeInit(data)
	case TypePlay:
		return decodePlay(data)
	case TypeWin:
		return decodeWin(data)
	case TypeError:
		return decodeError(data)
	default:
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownEventType, *env.Type)
	}
}

// DecodeClient parses a frame sent by a client. Only INIT and PLAY travel in that
// direction; the mark of a PLAY is dropped because the relay derives it from the connection.
func DecodeClient(data []byte) (Event, error) {
	event, err := Decode(data)
	if err != nil {
		return nil, err
	}

	switch e := event.(type) {
	case Init:
		return e, nil
	case Play:
		e.Player = entity.MarkNone
		return e, nil
	default:
		return nil, fmt.Errorf("%w: %s is not accepted from clients", apperror.ErrUnknownEventType, event.Type())
	}
}

func decodeInit(data []byte) (Event, error) {
	var f initFrame
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, malformed(err)
	}

	event := Init{}
	if f.JoinKey != nil {
		event.JoinKey = *f.JoinKey
	}

	return event, nil
}

func decodePlay(data []byte) (Event, error) {
	var f playFrame
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, malformed(err)
	}

	if f.Column == nil || f.Row == nil {
		return nil, fmt.Errorf("%w: PLAY requires column and row", apperror.ErrMalformedEvent)
	}

	event := Play{Column: *f.Column, Row: *f.Row}
	if f.Player != nil {
		event.Player = *f.Player
	}

	return event, nil
}

func decodeWin(data []byte) (Event, error) {
	var f winFrame
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, malformed(err)
	}

	if f.WinningPos == nil {
		return nil, fmt.Errorf("%w: WIN requires winning_pos", apperror.ErrMalformedEvent)
	}

	line := *f.WinningPos
	switch {
	case len(line) == 0 && f.Player == nil:
		return NewWin(entity.MarkNone, entity.Line{}), nil
	case len(line) == entity.BoardSize && f.Player != nil:
		return NewWin(*f.Player, line), nil
	default:
		return nil, fmt.Errorf("%w: WIN needs a player and %d positions, or neither", apperror.ErrMalformedEvent, entity.BoardSize)
	}
}

func decodeError(data []byte) (Event, error) {
	var f errorFrame
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, malformed(err)
	}

	if f.Message == nil {
		return nil, fmt.Errorf("%w: ERROR requires message", apperror.ErrMalformedEvent)
	}

	return Error{Message: *f.Message}, nil
}

func malformed(err error) error {
	return fmt.Errorf("%w: %v", apperror.ErrMalformedEvent, err) //nolint: errorlint // the json error is detail only
}
