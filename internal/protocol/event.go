package protocol

import "github.com/rocketscienceinc/threeinarow-relay/internal/entity"

// Type tags every frame exchanged between the relay and its clients.
type Type string

const (
	TypeInit  Type = "INIT"
	TypePlay  Type = "PLAY"
	TypeWin   Type = "WIN"
	TypeError Type = "ERROR"
)

// Event is one decoded frame.
type Event interface {
	Type() Type
}

// Init asks the relay for a game. Without JoinKey the sender hosts a new game; with it the
// sender joins the host's game. The relay answers a host with an Init carrying the key.
type Init struct {
	JoinKey string
}

// Play is a move. Clients leave Player empty, the relay fills it in on broadcast.
type Play struct {
	Player entity.Mark
	Column int
	Row    int
}

// Win ends the game. A draw carries no player and an empty WinningPos.
type Win struct {
	Player     entity.Mark
	WinningPos entity.Line
}

type Error struct {
	Message string
}

func (Init) Type() Type  { return TypeInit }
func (Play) Type() Type  { return TypePlay }
func (Win) Type() Type   { return TypeWin }
func (Error) Type() Type { return TypeError }

// NewWin builds the final broadcast; draws are reported with winner MarkNone.
func NewWin(winner entity.Mark, line entity.Line) Win {
	if line == nil {
		line = entity.Line{}
	}

	return Win{Player: winner, WinningPos: line}
}
