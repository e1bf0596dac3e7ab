package entity

// Status is the lifecycle stage of a session. Won, Drawn and Errored are absorbing.
type Status uint8

const (
	StatusAwaitingSecondPlayer Status = iota
	StatusPlaying
	StatusWon
	StatusDrawn
	StatusErrored
)

func (that Status) IsTerminal() bool {
	return that == StatusWon || that == StatusDrawn || that == StatusErrored
}

func (that Status) String() string {
	switch that {
	case StatusAwaitingSecondPlayer:
		return "awaiting_second_player"
	case StatusPlaying:
		return "playing"
	case StatusWon:
		return "won"
	case StatusDrawn:
		return "drawn"
	case StatusErrored:
		return "errored"
	default:
		return "unknown"
	}
}
