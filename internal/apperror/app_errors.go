package apperror

import "errors"

// codec level, fatal to the frame only
var (
	ErrMalformedEvent   = errors.New("malformed event")
	ErrUnknownEventType = errors.New("unknown event type")
)

// rule level, reported to the offending client
var (
	ErrOutOfRange     = errors.New("invalid row or column")
	ErrCellOccupied   = errors.New("cell is already occupied")
	ErrNotYourTurn    = errors.New("it's not your turn")
	ErrGameOver       = errors.New("game is already finished")
	ErrNotReady       = errors.New("game is not started")
	ErrUnknownSession = errors.New("game not found")
	ErrAlreadyJoined  = errors.New("connection already joined a game")
)

// connection level, fatal to the session
var ErrTransportClosed = errors.New("transport closed")

var messages = []struct {
	err  error
	text string
}{
	{ErrMalformedEvent, "Malformed event."},
	{ErrUnknownEventType, "Unknown event type."},
	{ErrOutOfRange, "Invalid row or column."},
	{ErrCellOccupied, "This cell is already taken."},
	{ErrNotYourTurn, "It is not your turn."},
	{ErrGameOver, "The game is over."},
	{ErrNotReady, "The game has not started yet."},
	{ErrUnknownSession, "Game not found."},
	{ErrAlreadyJoined, "You have already joined a game."},
	{ErrTransportClosed, "Your opponent left the game."},
}

// Message returns the text shown to a player for err.
func Message(err error) string {
	for _, m := range messages {
		if errors.Is(err, m.err) {
			return m.text
		}
	}

	return "Something went wrong."
}
