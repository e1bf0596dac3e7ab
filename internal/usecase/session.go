package usecase

import (
	"sync"

	"github.com/rocketscienceinc/threeinarow-relay/internal/apperror"
	"github.com/rocketscienceinc/threeinarow-relay/internal/entity"
	"github.com/rocketscienceinc/threeinarow-relay/internal/protocol"
	"github.com/rocketscienceinc/threeinarow-relay/internal/tictactoe"
)

// Session is one game between a host and a guest. Every operation holds mu from
// validation to the last broadcast, so both clients see the same sequence of events.
type Session struct {
	mu sync.Mutex

	id      string
	joinKey string
	game    *tictactoe.Game

	host  Client
	guest Client
}

// Snapshot is a read-only copy of a session's state.
type Snapshot struct {
	ID          string
	Status      entity.Status
	Turn        entity.Mark
	Cells       [entity.BoardSize][entity.BoardSize]entity.Mark
	Winner      entity.Mark
	WinningLine entity.Line
}

func newSession(id, joinKey string, host Client) *Session {
	return &Session{
		id:      id,
		joinKey: joinKey,
		game:    tictactoe.NewGame(),
		host:    host,
	}
}

func (that *Session) ID() string {
	return that.id
}

func (that *Session) Snapshot() Snapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	return Snapshot{
		ID:          that.id,
		Status:      that.game.Status(),
		Turn:        that.game.Turn(),
		Cells:       that.game.Board().Cells(),
		Winner:      that.game.Winner(),
		WinningLine: that.game.WinningLine(),
	}
}

func (that *Session) Status() entity.Status {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.game.Status()
}

// join binds guest to the second mark and starts the game.
func (that *Session) join(guest Client) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.game.Start(); err != nil {
		return apperror.ErrUnknownSession
	}

	that.guest = guest

	return nil
}

// play runs one move for client. On success the move is broadcast, followed by WIN and
// a normal close of both connections when the move ended the game.
func (that *Session) play(client Client, column, row int) (entity.Status, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	mark := that.markOf(client)
	if mark == entity.MarkNone {
		return that.game.Status(), apperror.ErrUnknownSession
	}

	if err := tictactoe.MakeTurn(that.game, mark, column, row); err != nil {
		return that.game.Status(), err //nolint: wrapcheck // rule errors go back to the player as is
	}

	that.broadcast(protocol.Play{Player: mark, Column: column, Row: row})

	status := that.game.Status()
	if status.IsTerminal() {
		that.broadcast(protocol.NewWin(that.game.Winner(), that.game.WinningLine()))
		that.closeAll(CloseNormal, "game over")
	}

	return status, nil
}

// leave aborts the game for a departing client. The opponent, if any, gets an ERROR and
// its connection is closed. It returns the status the game was aborted from, and false
// when the game had already ended.
func (that *Session) leave(client Client) (entity.Status, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	status := that.game.Status()
	if !that.game.Abort() {
		return status, false
	}

	if opponent := that.opponentOf(client); opponent != nil {
		opponent.Send(protocol.Error{Message: apperror.Message(apperror.ErrTransportClosed)})
		opponent.Close(CloseGoingAway, "opponent left")
	}

	return status, true
}

func (that *Session) markOf(client Client) entity.Mark {
	switch {
	case that.host != nil && that.host.ID() == client.ID():
		return entity.MarkFirst
	case that.guest != nil && that.guest.ID() == client.ID():
		return entity.MarkSecond
	default:
		return entity.MarkNone
	}
}

func (that *Session) opponentOf(client Client) Client {
	switch that.markOf(client) {
	case entity.MarkFirst:
		return that.guest
	case entity.MarkSecond:
		return that.host
	default:
		return nil
	}
}

func (that *Session) broadcast(event protocol.Event) {
	that.host.Send(event)
	if that.guest != nil {
		that.guest.Send(event)
	}
}

func (that *Session) closeAll(code int, reason string) {
	that.host.Close(code, reason)
	if that.guest != nil {
		that.guest.Close(code, reason)
	}
}
