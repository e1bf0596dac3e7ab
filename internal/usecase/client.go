package usecase

import "github.com/rocketscienceinc/threeinarow-relay/internal/protocol"

// Close codes sent when the relay ends a connection.
const (
	CloseNormal    = 1000
	CloseGoingAway = 1001
)

// Client is one connected player as seen by the relay. Send and Close must keep the
// order in which they are called and must not block on the network.
type Client interface {
	ID() string
	Send(event protocol.Event)
	Close(code int, reason string)
}
