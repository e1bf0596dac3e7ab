package websocket

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/threeinarow-relay/internal/apperror"
	"github.com/rocketscienceinc/threeinarow-relay/internal/protocol"
	"github.com/rocketscienceinc/threeinarow-relay/internal/usecase"
)

// outbound is a queued text frame, or a close frame when closeCode is set.
type outbound struct {
	data      []byte
	closeCode int
	reason    string
}

// connection is one websocket peer. The read pump owns reads, the write pump owns writes;
// Send and Close only queue frames so callers never wait on the network.
type connection struct {
	id      string
	conn    *websocket.Conn
	logger  *slog.Logger
	options Options

	send chan outbound
	done chan struct{}

	mu       sync.Mutex
	closing  bool
	stopOnce sync.Once
}

func newConnection(id string, conn *websocket.Conn, logger *slog.Logger, options Options) *connection {
	return &connection{
		id:      id,
		conn:    conn,
		logger:  logger.With("clientID", id),
		options: options,

		send: make(chan outbound, options.SendBuffer),
		done: make(chan struct{}),
	}
}

func (that *connection) ID() string {
	return that.id
}

// Send - queues event for the peer. A peer that does not keep up is dropped.
func (that *connection) Send(event protocol.Event) {
	data, err := protocol.Encode(event)
	if err != nil {
		that.logger.Error("failed to encode event", "type", event.Type(), "error", err)
		return
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if that.closing {
		return
	}

	select {
	case that.send <- outbound{data: data}:
		that.logger.Debug("event queued", "type", event.Type(), "event", string(data))
	default:
		that.logger.Warn("send buffer is full, dropping connection")
		that.closing = true
		that.stop()
	}
}

// Close - queues a close frame after everything already sent.
func (that *connection) Close(code int, reason string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.closing {
		return
	}

	that.closing = true

	select {
	case that.send <- outbound{closeCode: code, reason: reason}:
	default:
		that.stop()
	}
}

// stop tears the connection down without a close handshake.
func (that *connection) stop() {
	that.stopOnce.Do(func() {
		close(that.done)
		_ = that.conn.Close()
	})
}

// closeOnDone closes the connection as going away when ctx ends before the peer leaves.
func (that *connection) closeOnDone(ctx context.Context) {
	select {
	case <-ctx.Done():
		that.Close(usecase.CloseGoingAway, "server shutting down")
	case <-that.done:
	}
}

// readPump - decodes frames from the peer and hands them to the relay until the connection ends.
func (that *connection) readPump(ctx context.Context, relay relay) {
	log := that.logger.With("method", "readPump")

	defer func() {
		cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), that.options.WriteWait)
		defer cancel()

		relay.Disconnect(cleanupCtx, that)
		that.stop()

		log.Info("WebSocket connection closed")
	}()

	if that.options.MaxMessageSize > 0 {
		that.conn.SetReadLimit(that.options.MaxMessageSize)
	}

	_ = that.conn.SetReadDeadline(time.Now().Add(that.options.PongWait))
	that.conn.SetPongHandler(func(string) error {
		return that.conn.SetReadDeadline(time.Now().Add(that.options.PongWait))
	})

	for {
		messageType, data, err := that.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Error("error reading message", "error", err)
			}
			return
		}

		log.Debug("frame received", "frame", string(data))

		if messageType != websocket.TextMessage {
			relay.Reject(that, apperror.ErrMalformedEvent)
			continue
		}

		event, err := protocol.DecodeClient(data)
		if err != nil {
			relay.Reject(that, err)
			continue
		}

		if err = relay.Handle(ctx, that, event); err != nil {
			log.Debug("event rejected", "type", event.Type(), "error", err)
		}
	}
}

// writePump - writes queued frames and keeps the connection alive with pings.
func (that *connection) writePump() {
	ticker := time.NewTicker(that.pingPeriod())
	defer ticker.Stop()

	for {
		select {
		case msg := <-that.send:
			_ = that.conn.SetWriteDeadline(time.Now().Add(that.options.WriteWait))

			if msg.closeCode != 0 {
				that.writeClose(msg.closeCode, msg.reason)
				return
			}

			if err := that.conn.WriteMessage(websocket.TextMessage, msg.data); err != nil {
				that.logger.Error("failed to write frame", "error", err)
				that.stop()
				return
			}

		case <-ticker.C:
			_ = that.conn.SetWriteDeadline(time.Now().Add(that.options.WriteWait))
			if err := that.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				that.stop()
				return
			}

		case <-that.done:
			return
		}
	}
}

// writeClose sends the close frame and gives the peer WriteWait to answer it.
func (that *connection) writeClose(code int, reason string) {
	err := that.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason))
	if err != nil {
		that.logger.Error("failed to write close frame", "error", err)
		that.stop()
		return
	}

	_ = that.conn.SetReadDeadline(time.Now().Add(that.options.WriteWait))
}

func (that *connection) pingPeriod() time.Duration {
	return (that.options.PongWait * 9) / 10
}
