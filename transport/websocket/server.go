package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/threeinarow-relay/internal/pkg"
	"github.com/rocketscienceinc/threeinarow-relay/internal/protocol"
	"github.com/rocketscienceinc/threeinarow-relay/internal/usecase"
)

const shutdownTimeout = 5 * time.Second

type relay interface {
	Handle(ctx context.Context, client usecase.Client, event protocol.Event) error
	Reject(client usecase.Client, err error)
	Disconnect(ctx context.Context, client usecase.Client)
}

// Options tune every connection the server accepts.
type Options struct {
	WriteWait      time.Duration
	PongWait       time.Duration
	MaxMessageSize int64
	SendBuffer     int
}

type Server struct {
	logger  *slog.Logger
	relay   relay
	options Options

	upgrader websocket.Upgrader
}

func New(logger *slog.Logger, relay relay, options Options) *Server {
	if options.WriteWait <= 0 {
		options.WriteWait = 10 * time.Second
	}

	if options.PongWait <= 0 {
		options.PongWait = 60 * time.Second
	}

	if options.SendBuffer <= 0 {
		options.SendBuffer = 16
	}

	return &Server{
		logger:  logger.With("component", "websocket"),
		relay:   relay,
		options: options,

		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// clients are served from another origin than the relay
			CheckOrigin: func(_ *http.Request) bool { return true },
		},
	}
}

// Handler - routes websocket upgrades on "/" and "/ws".
func (that *Server) Handler(ctx context.Context) http.Handler {
	router := mux.NewRouter()

	serve := func(w http.ResponseWriter, r *http.Request) {
		that.upgradeToWebSocket(ctx, w, r)
	}

	router.HandleFunc("/", serve).Methods(http.MethodGet)
	router.HandleFunc("/ws", serve).Methods(http.MethodGet)

	return router
}

// Start - starts WebSocket server and stops it when ctx is done. Hijacked connections are not
// tracked by http.Server, each one closes itself when ctx ends.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(ctx),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// upgradeToWebSocket - upgrades the connection and serves it until it closes.
func (that *Server) upgradeToWebSocket(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeToWebSocket")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	client := newConnection(pkg.GenerateID(), conn, that.logger, that.options)

	log.Info("WebSocket connection established", "clientID", client.ID(), "remote", conn.RemoteAddr().String())

	go client.writePump()
	go client.closeOnDone(ctx)
	client.readPump(ctx, that.relay)
}
