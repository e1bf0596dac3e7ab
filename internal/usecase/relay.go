package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/threeinarow-relay/internal/apperror"
	"github.com/rocketscienceinc/threeinarow-relay/internal/entity"
	"github.com/rocketscienceinc/threeinarow-relay/internal/pkg"
	"github.com/rocketscienceinc/threeinarow-relay/internal/protocol"
	"github.com/rocketscienceinc/threeinarow-relay/internal/repository"
)

const joinKeyAttempts = 5

var ErrJoinKeyExhausted = errors.New("could not allocate a unique join key")

type joinKeyRepo interface {
	Reserve(ctx context.Context, key, sessionID string, ttl time.Duration) error
	Consume(ctx context.Context, key string) (string, error)
	Release(ctx context.Context, key string) error
}

// Stats counts live sessions and the clients bound to them.
type Stats struct {
	Open    int `json:"open"`
	Playing int `json:"playing"`
	Clients int `json:"clients"`
}

// Relay pairs clients into sessions and routes their events. Sessions are independent;
// the relay's own lock only guards the routing tables.
type Relay struct {
	logger      *slog.Logger
	joinKeyRepo joinKeyRepo
	joinKeyTTL  time.Duration
	joinKeySize int
	newJoinKey  func(size int) (string, error)

	mu       sync.RWMutex
	sessions map[string]*Session
	clients  map[string]*Session
}

func NewRelay(logger *slog.Logger, joinKeyRepo joinKeyRepo, joinKeyTTL time.Duration, joinKeySize int) *Relay {
	return &Relay{
		logger:      logger.With("component", "relay"),
		joinKeyRepo: joinKeyRepo,
		joinKeyTTL:  joinKeyTTL,
		joinKeySize: joinKeySize,
		newJoinKey:  pkg.GenerateJoinKey,

		sessions: make(map[string]*Session),
		clients:  make(map[string]*Session),
	}
}

// Handle processes one decoded event from client. A rejected event is answered with an
// ERROR to that client only and the cause is returned.
func (that *Relay) Handle(ctx context.Context, client Client, event protocol.Event) error {
	var err error

	switch e := event.(type) {
	case protocol.Init:
		err = that.Init(ctx, client, e.JoinKey)
	case protocol.Play:
		err = that.Play(ctx, client, e.Column, e.Row)
	default:
		err = fmt.Errorf("%w: %s", apperror.ErrUnknownEventType, event.Type())
	}

	if err != nil {
		that.Reject(client, err)
	}

	return err
}

// Reject reports err to client.
func (that *Relay) Reject(client Client, err error) {
	that.logger.Info("request rejected", "clientID", client.ID(), "error", err)

	client.Send(protocol.Error{Message: apperror.Message(err)})
}

// Init hosts a new session when joinKey is empty, otherwise joins the session it routes to.
func (that *Relay) Init(ctx context.Context, client Client, joinKey string) error {
	if that.sessionOf(client) != nil {
		return apperror.ErrAlreadyJoined
	}

	if joinKey == "" {
		return that.host(ctx, client)
	}

	return that.join(ctx, client, joinKey)
}

func (that *Relay) host(ctx context.Context, client Client) error {
	log := that.logger.With("method", "host", "clientID", client.ID())

	sessionID := pkg.GenerateID()

	joinKey, err := that.reserveJoinKey(ctx, sessionID)
	if err != nil {
		return err
	}

	session := newSession(sessionID, joinKey, client)

	that.mu.Lock()
	that.sessions[sessionID] = session
	that.clients[client.ID()] = session
	that.mu.Unlock()

	client.Send(protocol.Init{JoinKey: joinKey})

	log.Info("session opened", "sessionID", sessionID)

	return nil
}

func (that *Relay) reserveJoinKey(ctx context.Context, sessionID string) (string, error) {
	for i := 0; i < joinKeyAttempts; i++ {
		joinKey, err := that.newJoinKey(that.joinKeySize)
		if err != nil {
			return "", fmt.Errorf("failed to generate join key: %w", err)
		}

		err = that.joinKeyRepo.Reserve(ctx, joinKey, sessionID, that.joinKeyTTL)
		if errors.Is(err, repository.ErrJoinKeyTaken) {
			continue
		}

		if err != nil {
			return "", fmt.Errorf("failed to reserve join key: %w", err)
		}

		return joinKey, nil
	}

	return "", ErrJoinKeyExhausted
}

func (that *Relay) join(ctx context.Context, client Client, joinKey string) error {
	log := that.logger.With("method", "join", "clientID", client.ID())

	sessionID, err := that.joinKeyRepo.Consume(ctx, joinKey)
	if errors.Is(err, repository.ErrJoinKeyNotFound) {
		return fmt.Errorf("%w: join key %q", apperror.ErrUnknownSession, joinKey)
	}

	if err != nil {
		return fmt.Errorf("failed to consume join key: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	session, ok := that.sessions[sessionID]
	if !ok {
		return fmt.Errorf("%w: session %s", apperror.ErrUnknownSession, sessionID)
	}

	if err = session.join(client); err != nil {
		return fmt.Errorf("%w: session %s", err, sessionID)
	}

	that.clients[client.ID()] = session

	log.Info("session started", "sessionID", sessionID)

	return nil
}

// Play applies a move from client to its session.
func (that *Relay) Play(_ context.Context, client Client, column, row int) error {
	session := that.sessionOf(client)
	if session == nil {
		return apperror.ErrNotReady
	}

	status, err := session.play(client, column, row)
	if err != nil {
		return fmt.Errorf("session %s: %w", session.ID(), err)
	}

	that.logger.Debug("move accepted", "sessionID", session.ID(), "clientID", client.ID(), "column", column, "row", row)

	if status.IsTerminal() {
		that.retire(session)
		that.logger.Info("session finished", "sessionID", session.ID(), "status", status.String())
	}

	return nil
}

// Disconnect handles a closed connection. A session that has not finished is aborted and
// the opponent told. A session still waiting for its guest also gives up its join key.
func (that *Relay) Disconnect(ctx context.Context, client Client) {
	log := that.logger.With("method", "Disconnect", "clientID", client.ID())

	session := that.unbind(client)
	if session == nil {
		return
	}

	status, aborted := session.leave(client)
	if !aborted {
		return
	}

	that.retire(session)

	// a consumed key may already belong to another host
	if status == entity.StatusAwaitingSecondPlayer {
		if err := that.joinKeyRepo.Release(ctx, session.joinKey); err != nil {
			log.Error("failed to release join key", "sessionID", session.ID(), "error", err)
		}
	}

	log.Info("session aborted", "sessionID", session.ID())
}

// Session returns the session client is bound to.
func (that *Relay) Session(clientID string) (*Session, bool) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	session, ok := that.clients[clientID]

	return session, ok
}

func (that *Relay) Stats() Stats {
	that.mu.RLock()
	sessions := make([]*Session, 0, len(that.sessions))
	for _, session := range that.sessions {
		sessions = append(sessions, session)
	}
	stats := Stats{Clients: len(that.clients)}
	that.mu.RUnlock()

	for _, session := range sessions {
		switch session.Status() {
		case entity.StatusAwaitingSecondPlayer:
			stats.Open++
		case entity.StatusPlaying:
			stats.Playing++
		}
	}

	return stats
}

func (that *Relay) sessionOf(client Client) *Session {
	session, _ := that.Session(client.ID())
	return session
}

// retire drops a finished session from the live set. Its clients stay bound until they
// disconnect, so late moves are answered with ErrGameOver.
func (that *Relay) retire(session *Session) {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.sessions, session.ID())
}

func (that *Relay) unbind(client Client) *Session {
	that.mu.Lock()
	defer that.mu.Unlock()

	session, ok := that.clients[client.ID()]
	if !ok {
		return nil
	}

	delete(that.clients, client.ID())

	return session
}
