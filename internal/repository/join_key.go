package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrJoinKeyNotFound = errors.New("join key not found")
	ErrJoinKeyTaken    = errors.New("join key already taken")
)

const joinKeyPrefix = "joinkey:"

// JoinKeyRepository routes a join key to the session waiting for its second player.
// A key is single use: Consume removes it.
type JoinKeyRepository interface {
	Reserve(ctx context.Context, key, sessionID string, ttl time.Duration) error
	Consume(ctx context.Context, key string) (string, error)
	Release(ctx context.Context, key string) error
}

type dbJoinKey struct {
	client *redis.Client
}

func NewJoinKeyRepository(client *redis.Client) JoinKeyRepository {
	return &dbJoinKey{
		client: client,
	}
}

func (that *dbJoinKey) Reserve(ctx context.Context, key, sessionID string, ttl time.Duration) error {
	ok, err := that.client.SetNX(ctx, joinKeyPrefix+key, sessionID, ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to reserve join key: %w", err)
	}

	if !ok {
		return ErrJoinKeyTaken
	}

	return nil
}

func (that *dbJoinKey) Consume(ctx context.Context, key string) (string, error) {
	sessionID, err := that.client.GetDel(ctx, joinKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrJoinKeyNotFound
	}

	if err != nil {
		return "", fmt.Errorf("failed to consume join key: %w", err)
	}

	return sessionID, nil
}

func (that *dbJoinKey) Release(ctx context.Context, key string) error {
	if err := that.client.Del(ctx, joinKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to release join key: %w", err)
	}

	return nil
}
