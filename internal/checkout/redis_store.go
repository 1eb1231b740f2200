package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"parkpass/internal/shared/constants"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisSnapshotStore keeps one JSON snapshot per session under a fixed key.
// An abandoned session expires with the TTL; a live one survives any number
// of client reloads.
type RedisSnapshotStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSnapshotStore(client *redis.Client, ttl time.Duration) *RedisSnapshotStore {
	return &RedisSnapshotStore{
		client: client,
		ttl:    ttl,
	}
}

func (r *RedisSnapshotStore) Save(ctx context.Context, sess *ReservationSession) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session snapshot: %w", err)
	}

	key := constants.BuildSessionKey(sess.ID.String())
	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write session snapshot: %w", err)
	}
	return nil
}

func (r *RedisSnapshotStore) Load(ctx context.Context, id uuid.UUID) (*ReservationSession, error) {
	key := constants.BuildSessionKey(id.String())
	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to read session snapshot: %w", err)
	}

	var sess ReservationSession
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session snapshot: %w", err)
	}
	return &sess, nil
}

func (r *RedisSnapshotStore) Delete(ctx context.Context, id uuid.UUID) error {
	key := constants.BuildSessionKey(id.String())
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete session snapshot: %w", err)
	}
	return nil
}

// RedisSubmitGuard serializes submissions per session with a SETNX lock.
// The lock is released on failure so the user can retry; on success it is left
// to expire since the session is terminal anyway.
type RedisSubmitGuard struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSubmitGuard(client *redis.Client, ttl time.Duration) *RedisSubmitGuard {
	return &RedisSubmitGuard{
		client: client,
		ttl:    ttl,
	}
}

func (g *RedisSubmitGuard) Acquire(ctx context.Context, sessionID uuid.UUID) (bool, error) {
	key := constants.BuildSubmitLockKey(sessionID.String())
	ok, err := g.client.SetNX(ctx, key, "1", g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire submit lock: %w", err)
	}
	return ok, nil
}

func (g *RedisSubmitGuard) Release(ctx context.Context, sessionID uuid.UUID) error {
	key := constants.BuildSubmitLockKey(sessionID.String())
	if err := g.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to release submit lock: %w", err)
	}
	return nil
}
