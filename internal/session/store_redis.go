// Copyright (c) 2026 BGPiesa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/bgpiesa/internal/platform/constants"
)

// RedisStore implements [Store] using Redis.
type RedisStore struct {
	client redis.Cmdable
}

// NewRedisStore creates a new Redis-backed [Store].
func NewRedisStore(client redis.Cmdable) *RedisStore {
	return &RedisStore{client: client}
}

/*
Save stores the credential as JSON with its TTL.

Parameters:
  - ctx: context.Context
  - id: string
  - credential: *Credential
  - ttl: time.Duration

Returns:
  - error: Execution errors
*/
func (store *RedisStore) Save(ctx context.Context, id string, credential *Credential, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("redis_session_set_failed: credential already expired")
	}

	payload, err := json.Marshal(credential)
	if err != nil {
		return fmt.Errorf("redis_session_encode_failed: %w", err)
	}

	if err := store.client.Set(ctx, key(id), payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis_session_set_failed: %w", err)
	}

	return nil
}

/*
Load retrieves the credential for a session id.

Description: Returns ErrNotFound if the session is absent or expired.
*/
func (store *RedisStore) Load(ctx context.Context, id string) (*Credential, error) {
	payload, err := store.client.Get(ctx, key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("redis_session_get_failed: %w", err)
	}

	credential := &Credential{}
	if err := json.Unmarshal(payload, credential); err != nil {
		return nil, fmt.Errorf("redis_session_decode_failed: %w", err)
	}

	return credential, nil
}

/*
Delete removes the session from Redis.
*/
func (store *RedisStore) Delete(ctx context.Context, id string) error {
	if err := store.client.Del(ctx, key(id)).Err(); err != nil {
		return fmt.Errorf("redis_session_delete_failed: %w", err)
	}
	return nil
}

func key(id string) string {
	return constants.RedisPrefixAdminSession + id
}
