package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"voicenote-be/pkg/thought"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "voicenote:session:"

// RedisStore persists sessions as JSON values in Redis, surviving process
// restarts. Entries never expire; sessions live for the lifetime of the
// user's relationship with the service.
type RedisStore struct {
	rdb *redis.Client
}

var _ Store = &RedisStore{}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Load(ctx context.Context, userID string) (*thought.Session, bool, error) {
	data, err := s.rdb.Get(ctx, redisKeyPrefix+userID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load session: %w", err)
	}

	var sess thought.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, false, fmt.Errorf("decode session: %w", err)
	}
	return &sess, true, nil
}

func (s *RedisStore) Save(ctx context.Context, sess *thought.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.rdb.Set(ctx, redisKeyPrefix+sess.UserID, data, 0).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, userID string) error {
	if err := s.rdb.Del(ctx, redisKeyPrefix+userID).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
