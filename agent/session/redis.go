package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	rosterx "github.com/krittin-w/frontdesk/agent/roster"
)

const redisKeyPrefix = "frontdesk:session:"

// RedisStore keeps each session slot under its own key, so concurrent sessions
// never clobber each other.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(cfg Config) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	return &RedisStore{client: client}
}

func (s *RedisStore) Load(ctx context.Context, sessionID string) (rosterx.Doctor, error) {
	sessionID, err := validSessionID(sessionID)
	if err != nil {
		return rosterx.Doctor{}, err
	}

	raw, err := s.client.Get(ctx, redisKeyPrefix+sessionID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return rosterx.Doctor{}, ErrSessionNotFound
		}
		return rosterx.Doctor{}, fmt.Errorf("load session: %w", err)
	}

	var doc rosterx.Doctor
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return rosterx.Doctor{}, fmt.Errorf("decode session doctor: %w", err)
	}
	return doc, nil
}

func (s *RedisStore) Save(ctx context.Context, sessionID string, doc rosterx.Doctor) error {
	sessionID, err := validSessionID(sessionID)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode session doctor: %w", err)
	}
	if err := s.client.Set(ctx, redisKeyPrefix+sessionID, raw, 0).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	sessionID, err := validSessionID(sessionID)
	if err != nil {
		return err
	}
	if err := s.client.Del(ctx, redisKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
