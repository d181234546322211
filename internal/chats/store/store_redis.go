package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"ayala/internal/conversation/models"
)

const sessionKeyPrefix = "chat:session:"

func turnsKey(sessionID string) string {
	return sessionKeyPrefix + sessionID + ":turns"
}

// RedisStore keeps each session as a Redis list of JSON-encoded turns.
type RedisStore struct {
	client *redis.Client
	cfg    config
}

func NewRedis(client *redis.Client, opts ...Option) *RedisStore {
	return &RedisStore{client: client, cfg: newConfig(opts)}
}

func (s *RedisStore) Load(ctx context.Context, sessionID string) (models.History, error) {
	if sessionID == "" {
		return nil, errSessionIDRequired
	}
	raw, err := s.client.LRange(ctx, turnsKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("load chat turns: %w", err)
	}
	history := make(models.History, 0, len(raw))
	for _, item := range raw {
		var t models.Turn
		if err := json.Unmarshal([]byte(item), &t); err != nil {
			return nil, fmt.Errorf("decode chat turn: %w", err)
		}
		history = append(history, t)
	}
	return history, nil
}

// Append pushes turns, trims the list and refreshes the TTL in one pipeline.
func (s *RedisStore) Append(ctx context.Context, sessionID string, turns ...models.Turn) error {
	if sessionID == "" {
		return errSessionIDRequired
	}
	if len(turns) == 0 {
		return nil
	}
	values := make([]any, 0, len(turns))
	for _, t := range turns {
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Errorf("encode chat turn: %w", err)
		}
		values = append(values, b)
	}

	key := turnsKey(sessionID)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, values...)
		pipe.LTrim(ctx, key, int64(-s.cfg.maxTurns), -1)
		pipe.Expire(ctx, key, s.cfg.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("append chat turns: %w", err)
	}
	return nil
}
