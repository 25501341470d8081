package assistant

import (
	"context"
	"encoding/json"
	"time"

	"harborview/models"

	"github.com/go-redis/redis/v8"
)

const chatContextPrefix = "assistant:ctx:"

// RedisContextStore keeps conversation history in Redis with a TTL, so idle
// sessions expire on their own.
type RedisContextStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisContextStore(client *redis.Client, ttl time.Duration) *RedisContextStore {
	return &RedisContextStore{client: client, ttl: ttl}
}

func (s *RedisContextStore) Get(ctx context.Context, sessionID string) ([]models.ChatMessage, error) {
	data, err := s.client.Get(ctx, chatContextPrefix+sessionID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var history []models.ChatMessage
	if err := json.Unmarshal([]byte(data), &history); err != nil {
		return nil, err
	}
	return history, nil
}

func (s *RedisContextStore) Set(ctx context.Context, sessionID string, history []models.ChatMessage) error {
	b, err := json.Marshal(history)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, chatContextPrefix+sessionID, b, s.ttl).Err()
}

func (s *RedisContextStore) Clear(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, chatContextPrefix+sessionID).Err()
}
