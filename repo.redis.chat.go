package main

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const LCommunityMessages string = "community:messages"

var _ ChatStorage = (*redisChatStorage)(nil) // ensure redisChatStorage implements ChatStorage.

// redisChatStorage keeps the community feed inside a capped redis list.
// Appends past the capacity push the oldest messages out.
type redisChatStorage struct {
	logger   *zap.Logger
	client   *redis.Client
	capacity int64
}

// NewRedisChatStorage provides an instance of redis-based community feed storage.
func NewRedisChatStorage(logger *zap.Logger, client *redis.Client, capacity int64) ChatStorage {
	return &redisChatStorage{
		logger:   logger,
		client:   client,
		capacity: capacity,
	}
}

// Append adds a message at the tail of the feed and trims the head
// so the feed never holds more than the configured capacity.
func (cs *redisChatStorage) Append(ctx context.Context, message ChatMessage) error {
	messageBytes, err := json.Marshal(message)
	if err != nil {
		return err
	}
	if err = cs.client.RPush(ctx, LCommunityMessages, messageBytes).Err(); err != nil {
		return err
	}
	return cs.client.LTrim(ctx, LCommunityMessages, -cs.capacity, -1).Err()
}

// Recent returns up to limit messages from the tail of the feed,
// oldest first.
func (cs *redisChatStorage) Recent(ctx context.Context, limit int64) ([]ChatMessage, error) {
	if limit < 1 || limit > cs.capacity {
		limit = cs.capacity
	}
	values, err := cs.client.LRange(ctx, LCommunityMessages, -limit, -1).Result()
	if err != nil {
		return nil, err
	}
	messages := []ChatMessage{}
	for _, messageJSONString := range values {
		var message ChatMessage
		if err = json.Unmarshal([]byte(messageJSONString), &message); err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}
	return messages, nil
}
