package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var _ LibraryStorage = (*redisLibraryStorage)(nil) // ensure redisLibraryStorage implements LibraryStorage.

type redisLibraryStorage struct {
	logger *zap.Logger
	client *redis.Client
}

// NewRedisLibraryStorage provides an instance of redis-based library storage.
// Each user owns one hash keyed by book id.
func NewRedisLibraryStorage(logger *zap.Logger, client *redis.Client) LibraryStorage {
	return &redisLibraryStorage{
		logger: logger,
		client: client,
	}
}

func libraryKey(userID string) string {
	return fmt.Sprintf("library:%s", userID)
}

// Save inserts or replaces one saved book of the user library.
func (ls *redisLibraryStorage) Save(ctx context.Context, entry LibraryEntry) error {
	entryBytes, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return ls.client.HSet(ctx, libraryKey(entry.UserID), entry.BookID, entryBytes).Err()
}

// GetOne retrieves a single saved book of the user library.
func (ls *redisLibraryStorage) GetOne(ctx context.Context, userID, bookID string) (LibraryEntry, error) {
	var entry LibraryEntry
	entryJSONString, err := ls.client.HGet(ctx, libraryKey(userID), bookID).Result()
	if err == redis.Nil {
		return entry, ErrLibraryEntryNotFound
	}
	if err != nil {
		return entry, err
	}
	err = json.Unmarshal([]byte(entryJSONString), &entry)
	return entry, err
}

// GetAll retrieves every saved book of the user library.
func (ls *redisLibraryStorage) GetAll(ctx context.Context, userID string) ([]LibraryEntry, error) {
	values, err := ls.client.HVals(ctx, libraryKey(userID)).Result()
	if err != nil {
		return nil, err
	}
	entries := []LibraryEntry{}
	for _, entryJSONString := range values {
		var entry LibraryEntry
		if err = json.Unmarshal([]byte(entryJSONString), &entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Remove deletes one saved book from the user library.
func (ls *redisLibraryStorage) Remove(ctx context.Context, userID, bookID string) error {
	n, err := ls.client.HDel(ctx, libraryKey(userID), bookID).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrLibraryEntryNotFound
	}
	return nil
}
