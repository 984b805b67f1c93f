package main

import "context"

// ChatMessage is one entry of the community feed.
type ChatMessage struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
}

// ChatStorage defines operations on the community message feed. The feed
// is append-only and capped, older messages fall off past the capacity.
type ChatStorage interface {
	Append(ctx context.Context, message ChatMessage) error
	Recent(ctx context.Context, limit int64) ([]ChatMessage, error)
}
