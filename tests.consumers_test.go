package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// TestBoltDBConsumer_ReplicatesEvents ensures each queued catalog change
// lands on the replica and that the consumer exits once the context ends.
func TestBoltDBConsumer_ReplicatesEvents(t *testing.T) {
	events := []struct {
		qid  string
		book Book
	}{
		{CreateQueue, Book{ID: "b:1", Title: "Dune"}},
		{UpdateQueue, Book{ID: "b:1", Title: "Dune Messiah"}},
		{DeleteQueue, Book{ID: "b:1"}},
	}
	next := 0
	ctx, cancel := context.WithCancel(context.Background())
	queue := &MockQueuer{
		PopFunc: func(ctx context.Context, qids ...string) (string, Book, error) {
			if next >= len(events) {
				cancel()
				return "", Book{}, ctx.Err()
			}
			ev := events[next]
			next++
			return ev.qid, ev.book, nil
		},
	}

	var added, updated, deleted []string
	repo := &MockBookStorage{
		AddFunc: func(ctx context.Context, id string, book Book) error {
			added = append(added, book.Title)
			return nil
		},
		UpdateFunc: func(ctx context.Context, id string, book Book) (Book, error) {
			updated = append(updated, book.Title)
			return book, nil
		},
		DeleteFunc: func(ctx context.Context, id string) error {
			deleted = append(deleted, id)
			return nil
		},
	}

	consumer := NewBoltDBConsumer(zap.NewNop(), queue, repo)
	err := consumer.Consume(ctx, CreateQueue, UpdateQueue, DeleteQueue)
	assert.NoError(t, err)
	assert.Equal(t, []string{"Dune"}, added)
	assert.Equal(t, []string{"Dune Messiah"}, updated)
	assert.Equal(t, []string{"b:1"}, deleted)
}
