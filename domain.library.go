package main

import "context"

// LibraryEntry is one saved book inside a user personal library,
// with its reading progress in percent.
type LibraryEntry struct {
	UserID    string `json:"userId"`
	BookID    string `json:"bookId"`
	Progress  int    `json:"progress"`
	LastRead  string `json:"lastRead"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// LibraryStorage defines possible operations on a user personal library.
type LibraryStorage interface {
	Save(ctx context.Context, entry LibraryEntry) error
	GetOne(ctx context.Context, userID, bookID string) (LibraryEntry, error)
	GetAll(ctx context.Context, userID string) ([]LibraryEntry, error)
	Remove(ctx context.Context, userID, bookID string) error
}
