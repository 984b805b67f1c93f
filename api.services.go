package main

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"
)

type BookServiceProvider interface {
	Add(ctx context.Context, id string, book Book) error
	GetOne(ctx context.Context, id string) (Book, error)
	Delete(ctx context.Context, id string) error
	Update(ctx context.Context, id string, book Book) (Book, error)
	GetAll(ctx context.Context) ([]Book, error)
	Search(ctx context.Context, query BookQuery) ([]Book, int, error)
}

// BookService owns the catalog use cases. Every write is pushed onto the
// matching replication queue before hitting the primary store, so the bolt
// replica eventually mirrors the redis catalog. A queue push failure is
// logged but never blocks the write.
type BookService struct {
	logger  *zap.Logger
	config  *Config
	clock   Clocker
	storage BookStorage
	queue   Queuer
}

func NewBookService(logger *zap.Logger, config *Config, clock Clocker, storage BookStorage, queue Queuer) BookServiceProvider {
	return &BookService{
		logger:  logger,
		config:  config,
		clock:   clock,
		storage: storage,
		queue:   queue,
	}
}

func (bs *BookService) Add(ctx context.Context, id string, book Book) error {
	if err := bs.queue.Push(ctx, CreateQueue, book); err != nil {
		bs.logger.Error("service: failed to push book to queue", zap.String("qid", CreateQueue), zap.Error(err))
	}
	return bs.storage.Add(ctx, id, book)
}

func (bs *BookService) GetOne(ctx context.Context, id string) (Book, error) {
	book, err := bs.storage.GetOne(ctx, id)
	return book, err
}

func (bs *BookService) Delete(ctx context.Context, id string) error {
	if err := bs.queue.Push(ctx, DeleteQueue, Book{ID: id}); err != nil {
		bs.logger.Error("service: failed to push to queue", zap.String("qid", DeleteQueue), zap.Error(err))
	}
	return bs.storage.Delete(ctx, id)
}

func (bs *BookService) Update(ctx context.Context, id string, book Book) (Book, error) {
	book.UpdatedAt = bs.clock.Now().UTC().String()
	if err := bs.queue.Push(ctx, UpdateQueue, book); err != nil {
		bs.logger.Error("service: failed to push to queue", zap.String("qid", UpdateQueue), zap.Error(err))
	}
	return bs.storage.Update(ctx, id, book)
}

func (bs *BookService) GetAll(ctx context.Context) ([]Book, error) {
	books, err := bs.storage.GetAll(ctx)
	return books, err
}

// Search filters, sorts and paginates the catalog in memory. The second
// result is the number of matching books before pagination, so the caller
// can derive the page count.
func (bs *BookService) Search(ctx context.Context, query BookQuery) ([]Book, int, error) {
	query.Normalize()
	books, err := bs.storage.GetAll(ctx)
	if err != nil {
		return nil, 0, err
	}

	matches := books[:0:0]
	search := strings.ToLower(query.Search)
	for _, book := range books {
		if search != "" &&
			!strings.Contains(strings.ToLower(book.Title), search) &&
			!strings.Contains(strings.ToLower(book.Author), search) {
			continue
		}
		if query.Genre != "" && !strings.EqualFold(book.Genre, query.Genre) {
			continue
		}
		matches = append(matches, book)
	}

	switch query.Sort {
	case SortPriceAscending:
		sort.SliceStable(matches, func(i, j int) bool { return matches[i].Price < matches[j].Price })
	case SortPriceDescending:
		sort.SliceStable(matches, func(i, j int) bool { return matches[i].Price > matches[j].Price })
	case SortRating:
		sort.SliceStable(matches, func(i, j int) bool { return matches[i].Rating > matches[j].Rating })
	}

	total := len(matches)
	start := query.Offset()
	if start >= total {
		return []Book{}, total, nil
	}
	end := start + query.Limit
	if end > total {
		end = total
	}
	return matches[start:end], total, nil
}

type LibraryServiceProvider interface {
	List(ctx context.Context, userID string) ([]LibraryEntry, error)
	Save(ctx context.Context, entry LibraryEntry) (LibraryEntry, error)
	UpdateProgress(ctx context.Context, userID, bookID string, progress int) (LibraryEntry, error)
	Remove(ctx context.Context, userID, bookID string) error
}

// LibraryService owns the personal library use cases and stamps
// creation and reading timestamps.
type LibraryService struct {
	logger  *zap.Logger
	clock   Clocker
	storage LibraryStorage
}

func NewLibraryService(logger *zap.Logger, clock Clocker, storage LibraryStorage) LibraryServiceProvider {
	return &LibraryService{
		logger:  logger,
		clock:   clock,
		storage: storage,
	}
}

func (ls *LibraryService) List(ctx context.Context, userID string) ([]LibraryEntry, error) {
	return ls.storage.GetAll(ctx, userID)
}

// Save adds a book to the user library. Saving an already saved book
// keeps its original creation date and reading progress.
func (ls *LibraryService) Save(ctx context.Context, entry LibraryEntry) (LibraryEntry, error) {
	now := ls.clock.Now().UTC().String()
	existing, err := ls.storage.GetOne(ctx, entry.UserID, entry.BookID)
	if err == nil {
		return existing, nil
	}
	if err != ErrLibraryEntryNotFound {
		return entry, err
	}
	entry.CreatedAt = now
	entry.UpdatedAt = now
	return entry, ls.storage.Save(ctx, entry)
}

func (ls *LibraryService) UpdateProgress(ctx context.Context, userID, bookID string, progress int) (LibraryEntry, error) {
	entry, err := ls.storage.GetOne(ctx, userID, bookID)
	if err != nil {
		return entry, err
	}
	now := ls.clock.Now().UTC().String()
	entry.Progress = progress
	entry.LastRead = now
	entry.UpdatedAt = now
	return entry, ls.storage.Save(ctx, entry)
}

func (ls *LibraryService) Remove(ctx context.Context, userID, bookID string) error {
	return ls.storage.Remove(ctx, userID, bookID)
}

type ChatServiceProvider interface {
	Recent(ctx context.Context, limit int64) ([]ChatMessage, error)
	Post(ctx context.Context, message ChatMessage) (ChatMessage, error)
}

// ChatService owns the community feed use cases.
type ChatService struct {
	logger  *zap.Logger
	clock   Clocker
	ids     UIDHandler
	storage ChatStorage
}

func NewChatService(logger *zap.Logger, clock Clocker, ids UIDHandler, storage ChatStorage) ChatServiceProvider {
	return &ChatService{
		logger:  logger,
		clock:   clock,
		ids:     ids,
		storage: storage,
	}
}

func (cs *ChatService) Recent(ctx context.Context, limit int64) ([]ChatMessage, error) {
	return cs.storage.Recent(ctx, limit)
}

func (cs *ChatService) Post(ctx context.Context, message ChatMessage) (ChatMessage, error) {
	message.ID = cs.ids.Generate(MessageIDPrefix)
	message.CreatedAt = cs.clock.Now().UTC().String()
	return message, cs.storage.Append(ctx, message)
}
