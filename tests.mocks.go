package main

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// This file contains mocks definitions needed to perform unit tests.

type MockBookStorage struct {
	AddFunc    func(ctx context.Context, id string, book Book) error
	GetOneFunc func(ctx context.Context, id string) (Book, error)
	DeleteFunc func(ctx context.Context, id string) error
	UpdateFunc func(ctx context.Context, id string, book Book) (Book, error)
	GetAllFunc func(ctx context.Context) ([]Book, error)
}

// Add mocks the behavior of book creation by the repository.
func (m *MockBookStorage) Add(ctx context.Context, id string, book Book) error {
	return m.AddFunc(ctx, id, book)
}

// GetOne mocks the behavior of retrieving a book by the repository.
func (m *MockBookStorage) GetOne(ctx context.Context, id string) (Book, error) {
	return m.GetOneFunc(ctx, id)
}

// Delete mocks the behavior of deleting a book by the repository.
func (m *MockBookStorage) Delete(ctx context.Context, id string) error {
	return m.DeleteFunc(ctx, id)
}

// Update mocks the behavior of updating a book by the repository.
func (m *MockBookStorage) Update(ctx context.Context, id string, book Book) (Book, error) {
	return m.UpdateFunc(ctx, id, book)
}

// GetAll mocks the behavior of retrieving all books by the repository.
func (m *MockBookStorage) GetAll(ctx context.Context) ([]Book, error) {
	return m.GetAllFunc(ctx)
}

// MockCartSnapshotStorage implements a fake CartSnapshotStorage.
type MockCartSnapshotStorage struct {
	SaveFunc func(ctx context.Context, state CartState) error
	LoadFunc func(ctx context.Context) (CartState, error)
}

// Save mocks the behavior of persisting a cart snapshot.
func (m *MockCartSnapshotStorage) Save(ctx context.Context, state CartState) error {
	return m.SaveFunc(ctx, state)
}

// Load mocks the behavior of reading the cart snapshot slot.
func (m *MockCartSnapshotStorage) Load(ctx context.Context) (CartState, error) {
	return m.LoadFunc(ctx)
}

// MockLibraryStorage implements a fake LibraryStorage.
type MockLibraryStorage struct {
	SaveFunc   func(ctx context.Context, entry LibraryEntry) error
	GetOneFunc func(ctx context.Context, userID, bookID string) (LibraryEntry, error)
	GetAllFunc func(ctx context.Context, userID string) ([]LibraryEntry, error)
	RemoveFunc func(ctx context.Context, userID, bookID string) error
}

func (m *MockLibraryStorage) Save(ctx context.Context, entry LibraryEntry) error {
	return m.SaveFunc(ctx, entry)
}

func (m *MockLibraryStorage) GetOne(ctx context.Context, userID, bookID string) (LibraryEntry, error) {
	return m.GetOneFunc(ctx, userID, bookID)
}

func (m *MockLibraryStorage) GetAll(ctx context.Context, userID string) ([]LibraryEntry, error) {
	return m.GetAllFunc(ctx, userID)
}

func (m *MockLibraryStorage) Remove(ctx context.Context, userID, bookID string) error {
	return m.RemoveFunc(ctx, userID, bookID)
}

// MockChatStorage implements a fake ChatStorage.
type MockChatStorage struct {
	AppendFunc func(ctx context.Context, message ChatMessage) error
	RecentFunc func(ctx context.Context, limit int64) ([]ChatMessage, error)
}

func (m *MockChatStorage) Append(ctx context.Context, message ChatMessage) error {
	return m.AppendFunc(ctx, message)
}

func (m *MockChatStorage) Recent(ctx context.Context, limit int64) ([]ChatMessage, error) {
	return m.RecentFunc(ctx, limit)
}

// MockQueuer implements a fake Queuer.
type MockQueuer struct {
	PushFunc func(ctx context.Context, qid string, book Book) error
	PopFunc  func(ctx context.Context, qids ...string) (string, Book, error)
}

// Push mocks enqueuing a catalog change event.
func (m *MockQueuer) Push(ctx context.Context, qid string, book Book) error {
	return m.PushFunc(ctx, qid, book)
}

// Pop mocks dequeuing a catalog change event.
func (m *MockQueuer) Pop(ctx context.Context, qids ...string) (string, Book, error) {
	return m.PopFunc(ctx, qids...)
}

// NewNoopQueuer returns a queuer which accepts everything and serves nothing.
func NewNoopQueuer() *MockQueuer {
	return &MockQueuer{
		PushFunc: func(ctx context.Context, qid string, book Book) error {
			return nil
		},
		PopFunc: func(ctx context.Context, qids ...string) (string, Book, error) {
			<-ctx.Done()
			return "", Book{}, ctx.Err()
		},
	}
}

// MockClocker implements a fake Clocker.
type MockClocker struct {
	MockNow time.Time
}

// NewMockClocker returns a mocked instance with fixed time.
func NewMockClocker() *MockClocker {
	return &MockClocker{time.Date(2023, 0o7, 0o2, 0o0, 0o0, 0o0, 0o00000000, time.UTC)}
}

// Now returns an already defined time to be used as mock. This
// equals to `Sun, 02 Jul 2023 00:00:00 UTC` in time.RFC1123 format.
// equals to `2023-07-02 00:00:00 +0000 UTC` in String format.
func (mck *MockClocker) Now() time.Time {
	return mck.MockNow
}

// Zero returns zero time.
func (mck *MockClocker) Zero() time.Time {
	return time.Time{}
}

// MockTickingClocker implements a fake Clocker which moves forward
// by one second on each Now call.
type MockTickingClocker struct {
	MockNow time.Time
}

// NewMockTickingClocker returns a ticking mocked instance starting at
// the same fixed time as MockClocker.
func NewMockTickingClocker() *MockTickingClocker {
	return &MockTickingClocker{NewMockClocker().MockNow}
}

// Now returns the current mocked time and advances it by one second.
func (mck *MockTickingClocker) Now() time.Time {
	now := mck.MockNow
	mck.MockNow = mck.MockNow.Add(time.Second)
	return now
}

// Zero returns zero time.
func (mck *MockTickingClocker) Zero() time.Time {
	return time.Time{}
}

// MockUIDHandler implements a fake UIDHandler.
type MockUIDHandler struct {
	MockedUID string
	Valid     bool
}

// NewMockUIDHandler returns a mocked instance with predictable id.
func NewMockUIDHandler(id string, valid bool) *MockUIDHandler {
	return &MockUIDHandler{MockedUID: id, Valid: valid}
}

// Generate constructs a predictable id to be used as mock.
func (muid *MockUIDHandler) Generate(prefix string) string {
	return prefix + ":" + muid.MockedUID
}

// IsValid mocks IsValid behavior by providing configured status.
func (muid *MockUIDHandler) IsValid(_, _ string) bool {
	return muid.Valid
}

// newTestCartStore provides a cart store backed by an always succeeding
// in-memory snapshot slot, plus a pointer on the slot content.
func newTestCartStore() (*CartStore, *CartState) {
	var slot CartState
	snapshots := &MockCartSnapshotStorage{
		SaveFunc: func(ctx context.Context, state CartState) error {
			slot = state
			return nil
		},
		LoadFunc: func(ctx context.Context) (CartState, error) {
			return slot, nil
		},
	}
	return NewCartStore(zap.NewNop(), snapshots), &slot
}
