package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// TestCartStore_DispatchPersistsEveryCommand ensures the snapshot slot is
// overwritten after each command, no-op commands included.
func TestCartStore_DispatchPersistsEveryCommand(t *testing.T) {
	saves := 0
	var slot CartState
	snapshots := &MockCartSnapshotStorage{
		SaveFunc: func(ctx context.Context, state CartState) error {
			saves++
			slot = state
			return nil
		},
		LoadFunc: func(ctx context.Context) (CartState, error) {
			return CartState{}, ErrNoCartSnapshot
		},
	}
	store := NewCartStore(zap.NewNop(), snapshots)

	store.Add(context.Background(), dune())
	store.SetQuantity(context.Background(), "b:1", 3)
	store.Remove(context.Background(), "b:404") // unknown id, still persisted
	state := store.Clear(context.Background())

	assert.Equal(t, 4, saves)
	assert.Equal(t, NewCartState(), state)
	assert.Equal(t, NewCartState(), slot)
}

// TestCartStore_PersistFailureKeepsMemoryState ensures a broken snapshot
// storage never corrupts nor blocks the in-memory cart.
func TestCartStore_PersistFailureKeepsMemoryState(t *testing.T) {
	snapshots := &MockCartSnapshotStorage{
		SaveFunc: func(ctx context.Context, state CartState) error {
			return errors.New("disk full")
		},
		LoadFunc: func(ctx context.Context) (CartState, error) {
			return CartState{}, ErrNoCartSnapshot
		},
	}
	store := NewCartStore(zap.NewNop(), snapshots)

	store.Add(context.Background(), dune())
	state := store.Add(context.Background(), dune())

	assert.Equal(t, 1, len(state.Items))
	assert.Equal(t, 2, state.Items[0].Quantity)
	assert.Equal(t, 19.98, state.Total)
}

// TestCartStore_LoadMissingSnapshot ensures a missing slot leaves the
// store on its empty initial state without writing anything back.
func TestCartStore_LoadMissingSnapshot(t *testing.T) {
	saves := 0
	snapshots := &MockCartSnapshotStorage{
		SaveFunc: func(ctx context.Context, state CartState) error {
			saves++
			return nil
		},
		LoadFunc: func(ctx context.Context) (CartState, error) {
			return CartState{}, ErrNoCartSnapshot
		},
	}
	store := NewCartStore(zap.NewNop(), snapshots)
	store.Load(context.Background())

	assert.Equal(t, NewCartState(), store.State())
	assert.Equal(t, 0, saves)
}

// TestCartStore_LoadRestoresSnapshot ensures a persisted snapshot seeds
// the next session with the same lines and a recomputed total.
func TestCartStore_LoadRestoresSnapshot(t *testing.T) {
	snapshots := &MockCartSnapshotStorage{
		SaveFunc: func(ctx context.Context, state CartState) error {
			return nil
		},
		LoadFunc: func(ctx context.Context) (CartState, error) {
			return CartState{
				SchemaVersion: CartSchemaVersion,
				Items: []CartItem{
					{ID: "b:1", Title: "Dune", Price: 9.99, Quantity: 2},
					{ID: "b:2", Title: "Foundation", Price: 7.50, Quantity: 1},
				},
				Total: 0, // stale on purpose
			}, nil
		},
	}
	store := NewCartStore(zap.NewNop(), snapshots)
	store.Load(context.Background())

	state := store.State()
	assert.Equal(t, 2, len(state.Items))
	assert.Equal(t, 27.48, state.Total)
}

// TestCartStore_StateIsACopy ensures mutating a returned view cannot
// touch the store content.
func TestCartStore_StateIsACopy(t *testing.T) {
	store, _ := newTestCartStore()
	store.Add(context.Background(), dune())

	view := store.State()
	view.Items[0].Quantity = 100

	assert.Equal(t, 1, store.State().Items[0].Quantity)
}

// TestCartStore_SessionRoundTrip replays a whole visitor session against a
// real bolt snapshot slot, then reopens a second store over the same slot
// and expects the identical cart back.
func TestCartStore_SessionRoundTrip(t *testing.T) {
	cs, err := newTestBoltCartStorage()
	assert.NoError(t, err)
	defer cs.closeTestBoltCartStorage()

	first := NewCartStore(zap.NewNop(), cs)
	first.Load(context.Background())
	first.Add(context.Background(), dune())
	first.Add(context.Background(), foundation())
	first.SetQuantity(context.Background(), "b:2", 4)
	expected := first.Remove(context.Background(), "b:1")

	second := NewCartStore(zap.NewNop(), cs)
	second.Load(context.Background())

	assert.Equal(t, expected, second.State())
	assert.Equal(t, 30.0, second.State().Total)
}
