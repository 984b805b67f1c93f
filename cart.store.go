package main

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

// CartStore owns the authoritative in-memory cart of the running session
// and keeps the durable snapshot slot in sync. Every command runs the pure
// ReduceCart transition under the lock, then persists the resulting state
// best-effort: a storage failure is logged and swallowed so the in-memory
// state stays correct while the snapshot goes stale. There is exactly one
// logical writer, concurrent sessions over the same slot are not
// coordinated and the last write wins.
type CartStore struct {
	mu        sync.Mutex
	logger    *zap.Logger
	snapshots CartSnapshotStorage
	state     CartState
}

// NewCartStore provides a cart store starting from an empty state.
func NewCartStore(logger *zap.Logger, snapshots CartSnapshotStorage) *CartStore {
	return &CartStore{
		logger:    logger,
		snapshots: snapshots,
		state:     NewCartState(),
	}
}

// Load seeds the store from the persisted snapshot if one exists. A missing,
// corrupted or mis-versioned snapshot leaves the store on its empty initial
// state. Load does not write back what it just read.
func (cs *CartStore) Load(ctx context.Context) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	snapshot, err := cs.snapshots.Load(ctx)
	if errors.Is(err, ErrNoCartSnapshot) {
		return
	}
	if err != nil {
		cs.logger.Error("cart: failed to load snapshot", zap.Error(err))
		return
	}
	cs.state = ReduceCart(cs.state, LoadCartSnapshot{State: snapshot})
	cs.logger.Info("cart: snapshot restored",
		zap.Int("cart.items", len(cs.state.Items)),
		zap.Float64("cart.total", cs.state.Total),
	)
}

// Dispatch runs one command to completion and returns the new state.
// The snapshot slot is overwritten after every command, including the
// no-op ones, matching a remove of a book never added.
func (cs *CartStore) Dispatch(ctx context.Context, cmd CartCommand) CartState {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.state = ReduceCart(cs.state, cmd)
	if err := cs.snapshots.Save(ctx, cs.state); err != nil {
		cs.logger.Error("cart: failed to persist snapshot", zap.Error(err))
	}
	return cs.state
}

// Add puts one unit of the given catalog book into the cart.
func (cs *CartStore) Add(ctx context.Context, item CatalogItemRef) CartState {
	return cs.Dispatch(ctx, AddCartItem{Item: item})
}

// Remove drops the line of the given book id. Unknown ids are a no-op.
func (cs *CartStore) Remove(ctx context.Context, id string) CartState {
	return cs.Dispatch(ctx, RemoveCartItem{ID: id})
}

// SetQuantity updates the line quantity, removing the line when the
// requested quantity falls below 1. Unknown ids are a no-op.
func (cs *CartStore) SetQuantity(ctx context.Context, id string, quantity int) CartState {
	return cs.Dispatch(ctx, SetCartQuantity{ID: id, Quantity: quantity})
}

// Clear empties the cart.
func (cs *CartStore) Clear(ctx context.Context) CartState {
	return cs.Dispatch(ctx, ClearCart{})
}

// State returns a read-only copy of the current cart content.
func (cs *CartStore) State() CartState {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	view := cs.state
	view.Items = make([]CartItem, len(cs.state.Items))
	copy(view.Items, cs.state.Items)
	return view
}
