package main

import (
	"context"
	"math"
)

// CartSchemaVersion tags every persisted snapshot so a future change
// of the line item shape can be migrated instead of silently misread.
const CartSchemaVersion = 1

// CatalogItemRef is the payload sent by the presentation layer
// when a visitor asks to put a catalog book into the cart.
type CatalogItemRef struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Author     string  `json:"author"`
	CoverImage string  `json:"coverImage"`
	Price      float64 `json:"price"`
}

// CartItem is one catalog book line inside the cart. Title, author,
// cover and price are copied from the catalog at insertion time and
// never re-synced. The price stays locked for the cart session even
// if the same book is added again with a different price.
type CartItem struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Author     string  `json:"author"`
	CoverImage string  `json:"coverImage"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
}

// CartState is the whole cart content. Items keep their insertion order
// and hold at most one line per book id, each with quantity >= 1. Total
// always equals the sum of price x quantity over all lines, in cents
// precision.
type CartState struct {
	SchemaVersion int        `json:"schemaVersion"`
	Items         []CartItem `json:"items"`
	Total         float64    `json:"total"`
}

// NewCartState provides an empty cart tagged with the current schema version.
func NewCartState() CartState {
	return CartState{SchemaVersion: CartSchemaVersion, Items: []CartItem{}}
}

// CartCommand is the closed set of cart mutations. Each command goes
// through the pure ReduceCart transition, so command handling can be
// tested without any storage attached.
type CartCommand interface {
	isCartCommand()
}

// AddCartItem puts one more unit of a catalog book into the cart.
type AddCartItem struct {
	Item CatalogItemRef
}

// RemoveCartItem drops the whole line of the given book id.
type RemoveCartItem struct {
	ID string
}

// SetCartQuantity replaces the quantity of the given line. Any
// quantity below 1 removes the line entirely.
type SetCartQuantity struct {
	ID       string
	Quantity int
}

// ClearCart empties the cart.
type ClearCart struct{}

// LoadCartSnapshot replaces the whole state with a previously
// persisted snapshot. Used once at startup.
type LoadCartSnapshot struct {
	State CartState
}

func (AddCartItem) isCartCommand()      {}
func (RemoveCartItem) isCartCommand()   {}
func (SetCartQuantity) isCartCommand()  {}
func (ClearCart) isCartCommand()        {}
func (LoadCartSnapshot) isCartCommand() {}

// ReduceCart applies a single command on the given state and returns the
// next state. It never fails: commands targeting an unknown book id leave
// the state unchanged. The input state is not mutated, lines are copied
// before any change. The total is always recomputed from the lines rather
// than adjusted incrementally, so repeated mutations cannot drift.
func ReduceCart(state CartState, cmd CartCommand) CartState {
	switch c := cmd.(type) {
	case AddCartItem:
		next := state
		next.Items = make([]CartItem, len(state.Items))
		copy(next.Items, state.Items)
		found := false
		for i := range next.Items {
			if next.Items[i].ID == c.Item.ID {
				next.Items[i].Quantity++
				found = true
				break
			}
		}
		if !found {
			next.Items = append(next.Items, CartItem{
				ID:         c.Item.ID,
				Title:      c.Item.Title,
				Author:     c.Item.Author,
				CoverImage: c.Item.CoverImage,
				Price:      c.Item.Price,
				Quantity:   1,
			})
		}
		next.Total = freshCartTotal(next.Items)
		return next

	case RemoveCartItem:
		next := state
		next.Items = make([]CartItem, 0, len(state.Items))
		for _, item := range state.Items {
			if item.ID != c.ID {
				next.Items = append(next.Items, item)
			}
		}
		next.Total = freshCartTotal(next.Items)
		return next

	case SetCartQuantity:
		if c.Quantity < 1 {
			return ReduceCart(state, RemoveCartItem{ID: c.ID})
		}
		next := state
		next.Items = make([]CartItem, len(state.Items))
		copy(next.Items, state.Items)
		for i := range next.Items {
			if next.Items[i].ID == c.ID {
				next.Items[i].Quantity = c.Quantity
				break
			}
		}
		next.Total = freshCartTotal(next.Items)
		return next

	case ClearCart:
		return NewCartState()

	case LoadCartSnapshot:
		return sanitizeCartSnapshot(c.State)
	}
	return state
}

// sanitizeCartSnapshot rebuilds a loaded snapshot so that a stale or
// hand-edited payload cannot leave the cart inconsistent. Duplicated book
// ids collapse into the first line, lines without a positive quantity
// are dropped and the total is recomputed from the kept lines.
func sanitizeCartSnapshot(snapshot CartState) CartState {
	state := NewCartState()
	seen := make(map[string]struct{}, len(snapshot.Items))
	for _, item := range snapshot.Items {
		if item.Quantity < 1 {
			continue
		}
		if _, ok := seen[item.ID]; ok {
			continue
		}
		seen[item.ID] = struct{}{}
		state.Items = append(state.Items, item)
	}
	state.Total = freshCartTotal(state.Items)
	return state
}

// freshCartTotal computes the cart total from scratch, rounded to cents.
func freshCartTotal(items []CartItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return math.Round(total*100) / 100
}

// CartSnapshotStorage defines the single durable slot holding the
// serialized cart state. Load returns ErrNoCartSnapshot when the slot
// is empty or its content cannot be trusted.
type CartSnapshotStorage interface {
	Save(ctx context.Context, state CartState) error
	Load(ctx context.Context) (CartState, error)
}
