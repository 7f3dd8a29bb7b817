// internal/domain/cart/aggregator.go
package cart

import (
	"context"
	"encoding/json"
)

// Aggregator maintains the cart line list for one identity at a time. It is
// hydrated from the blob store on construction and on every identity switch,
// and writes the full line list back after every mutation.
//
// Mutations never fail from the caller's point of view: corrupt persisted
// blobs hydrate as an empty cart, unmatched line IDs are no-ops, and a
// persistence write that fails leaves the in-memory state authoritative for
// the rest of the session. An Aggregator is not safe for concurrent use;
// callers serialize access the same way UI event handling does.
type Aggregator struct {
	store BlobStore
	key   string
	items []Item
}

// NewAggregator creates an aggregator bound to the guest cart and hydrates
// it from the store.
func NewAggregator(ctx context.Context, store BlobStore) *Aggregator {
	return NewAggregatorFor(ctx, store, "")
}

// NewAggregatorFor creates an aggregator bound directly to the given user's
// cart, hydrating exactly once. Callers that already know the request
// identity use this instead of constructing as guest and switching.
func NewAggregatorFor(ctx context.Context, store BlobStore, userID string) *Aggregator {
	a := &Aggregator{
		store: store,
		key:   Key(userID),
	}
	a.hydrate(ctx)
	return a
}

// Login rebinds the aggregator to the given user's cart and replaces the
// in-memory state with that user's persisted lines. The previous identity's
// cart is not merged in; it was already persisted by its last mutation.
func (a *Aggregator) Login(ctx context.Context, userID string) {
	a.key = Key(userID)
	a.hydrate(ctx)
}

// Logout rebinds the aggregator to the guest cart.
func (a *Aggregator) Logout(ctx context.Context) {
	a.key = Key("")
	a.hydrate(ctx)
}

// AddItem merges the item into an existing line matching on (ID, StoreID) by
// adding quantities, or appends it as a new line at the end.
func (a *Aggregator) AddItem(ctx context.Context, item Item) {
	if item.Quantity < 1 {
		item.Quantity = 1
	}

	for i := range a.items {
		if a.items[i].ID == item.ID && a.items[i].StoreID == item.StoreID {
			a.items[i].Quantity += item.Quantity
			a.persist(ctx)
			return
		}
	}

	a.items = append(a.items, item)
	a.persist(ctx)
}

// RemoveItem removes every line whose ID matches, regardless of store. This
// is intentionally looser than the (ID, StoreID) merge identity; see the
// design notes. Unknown IDs are a no-op.
func (a *Aggregator) RemoveItem(ctx context.Context, id string) {
	kept := a.items[:0]
	for _, item := range a.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	a.items = kept
	a.persist(ctx)
}

// UpdateQuantity sets the quantity of the first line whose ID matches,
// clamped to a minimum of 1 so no line can reach a dead zero or negative
// quantity. Removal is an explicit RemoveItem, not a zero update. Unknown
// IDs are a no-op.
func (a *Aggregator) UpdateQuantity(ctx context.Context, id string, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	for i := range a.items {
		if a.items[i].ID == id {
			a.items[i].Quantity = quantity
			break
		}
	}
	a.persist(ctx)
}

// Clear empties the cart.
func (a *Aggregator) Clear(ctx context.Context) {
	a.items = a.items[:0]
	a.persist(ctx)
}

// Items returns a copy of the current lines in insertion order.
func (a *Aggregator) Items() []Item {
	items := make([]Item, len(a.items))
	copy(items, a.items)
	return items
}

// Total returns the cart amount, recomputed from the lines on every call so
// it can never drift from them.
func (a *Aggregator) Total() int64 {
	var total int64
	for _, item := range a.items {
		total += item.Subtotal()
	}
	return total
}

// Count returns the summed quantity across all lines.
func (a *Aggregator) Count() int {
	count := 0
	for _, item := range a.items {
		count += item.Quantity
	}
	return count
}

// GroupByStore partitions the lines per originating store, preserving the
// first-seen order of stores and of lines within each store. Lines without a
// store fall into the "unknown" group. A group's display name is fixed by
// the first line that created it.
func (a *Aggregator) GroupByStore() []Group {
	groups := []Group{}
	index := map[string]int{}

	for _, item := range a.items {
		key := item.StoreID
		if key == "" {
			key = UnknownStoreID
		}

		i, ok := index[key]
		if !ok {
			name := item.StoreName
			if name == "" {
				name = UnknownStoreName
			}
			index[key] = len(groups)
			groups = append(groups, Group{StoreID: key, StoreName: name})
			i = index[key]
		}

		groups[i].Items = append(groups[i].Items, item)
		groups[i].Total += item.Subtotal()
	}

	return groups
}

// hydrate replaces the in-memory lines with the persisted blob for the
// active key. Missing and unreadable blobs both count as an empty cart.
func (a *Aggregator) hydrate(ctx context.Context) {
	a.items = nil

	data, found, err := a.store.Get(ctx, a.key)
	if err != nil || !found {
		return
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return
	}
	a.items = items
}

// persist writes the full line list through to the active key. The write is
// best effort: the caller never waits on or sees persistence failures.
func (a *Aggregator) persist(ctx context.Context) {
	data, err := json.Marshal(a.items)
	if err != nil {
		return
	}
	_ = a.store.Set(ctx, a.key, data)
}
