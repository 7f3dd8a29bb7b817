// internal/domain/cart/aggregator_test.go
package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory BlobStore fake.
type memStore struct {
	data map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}}
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	value, ok := m.data[key]
	return value, ok, nil
}

func (m *memStore) Set(_ context.Context, key string, value []byte) error {
	m.data[key] = value
	return nil
}

func (m *memStore) Remove(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func pho(qty int) Item {
	return Item{ID: "m1", Name: "Phở bò", Price: 55000, Quantity: qty, Image: "/img/pho.jpg", StoreID: "s1", StoreName: "Quán Phở 24"}
}

func banhMi(qty int) Item {
	return Item{ID: "m2", Name: "Bánh mì thịt", Price: 25000, Quantity: qty, Image: "/img/banhmi.jpg", StoreID: "s2", StoreName: "Bánh Mì Huỳnh Hoa"}
}

func TestAggregator_AddItemMergesOnItemAndStore(t *testing.T) {
	ctx := context.Background()
	agg := NewAggregator(ctx, newMemStore())

	agg.AddItem(ctx, pho(1))
	agg.AddItem(ctx, pho(2))
	agg.AddItem(ctx, banhMi(1))

	items := agg.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, 1, items[1].Quantity)
}

func TestAggregator_SameItemFromAnotherStoreIsANewLine(t *testing.T) {
	ctx := context.Background()
	agg := NewAggregator(ctx, newMemStore())

	agg.AddItem(ctx, pho(1))
	other := pho(1)
	other.StoreID = "s9"
	other.StoreName = "Phở Thìn"
	agg.AddItem(ctx, other)

	items := agg.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "s1", items[0].StoreID)
	assert.Equal(t, "s9", items[1].StoreID)
}

func TestAggregator_TotalAlwaysMatchesLines(t *testing.T) {
	ctx := context.Background()
	agg := NewAggregator(ctx, newMemStore())

	check := func() {
		var want int64
		for _, item := range agg.Items() {
			want += item.Price * int64(item.Quantity)
		}
		assert.Equal(t, want, agg.Total())
	}

	agg.AddItem(ctx, pho(2))
	check()
	agg.AddItem(ctx, banhMi(3))
	check()
	agg.UpdateQuantity(ctx, "m2", 1)
	check()
	agg.RemoveItem(ctx, "m1")
	check()
	agg.Clear(ctx)
	check()
	assert.Zero(t, agg.Total())
}

func TestAggregator_RemoveItemMatchesByIDAcrossStores(t *testing.T) {
	ctx := context.Background()
	agg := NewAggregator(ctx, newMemStore())

	agg.AddItem(ctx, pho(1))
	other := pho(1)
	other.StoreID = "s9"
	agg.AddItem(ctx, other)
	agg.AddItem(ctx, banhMi(1))

	// Removal keys on the item ID alone, so both store variants go.
	agg.RemoveItem(ctx, "m1")

	items := agg.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "m2", items[0].ID)
}

func TestAggregator_RemoveUnknownIDIsANoOp(t *testing.T) {
	ctx := context.Background()
	agg := NewAggregator(ctx, newMemStore())

	agg.AddItem(ctx, pho(2))
	agg.RemoveItem(ctx, "nope")

	require.Len(t, agg.Items(), 1)
	assert.Equal(t, int64(110000), agg.Total())
}

func TestAggregator_UpdateQuantity(t *testing.T) {
	ctx := context.Background()
	agg := NewAggregator(ctx, newMemStore())

	agg.AddItem(ctx, pho(1))
	agg.UpdateQuantity(ctx, "m1", 4)
	assert.Equal(t, 4, agg.Items()[0].Quantity)

	// Unknown IDs change nothing.
	agg.UpdateQuantity(ctx, "nope", 7)
	require.Len(t, agg.Items(), 1)
	assert.Equal(t, 4, agg.Items()[0].Quantity)
}

func TestAggregator_UpdateQuantityClampsToOne(t *testing.T) {
	ctx := context.Background()
	agg := NewAggregator(ctx, newMemStore())

	agg.AddItem(ctx, pho(3))
	agg.UpdateQuantity(ctx, "m1", 0)
	assert.Equal(t, 1, agg.Items()[0].Quantity)

	agg.UpdateQuantity(ctx, "m1", -5)
	assert.Equal(t, 1, agg.Items()[0].Quantity)
}

func TestAggregator_GroupByStore(t *testing.T) {
	ctx := context.Background()
	agg := NewAggregator(ctx, newMemStore())

	agg.AddItem(ctx, pho(2))
	agg.AddItem(ctx, banhMi(1))
	noStore := Item{ID: "m3", Name: "Trà đá", Price: 5000, Quantity: 2}
	agg.AddItem(ctx, noStore)
	again := pho(1)
	agg.AddItem(ctx, again)

	groups := agg.GroupByStore()
	require.Len(t, groups, 3)

	assert.Equal(t, "s1", groups[0].StoreID)
	assert.Equal(t, "Quán Phở 24", groups[0].StoreName)
	require.Len(t, groups[0].Items, 1)
	assert.Equal(t, int64(3*55000), groups[0].Total)

	assert.Equal(t, "s2", groups[1].StoreID)
	assert.Equal(t, int64(25000), groups[1].Total)

	assert.Equal(t, UnknownStoreID, groups[2].StoreID)
	assert.Equal(t, UnknownStoreName, groups[2].StoreName)
	assert.Equal(t, int64(10000), groups[2].Total)

	// Every line lands in exactly one group.
	lines := 0
	var total int64
	for _, g := range groups {
		lines += len(g.Items)
		total += g.Total
	}
	assert.Equal(t, len(agg.Items()), lines)
	assert.Equal(t, agg.Total(), total)
}

func TestAggregator_GroupNameFixedByFirstLine(t *testing.T) {
	ctx := context.Background()
	agg := NewAggregator(ctx, newMemStore())

	first := pho(1)
	first.StoreName = ""
	agg.AddItem(ctx, first)

	second := banhMi(1)
	second.StoreID = "s1"
	second.StoreName = "Quán Phở 24"
	agg.AddItem(ctx, second)

	groups := agg.GroupByStore()
	require.Len(t, groups, 1)
	assert.Equal(t, UnknownStoreName, groups[0].StoreName)
}

func TestAggregator_PersistenceRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()

	agg := NewAggregator(ctx, store)
	agg.Login(ctx, "u1")
	agg.AddItem(ctx, pho(2))
	agg.AddItem(ctx, banhMi(1))

	// Simulated reload under the same identity.
	reloaded := NewAggregator(ctx, store)
	reloaded.Login(ctx, "u1")

	assert.Equal(t, agg.Items(), reloaded.Items())
	assert.Equal(t, agg.Total(), reloaded.Total())
}

func TestAggregator_IdentityIsolation(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	agg := NewAggregator(ctx, store)

	agg.AddItem(ctx, pho(1)) // guest cart
	agg.Login(ctx, "alice")
	assert.Empty(t, agg.Items())

	agg.AddItem(ctx, banhMi(2))
	agg.Login(ctx, "bob")
	assert.Empty(t, agg.Items())

	// Switching back restores each identity's own lines, unmerged.
	agg.Login(ctx, "alice")
	require.Len(t, agg.Items(), 1)
	assert.Equal(t, "m2", agg.Items()[0].ID)

	agg.Logout(ctx)
	require.Len(t, agg.Items(), 1)
	assert.Equal(t, "m1", agg.Items()[0].ID)
}

func TestAggregator_CorruptBlobHydratesEmpty(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.data[Key("u1")] = []byte("{not json")

	agg := NewAggregator(ctx, store)
	agg.Login(ctx, "u1")

	assert.Empty(t, agg.Items())
	assert.Zero(t, agg.Total())

	// The cart stays usable and overwrites the bad blob on next mutation.
	agg.AddItem(ctx, pho(1))
	reloaded := NewAggregator(ctx, store)
	reloaded.Login(ctx, "u1")
	require.Len(t, reloaded.Items(), 1)
}

func TestAggregator_Count(t *testing.T) {
	ctx := context.Background()
	agg := NewAggregator(ctx, newMemStore())

	assert.Zero(t, agg.Count())
	agg.AddItem(ctx, pho(2))
	agg.AddItem(ctx, banhMi(3))
	assert.Equal(t, 5, agg.Count())
}

func TestKey(t *testing.T) {
	assert.Equal(t, "cart:guest", Key(""))
	assert.Equal(t, "cart:42", Key("42"))
}

// countingStore wraps memStore and counts reads.
type countingStore struct {
	*memStore
	gets int
}

func (c *countingStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.gets++
	return c.memStore.Get(ctx, key)
}

func TestNewAggregatorForBindsAndHydratesOnce(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()

	seed := NewAggregatorFor(ctx, store, "u1")
	seed.AddItem(ctx, pho(2))

	counted := &countingStore{memStore: store}
	agg := NewAggregatorFor(ctx, counted, "u1")

	assert.Equal(t, 1, counted.gets)
	require.Len(t, agg.Items(), 1)
	assert.Equal(t, int64(110000), agg.Total())

	// The guest constructor stays a plain alias for the empty identity.
	guest := NewAggregator(ctx, counted)
	assert.Empty(t, guest.Items())
	assert.Equal(t, 2, counted.gets)
}
