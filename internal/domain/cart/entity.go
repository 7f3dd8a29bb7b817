// internal/domain/cart/entity.go
package cart

// Fallback group identity for lines that carry no store reference.
const (
	UnknownStoreID   = "unknown"
	UnknownStoreName = "Không xác định"
)

// Item represents one cart line. Two lines are the same line only when both
// ID and StoreID match; the same menu item offered by two stores stays as
// two separate lines.
type Item struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	Image     string `json:"image"`
	StoreID   string `json:"store_id,omitempty"`
	StoreName string `json:"store_name,omitempty"`
}

// Subtotal returns the line amount.
func (i Item) Subtotal() int64 {
	return i.Price * int64(i.Quantity)
}

// Group is the per-store view of a cart: the lines originating from one
// store plus their combined amount. Derived on demand, never persisted.
type Group struct {
	StoreID   string `json:"store_id"`
	StoreName string `json:"store_name"`
	Items     []Item `json:"items"`
	Total     int64  `json:"total"`
}

// Key derives the persistence key for a user's cart. An empty user ID maps
// to the shared guest cart.
func Key(userID string) string {
	if userID == "" {
		userID = "guest"
	}
	return "cart:" + userID
}
