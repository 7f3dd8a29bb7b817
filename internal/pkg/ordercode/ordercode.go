// internal/pkg/ordercode/ordercode.go
package ordercode

import (
	"fmt"
	"time"
)

// Suggest builds a display order code of the form ORD-YYYYMMDD-NNN from an
// order ID and its creation time. A zero creation time falls back to today.
// Numeric IDs shorter than three digits are zero padded; an ID of 0 yields
// the date-only form.
func Suggest(orderID uint, createdAt time.Time) string {
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	base := fmt.Sprintf("ORD-%04d%02d%02d", createdAt.Year(), createdAt.Month(), createdAt.Day())
	if orderID == 0 {
		return base
	}
	return fmt.Sprintf("%s-%03d", base, orderID)
}
