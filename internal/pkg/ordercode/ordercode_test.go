// internal/pkg/ordercode/ordercode_test.go
package ordercode

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSuggest(t *testing.T) {
	at := time.Date(2025, time.March, 7, 10, 30, 0, 0, time.UTC)

	assert.Equal(t, "ORD-20250307-004", Suggest(4, at))
	assert.Equal(t, "ORD-20250307-123", Suggest(123, at))
	assert.Equal(t, "ORD-20250307-4567", Suggest(4567, at))
	assert.Equal(t, "ORD-20250307", Suggest(0, at))
}

func TestSuggest_ZeroTimeFallsBackToToday(t *testing.T) {
	now := time.Now()
	want := fmt.Sprintf("ORD-%04d%02d%02d-001", now.Year(), now.Month(), now.Day())

	assert.Equal(t, want, Suggest(1, time.Time{}))
}
