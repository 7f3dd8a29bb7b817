// internal/pkg/pagination/pagination_test.go
package pagination

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pages(entries []Entry) []int {
	out := []int{}
	for _, e := range entries {
		if !e.Ellipsis {
			out = append(out, e.Page)
		}
	}
	return out
}

func TestWindow_MiddleOfRange(t *testing.T) {
	entries := Window(5, 20, 5)

	expected := []Entry{
		{Page: 0},
		{Ellipsis: true},
		{Page: 3}, {Page: 4}, {Page: 5}, {Page: 6}, {Page: 7},
		{Ellipsis: true},
		{Page: 19},
	}
	assert.Equal(t, expected, entries)
}

func TestWindow_StartOfRange(t *testing.T) {
	entries := Window(0, 20, 5)

	expected := []Entry{
		{Page: 0}, {Page: 1}, {Page: 2}, {Page: 3}, {Page: 4},
		{Ellipsis: true},
		{Page: 19},
	}
	assert.Equal(t, expected, entries)
}

func TestWindow_EndOfRange(t *testing.T) {
	entries := Window(19, 20, 5)

	expected := []Entry{
		{Page: 0},
		{Ellipsis: true},
		{Page: 15}, {Page: 16}, {Page: 17}, {Page: 18}, {Page: 19},
	}
	assert.Equal(t, expected, entries)
}

func TestWindow_NoPages(t *testing.T) {
	assert.Empty(t, Window(0, 0, 5))
	assert.Empty(t, Window(3, -1, 5))
}

func TestWindow_FewerPagesThanWindow(t *testing.T) {
	entries := Window(1, 3, 5)

	expected := []Entry{{Page: 0}, {Page: 1}, {Page: 2}}
	assert.Equal(t, expected, entries)
}

func TestWindow_SinglePage(t *testing.T) {
	entries := Window(0, 1, 5)

	assert.Equal(t, []Entry{{Page: 0}}, entries)
}

func TestWindow_EvenWindowSizeStaysConsistent(t *testing.T) {
	entries := Window(10, 20, 4)

	assert.Len(t, pages(entries), 4+2) // window plus first and last page
	assert.Contains(t, pages(entries), 10)
}

func TestWindow_ClampsCurrentPage(t *testing.T) {
	belowRange := Window(-7, 20, 5)
	assert.Equal(t, Window(0, 20, 5), belowRange)

	aboveRange := Window(99, 20, 5)
	assert.Equal(t, Window(19, 20, 5), aboveRange)
}

func TestWindow_ClampsWindowSize(t *testing.T) {
	assert.Equal(t, Window(5, 20, MinWindowSize), Window(5, 20, 0))
	assert.Equal(t, Window(5, 20, MinWindowSize), Window(5, 20, -3))
}

func TestWindow_Idempotent(t *testing.T) {
	first := Window(-4, 17, 6)
	second := Window(-4, 17, 6)

	assert.Equal(t, first, second)
}

// Sweep a broad input range and check the structural guarantees hold for
// every combination, including out-of-range ones.
func TestWindow_Properties(t *testing.T) {
	for totalPages := 0; totalPages <= 200; totalPages += 7 {
		for current := -5; current <= totalPages+5; current++ {
			for windowSize := 1; windowSize <= 10; windowSize++ {
				name := fmt.Sprintf("total=%d/current=%d/window=%d", totalPages, current, windowSize)
				entries := Window(current, totalPages, windowSize)

				if totalPages <= 0 {
					require.Empty(t, entries, name)
					continue
				}

				effective := windowSize
				if effective < MinWindowSize {
					effective = MinWindowSize
				}
				require.LessOrEqual(t, len(entries), effective+4, name)

				nums := pages(entries)
				require.NotEmpty(t, nums, name)
				require.Equal(t, 0, nums[0], name)
				require.Equal(t, totalPages-1, nums[len(nums)-1], name)

				for i := 1; i < len(nums); i++ {
					require.Greater(t, nums[i], nums[i-1], name)
				}
				for i := 1; i < len(entries); i++ {
					if entries[i].Ellipsis {
						require.False(t, entries[i-1].Ellipsis, name)
					}
				}
			}
		}
	}
}

func TestNavigationHelpers(t *testing.T) {
	assert.Equal(t, 0, First())

	assert.Equal(t, 4, Prev(5))
	assert.Equal(t, 0, Prev(0))

	assert.Equal(t, 6, Next(5, 20))
	assert.Equal(t, 19, Next(19, 20))

	assert.Equal(t, 19, Last(20))
	assert.Equal(t, 0, Last(0))
}

func TestPages(t *testing.T) {
	assert.Equal(t, 0, Pages(0, 20))
	assert.Equal(t, 1, Pages(1, 20))
	assert.Equal(t, 1, Pages(20, 20))
	assert.Equal(t, 2, Pages(21, 20))
	assert.Equal(t, 5, Pages(100, 20))
	assert.Equal(t, 0, Pages(100, 0))
}
