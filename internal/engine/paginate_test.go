package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opendata-yamanashi/yama-api/pkg/types"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	tests := []struct {
		name string
		page types.PageSpec
		want []int
	}{
		{name: "first page", page: types.PageSpec{Count: 2, Offset: 1}, want: []int{1, 2}},
		{name: "middle page", page: types.PageSpec{Count: 2, Offset: 3}, want: []int{3, 4}},
		{name: "page ending exactly at total", page: types.PageSpec{Count: 2, Offset: 4}, want: []int{4, 5}},
		{name: "short last page", page: types.PageSpec{Count: 3, Offset: 4}, want: []int{4, 5}},
		{name: "offset at last element", page: types.PageSpec{Count: 3, Offset: 5}, want: []int{5}},
		{name: "count equals total", page: types.PageSpec{Count: 5, Offset: 1}, want: items},
		{name: "count larger than total", page: types.PageSpec{Count: 100, Offset: 1}, want: items},
		{name: "offset one past total", page: types.PageSpec{Count: 1, Offset: 6}, want: []int{}},
		{name: "offset far past total", page: types.PageSpec{Count: 2, Offset: 10}, want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, total := Paginate(items, tt.page)
			assert.Equal(t, 5, total)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPaginateEmptyInput(t *testing.T) {
	got, total := Paginate([]string{}, types.PageSpec{Count: 10, Offset: 1})
	assert.Equal(t, 0, total)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

// Every page is the contiguous slice starting at offset-1 with length
// min(count, max(0, total-offset+1)).
func TestPaginateLengthProperty(t *testing.T) {
	for n := 0; n <= 6; n++ {
		items := make([]int, n)
		for i := range items {
			items[i] = i
		}
		for count := 1; count <= 7; count++ {
			for offset := 1; offset <= 8; offset++ {
				got, total := Paginate(items, types.PageSpec{Count: count, Offset: offset})
				assert.Equal(t, n, total)

				want := min(count, max(0, n-offset+1))
				if !assert.Len(t, got, want, "n=%d count=%d offset=%d", n, count, offset) {
					continue
				}
				for i, v := range got {
					assert.Equal(t, offset-1+i, v, "n=%d count=%d offset=%d", n, count, offset)
				}
			}
		}
	}
}
