package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opendata-yamanashi/yama-api/pkg/types"
)

var allPage = types.PageSpec{Count: 100, Offset: 1}

func TestListValues(t *testing.T) {
	tbl := mountainTable()

	t.Run("first occurrence order", func(t *testing.T) {
		vals, total, err := ListValues(tbl, "region", allPage)
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Equal(t, []string{"Kanto", "Tohoku", "Kansai"}, vals)
	})

	t.Run("paginated", func(t *testing.T) {
		vals, total, err := ListValues(tbl, "region", types.PageSpec{Count: 1, Offset: 2})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Equal(t, []string{"Tohoku"}, vals)
	})

	t.Run("empty string is a value", func(t *testing.T) {
		vals, _, err := ListValues(tbl, "url", allPage)
		require.NoError(t, err)
		assert.Contains(t, vals, "")
		assert.Len(t, vals, 5)
	})

	t.Run("unknown column is a lookup failure", func(t *testing.T) {
		_, _, err := ListValues(tbl, "height", allPage)
		var ke *types.KeyError
		require.True(t, errors.As(err, &ke))
		assert.True(t, ke.Lookup)
		assert.Equal(t, "height", ke.Key)
	})
}

func TestDistinctValuesSkipsMissingAndDuplicates(t *testing.T) {
	rows := []types.Row{
		{"region": "Kanto"},
		{},
		{"region": "Kanto"},
		{"region": "Chubu"},
	}
	assert.Equal(t, []string{"Kanto", "Chubu"}, DistinctValues(rows, "region"))
}

func TestCountByKey(t *testing.T) {
	tbl := mountainTable()

	t.Run("ties keep first occurrence order", func(t *testing.T) {
		counts, total, err := CountByKey(tbl, "region", nil, allPage)
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Equal(t, []types.KeyCount{
			{Key: "Kanto", Count: 2},
			{Key: "Tohoku", Count: 2},
			{Key: "Kansai", Count: 1},
		}, counts)
	})

	t.Run("filter applies before grouping", func(t *testing.T) {
		spec := types.FilterSpec{{Column: "url", Value: "a"}}
		counts, total, err := CountByKey(tbl, "region", spec, allPage)
		require.NoError(t, err)
		// /tsukuba, /zao, /tanigawa
		assert.Equal(t, 2, total)
		assert.Equal(t, []types.KeyCount{
			{Key: "Kanto", Count: 2},
			{Key: "Tohoku", Count: 1},
		}, counts)
	})

	t.Run("paginated", func(t *testing.T) {
		counts, total, err := CountByKey(tbl, "region", nil, types.PageSpec{Count: 2, Offset: 2})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Equal(t, []types.KeyCount{
			{Key: "Tohoku", Count: 2},
			{Key: "Kansai", Count: 1},
		}, counts)
	})

	t.Run("offset beyond groups", func(t *testing.T) {
		counts, total, err := CountByKey(tbl, "region", nil, types.PageSpec{Count: 2, Offset: 4})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Empty(t, counts)
	})

	t.Run("unknown column", func(t *testing.T) {
		_, _, err := CountByKey(tbl, "bogus", nil, allPage)
		assert.ErrorIs(t, err, types.ErrUnknownKey)
	})
}

func TestGroupCountsProperties(t *testing.T) {
	rows := []types.Row{
		{"k": "c"}, {"k": "a"}, {"k": "b"}, {"k": "a"}, {"k": "c"},
		{"k": "d"}, {"k": "c"}, {"k": "b"}, {"k": "e"}, {"k": "a"},
	}

	groups := GroupCounts(rows, "k")

	sum := 0
	seen := make(map[string]bool)
	for i, g := range groups {
		sum += g.Count
		assert.False(t, seen[g.Key], "duplicate key %q", g.Key)
		seen[g.Key] = true
		if i > 0 {
			assert.LessOrEqual(t, g.Count, groups[i-1].Count)
		}
	}
	assert.Equal(t, len(rows), sum)
	assert.Equal(t, []types.KeyCount{
		{Key: "c", Count: 3},
		{Key: "a", Count: 3},
		{Key: "b", Count: 2},
		{Key: "d", Count: 1},
		{Key: "e", Count: 1},
	}, groups)
}

func TestQuery(t *testing.T) {
	tbl := mountainTable()

	t.Run("filter then paginate", func(t *testing.T) {
		rows, total := Query(tbl, types.FilterSpec{{Column: "region", Value: "Kanto"}}, types.PageSpec{Count: 10, Offset: 1})
		assert.Equal(t, 2, total)
		assert.Equal(t, []string{"Tsukuba", "Tanigawa"}, names(rows))
	})

	t.Run("offset beyond total", func(t *testing.T) {
		rows, total := Query(tbl, nil, types.PageSpec{Count: 2, Offset: 10})
		assert.Equal(t, 5, total)
		assert.Empty(t, rows)
	})

	t.Run("full page round trip returns every row in order", func(t *testing.T) {
		rows, total := Query(tbl, nil, types.PageSpec{Count: tbl.Len(), Offset: 1})
		assert.Equal(t, tbl.Len(), total)
		assert.Equal(t, tbl.Rows(), rows)
	})
}
