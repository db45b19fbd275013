package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opendata-yamanashi/yama-api/pkg/types"
)

func newTestEngine() *Engine {
	return New(NewStore(mountainTable()), 100)
}

func TestEngineRows(t *testing.T) {
	e := newTestEngine()

	page, err := e.Rows([]string{"region"}, []string{"Kanto"}, types.PageSpec{Count: 10, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, 1, page.Offset)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Tsukuba", page.Items[0].Row["name"])
	assert.Equal(t, []string{"name", "region", "url"}, page.Items[0].Columns)
}

func TestEngineRowsOffsetBeyondTotal(t *testing.T) {
	page, err := newTestEngine().Rows(nil, nil, types.PageSpec{Count: 2, Offset: 10})
	require.NoError(t, err)
	assert.Equal(t, 5, page.Total)
	assert.Empty(t, page.Items)
}

func TestEngineRowsValidationOrder(t *testing.T) {
	e := newTestEngine()

	// Page errors win over filter errors.
	_, err := e.Rows([]string{"bogus"}, []string{"x"}, types.PageSpec{Count: 0, Offset: 1})
	assert.ErrorIs(t, err, types.ErrInvalidCount)

	_, err = e.Rows([]string{"region", "missing"}, []string{"Kanto"}, types.PageSpec{Count: 1, Offset: 1})
	assert.ErrorIs(t, err, types.ErrKeyValueMismatch)
}

func TestEngineValues(t *testing.T) {
	page, err := newTestEngine().Values("region", types.PageSpec{Count: 100, Offset: 1})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, []string{"Kanto", "Tohoku", "Kansai"}, page.Items)
}

func TestEngineCounts(t *testing.T) {
	e := newTestEngine()

	t.Run("grouped counts", func(t *testing.T) {
		page, err := e.Counts("region", nil, nil, types.PageSpec{Count: 100, Offset: 1})
		require.NoError(t, err)
		assert.Equal(t, 3, page.Total)
		assert.Equal(t, []types.KeyCount{
			{Key: "Kanto", Count: 2},
			{Key: "Tohoku", Count: 2},
			{Key: "Kansai", Count: 1},
		}, page.Items)
	})

	t.Run("unknown primary key is a lookup failure even with bad filter", func(t *testing.T) {
		_, err := e.Counts("bogus", []string{"also-bogus"}, []string{"x"}, types.PageSpec{Count: 1, Offset: 1})
		var ke *types.KeyError
		require.True(t, errors.As(err, &ke))
		assert.True(t, ke.Lookup)
		assert.Equal(t, "bogus", ke.Key)
	})

	t.Run("unknown filter key is not a lookup failure", func(t *testing.T) {
		_, err := e.Counts("region", []string{"also-bogus"}, []string{"x"}, types.PageSpec{Count: 1, Offset: 1})
		var ke *types.KeyError
		require.True(t, errors.As(err, &ke))
		assert.False(t, ke.Lookup)
	})
}

func TestEngineWithoutData(t *testing.T) {
	e := New(NewStore(nil), 100)
	page := types.PageSpec{Count: 1, Offset: 1}

	_, err := e.Keys()
	assert.ErrorIs(t, err, types.ErrDataUnavailable)
	_, err = e.Rows(nil, nil, page)
	assert.ErrorIs(t, err, types.ErrDataUnavailable)
	_, err = e.Values("region", page)
	assert.ErrorIs(t, err, types.ErrDataUnavailable)
	_, err = e.Counts("region", nil, nil, page)
	assert.ErrorIs(t, err, types.ErrDataUnavailable)
	assert.Nil(t, e.Snapshot())
}

func TestEngineKeys(t *testing.T) {
	keys, err := newTestEngine().Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "region", "url"}, keys)
}

func TestNewDefaultsMaxCount(t *testing.T) {
	assert.Equal(t, types.DefaultMaxCount, New(NewStore(nil), 0).MaxCount())
	assert.Equal(t, 7, New(NewStore(nil), 7).MaxCount())
}
