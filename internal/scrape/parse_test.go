package scrape

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTable(t *testing.T) {
	f, err := os.Open("testdata/mountains.html")
	require.NoError(t, err)
	defer f.Close()

	tbl, err := ParseTable(f)
	require.NoError(t, err)

	assert.Equal(t, []string{"山名<山頂名>", "都道府県", "標高", "url"}, tbl.Columns())
	require.Equal(t, 3, tbl.Len())

	rows := tbl.Rows()
	assert.Equal(t, "大雪山 <旭岳>", rows[0]["山名<山頂名>"])
	assert.Equal(t, "北海道", rows[0]["都道府県"])
	assert.Equal(t, "2291", rows[0]["標高"])
	assert.Equal(t, "https://maps.gsi.go.jp/#15/43.663/142.854", rows[0]["url"])

	assert.Equal(t, "富士山 <剣ヶ峯>", rows[1]["山名<山頂名>"])
	assert.Equal(t, "山梨県・静岡県", rows[1]["都道府県"])

	t.Run("row without link has empty url", func(t *testing.T) {
		assert.Equal(t, "筑波山", rows[2]["山名<山頂名>"])
		assert.Equal(t, "", rows[2]["url"])
	})

	t.Run("short row is padded", func(t *testing.T) {
		v, ok := rows[2]["標高"]
		assert.True(t, ok)
		assert.Equal(t, "", v)
	})
}

func TestParseTableErrors(t *testing.T) {
	tests := []struct {
		name    string
		html    string
		wantErr error
	}{
		{
			name:    "no container",
			html:    `<html><body><table><tr><th>a</th></tr><tr><td>1</td></tr></table></body></html>`,
			wantErr: ErrNoContainer,
		},
		{
			name:    "header only",
			html:    `<div class="base_txt"><table><tr><th>a</th></tr></table></div>`,
			wantErr: ErrNoRows,
		},
		{
			name:    "class must match a whole token",
			html:    `<div class="base_txt2"><table><tr><th>a</th></tr><tr><td>1</td></tr></table></div>`,
			wantErr: ErrNoContainer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTable(strings.NewReader(tt.html))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseTableDropsExtraCells(t *testing.T) {
	page := `<div class="base_txt"><table>
<tr><th>name</th></tr>
<tr><td><a href="/x">X</a></td><td>extra</td></tr>
</table></div>`

	tbl, err := ParseTable(strings.NewReader(page))
	require.NoError(t, err)
	require.Equal(t, 1, tbl.Len())
	assert.Equal(t, []string{"name", "url"}, tbl.Columns())
	assert.Len(t, tbl.Rows()[0], 2)
	assert.Equal(t, "/x", tbl.Rows()[0]["url"])
}
