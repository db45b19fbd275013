package engine

import "github.com/opendata-yamanashi/yama-api/pkg/types"

// mountainTable returns a five-row table with regions
// [Kanto, Tohoku, Kanto, Kansai, Tohoku].
func mountainTable() *types.Table {
	return types.NewTable(
		[]string{"name", "region", "url"},
		[]types.Row{
			{"name": "Tsukuba", "region": "Kanto", "url": "/tsukuba"},
			{"name": "Zao", "region": "Tohoku", "url": "/zao"},
			{"name": "Tanigawa", "region": "Kanto", "url": "/tanigawa"},
			{"name": "Rokko", "region": "Kansai", "url": "/rokko"},
			{"name": "Iwaki", "region": "Tohoku", "url": ""},
		},
	)
}

func names(rows []types.Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r["name"]
	}
	return out
}
