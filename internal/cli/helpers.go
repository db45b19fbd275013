// Shared helpers for yama CLI commands.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/opendata-yamanashi/yama-api/internal/engine"
	"github.com/opendata-yamanashi/yama-api/internal/scrape"
	"github.com/opendata-yamanashi/yama-api/pkg/types"
)

// loader returns a page loader for the resolved data directory.
func (a *app) loader() *scrape.Loader {
	return scrape.NewLoader(a.cfg.DataDir, a.cfg.FetchTimeout, a.logger)
}

// siteURL resolves a --site value through the registry. An empty name
// selects the configured site.
func (a *app) siteURL(name string) (string, error) {
	if name == "" {
		name = a.cfg.Site
	}
	url, ok := a.cfg.SiteURL(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", types.ErrSiteUnknown, name)
	}
	return url, nil
}

// openEngine loads the site's table, downloading it on first use, and
// wraps it in a query engine.
func (a *app) openEngine(ctx context.Context, site string) (*engine.Engine, error) {
	url, err := a.siteURL(site)
	if err != nil {
		return nil, err
	}
	t, err := a.loader().Load(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("load table: %w", err)
	}
	return engine.New(engine.NewStore(t), a.cfg.MaxCount), nil
}

// queryFlags are the filter and pagination flags shared by the query
// subcommands.
type queryFlags struct {
	site   string
	keys   string
	values string
	count  int
	offset int
}

func (q *queryFlags) register(cmd *cobra.Command, filter bool) {
	cmd.Flags().StringVar(&q.site, "site", "", "site name from the registry (default: configured site)")
	cmd.Flags().IntVar(&q.count, "count", 0, "page size (default: max_count)")
	cmd.Flags().IntVar(&q.offset, "offset", 1, "1-based index of the first result")
	if filter {
		cmd.Flags().StringVar(&q.keys, "keys", "", "comma-separated columns to filter on")
		cmd.Flags().StringVar(&q.values, "values", "", "comma-separated substrings, one per key")
	}
}

// page returns the requested page, defaulting the size to maxCount.
func (q *queryFlags) page(cmd *cobra.Command, maxCount int) types.PageSpec {
	count := q.count
	if !cmd.Flags().Changed("count") {
		count = maxCount
	}
	return types.PageSpec{Count: count, Offset: q.offset}
}

// filter splits --keys and --values. An unset flag is an empty list; a flag
// set to "" is [""], matching the HTTP query parameters.
func (q *queryFlags) filter(cmd *cobra.Command) (keys, values []string) {
	if cmd.Flags().Changed("keys") {
		keys = strings.Split(q.keys, ",")
	}
	if cmd.Flags().Changed("values") {
		values = strings.Split(q.values, ",")
	}
	return keys, values
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Fprintln(w, string(output))
	return nil
}

// newTable returns a rounded table writer mirrored to w.
func newTable(w io.Writer, header ...string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.Style().Options.SeparateRows = false
	t.AppendHeader(toRow(header))
	return t
}

// toRow converts a string slice to table.Row
func toRow(vals []string) table.Row {
	row := make(table.Row, len(vals))
	for i, v := range vals {
		row[i] = v
	}
	return row
}

// printSummary reports which slice of the total a page covers.
func printSummary(w io.Writer, offset, n, total int) {
	if n == 0 {
		fmt.Fprintf(w, "No results (offset %d, total %d)\n", offset, total)
		return
	}
	fmt.Fprintf(w, "Showing %d-%d of %d\n", offset, offset+n-1, total)
}
