// Offline query commands running the same engine as the HTTP API.
package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/opendata-yamanashi/yama-api/internal/api"
)

func newKeysCmd(a *app) *cobra.Command {
	var site string
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "List the table's column names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := a.openEngine(cmd.Context(), site)
			if err != nil {
				return err
			}
			keys, err := eng.Keys()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if a.flags.jsonMode {
				return printJSON(out, api.KeysResponse{Keys: keys})
			}
			for _, k := range keys {
				fmt.Fprintln(out, k)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&site, "site", "", "site name from the registry (default: configured site)")
	return cmd
}

func newQueryCmd(a *app) *cobra.Command {
	var q queryFlags
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Print rows matching a filter",
		Long: `Query prints the rows whose cells contain every given substring.

Keys and values are comma-separated and paired by position; all pairs must
match (AND).

Example:
  yama query --keys 都道府県 --values 山梨
  yama query --keys 都道府県,標高 --values 長野,30 --count 5
  yama query --offset 101 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := a.openEngine(cmd.Context(), q.site)
			if err != nil {
				return err
			}
			keys, values := q.filter(cmd)
			res, err := eng.Rows(keys, values, q.page(cmd, eng.MaxCount()))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if a.flags.jsonMode {
				return printJSON(out, api.NewRowsResponse(res))
			}
			columns, _ := eng.Keys()
			t := newTable(out, columns...)
			for _, rec := range res.Items {
				t.AppendRow(toRow(rec.Values()))
			}
			t.Render()
			printSummary(out, res.Offset, len(res.Items), res.Total)
			return nil
		},
	}
	q.register(cmd, true)
	return cmd
}

func newValuesCmd(a *app) *cobra.Command {
	var q queryFlags
	cmd := &cobra.Command{
		Use:   "values <key>",
		Short: "List the distinct values of a column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := a.openEngine(cmd.Context(), q.site)
			if err != nil {
				return err
			}
			res, err := eng.Values(args[0], q.page(cmd, eng.MaxCount()))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if a.flags.jsonMode {
				return printJSON(out, api.NewValuesResponse(res))
			}
			t := newTable(out, args[0])
			for _, v := range res.Items {
				t.AppendRow(toRow([]string{v}))
			}
			t.Render()
			printSummary(out, res.Offset, len(res.Items), res.Total)
			return nil
		},
	}
	q.register(cmd, false)
	return cmd
}

func newCountsCmd(a *app) *cobra.Command {
	var q queryFlags
	cmd := &cobra.Command{
		Use:   "counts <key>",
		Short: "Count rows per value of a column",
		Long: `Counts groups the rows matching the optional filter by the given column
and prints each value with its row count, most frequent first.

Example:
  yama counts 都道府県
  yama counts 都道府県 --keys 標高 --values 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := a.openEngine(cmd.Context(), q.site)
			if err != nil {
				return err
			}
			keys, values := q.filter(cmd)
			res, err := eng.Counts(args[0], keys, values, q.page(cmd, eng.MaxCount()))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if a.flags.jsonMode {
				return printJSON(out, api.NewCountsResponse(res))
			}
			t := newTable(out, args[0], "count")
			for _, kc := range res.Items {
				t.AppendRow(toRow([]string{kc.Key, strconv.Itoa(kc.Count)}))
			}
			t.Render()
			printSummary(out, res.Offset, len(res.Items), res.Total)
			return nil
		},
	}
	q.register(cmd, true)
	return cmd
}
