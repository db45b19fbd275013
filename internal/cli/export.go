package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/opendata-yamanashi/yama-api/internal/scrape"
)

// defaultExportName is the file written under the data directory when
// --out is not given.
const defaultExportName = "mountains.jsonl"

func newExportCmd(a *app) *cobra.Command {
	var site, out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the table as JSON Lines",
		Long: `Export writes every row of the table as one JSON object per line, keys in
column order. The file is replaced atomically.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := a.openEngine(cmd.Context(), site)
			if err != nil {
				return err
			}
			if out == "" {
				out = filepath.Join(a.cfg.DataDir, defaultExportName)
			}

			t := eng.Snapshot()
			if err := scrape.WriteJSONL(out, t); err != nil {
				return fmt.Errorf("export: %w", err)
			}
			a.logger.Info("table exported", "path", out, "rows", t.Len())

			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), map[string]any{"path": out, "rows": t.Len()})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d rows to %s\n", t.Len(), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&site, "site", "", "site name from the registry (default: configured site)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default: <data-dir>/"+defaultExportName+")")
	return cmd
}
