package cli

import (
	"github.com/spf13/cobra"

	"github.com/opendata-yamanashi/yama-api/pkg/types"
)

// siteEntry is one line of `yama sites --json`.
type siteEntry struct {
	types.Site
	Active bool `json:"active"`
}

func newSitesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sites",
		Short: "List the site registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if a.flags.jsonMode {
				entries := make([]siteEntry, len(a.cfg.Sites))
				for i, s := range a.cfg.Sites {
					entries[i] = siteEntry{Site: s, Active: s.Name == a.cfg.Site}
				}
				return printJSON(out, entries)
			}

			t := newTable(out, "", "NAME", "URL")
			for _, s := range a.cfg.Sites {
				mark := ""
				if s.Name == a.cfg.Site {
					mark = "*"
				}
				t.AppendRow(toRow([]string{mark, s.Name, s.URL}))
			}
			t.Render()
			return nil
		},
	}
}
