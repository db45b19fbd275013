package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newFetchCmd(a *app) *cobra.Command {
	var (
		site  string
		force bool
	)
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download and cache the site's page",
		Long: `Fetch downloads the site's page into the cache directory and checks that
it parses. An already cached page is reused unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			url, err := a.siteURL(site)
			if err != nil {
				return err
			}

			loader := a.loader()
			file, err := loader.Download(cmd.Context(), url, force)
			if err != nil {
				return fmt.Errorf("fetch: %w", err)
			}
			t, err := loader.LoadFile(file)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if a.flags.jsonMode {
				return printJSON(out, map[string]any{
					"url":  url,
					"path": file,
					"rows": t.Len(),
				})
			}
			fmt.Fprintf(out, "Cached %s (%d rows)\n", file, t.Len())
			return nil
		},
	}
	cmd.Flags().StringVar(&site, "site", "", "site name from the registry (default: configured site)")
	cmd.Flags().BoolVar(&force, "force", false, "download again even if the page is cached")
	return cmd
}
