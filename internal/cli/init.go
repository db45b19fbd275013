package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the configuration and cache directories",
		Long: `Init creates the configuration directory with a default config.yaml and
the page cache directory. Existing files are left untouched.`,
		Args: cobra.NoArgs,
		RunE: a.runInit,
	}
}

func (a *app) runInit(cmd *cobra.Command, args []string) error {
	// The config directory and config.yaml were created while loading the
	// configuration; only the data directory is left.
	if err := os.MkdirAll(a.cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	out := cmd.OutOrStdout()
	if a.flags.jsonMode {
		return printJSON(out, map[string]string{
			"config": filepath.Join(a.configDir, configFileExt),
			"data":   a.cfg.DataDir,
		})
	}
	fmt.Fprintf(out, "config: %s\n", filepath.Join(a.configDir, configFileExt))
	fmt.Fprintf(out, "data:   %s\n", a.cfg.DataDir)
	return nil
}
