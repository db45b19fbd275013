// Package cli implements the yama command-line interface.
// See docs/ARCHITECTURE.md § CLI.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/opendata-yamanashi/yama-api/internal/logging"
	"github.com/opendata-yamanashi/yama-api/internal/paths"
	"github.com/opendata-yamanashi/yama-api/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
}

// app is the state shared by one invocation of the root command.
type app struct {
	flags     rootFlags
	configDir string
	cfg       types.Config
	logger    *slog.Logger
	closeLog  func()
}

// NewRootCmd creates the top-level "yama" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{logger: slog.Default(), closeLog: func() {}}

	root := &cobra.Command{
		Use:   "yama",
		Short: "Serve Japan's major mountains as a JSON API",
		Long: `yama scrapes the Geospatial Information Authority of Japan list of major
mountains, caches the page locally, and serves it as a filterable,
paginated JSON API. The query subcommands run the same engine offline.`,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.closeLog()
		},
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/yama)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "page cache directory (default: $XDG_CACHE_HOME/yama)")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newServeCmd(a))
	root.AddCommand(newFetchCmd(a))
	root.AddCommand(newKeysCmd(a))
	root.AddCommand(newQueryCmd(a))
	root.AddCommand(newValuesCmd(a))
	root.AddCommand(newCountsCmd(a))
	root.AddCommand(newExportCmd(a))
	root.AddCommand(newSitesCmd(a))

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.ExecuteContext(context.Background()); err != nil {
		os.Exit(exitUserError)
	}
	os.Exit(exitSuccess)
}

// setup resolves directories, loads config.yaml, and installs the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	a.configDir = configDir

	cfg, err := loadConfig(configDir)
	if err != nil {
		return err
	}

	cfg.DataDir, err = paths.ResolveDataDir(a.flags.dataDir, cfg.DataDir)
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}
	a.cfg = cfg

	a.logger, a.closeLog = logging.Setup(cfg.Log)
	return nil
}
