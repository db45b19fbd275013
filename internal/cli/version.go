package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opendata-yamanashi/yama-api/pkg/yama"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the yama version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "yama v%s\nmodule: %s\n", yama.Version, yama.ModulePath)
			return nil
		},
	}
}
