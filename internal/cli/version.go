package cli

import (
	"fmt"

	"github.com/Harshitk-cp/voxbridge/internal/buildconfig"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of voxctl",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), buildconfig.String())
		},
	}
}
