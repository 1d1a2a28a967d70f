package cli

import (
	"github.com/Harshitk-cp/voxbridge/internal/config"
	"github.com/spf13/cobra"
)

var logLevel string

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "voxctl",
		Short: "Create voice agents on Vapi or Retell from one request file",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.Load()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newCreateCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}
