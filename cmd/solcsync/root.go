package main

import (
	"github.com/spf13/cobra"

	"github.com/solidity-tools/solcsync/internal/logging"
)

// rootFlags holds the persistent flags shared by all commands.
type rootFlags struct {
	verbosity  int
	configPath string
}

// NewRootCmd creates the root command for the solcsync CLI.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "solcsync",
		Short: "Mirror Solidity compiler binaries into an S3 bucket",
		Long: `solcsync mirrors solc compiler binaries into an S3 bucket, organized
as <version>/solc with a <version>/sha256.hash sidecar. Versions come either
from the official build manifest or from a local directory of compiled
binaries; versions already present in the bucket are skipped.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(flags.verbosity)
		},
	}

	cmd.PersistentFlags().CountVarP(&flags.verbosity, "verbose", "v",
		"increase logging verbosity (-v for debug, -vv for trace)")
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "",
		"path to config file (default: XDG config dir)")

	cmd.AddCommand(newSyncCmd(flags))

	return cmd
}
