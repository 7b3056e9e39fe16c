package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Build variables, set by ldflags during build.
var (
	Version = "dev"
	Commit  = "unknown"
)

const modulePath = "honnef.co/go/fluidcard"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the fluidcard version",
		Args:  cobra.NoArgs,
		// The version doesn't depend on the configuration.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "fluidcard %s (%s)\nmodule: %s\ngo: %s\n", Version, Commit, modulePath, runtime.Version())
			return nil
		},
	}
}
