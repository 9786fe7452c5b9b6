package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X ...cli.Version=v1.2.3".
var Version = "dev"

// NewRoot constructs the root command and registers its subcommands.
func NewRoot() *cobra.Command {
	root := &cobra.Command{
		Use:           "wryte",
		Short:         "Structured logging from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(NewWriteCommand())
	root.AddCommand(newVersionCommand())
	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "wryte %s\n", Version)
		},
	}
}
