package cli

import (
	"github.com/spf13/cobra"
)

// BuildVersion is overridden at link time.
var BuildVersion = "dev"

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "dashboard",
		Short:         "Business registry dashboard service",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(
		newServeCommand(),
		newMigrateCommand(),
		newAuthorizationsCommand(),
		newTokenCommand(),
		&cobra.Command{
			Use:   "version",
			Short: "Print the version number",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				cmd.Printf("%s\n", BuildVersion)
			},
		},
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	return newRootCommand().Execute()
}
