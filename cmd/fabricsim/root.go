package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "fabricsim",
		Short:         "fabricsim runs discrete-event packet simulations of AI-factory leaf/spine fabrics",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	registerPersistentFlags(cmd.PersistentFlags(), flags)

	cmd.AddCommand(newRunCmd(flags))
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}
