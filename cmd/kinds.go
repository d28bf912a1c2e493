package cmd

import (
	"github.com/spf13/cobra"
)

// kindsCmd lists the block kinds.
var kindsCmd = &cobra.Command{
	Use:     "kinds",
	Aliases: []string{"blocks"},
	Short:   "List block kinds and their defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		if ctx.IsJSON() {
			return ctx.JSONFormatter().PrintKinds()
		}
		ctx.CLIFormatter().PrintKinds()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(kindsCmd)
}
