package cli

import (
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "hashline",
		Short:         "Content-hash anchored line and JSON editing for coding agents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newReadCmd())
	root.AddCommand(newHashCmd())
	root.AddCommand(newApplyCmd())
	root.AddCommand(newJSONReadCmd())
	root.AddCommand(newJSONApplyCmd())

	return root
}
