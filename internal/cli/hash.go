package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lispmeister/hashline/internal/fileio"
	"github.com/lispmeister/hashline/internal/hashline/format"
	"github.com/lispmeister/hashline/internal/usagelog"
)

func newHashCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hash <file>",
		Short: "Print a file as LINE:HASH, one per line, without content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			content, err := fileio.ReadNormalized(path)
			if err != nil {
				logUsage(usagelog.Event{Command: "hash", Result: usagelog.Error})
				return otherExit(fmt.Errorf("reading %s: %w", path, err))
			}

			cmd.Println(format.HashOnly(content))

			logUsage(usagelog.Event{Command: "hash", Result: usagelog.Success})
			return nil
		},
	}
	return cmd
}
