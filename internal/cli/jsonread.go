package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lispmeister/hashline/internal/fileio"
	"github.com/lispmeister/hashline/internal/hashline/jsonpath"
	"github.com/lispmeister/hashline/internal/usagelog"
)

func newJSONReadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "json-read <file>",
		Short: "Pretty-print a JSON file with // PATH:HASH anchor comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			content, err := fileio.ReadNormalized(path)
			if err != nil {
				logUsage(usagelog.Event{Command: "json-read", Result: usagelog.Error})
				return otherExit(fmt.Errorf("reading %s: %w", path, err))
			}

			root, err := jsonpath.Parse([]byte(content))
			if err != nil {
				logUsage(usagelog.Event{Command: "json-read", Result: usagelog.Error})
				return otherExit(fmt.Errorf("parsing %s: %w", path, err))
			}

			cmd.Println(jsonpath.FormatAnnotated(root))

			logUsage(usagelog.Event{Command: "json-read", Result: usagelog.Success})
			return nil
		},
	}
	return cmd
}
