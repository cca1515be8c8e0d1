package cli

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/lispmeister/hashline/internal/fileio"
	"github.com/lispmeister/hashline/internal/hashline/format"
	"github.com/lispmeister/hashline/internal/usagelog"
)

func newReadCmd() *cobra.Command {
	var startLine int
	var lines int

	cmd := &cobra.Command{
		Use:   "read <file>",
		Short: "Print a file as LINE:HASH|CONTENT, for an agent to anchor edits against",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			content, err := fileio.ReadNormalized(path)
			if err != nil {
				logUsage(usagelog.Event{Command: "read", Result: usagelog.Error})
				return otherExit(fmt.Errorf("reading %s: %w", path, err))
			}

			if startLine < 1 {
				startLine = 1
			}
			fileLines := strings.Split(content, "\n")
			start := startLine - 1
			if start > len(fileLines) {
				start = len(fileLines)
			}
			end := len(fileLines)
			if lines > 0 && start+lines < end {
				end = start + lines
			}

			slice := strings.Join(fileLines[start:end], "\n")
			cmd.Println(format.Format(slice, startLine))

			logUsage(usagelog.Event{Command: "read", Result: usagelog.Success})
			return nil
		},
	}

	cmd.Flags().IntVar(&startLine, "start-line", 1, "first line to print (1-indexed)")
	cmd.Flags().IntVar(&lines, "lines", 0, "number of lines to print (0 means to end of file)")
	return cmd
}

func logUsage(e usagelog.Event) {
	if err := usagelog.Log(e); err != nil {
		log.Error().Err(err).Msg("failed to write usage log")
	}
}
