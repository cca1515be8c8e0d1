package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lispmeister/hashline/internal/fileio"
	"github.com/lispmeister/hashline/internal/hashline/batch"
	"github.com/lispmeister/hashline/internal/hashline/format"
	"github.com/lispmeister/hashline/internal/hashline/mismatch"
	"github.com/lispmeister/hashline/internal/usagelog"
)

func newApplyCmd() *cobra.Command {
	var inputPath string
	var emitUpdated bool

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply a JSON edit batch (anchored + substring edits) to a text file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, usedInputFile, err := readBatchInput(cmd.InOrStdin(), inputPath)
			if err != nil {
				logUsage(usagelog.Event{Command: "apply", Result: usagelog.Error, UsedInputFile: usedInputFile})
				return otherExit(fmt.Errorf("reading batch: %w", err))
			}

			b, err := batch.Parse(data)
			if err != nil {
				logUsage(usagelog.Event{Command: "apply", Result: usagelog.Error, UsedInputFile: usedInputFile})
				return otherExit(err)
			}

			content, err := fileio.ReadNormalized(b.Path)
			if err != nil {
				logUsage(usagelog.Event{Command: "apply", Result: usagelog.Error, UsedInputFile: usedInputFile})
				return otherExit(fmt.Errorf("reading %s: %w", b.Path, err))
			}

			result, err := b.Apply(content)
			if err != nil {
				var mm *mismatch.Error
				if errors.As(err, &mm) {
					cmd.PrintErrln(mm.FormatMessage())
					logUsage(usagelog.Event{Command: "apply", Result: usagelog.Mismatch, EmitUpdated: emitUpdated, UsedInputFile: usedInputFile})
					return mismatchExit(err)
				}
				logUsage(usagelog.Event{Command: "apply", Result: usagelog.Error, UsedInputFile: usedInputFile})
				return otherExit(err)
			}

			if err := fileio.WriteNormalized(b.Path, result.Content); err != nil {
				logUsage(usagelog.Event{Command: "apply", Result: usagelog.Error, UsedInputFile: usedInputFile})
				return otherExit(fmt.Errorf("writing %s: %w", b.Path, err))
			}

			for _, w := range result.Warnings {
				cmd.PrintErrln("warning:", w)
			}
			if emitUpdated {
				cmd.Println(format.Format(result.Content, 1))
			}

			logUsage(usagelog.Event{Command: "apply", Result: usagelog.Success, EmitUpdated: emitUpdated, UsedInputFile: usedInputFile})
			return nil
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "", "read the JSON batch from this file instead of stdin")
	cmd.Flags().BoolVar(&emitUpdated, "emit-updated", false, "print refreshed LINE:HASH anchors for the rewritten file")
	return cmd
}
