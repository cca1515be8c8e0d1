package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lispmeister/hashline/internal/fileio"
	"github.com/lispmeister/hashline/internal/hashline/batch"
	"github.com/lispmeister/hashline/internal/hashline/jsonpath"
	"github.com/lispmeister/hashline/internal/usagelog"
)

func newJSONApplyCmd() *cobra.Command {
	var inputPath string
	var emitUpdated bool

	cmd := &cobra.Command{
		Use:   "json-apply",
		Short: "Apply a JSON edit batch (set_path/insert_at_path/delete_path) to a JSON file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, usedInputFile, err := readBatchInput(cmd.InOrStdin(), inputPath)
			if err != nil {
				logUsage(usagelog.Event{Command: "json-apply", Result: usagelog.Error, UsedInputFile: usedInputFile})
				return otherExit(fmt.Errorf("reading batch: %w", err))
			}

			b, err := batch.ParseJSON(data)
			if err != nil {
				logUsage(usagelog.Event{Command: "json-apply", Result: usagelog.Error, UsedInputFile: usedInputFile})
				return otherExit(err)
			}

			content, err := fileio.ReadNormalized(b.Path)
			if err != nil {
				logUsage(usagelog.Event{Command: "json-apply", Result: usagelog.Error, UsedInputFile: usedInputFile})
				return otherExit(fmt.Errorf("reading %s: %w", b.Path, err))
			}

			root, err := jsonpath.Parse([]byte(content))
			if err != nil {
				logUsage(usagelog.Event{Command: "json-apply", Result: usagelog.Error, UsedInputFile: usedInputFile})
				return otherExit(fmt.Errorf("parsing %s: %w", b.Path, err))
			}

			updated, err := b.Apply(root)
			if err != nil {
				var mm *jsonpath.HashMismatch
				if errors.As(err, &mm) {
					cmd.PrintErrln(mm.Error())
					logUsage(usagelog.Event{Command: "json-apply", Result: usagelog.Mismatch, EmitUpdated: emitUpdated, UsedInputFile: usedInputFile})
					return mismatchExit(err)
				}
				logUsage(usagelog.Event{Command: "json-apply", Result: usagelog.Error, UsedInputFile: usedInputFile})
				return otherExit(err)
			}

			if err := fileio.WriteNormalized(b.Path, jsonpath.Format(updated)); err != nil {
				logUsage(usagelog.Event{Command: "json-apply", Result: usagelog.Error, UsedInputFile: usedInputFile})
				return otherExit(fmt.Errorf("writing %s: %w", b.Path, err))
			}

			if emitUpdated {
				cmd.Println(jsonpath.FormatAnnotated(updated))
			}

			logUsage(usagelog.Event{Command: "json-apply", Result: usagelog.Success, EmitUpdated: emitUpdated, UsedInputFile: usedInputFile})
			return nil
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "", "read the JSON batch from this file instead of stdin")
	cmd.Flags().BoolVar(&emitUpdated, "emit-updated", false, "print the updated document with refreshed // PATH:HASH anchors")
	return cmd
}
