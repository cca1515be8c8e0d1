// Command hashline-mangen generates man pages for the hashline CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/lispmeister/hashline/internal/cli"
)

func main() {
	outDir := "./man"
	if len(os.Args) > 1 {
		outDir = os.Args[1]
	}

	if err := os.MkdirAll(outDir, 0o750); err != nil {
		fmt.Fprintf(os.Stderr, "hashline-mangen: %v\n", err)
		os.Exit(1)
	}

	header := &doc.GenManHeader{
		Title:   "HASHLINE",
		Section: "1",
	}

	if err := doc.GenManTree(cli.NewRootCmd(), header, outDir); err != nil {
		fmt.Fprintf(os.Stderr, "hashline-mangen: %v\n", err)
		os.Exit(1)
	}
}
