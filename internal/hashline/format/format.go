// Package format renders a text buffer as LINE:HASH-tagged output for an
// agent to read back.
package format

import (
	"strconv"
	"strings"

	"github.com/lispmeister/hashline/internal/hashline/hash"
)

// Format produces "LINE:HASH|RAW" joined by LF, one output line per input
// line, numbering starting at startLine.
func Format(content string, startLine int) string {
	lines := splitLines(content)
	out := make([]string, len(lines))
	for i, l := range lines {
		lineNum := startLine + i
		h := hash.Line(i, l)
		out[i] = strconv.Itoa(lineNum) + ":" + h + "|" + l
	}
	return strings.Join(out, "\n")
}

// HashOnly emits just "LINE:HASH" per line, without content, numbering from 1.
func HashOnly(content string) string {
	lines := splitLines(content)
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = strconv.Itoa(i+1) + ":" + hash.Line(i, l)
	}
	return strings.Join(out, "\n")
}

func splitLines(content string) []string {
	return strings.Split(content, "\n")
}
