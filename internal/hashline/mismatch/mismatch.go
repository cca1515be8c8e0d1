// Package mismatch builds the human- and agent-readable report the engine
// returns when a batch's anchors are stale.
package mismatch

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/lispmeister/hashline/internal/hashline/hash"
)

// contextWindow is how many lines of surrounding context to show around a
// mismatched line, on each side.
const contextWindow = 2

// Mismatch is one stale anchor: the line it pointed at, the hash the agent
// expected, and the hash actually found there.
type Mismatch struct {
	Line     int
	Expected string
	Actual   string
}

// Error is returned by the text edit engine when any anchor in a batch is
// stale and not uniquely relocatable. It carries a file-lines snapshot so
// it can render context and a refresh map without re-reading the file.
type Error struct {
	Mismatches []Mismatch
	FileLines  []string
}

func (e *Error) Error() string {
	return e.FormatMessage()
}

// FormatMessage renders the full human-readable report: a pluralized
// header, then merged +/-2-line context windows around every mismatch,
// each line shown with its *current* (refreshed) anchor, mismatched lines
// prefixed with ">>> ", others with four spaces, non-contiguous groups
// separated by "    ...".
func (e *Error) FormatMessage() string {
	n := len(e.Mismatches)
	var header string
	if n == 1 {
		header = "1 line has changed since last read. Use the updated LINE:HASH references shown below (>>> marks changed lines)."
	} else {
		header = fmt.Sprintf("%d lines have changed since last read. Use the updated LINE:HASH references shown below (>>> marks changed lines).", n)
	}

	mismatchLines := make(map[int]bool, n)
	for _, m := range e.Mismatches {
		mismatchLines[m.Line] = true
	}

	groups := e.contextGroups()

	var b strings.Builder
	b.WriteString(header)
	for i, g := range groups {
		if i > 0 {
			b.WriteString("\n    ...")
		}
		for ln := g[0]; ln <= g[1]; ln++ {
			b.WriteString("\n")
			b.WriteString(e.renderLine(ln, mismatchLines[ln]))
		}
	}
	return b.String()
}

func (e *Error) renderLine(ln int, isMismatch bool) string {
	content := ""
	if ln-1 >= 0 && ln-1 < len(e.FileLines) {
		content = e.FileLines[ln-1]
	}
	prefix := "    "
	if isMismatch {
		prefix = ">>> "
	}
	return fmt.Sprintf("%s%d:%s|%s", prefix, ln, hash.Line(ln-1, content), content)
}

// contextGroups computes the merged, contiguous +/-contextWindow line
// ranges to display, sorted ascending.
func (e *Error) contextGroups() [][2]int {
	lineSet := map[int]bool{}
	for _, m := range e.Mismatches {
		lo := m.Line - contextWindow
		if lo < 1 {
			lo = 1
		}
		hi := m.Line + contextWindow
		if hi > len(e.FileLines) {
			hi = len(e.FileLines)
		}
		for ln := lo; ln <= hi; ln++ {
			lineSet[ln] = true
		}
	}

	lines := make([]int, 0, len(lineSet))
	for ln := range lineSet {
		lines = append(lines, ln)
	}
	sort.Ints(lines)

	var groups [][2]int
	for _, ln := range lines {
		if len(groups) > 0 && ln <= groups[len(groups)-1][1]+1 {
			groups[len(groups)-1][1] = ln
		} else {
			groups = append(groups, [2]int{ln, ln})
		}
	}
	return groups
}

// Remaps returns the old-anchor -> refreshed-anchor mapping for every
// mismatch, for programmatic use by a caller that wants to retry.
func (e *Error) Remaps() map[string]string {
	out := make(map[string]string, len(e.Mismatches))
	for _, m := range e.Mismatches {
		old := strconv.Itoa(m.Line) + ":" + m.Expected
		fresh := strconv.Itoa(m.Line) + ":" + m.Actual
		out[old] = fresh
	}
	return out
}
