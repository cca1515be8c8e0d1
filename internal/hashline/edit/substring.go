package edit

import (
	"fmt"
	"strings"
)

// ReplaceEdit is the non-anchored, whole-file substring replacement shape.
// It runs as a sequential post-pass after every anchored edit has landed.
type ReplaceEdit struct {
	OldText string
	NewText string
}

// SubstringResult is the outcome of a successful ApplySubstring.
type SubstringResult struct {
	Content          string
	Replacements     int
	FirstChangedLine *int
}

// MissingSubstringError means OldText does not occur in the content.
type MissingSubstringError struct {
	Index   int
	OldText string
}

func (e *MissingSubstringError) Error() string {
	return fmt.Sprintf("edit %d: old_text not found: %q", e.Index, e.OldText)
}

// AmbiguousSubstringError means OldText occurs more than once.
type AmbiguousSubstringError struct {
	Index   int
	OldText string
	Count   int
}

func (e *AmbiguousSubstringError) Error() string {
	return fmt.Sprintf("edit %d: old_text matches %d locations — add more context to make it unique", e.Index, e.Count)
}

// EmptySubstringError means OldText is the empty string.
type EmptySubstringError struct {
	Index int
}

func (e *EmptySubstringError) Error() string {
	return fmt.Sprintf("edit %d: old_text must not be empty", e.Index)
}

// ApplySubstring applies edits one at a time, in order, against content.
// Each OldText must match exactly one location in the content as it stands
// after every prior edit in the batch; unlike Apply, this is not atomic —
// an edit can observe the output of an earlier one in the same call.
func ApplySubstring(content string, edits []ReplaceEdit) (*SubstringResult, error) {
	cur := content
	replacements := 0
	var firstChanged *int

	for i, e := range edits {
		if e.OldText == "" {
			return nil, &EmptySubstringError{Index: i}
		}
		count := strings.Count(cur, e.OldText)
		if count == 0 {
			return nil, &MissingSubstringError{Index: i, OldText: e.OldText}
		}
		if count > 1 {
			return nil, &AmbiguousSubstringError{Index: i, OldText: e.OldText, Count: count}
		}

		idx := strings.Index(cur, e.OldText)
		lineNum := strings.Count(cur[:idx], "\n") + 1
		cur = cur[:idx] + e.NewText + cur[idx+len(e.OldText):]
		replacements++

		if firstChanged == nil || lineNum < *firstChanged {
			v := lineNum
			firstChanged = &v
		}
	}

	return &SubstringResult{Content: cur, Replacements: replacements, FirstChangedLine: firstChanged}, nil
}
