// Package edit implements the text edit engine: Phase A-G validation,
// relocation, deduplication, bottom-up splicing and warning generation for
// a batch of anchored line edits, plus the separate substring-replace
// post-pass.
package edit

import "fmt"

// SetLineEdit replaces one line.
type SetLineEdit struct {
	Anchor  string
	NewText string
}

// ReplaceLinesEdit replaces an inclusive line range. EndAnchor == "" or an
// end that resolves to the same line as start degrades to a SetLine.
// Empty NewText deletes the range.
type ReplaceLinesEdit struct {
	StartAnchor string
	EndAnchor   string
	NewText     string
}

// InsertAfterEdit inserts after the anchored line. Empty Text inserts one
// blank line.
type InsertAfterEdit struct {
	Anchor string
	Text   string
}

// Edit is the tagged union of anchored edits the engine accepts. Exactly
// one field must be non-nil; global substring edits (the fourth shape in
// the wire protocol) are routed to ApplySubstring instead, never here.
type Edit struct {
	SetLine      *SetLineEdit
	ReplaceLines *ReplaceLinesEdit
	InsertAfter  *InsertAfterEdit
}

// NoopEdit records an anchored edit whose textual transformation, after
// heuristics, produced no change — applied-but-invisible rather than
// skipped-and-invisible, which matters to a caller deciding whether an
// agent's edit silently did nothing.
type NoopEdit struct {
	OriginalIndex int
	Description   string
}

// Result is the outcome of a successful Apply.
type Result struct {
	Content          string
	FirstChangedLine *int
	Warnings         []string
	NoopEdits        []NoopEdit
}

// ParseError wraps a failure to parse an edit's anchor(s).
type ParseError struct {
	Index int
	Err   error
}

func (e *ParseError) Error() string { return fmt.Sprintf("edit %d: %v", e.Index, e.Err) }
func (e *ParseError) Unwrap() error { return e.Err }

// BoundsError signals a line/index outside the file, or a range whose
// start is after its end.
type BoundsError struct {
	Index int
	Msg   string
}

func (e *BoundsError) Error() string { return e.Msg }
