package batch

import (
	"encoding/json"
	"fmt"

	"github.com/lispmeister/hashline/internal/hashline/edit"
)

// rawRequest is the top-level text-mode batch envelope.
type rawRequest struct {
	Path  string            `json:"path"`
	Edits []json.RawMessage `json:"edits"`
}

// rawEdit mirrors one edit object: exactly one field must be set, the
// same "tagged union of optional pointers" shape the teacher's own
// EditArgs used for its replace/insert/delete/create operations.
type rawEdit struct {
	SetLine      *rawSetLine      `json:"set_line,omitempty"`
	ReplaceLines *rawReplaceLines `json:"replace_lines,omitempty"`
	InsertAfter  *rawInsertAfter  `json:"insert_after,omitempty"`
	Replace      *rawReplace      `json:"replace,omitempty"`
}

type rawSetLine struct {
	Anchor  string `json:"anchor"`
	NewText string `json:"new_text"`
}

type rawReplaceLines struct {
	StartAnchor string `json:"start_anchor"`
	EndAnchor   string `json:"end_anchor,omitempty"`
	NewText     string `json:"new_text,omitempty"`
}

type rawInsertAfter struct {
	Anchor  string  `json:"anchor"`
	Text    string  `json:"text,omitempty"`
	Content *string `json:"content,omitempty"`
}

type rawReplace struct {
	OldText string `json:"old_text"`
	NewText string `json:"new_text"`
}

func (r rawEdit) shapeCount() int {
	n := 0
	for _, set := range []bool{r.SetLine != nil, r.ReplaceLines != nil, r.InsertAfter != nil, r.Replace != nil} {
		if set {
			n++
		}
	}
	return n
}

// Batch is a parsed, not-yet-applied text-mode edit batch.
type Batch struct {
	Path      string
	state     State
	anchored  []edit.Edit
	substring []edit.ReplaceEdit
}

// State returns the batch's current position in the state machine.
func (b *Batch) State() State { return b.state }

// Parse decodes data into a Batch, splitting anchored edits from the
// substring post-pass list. A malformed envelope or an edit naming zero
// or more than one shape rejects the batch immediately.
func Parse(data []byte) (*Batch, error) {
	b := &Batch{state: StateParsing}

	var req rawRequest
	if err := json.Unmarshal(data, &req); err != nil {
		b.state = StateRejected
		return b, fmt.Errorf("parsing batch: %w", err)
	}
	b.Path = req.Path

	for i, raw := range req.Edits {
		var re rawEdit
		if err := json.Unmarshal(raw, &re); err != nil {
			b.state = StateRejected
			return b, fmt.Errorf("parsing edit %d: %w", i, err)
		}
		switch re.shapeCount() {
		case 0:
			b.state = StateRejected
			return b, fmt.Errorf("edit %d: no operation set", i)
		case 1:
		default:
			b.state = StateRejected
			return b, fmt.Errorf("edit %d: more than one operation set", i)
		}

		switch {
		case re.SetLine != nil:
			b.anchored = append(b.anchored, edit.Edit{SetLine: &edit.SetLineEdit{
				Anchor:  re.SetLine.Anchor,
				NewText: re.SetLine.NewText,
			}})
		case re.ReplaceLines != nil:
			b.anchored = append(b.anchored, edit.Edit{ReplaceLines: &edit.ReplaceLinesEdit{
				StartAnchor: re.ReplaceLines.StartAnchor,
				EndAnchor:   re.ReplaceLines.EndAnchor,
				NewText:     re.ReplaceLines.NewText,
			}})
		case re.InsertAfter != nil:
			text := re.InsertAfter.Text
			if text == "" && re.InsertAfter.Content != nil {
				text = *re.InsertAfter.Content
			}
			b.anchored = append(b.anchored, edit.Edit{InsertAfter: &edit.InsertAfterEdit{
				Anchor: re.InsertAfter.Anchor,
				Text:   text,
			}})
		case re.Replace != nil:
			if re.Replace.OldText == "" {
				b.state = StateRejected
				return b, fmt.Errorf("edit %d: replace.old_text must not be empty", i)
			}
			b.substring = append(b.substring, edit.ReplaceEdit{
				OldText: re.Replace.OldText,
				NewText: re.Replace.NewText,
			})
		}
	}

	b.state = StateValidating
	return b, nil
}

// Result is the outcome of applying a text-mode batch: the anchored
// engine's result plus however many substring post-pass replacements ran.
type Result struct {
	Content          string
	FirstChangedLine *int
	Warnings         []string
	NoopEdits        []edit.NoopEdit
	Substitutions    int
}

// Apply runs the anchored edits through the edit engine, then the
// substring edits through the post-pass, against content. It may only be
// called once, from StateValidating. On any rejection the batch moves to
// StateRejected and content is returned untouched by the caller (Apply
// itself never mutates its input).
func (b *Batch) Apply(content string) (*Result, error) {
	if b.state != StateValidating {
		return nil, fmt.Errorf("batch: Apply called from state %s, want %s", b.state, StateValidating)
	}

	anchoredResult, err := edit.Apply(content, b.anchored)
	if err != nil {
		b.state = StateRejected
		return nil, err
	}
	b.state = StateReady
	b.state = StateApplying

	out := anchoredResult.Content
	first := anchoredResult.FirstChangedLine
	subCount := 0

	if len(b.substring) > 0 {
		subResult, err := edit.ApplySubstring(out, b.substring)
		if err != nil {
			b.state = StateRejected
			return nil, err
		}
		out = subResult.Content
		subCount = subResult.Replacements
		if subResult.FirstChangedLine != nil && (first == nil || *subResult.FirstChangedLine < *first) {
			first = subResult.FirstChangedLine
		}
	}

	b.state = StateDone
	return &Result{
		Content:          out,
		FirstChangedLine: first,
		Warnings:         anchoredResult.Warnings,
		NoopEdits:        anchoredResult.NoopEdits,
		Substitutions:    subCount,
	}, nil
}
