package batch

import (
	"encoding/json"
	"fmt"

	"github.com/lispmeister/hashline/internal/hashline/jsonpath"
)

type rawJSONRequest struct {
	Path  string            `json:"path"`
	Edits []json.RawMessage `json:"edits"`
}

type rawJSONEdit struct {
	SetPath      *rawSetPath      `json:"set_path,omitempty"`
	InsertAtPath *rawInsertAtPath `json:"insert_at_path,omitempty"`
	DeletePath   *rawDeletePath   `json:"delete_path,omitempty"`
}

type rawSetPath struct {
	Anchor string          `json:"anchor"`
	Value  json.RawMessage `json:"value"`
}

type rawInsertAtPath struct {
	Path  string          `json:"path"`
	Key   *string         `json:"key,omitempty"`
	Index *int            `json:"index,omitempty"`
	Value json.RawMessage `json:"value"`
}

type rawDeletePath struct {
	Anchor string `json:"anchor"`
}

func (r rawJSONEdit) shapeCount() int {
	n := 0
	for _, set := range []bool{r.SetPath != nil, r.InsertAtPath != nil, r.DeletePath != nil} {
		if set {
			n++
		}
	}
	return n
}

// JSONBatch is a parsed, not-yet-applied JSON-mode edit batch.
type JSONBatch struct {
	Path  string
	state State
	edits []jsonpath.JSONEdit
}

// State returns the batch's current position in the state machine.
func (b *JSONBatch) State() State { return b.state }

// ParseJSON decodes data into a JSONBatch. Each edit object must name
// exactly one of set_path, insert_at_path, delete_path.
func ParseJSON(data []byte) (*JSONBatch, error) {
	b := &JSONBatch{state: StateParsing}

	var req rawJSONRequest
	if err := json.Unmarshal(data, &req); err != nil {
		b.state = StateRejected
		return b, fmt.Errorf("parsing batch: %w", err)
	}
	b.Path = req.Path

	for i, raw := range req.Edits {
		var re rawJSONEdit
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
		case re.SetPath != nil:
			val, err := jsonpath.Parse(re.SetPath.Value)
			if err != nil {
				b.state = StateRejected
				return b, fmt.Errorf("edit %d: set_path.value: %w", i, err)
			}
			b.edits = append(b.edits, jsonpath.JSONEdit{SetPath: &jsonpath.SetPathEdit{
				Anchor: re.SetPath.Anchor,
				Value:  val,
			}})
		case re.InsertAtPath != nil:
			val, err := jsonpath.Parse(re.InsertAtPath.Value)
			if err != nil {
				b.state = StateRejected
				return b, fmt.Errorf("edit %d: insert_at_path.value: %w", i, err)
			}
			b.edits = append(b.edits, jsonpath.JSONEdit{InsertAtPath: &jsonpath.InsertAtPathEdit{
				Path:  re.InsertAtPath.Path,
				Key:   re.InsertAtPath.Key,
				Index: re.InsertAtPath.Index,
				Value: val,
			}})
		case re.DeletePath != nil:
			b.edits = append(b.edits, jsonpath.JSONEdit{DeletePath: &jsonpath.DeletePathEdit{
				Anchor: re.DeletePath.Anchor,
			}})
		}
	}

	b.state = StateValidating
	return b, nil
}

// Apply validates and applies the batch's edits onto root, staged per
// jsonpath.Apply's clone-then-mutate-then-swap atomicity. It may only be
// called once, from StateValidating.
func (b *JSONBatch) Apply(root *jsonpath.Value) (*jsonpath.Value, error) {
	if b.state != StateValidating {
		return root, fmt.Errorf("batch: Apply called from state %s, want %s", b.state, StateValidating)
	}

	b.state = StateReady
	b.state = StateApplying

	result, err := jsonpath.Apply(root, b.edits)
	if err != nil {
		b.state = StateRejected
		return result, err
	}

	b.state = StateDone
	return result, nil
}
