package jsonpath

import "fmt"

// SetPathEdit replaces the value at Anchor's path. Path "$" replaces the
// whole document.
type SetPathEdit struct {
	Anchor string
	Value  *Value
}

// InsertAtPathEdit upserts Key into the object at Path, inserts Value at
// Index in the array at Path, or appends to it if neither is set.
type InsertAtPathEdit struct {
	Path  string
	Key   *string
	Index *int
	Value *Value
}

// DeletePathEdit removes the leaf addressed by Anchor. Deleting the root
// is an error.
type DeletePathEdit struct {
	Anchor string
}

// JSONEdit is the tagged union of the three JSON-mode edit shapes. Exactly
// one field must be non-nil.
type JSONEdit struct {
	SetPath      *SetPathEdit
	InsertAtPath *InsertAtPathEdit
	DeletePath   *DeletePathEdit
}

// HashMismatch is returned when a JSON anchor's expected hash does not
// match the node it addresses.
type HashMismatch struct {
	Path     string
	Expected string
	Actual   string
}

func (e *HashMismatch) Error() string {
	return fmt.Sprintf("stale JSON anchor at %s: expected hash %s, found %s", e.Path, e.Expected, e.Actual)
}

// RootDeletionError is returned when an edit tries to delete "$".
type RootDeletionError struct{}

func (e *RootDeletionError) Error() string { return "deleting the root document is not allowed" }

// Apply validates every anchor against root, then stages and applies all
// edits onto a deep clone in input order. On any failure the clone is
// discarded and root is returned unchanged alongside the error; on
// success the clone becomes the new document.
func Apply(root *Value, edits []JSONEdit) (*Value, error) {
	for _, e := range edits {
		var anchorStr string
		switch {
		case e.SetPath != nil:
			anchorStr = e.SetPath.Anchor
		case e.DeletePath != nil:
			anchorStr = e.DeletePath.Anchor
		default:
			continue
		}
		pathStr, expected, err := ParseAnchor(anchorStr)
		if err != nil {
			return root, err
		}
		path, err := ParsePath(pathStr)
		if err != nil {
			return root, err
		}
		target, err := Get(root, path)
		if err != nil {
			return root, err
		}
		actual := CanonicalHash(target)
		if actual != expected {
			return root, &HashMismatch{Path: path.Format(), Expected: expected, Actual: actual}
		}
	}

	clone := root.Clone()

	for _, e := range edits {
		var err error
		switch {
		case e.SetPath != nil:
			clone, err = applySetPath(clone, e.SetPath)
		case e.InsertAtPath != nil:
			err = applyInsertAtPath(clone, e.InsertAtPath)
		case e.DeletePath != nil:
			err = applyDeletePath(clone, e.DeletePath)
		}
		if err != nil {
			return root, err
		}
	}

	return clone, nil
}

func applySetPath(clone *Value, e *SetPathEdit) (*Value, error) {
	pathStr, _, err := ParseAnchor(e.Anchor)
	if err != nil {
		return clone, err
	}
	path, err := ParsePath(pathStr)
	if err != nil {
		return clone, err
	}
	if len(path.Segments) == 0 {
		return e.Value, nil
	}

	c, last, err := container(clone, path)
	if err != nil {
		return clone, err
	}

	switch last.Kind {
	case SegKey:
		if c.Kind != KindObject {
			return clone, &WrongKindError{Path: path.Format(), Want: "an object"}
		}
		if _, ok := c.Object.Get(last.Key); !ok {
			return clone, &NotFoundError{Path: path.Format()}
		}
		c.Object.Set(last.Key, e.Value)
	case SegIndex:
		if c.Kind != KindArray {
			return clone, &WrongKindError{Path: path.Format(), Want: "an array"}
		}
		if last.Index < 0 || last.Index >= len(c.Array) {
			return clone, &IndexOutOfRangeError{Path: path.Format(), Index: last.Index, Len: len(c.Array)}
		}
		c.Array[last.Index] = e.Value
	}
	return clone, nil
}

func applyInsertAtPath(clone *Value, e *InsertAtPathEdit) error {
	path, err := ParsePath(e.Path)
	if err != nil {
		return err
	}
	target, err := Get(clone, path)
	if err != nil {
		return err
	}

	switch {
	case e.Key != nil:
		if target.Kind != KindObject {
			return &WrongKindError{Path: path.Format(), Want: "an object"}
		}
		target.Object.Set(*e.Key, e.Value)

	case e.Index != nil:
		if target.Kind != KindArray {
			return &WrongKindError{Path: path.Format(), Want: "an array"}
		}
		idx := *e.Index
		if idx < 0 || idx > len(target.Array) {
			return &IndexOutOfRangeError{Path: path.Format(), Index: idx, Len: len(target.Array)}
		}
		target.Array = append(target.Array, nil)
		copy(target.Array[idx+1:], target.Array[idx:])
		target.Array[idx] = e.Value

	default:
		if target.Kind != KindArray {
			return &WrongKindError{Path: path.Format(), Want: "an array"}
		}
		target.Array = append(target.Array, e.Value)
	}
	return nil
}

func applyDeletePath(clone *Value, e *DeletePathEdit) error {
	pathStr, _, err := ParseAnchor(e.Anchor)
	if err != nil {
		return err
	}
	path, err := ParsePath(pathStr)
	if err != nil {
		return err
	}
	if len(path.Segments) == 0 {
		return &RootDeletionError{}
	}

	c, last, err := container(clone, path)
	if err != nil {
		return err
	}

	switch last.Kind {
	case SegKey:
		if c.Kind != KindObject {
			return &WrongKindError{Path: path.Format(), Want: "an object"}
		}
		if !c.Object.Delete(last.Key) {
			return &NotFoundError{Path: path.Format()}
		}
	case SegIndex:
		if c.Kind != KindArray {
			return &WrongKindError{Path: path.Format(), Want: "an array"}
		}
		if last.Index < 0 || last.Index >= len(c.Array) {
			return &IndexOutOfRangeError{Path: path.Format(), Index: last.Index, Len: len(c.Array)}
		}
		c.Array = append(c.Array[:last.Index], c.Array[last.Index+1:]...)
	}
	return nil
}
