package jsonpath

import "fmt"

// NotFoundError means a path segment does not resolve against the tree.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("path not found: %s", e.Path) }

// IndexOutOfRangeError means an array segment's index is outside the
// array, or (for set_path) not a replaceable existing index.
type IndexOutOfRangeError struct {
	Path  string
	Index int
	Len   int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("index %d out of range for %s (length %d)", e.Index, e.Path, e.Len)
}

// WrongKindError means a segment expects an object or array but found
// something else.
type WrongKindError struct {
	Path string
	Want string
}

func (e *WrongKindError) Error() string {
	return fmt.Sprintf("%s is not %s", e.Path, e.Want)
}

// Get navigates root by path and returns the referent, read-only.
func Get(root *Value, path Path) (*Value, error) {
	cur := root
	for i, seg := range path.Segments {
		next, err := step(cur, seg, path, i)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

func step(cur *Value, seg PathSegment, path Path, i int) (*Value, error) {
	partial := Path{Segments: path.Segments[:i+1]}
	switch seg.Kind {
	case SegKey:
		if cur.Kind != KindObject {
			return nil, &WrongKindError{Path: partial.Format(), Want: "an object"}
		}
		v, ok := cur.Object.Get(seg.Key)
		if !ok {
			return nil, &NotFoundError{Path: partial.Format()}
		}
		return v, nil
	case SegIndex:
		if cur.Kind != KindArray {
			return nil, &WrongKindError{Path: partial.Format(), Want: "an array"}
		}
		if seg.Index < 0 || seg.Index >= len(cur.Array) {
			return nil, &IndexOutOfRangeError{Path: partial.Format(), Index: seg.Index, Len: len(cur.Array)}
		}
		return cur.Array[seg.Index], nil
	}
	return nil, fmt.Errorf("unreachable segment kind")
}

// container navigates to the value that holds the final segment (i.e.
// path minus its last segment), returning that container and the final
// segment. An empty path (the root itself) returns container == nil.
func container(root *Value, path Path) (*Value, *PathSegment, error) {
	if len(path.Segments) == 0 {
		return nil, nil, nil
	}
	parent := Path{Segments: path.Segments[:len(path.Segments)-1]}
	c, err := Get(root, parent)
	if err != nil {
		return nil, nil, err
	}
	last := path.Segments[len(path.Segments)-1]
	return c, &last, nil
}
