package jsonpath

import (
	"fmt"
	"strconv"
	"strings"
)

// SegKind discriminates a PathSegment.
type SegKind int

const (
	SegKey SegKind = iota
	SegIndex
)

// PathSegment is one step of a parsed path: a Key(string) or Index(int).
type PathSegment struct {
	Kind  SegKind
	Key   string
	Index int
}

// Path is an ordered sequence of segments rooted at $.
type Path struct {
	Segments []PathSegment
}

// ParsePath parses the small dot/bracket grammar: "$" alone is the root;
// otherwise "$" followed by ".key" or "[index]" or the bracket-quoted
// `["key"]` form (a deliberate extension for keys containing '.' or a
// space, matching what the formatter emits).
func ParsePath(s string) (Path, error) {
	if s == "" {
		return Path{}, fmt.Errorf("path must not be empty")
	}
	if s[0] != '$' {
		return Path{}, fmt.Errorf("path must start with '$'")
	}
	rest := s[1:]
	var segs []PathSegment
	i := 0
	for i < len(rest) {
		switch rest[i] {
		case '.':
			i++
			start := i
			for i < len(rest) && rest[i] != '.' && rest[i] != '[' {
				i++
			}
			key := rest[start:i]
			if key == "" {
				return Path{}, fmt.Errorf("empty key segment in path %q", s)
			}
			segs = append(segs, PathSegment{Kind: SegKey, Key: key})

		case '[':
			i++
			if i < len(rest) && rest[i] == '"' {
				i++
				start := i
				for i < len(rest) && rest[i] != '"' {
					i++
				}
				if i >= len(rest) {
					return Path{}, fmt.Errorf("unterminated quoted key in path %q", s)
				}
				key := rest[start:i]
				i++ // skip closing quote
				if i >= len(rest) || rest[i] != ']' {
					return Path{}, fmt.Errorf("expected ']' after quoted key in path %q", s)
				}
				i++
				segs = append(segs, PathSegment{Kind: SegKey, Key: key})
				continue
			}
			start := i
			for i < len(rest) && rest[i] != ']' {
				i++
			}
			if i >= len(rest) {
				return Path{}, fmt.Errorf("unterminated '[' in path %q", s)
			}
			numStr := rest[start:i]
			i++ // skip ']'
			idx, err := strconv.Atoi(numStr)
			if err != nil || idx < 0 {
				return Path{}, fmt.Errorf("invalid array index %q in path %q", numStr, s)
			}
			segs = append(segs, PathSegment{Kind: SegIndex, Index: idx})

		default:
			return Path{}, fmt.Errorf("unexpected character %q at offset %d in path %q", rest[i], i+1, s)
		}
	}
	return Path{Segments: segs}, nil
}

// Format renders the path back to its canonical textual form. Keys needing
// the bracket-quoted form (containing '.', '[', or a space) are rendered
// that way so the formatter's own output round-trips through ParsePath.
func (p Path) Format() string {
	var b strings.Builder
	b.WriteByte('$')
	for _, seg := range p.Segments {
		if seg.Kind == SegIndex {
			fmt.Fprintf(&b, "[%d]", seg.Index)
			continue
		}
		if needsBracketQuoting(seg.Key) {
			fmt.Fprintf(&b, "[%q]", seg.Key)
		} else {
			b.WriteByte('.')
			b.WriteString(seg.Key)
		}
	}
	return b.String()
}

func needsBracketQuoting(key string) bool {
	return strings.ContainsAny(key, ".[] ")
}
