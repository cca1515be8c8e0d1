package jsonpath

import (
	"fmt"
	"strings"
)

const indentUnit = "  "

// Format renders v as indented JSON with keys in their original
// insertion order, the shape written back to disk after a json-apply.
func Format(v *Value) string {
	var b strings.Builder
	writeIndented(&b, v, 0, nil)
	return b.String()
}

// FormatAnnotated renders v the same way but appends a trailing
// "// PATH:HASH" comment to every line that opens an addressable node,
// for json-read's preview output.
func FormatAnnotated(v *Value) string {
	root := Path{}
	var b strings.Builder
	writeIndented(&b, v, 0, &root)
	return b.String()
}

func writeIndented(b *strings.Builder, v *Value, depth int, path *Path) {
	indent := strings.Repeat(indentUnit, depth)
	switch v.Kind {
	case KindObject:
		keys := v.Object.Keys()
		if len(keys) == 0 {
			b.WriteString("{}")
			annotate(b, path, v)
			return
		}
		b.WriteString("{")
		annotate(b, path, v)
		for i, k := range keys {
			val, _ := v.Object.Get(k)
			b.WriteString("\n")
			b.WriteString(indent + indentUnit)
			writeQuotedKey(b, k)
			b.WriteString(": ")
			writeIndented(b, val, depth+1, childPath(path, PathSegment{Kind: SegKey, Key: k}))
			if i < len(keys)-1 {
				b.WriteString(",")
			}
		}
		b.WriteString("\n" + indent + "}")

	case KindArray:
		if len(v.Array) == 0 {
			b.WriteString("[]")
			annotate(b, path, v)
			return
		}
		b.WriteString("[")
		annotate(b, path, v)
		for i, e := range v.Array {
			b.WriteString("\n")
			b.WriteString(indent + indentUnit)
			writeIndented(b, e, depth+1, childPath(path, PathSegment{Kind: SegIndex, Index: i}))
			if i < len(v.Array)-1 {
				b.WriteString(",")
			}
		}
		b.WriteString("\n" + indent + "]")

	default:
		writeCanonicalScalar(b, v)
		annotate(b, path, v)
	}
}

func writeCanonicalScalar(b *strings.Builder, v *Value) {
	switch v.Kind {
	case KindNull:
		b.WriteString("null")
	case KindBool:
		if v.Bool {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case KindNumber:
		b.WriteString(v.Number.String())
	case KindString:
		writeCanonicalString(b, v.Str)
	}
}

func writeQuotedKey(b *strings.Builder, k string) {
	writeCanonicalString(b, k)
}

func childPath(p *Path, seg PathSegment) *Path {
	if p == nil {
		return nil
	}
	segs := append(append([]PathSegment{}, p.Segments...), seg)
	return &Path{Segments: segs}
}

func annotate(b *strings.Builder, path *Path, v *Value) {
	if path == nil {
		return
	}
	fmt.Fprintf(b, "  // %s:%s", path.Format(), CanonicalHash(v))
}
