package jsonpath

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lispmeister/hashline/internal/hashline/hash"
)

// Canonical returns v's canonical-form bytes: object keys in lexicographic
// order, strings in the standard escape set, no insignificant whitespace.
// Grounded on the pack's JCS-style recursive-marshal-with-sorted-keys
// pattern, adapted to the spec's own (narrower) escape set rather than
// RFC 8785's.
func Canonical(v *Value) string {
	var b strings.Builder
	writeCanonical(&b, v)
	return b.String()
}

// CanonicalHash returns the 2-hex-char xxHash32-mod-256 hash of v's
// canonical form, the JSON-mode analogue of hash.Line.
func CanonicalHash(v *Value) string {
	return hash.Bytes([]byte(Canonical(v)))
}

func writeCanonical(b *strings.Builder, v *Value) {
	if v == nil {
		b.WriteString("null")
		return
	}
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
	case KindArray:
		b.WriteByte('[')
		for i, e := range v.Array {
			if i > 0 {
				b.WriteByte(',')
			}
			writeCanonical(b, e)
		}
		b.WriteByte(']')
	case KindObject:
		keys := v.Object.Keys()
		sort.Strings(keys)
		b.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				b.WriteByte(',')
			}
			writeCanonicalString(b, k)
			b.WriteByte(':')
			val, _ := v.Object.Get(k)
			writeCanonical(b, val)
		}
		b.WriteByte('}')
	}
}

func writeCanonicalString(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			if r < 0x20 {
				fmt.Fprintf(b, `\u%04x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
}
