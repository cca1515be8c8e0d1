// Package hash computes the 2-hex-char content fingerprint used to anchor
// lines and JSON values.
package hash

import (
	"strings"
	"unicode"

	"github.com/lispmeister/hashline/internal/xxhash32"
)

const (
	// Len is the fixed length, in hex characters, of a hash.
	Len = 2
	// mod is the number of buckets a hash folds into (16^Len).
	mod = 1 << (4 * Len)
)

// Line computes the fingerprint for one line of text. The lineIdx parameter
// is accepted for signature stability and whole-file iteration convenience
// but does not affect the result.
func Line(lineIdx int, line string) string {
	_ = lineIdx
	return of(line)
}

// Bytes computes the fingerprint of an already-canonicalized byte slice,
// used directly by the JSON engine's canonical-hash operation (no
// whitespace stripping — canonical JSON has none to strip).
func Bytes(b []byte) string {
	return format(xxhash32.Sum32(b, 0))
}

// of strips a trailing CR and all whitespace, then hashes the remainder.
func of(line string) string {
	line = strings.TrimSuffix(line, "\r")
	normalized := stripWhitespace(line)
	return format(xxhash32.Sum32([]byte(normalized), 0))
}

func stripWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if !unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func format(h uint32) string {
	v := h % mod
	const hexDigits = "0123456789abcdef"
	out := make([]byte, Len)
	for i := Len - 1; i >= 0; i-- {
		out[i] = hexDigits[v&0xf]
		v >>= 4
	}
	return string(out)
}
