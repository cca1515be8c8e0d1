// Package anchor parses the textual LINE:HASH anchor form agents echo back
// when referencing a line, tolerating the variants a model is known to
// produce (echoed '>>>' markers, legacy double-space separators, garbage
// trailing a valid prefix).
package anchor

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// LineRef is a parsed LINE:HASH anchor.
type LineRef struct {
	Line int
	Hash string
}

var (
	strictRe = regexp.MustCompile(`^([0-9]+):([0-9A-Za-z]{1,16})$`)
	prefixRe = regexp.MustCompile(`^([0-9]+):([0-9A-Za-z]{2})`)
	colonWS  = regexp.MustCompile(`\s*:\s*`)
)

// Parse parses s into a LineRef, applying the lenient rules §4.2 documents.
// It never panics; all rejection is via the returned error.
func Parse(s string) (LineRef, error) {
	if strings.TrimSpace(s) == "" {
		return LineRef{}, fmt.Errorf("empty anchor")
	}

	trimmed := strings.TrimSpace(strings.TrimLeft(s, ">"))

	if idx := strings.IndexByte(trimmed, '|'); idx >= 0 {
		trimmed = trimmed[:idx]
	} else if idx := strings.Index(trimmed, "  "); idx >= 0 {
		trimmed = trimmed[:idx]
	}

	trimmed = normalizeFirstColon(trimmed)

	var lineStr, hashStr string
	if m := strictRe.FindStringSubmatch(trimmed); m != nil {
		lineStr, hashStr = m[1], m[2]
	} else if m := prefixRe.FindStringSubmatch(trimmed); m != nil {
		lineStr, hashStr = m[1], m[2]
	} else {
		return LineRef{}, fmt.Errorf("invalid anchor %q: expected LINE:HASH", s)
	}

	line, err := strconv.Atoi(lineStr)
	if err != nil {
		return LineRef{}, fmt.Errorf("invalid anchor %q: line number %q is not a valid integer", s, lineStr)
	}
	if line < 1 {
		return LineRef{}, fmt.Errorf("invalid anchor %q: line must be >= 1", s)
	}
	if hashStr == "" {
		return LineRef{}, fmt.Errorf("invalid anchor %q: missing hash", s)
	}

	return LineRef{Line: line, Hash: strings.ToLower(hashStr)}, nil
}

// normalizeFirstColon collapses whitespace surrounding the first ':' found
// in s down to a bare ':'.
func normalizeFirstColon(s string) string {
	loc := colonWS.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + ":" + s[loc[1]:]
}

// Format renders a LineRef back to its canonical "LINE:HASH" textual form.
func (r LineRef) Format() string {
	return fmt.Sprintf("%d:%s", r.Line, r.Hash)
}
