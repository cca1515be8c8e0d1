package jsonpath

import (
	"fmt"
	"regexp"
	"strings"
)

// anchorRe splits "<path>:<hash>" at the final colon; hash is lenient
// (1-16 alphanumerics) while the formatter always emits exactly two
// lowercase hex digits.
var anchorRe = regexp.MustCompile(`^(.+):([0-9A-Za-z]{1,16})$`)

// ParseAnchor splits a "$.path.to.node:HASH" anchor into its path text and
// lowercased hash.
func ParseAnchor(s string) (string, string, error) {
	m := anchorRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return "", "", fmt.Errorf("malformed JSON anchor: %q", s)
	}
	return m[1], strings.ToLower(m[2]), nil
}
