// Package fileio normalizes file content at the boundary between the
// engine and disk: CRLF to LF on read, a single trailing newline stripped
// on read and restored on write.
package fileio

import (
	"os"
	"strings"
)

// ReadNormalized reads path and returns its content with CRLF collapsed
// to LF and exactly one trailing LF stripped, the form every engine
// package expects as input.
func ReadNormalized(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	content := strings.ReplaceAll(string(raw), "\r\n", "\n")
	content = strings.TrimSuffix(content, "\n")
	return content, nil
}

// WriteNormalized writes content to path with a single trailing LF
// appended, restoring what ReadNormalized stripped.
func WriteNormalized(path string, content string) error {
	return os.WriteFile(path, []byte(content+"\n"), 0o644)
}
