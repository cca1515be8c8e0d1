// Package mcptools implements the hashline_read and hashline_edit MCP tool
// handlers. Both are thin adapters: they decode tool arguments, call the
// same packages cmd/hashline's read and apply subcommands call
// (hashline_read: internal/fileio and internal/hashline/format;
// hashline_edit: internal/fileio, internal/hashline/batch and
// internal/usagelog), and format the result as MCP tool content.
// Neither handler reimplements Phase A-G or the anchor/hash logic.
package mcptools

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// validatePath resolves file against the process working directory and
// rejects anything that would escape it, mirroring the teacher's own
// working-directory sandboxing for tool-exposed file paths.
func validatePath(file string) (string, error) {
	workingDir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return validatePathWithRoot(file, workingDir)
}

func validatePathWithRoot(file, root string) (string, error) {
	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("invalid root path: %w", err)
	}
	var absPath string
	if filepath.IsAbs(file) {
		absPath = file
	} else {
		absPath = filepath.Join(rootAbs, file)
	}
	absPath, err = filepath.Abs(absPath)
	if err != nil {
		return "", fmt.Errorf("invalid file path: %w", err)
	}
	relPath, err := filepath.Rel(rootAbs, absPath)
	if err != nil || strings.HasPrefix(relPath, "..") || filepath.IsAbs(relPath) {
		return "", fmt.Errorf("access denied: path outside working directory")
	}
	return absPath, nil
}

// toolError returns a CallToolResult carrying an error for the model to
// read, with IsError set so the agent can tell an error payload from a
// normal one without parsing the text.
func toolError(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}

// toolText returns a successful text CallToolResult.
func toolText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}
