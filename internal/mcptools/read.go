package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"

	"github.com/lispmeister/hashline/internal/fileio"
	"github.com/lispmeister/hashline/internal/hashline/format"
)

// ReadInput is the hashline_read tool's argument shape.
type ReadInput struct {
	File      string `json:"file" jsonschema:"path to the file to read"`
	StartLine int    `json:"start_line,omitempty" jsonschema:"first line to print, 1-indexed, default 1"`
	Lines     int    `json:"lines,omitempty" jsonschema:"number of lines to print, default to end of file"`
}

// ReadTool is the hashline_read tool definition.
var ReadTool = &mcp.Tool{
	Name: "hashline_read",
	Description: `Read a file as LINE:HASH|CONTENT lines. You MUST read a file this way ` +
		`before editing it with hashline_edit — the hash anchors in the output are what ` +
		`the edit tool validates against, and they go stale the moment the file changes.`,
}

// HandleRead implements the hashline_read tool.
func HandleRead(ctx context.Context, req *mcp.CallToolRequest, in ReadInput) (*mcp.CallToolResult, any, error) {
	requestID := uuid.New()
	logEvent := log.Debug().Str("request_id", requestID.String()).Str("tool", "hashline_read").Str("file", in.File)

	if in.File == "" {
		return toolError("file path cannot be empty"), nil, nil
	}

	absPath, err := validatePath(in.File)
	if err != nil {
		log.Warn().Str("request_id", requestID.String()).Err(err).Msg("hashline_read rejected path")
		return toolError("%v", err), nil, nil
	}

	content, err := fileio.ReadNormalized(absPath)
	if err != nil {
		log.Error().Str("request_id", requestID.String()).Err(err).Msg("hashline_read failed")
		return toolError("failed to read file: %v", err), nil, nil
	}

	startLine := in.StartLine
	if startLine < 1 {
		startLine = 1
	}
	fileLines := strings.Split(content, "\n")
	start := startLine - 1
	if start > len(fileLines) {
		start = len(fileLines)
	}
	end := len(fileLines)
	if in.Lines > 0 && start+in.Lines < end {
		end = start + in.Lines
	}

	slice := strings.Join(fileLines[start:end], "\n")
	tagged := format.Format(slice, startLine)

	logEvent.Msg("hashline_read served")
	return toolText(fmt.Sprintf("%s (%d lines):\n\n%s", in.File, end-start, tagged)), nil, nil
}
