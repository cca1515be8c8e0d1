package mcptools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"

	"github.com/lispmeister/hashline/internal/fileio"
	"github.com/lispmeister/hashline/internal/hashline/batch"
	"github.com/lispmeister/hashline/internal/hashline/format"
	"github.com/lispmeister/hashline/internal/hashline/mismatch"
	"github.com/lispmeister/hashline/internal/usagelog"
)

// EditInput is the hashline_edit tool's argument shape: the same
// {path, edits} envelope batch.Parse decodes from the CLI's stdin, split
// across two JSON fields instead of one so the model addresses "file"
// and "edits" as distinct tool parameters.
type EditInput struct {
	File  string            `json:"file" jsonschema:"path to the file to edit"`
	Edits []json.RawMessage `json:"edits" jsonschema:"one or more set_line/replace_lines/insert_after/replace edit objects, anchored against the hashline_read output"`
}

// EditTool is the hashline_edit tool definition.
var EditTool = &mcp.Tool{
	Name: "hashline_edit",
	Description: `Apply a batch of hash-anchored edits to a file previously read with ` +
		`hashline_read. Each edit is exactly one of set_line, replace_lines, insert_after, ` +
		`or replace. If any anchor no longer matches the file's current content the whole ` +
		`batch is rejected and the tool returns fresh anchors to retry against — it never ` +
		`partially applies a rejected batch.`,
}

// HandleEdit implements the hashline_edit tool.
func HandleEdit(ctx context.Context, req *mcp.CallToolRequest, in EditInput) (*mcp.CallToolResult, any, error) {
	requestID := uuid.New()

	if in.File == "" {
		return toolError("file path cannot be empty"), nil, nil
	}

	absPath, err := validatePath(in.File)
	if err != nil {
		log.Warn().Str("request_id", requestID.String()).Err(err).Msg("hashline_edit rejected path")
		return toolError("%v", err), nil, nil
	}

	envelope, err := json.Marshal(struct {
		Path  string            `json:"path"`
		Edits []json.RawMessage `json:"edits"`
	}{Path: absPath, Edits: in.Edits})
	if err != nil {
		return toolError("failed to encode batch: %v", err), nil, nil
	}

	b, err := batch.Parse(envelope)
	if err != nil {
		logUsage(usagelog.Event{Command: "mcp-edit", Result: usagelog.Error})
		return toolError("%v", err), nil, nil
	}

	content, err := fileio.ReadNormalized(b.Path)
	if err != nil {
		logUsage(usagelog.Event{Command: "mcp-edit", Result: usagelog.Error})
		return toolError("failed to read file: %v", err), nil, nil
	}

	result, err := b.Apply(content)
	if err != nil {
		var mm *mismatch.Error
		if errors.As(err, &mm) {
			log.Warn().Str("request_id", requestID.String()).Msg("hashline_edit stale anchor")
			logUsage(usagelog.Event{Command: "mcp-edit", Result: usagelog.Mismatch})
			return toolError("%s", mm.FormatMessage()), nil, nil
		}
		log.Error().Str("request_id", requestID.String()).Err(err).Msg("hashline_edit failed")
		logUsage(usagelog.Event{Command: "mcp-edit", Result: usagelog.Error})
		return toolError("%v", err), nil, nil
	}

	if err := fileio.WriteNormalized(b.Path, result.Content); err != nil {
		logUsage(usagelog.Event{Command: "mcp-edit", Result: usagelog.Error})
		return toolError("failed to write file: %v", err), nil, nil
	}

	text := fmt.Sprintf("Edited %s:\n\n%s", in.File, format.Format(result.Content, 1))
	for _, w := range result.Warnings {
		text += "\nwarning: " + w
	}

	log.Debug().Str("request_id", requestID.String()).Msg("hashline_edit applied")
	logUsage(usagelog.Event{Command: "mcp-edit", Result: usagelog.Success})
	return toolText(text), nil, nil
}

// logUsage mirrors internal/cli's helper of the same name; it is
// duplicated rather than imported to keep internal/mcptools independent
// of internal/cli (the CLI and the MCP server are siblings, not layered).
func logUsage(e usagelog.Event) {
	if err := usagelog.Log(e); err != nil {
		log.Error().Err(err).Msg("failed to write usage log")
	}
}
