// Command hashline-mcp exposes the hashline engine as an MCP stdio
// server: hashline_read and hashline_edit tools backed by the same
// internal/hashline/batch and internal/fileio packages cmd/hashline's
// apply subcommand uses. It is a second transport over the engine, not
// a second implementation of it.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lispmeister/hashline/internal/hlconfig"
	"github.com/lispmeister/hashline/internal/mcptools"
)

// version is the hashline-mcp implementation version reported to MCP
// clients during initialization.
const version = "0.1.0"

func main() {
	if err := setupFileLogging(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to set up logging: %v\n", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "hashline-mcp: %v\n", err)
		os.Exit(2)
	}

	server := mcp.NewServer(&mcp.Implementation{Name: "hashline-mcp", Version: version}, nil)

	prefix := cfg.MCP.ToolPrefix
	mcptools.ReadTool.Name = prefix + "hashline_read"
	mcptools.EditTool.Name = prefix + "hashline_edit"

	mcp.AddTool(server, mcptools.ReadTool, mcptools.HandleRead)
	mcp.AddTool(server, mcptools.EditTool, mcptools.HandleEdit)

	log.Info().Msg("hashline-mcp starting on stdio")
	if err := server.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		log.Error().Err(err).Msg("hashline-mcp exited")
		os.Exit(1)
	}
}

func loadConfig() (*hlconfig.Config, error) {
	path, err := hlconfig.DefaultPath()
	if err != nil {
		return nil, err
	}
	return hlconfig.Load(path)
}

// setupFileLogging mirrors cmd/hashline's logging setup, writing to its
// own log file since the CLI and the MCP server are separate processes.
func setupFileLogging() error {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level := zerolog.InfoLevel
	if lv, err := zerolog.ParseLevel(os.Getenv("HASHLINE_LOG_LEVEL")); err == nil {
		level = lv
	}
	zerolog.SetGlobalLevel(level)

	if os.Getenv("HASHLINE_LOG_CONSOLE") == "1" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		return nil
	}

	dataDir, err := hlconfig.EnsureDataDir()
	if err != nil {
		return err
	}

	logDir := filepath.Join(dataDir, "logs")
	if err := os.MkdirAll(logDir, 0o750); err != nil {
		return err
	}

	logFile := filepath.Join(logDir, "hashline-mcp.log")
	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}

	log.Logger = log.Output(file)
	return nil
}
