package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lispmeister/hashline/internal/cli"
	"github.com/lispmeister/hashline/internal/hlconfig"
)

func main() {
	if err := setupFileLogging(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to set up logging: %v\n", err)
	}

	err := cli.NewRootCmd().Execute()
	os.Exit(cli.ExitCode(err))
}

// setupFileLogging wires the process-wide zerolog logger to a file under
// the config directory, or to the console (stderr) when
// HASHLINE_LOG_CONSOLE is "1". It does not check whether stderr is a TTY.
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

	logFile := filepath.Join(logDir, "hashline.log")
	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}

	log.Logger = log.Output(file)
	return nil
}
