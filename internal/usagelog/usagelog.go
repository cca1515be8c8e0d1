// Package usagelog appends one CSV line per CLI invocation to a usage
// log, for agents and operators auditing how hashline is being called.
// It is deliberately independent of internal/hlconfig: the two
// environment variables here always win, matching the collaborator-level
// contract, and a command should be able to log even if config loading
// itself failed.
package usagelog

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Result classifies how a command finished, for the CSV "result" field.
type Result int

const (
	Success Result = iota
	Mismatch
	Error
)

func (r Result) String() string {
	switch r {
	case Success:
		return "success"
	case Mismatch:
		return "mismatch"
	default:
		return "error"
	}
}

// Event is one CLI invocation worth logging.
type Event struct {
	Command       string
	Result        Result
	EmitUpdated   bool
	UsedInputFile bool
}

// Log appends event as a CSV line to the usage log, unless
// HASHLINE_DISABLE_USAGE_LOG is set. The path is HASHLINE_USAGE_LOG if
// set, else the platform state-home convention.
func Log(event Event) error {
	if _, disabled := os.LookupEnv("HASHLINE_DISABLE_USAGE_LOG"); disabled {
		return nil
	}

	path := logPath()
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return err
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = fmt.Fprintf(f, "%d,%s,%s,%d,%d\n",
		time.Now().Unix(),
		event.Command,
		event.Result,
		boolToInt(event.EmitUpdated),
		boolToInt(event.UsedInputFile),
	)
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func logPath() string {
	if custom, ok := os.LookupEnv("HASHLINE_USAGE_LOG"); ok {
		return custom
	}
	return defaultUsagePath()
}

func defaultUsagePath() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "hashline", "usage.log")
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, ".local", "state", "hashline", "usage.log")
	}
	if wd, err := os.Getwd(); err == nil {
		return filepath.Join(wd, "hashline-usage.log")
	}
	return "hashline-usage.log"
}
