package hlconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.UsageLogPath != "" || cfg.DisableUsageLog {
		t.Fatalf("expected zero-value defaults, got %+v", cfg)
	}
}

func TestLoadMalformedFileErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("not = [valid toml"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for malformed config")
	}
}

func TestLoadParsesFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := `
usage_log_path = "/tmp/usage.log"
disable_usage_log = true

[mcp]
tool_prefix = "hl_"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.UsageLogPath != "/tmp/usage.log" || !cfg.DisableUsageLog || cfg.MCP.ToolPrefix != "hl_" {
		t.Fatalf("got %+v", cfg)
	}
}

func TestEnvOverridesWinOverFileValue(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(`usage_log_path = "/tmp/from-file.log"`), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	t.Setenv("HASHLINE_USAGE_LOG", "/tmp/from-env.log")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.UsageLogPath != "/tmp/from-env.log" {
		t.Fatalf("got %q, want env override to win", cfg.UsageLogPath)
	}
}

func TestValidateRejectsNonAlphanumericToolPrefix(t *testing.T) {
	cfg := &Config{MCP: MCPConfig{ToolPrefix: "not valid!"}}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestDataDirHonorsXDGConfigHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	dir, err := DataDir()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dir != filepath.Join("/xdg", "hashline") {
		t.Fatalf("got %q", dir)
	}
}
