package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lispmeister/hashline/internal/hashline/hash"
	"github.com/lispmeister/hashline/internal/hashline/jsonpath"
)

func runCLI(t *testing.T, stdin string, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	if stdin != "" {
		cmd.SetIn(strings.NewReader(stdin))
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), ExitCode(err)
}

func TestReadPrintsAnchoredLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(path, []byte("one\ntwo\nthree\n"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	out, _, code := runCLI(t, "", "read", path)
	if code != 0 {
		t.Fatalf("got exit %d", code)
	}
	if !strings.Contains(out, "1:"+hash.Line(0, "one")+"|one") {
		t.Fatalf("got %q", out)
	}
}

func TestReadRespectsStartLineAndLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(path, []byte("one\ntwo\nthree\nfour\n"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	out, _, code := runCLI(t, "", "read", path, "--start-line", "2", "--lines", "2")
	if code != 0 {
		t.Fatalf("got exit %d", code)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "2:") || !strings.HasPrefix(lines[1], "3:") {
		t.Fatalf("got %q", out)
	}
}

func TestReadMissingFileExitsWithOther(t *testing.T) {
	_, _, code := runCLI(t, "", "read", "/no/such/file")
	if code != 2 {
		t.Fatalf("got exit %d, want 2", code)
	}
}

func TestHashPrintsOnlyAnchors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(path, []byte("aaa\nbbb\n"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	out, _, code := runCLI(t, "", "hash", path)
	if code != 0 {
		t.Fatalf("got exit %d", code)
	}
	if strings.Contains(out, "|") {
		t.Fatalf("hash output should not contain content: %q", out)
	}
}

func TestApplySuccessRewritesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	content := "one\ntwo\nthree"
	if err := os.WriteFile(path, []byte(content+"\n"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	anchor1 := hash.Line(0, "one")
	req := `{"path":"` + path + `","edits":[{"set_line":{"anchor":"1:` + anchor1 + `","new_text":"ONE"}}]}`

	_, _, code := runCLI(t, req, "apply")
	if code != 0 {
		t.Fatalf("got exit %d", code)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != "ONE\ntwo\nthree\n" {
		t.Fatalf("got %q", string(got))
	}
}

func TestApplyStaleAnchorExitsOneAndPrintsRefresh(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(path, []byte("one\ntwo\n"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	req := `{"path":"` + path + `","edits":[{"set_line":{"anchor":"1:ff","new_text":"ONE"}}]}`

	_, errOut, code := runCLI(t, req, "apply")
	if code != 1 {
		t.Fatalf("got exit %d, want 1", code)
	}
	if !strings.Contains(errOut, "changed since last read") {
		t.Fatalf("got stderr %q", errOut)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != "one\ntwo\n" {
		t.Fatalf("file should be untouched on rejection, got %q", string(got))
	}
}

func TestApplyEmitUpdatedPrintsRefreshedAnchors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(path, []byte("one\ntwo\n"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	anchor1 := hash.Line(0, "one")
	req := `{"path":"` + path + `","edits":[{"set_line":{"anchor":"1:` + anchor1 + `","new_text":"ONE"}}]}`

	out, _, code := runCLI(t, req, "apply", "--emit-updated")
	if code != 0 {
		t.Fatalf("got exit %d", code)
	}
	if !strings.Contains(out, "1:"+hash.Line(0, "ONE")+"|ONE") {
		t.Fatalf("got %q", out)
	}
}

func TestJSONReadIncludesAnchorComments(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.json")
	if err := os.WriteFile(path, []byte(`{"a":1}`+"\n"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	out, _, code := runCLI(t, "", "json-read", path)
	if code != 0 {
		t.Fatalf("got exit %d", code)
	}
	if !strings.Contains(out, "// $.a:") {
		t.Fatalf("got %q", out)
	}
}

func TestJSONApplyRewritesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.json")
	if err := os.WriteFile(path, []byte(`{"version":"1.0"}`+"\n"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	versionHash := hashOfJSONString(t, `"1.0"`)
	req := `{"path":"` + path + `","edits":[{"set_path":{"anchor":"$.version:` + versionHash + `","value":"2.0"}}]}`

	_, _, code := runCLI(t, req, "json-apply")
	if code != 0 {
		t.Fatalf("got exit %d", code)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(got), `"2.0"`) {
		t.Fatalf("got %q", string(got))
	}
}

func hashOfJSONString(t *testing.T, raw string) string {
	t.Helper()
	v, err := jsonpath.Parse([]byte(raw))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return jsonpath.CanonicalHash(v)
}
