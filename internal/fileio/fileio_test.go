package fileio

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadNormalizedCollapsesCRLF(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(p, []byte("one\r\ntwo\r\nthree\n"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	got, err := ReadNormalized(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "one\ntwo\nthree" {
		t.Fatalf("got %q", got)
	}
}

func TestReadNormalizedStripsOnlyOneTrailingNewline(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(p, []byte("a\nb\n\n"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	got, err := ReadNormalized(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "a\nb\n" {
		t.Fatalf("got %q", got)
	}
}

func TestWriteNormalizedAppendsTrailingNewline(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "f.txt")
	if err := WriteNormalized(p, "a\nb"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	raw, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(raw) != "a\nb\n" {
		t.Fatalf("got %q", string(raw))
	}
}

func TestRoundTripIsStable(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "f.txt")
	original := "first\nsecond\nthird"
	if err := WriteNormalized(p, original); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := ReadNormalized(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != original {
		t.Fatalf("got %q, want %q", got, original)
	}
}
