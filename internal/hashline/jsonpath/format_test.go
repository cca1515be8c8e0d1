package jsonpath

import (
	"strings"
	"testing"
)

func TestFormatPreservesKeyOrderAndIndents(t *testing.T) {
	v, _ := Parse([]byte(`{"b":1,"a":2}`))
	got := Format(v)
	bIdx := strings.Index(got, `"b"`)
	aIdx := strings.Index(got, `"a"`)
	if bIdx < 0 || aIdx < 0 || bIdx > aIdx {
		t.Fatalf("expected insertion order b before a, got:\n%s", got)
	}
	if !strings.Contains(got, "  \"b\"") {
		t.Fatalf("expected 2-space indentation, got:\n%s", got)
	}
}

func TestFormatHasNoPathComments(t *testing.T) {
	v, _ := Parse([]byte(`{"a":1}`))
	got := Format(v)
	if strings.Contains(got, "//") {
		t.Fatalf("plain Format must not include path comments, got:\n%s", got)
	}
}

func TestFormatAnnotatedIncludesPathAndHash(t *testing.T) {
	v, _ := Parse([]byte(`{"version":"1.0"}`))
	got := FormatAnnotated(v)
	if !strings.Contains(got, "// $.version:") {
		t.Fatalf("expected a '// $.version:HASH' comment, got:\n%s", got)
	}
	if !strings.Contains(got, "// $:") {
		t.Fatalf("expected a root '// $:HASH' comment, got:\n%s", got)
	}
}

func TestFormatAnnotatedHashMatchesCanonicalHash(t *testing.T) {
	v, _ := Parse([]byte(`{"version":"1.0"}`))
	val, _ := v.Object.Get("version")
	want := CanonicalHash(val)
	got := FormatAnnotated(v)
	if !strings.Contains(got, "// $.version:"+want) {
		t.Fatalf("expected hash %q to match CanonicalHash, got:\n%s", want, got)
	}
}
