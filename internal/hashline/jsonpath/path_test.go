package jsonpath

import "testing"

func TestParsePathRoot(t *testing.T) {
	p, err := ParsePath("$")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.Segments) != 0 {
		t.Fatalf("expected no segments, got %v", p.Segments)
	}
}

func TestParsePathDotAndIndex(t *testing.T) {
	p, err := ParsePath("$.items[2].name")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []PathSegment{
		{Kind: SegKey, Key: "items"},
		{Kind: SegIndex, Index: 2},
		{Kind: SegKey, Key: "name"},
	}
	if len(p.Segments) != len(want) {
		t.Fatalf("got %v", p.Segments)
	}
	for i, w := range want {
		if p.Segments[i] != w {
			t.Fatalf("segment %d: got %+v, want %+v", i, p.Segments[i], w)
		}
	}
}

func TestParsePathBracketQuotedKey(t *testing.T) {
	p, err := ParsePath(`$["weird key.with.dots"]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.Segments) != 1 || p.Segments[0].Key != "weird key.with.dots" {
		t.Fatalf("got %+v", p.Segments)
	}
}

func TestParsePathRejectsMissingDollar(t *testing.T) {
	if _, err := ParsePath("items[0]"); err == nil {
		t.Fatalf("expected error for path missing leading $")
	}
}

func TestParsePathRejectsEmptyKey(t *testing.T) {
	if _, err := ParsePath("$."); err == nil {
		t.Fatalf("expected error for empty key segment")
	}
}

func TestFormatRoundTripsBracketQuotedKey(t *testing.T) {
	p := Path{Segments: []PathSegment{{Kind: SegKey, Key: "a.b"}}}
	formatted := p.Format()
	reparsed, err := ParsePath(formatted)
	if err != nil {
		t.Fatalf("unexpected error reparsing %q: %v", formatted, err)
	}
	if reparsed.Segments[0].Key != "a.b" {
		t.Fatalf("got %+v", reparsed.Segments)
	}
}

func TestFormatPlainKeyUsesDotForm(t *testing.T) {
	p := Path{Segments: []PathSegment{{Kind: SegKey, Key: "version"}}}
	if got := p.Format(); got != "$.version" {
		t.Fatalf("got %q", got)
	}
}
