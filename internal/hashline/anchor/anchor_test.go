package anchor

import (
	"strings"
	"testing"

	"github.com/lispmeister/hashline/internal/hashline/hash"
)

func TestParseBasic(t *testing.T) {
	ref, err := Parse("12:ab")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.Line != 12 || ref.Hash != "ab" {
		t.Fatalf("got %+v", ref)
	}
}

func TestParseNeverPanics(t *testing.T) {
	for _, s := range []string{"", "garbage", ":::", "0:ab", "-1:ab", ">>>", "1:", "1"} {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("Parse(%q) panicked: %v", s, r)
				}
			}()
			_, _ = Parse(s)
		}()
	}
}

func TestParseRejectsZeroLine(t *testing.T) {
	_, err := Parse("0:abcd")
	if err == nil {
		t.Fatalf("expected error for line 0")
	}
	if !strings.Contains(err.Error(), ">= 1") {
		t.Fatalf("error %q does not mention '>= 1'", err.Error())
	}
}

func TestParseEmptyStringErrors(t *testing.T) {
	if _, err := Parse(""); err == nil {
		t.Fatalf("expected error for empty string")
	}
}

func TestParseDisplayForm(t *testing.T) {
	ref, err := Parse("3:f9|hello world")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.Line != 3 || ref.Hash != "f9" {
		t.Fatalf("got %+v", ref)
	}
}

func TestParseLeadingMarkers(t *testing.T) {
	ref, err := Parse(">>> 3:f9|hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.Line != 3 || ref.Hash != "f9" {
		t.Fatalf("got %+v", ref)
	}
}

func TestParseLegacyDoubleSpace(t *testing.T) {
	ref, err := Parse("3:f9  hello world")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.Line != 3 || ref.Hash != "f9" {
		t.Fatalf("got %+v", ref)
	}
}

func TestParsePrefixWithTrailingGarbage(t *testing.T) {
	// A model concatenating anchor and content without a separator.
	ref, err := Parse("2:abexport function foo(){}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.Line != 2 || ref.Hash != "ab" {
		t.Fatalf("got %+v", ref)
	}
}

func TestParseColonWhitespaceCollapsed(t *testing.T) {
	ref, err := Parse("3 : f9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.Line != 3 || ref.Hash != "f9" {
		t.Fatalf("got %+v", ref)
	}
}

func TestParseHashLowercased(t *testing.T) {
	ref, err := Parse("3:F9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.Hash != "f9" {
		t.Fatalf("hash not lowercased: %q", ref.Hash)
	}
}

func TestFormatRoundTrip(t *testing.T) {
	lines := []string{"aaa", "bbb", "ccc"}
	for i, l := range lines {
		lineNum := i + 1
		h := hash.Line(i, l)
		s := LineRef{Line: lineNum, Hash: h}.Format()
		parsed, err := Parse(s)
		if err != nil {
			t.Fatalf("round-trip parse failed for %q: %v", s, err)
		}
		if parsed.Line != lineNum || parsed.Hash != h {
			t.Fatalf("round trip mismatch: got %+v, want {%d %s}", parsed, lineNum, h)
		}
	}
}
