package batch

import (
	"testing"

	"github.com/lispmeister/hashline/internal/hashline/jsonpath"
)

func TestParseJSONSplitsEditShapes(t *testing.T) {
	doc := `{"version":"1.0","tags":["a","b"]}`
	root, err := jsonpath.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	versionHash := jsonpath.CanonicalHash(mustGet(t, root, "$.version"))

	req := `{"path":"f.json","edits":[
		{"set_path":{"anchor":"$.version:` + versionHash + `","value":"2.0"}},
		{"insert_at_path":{"path":"$.tags","value":"c"}}
	]}`
	b, err := ParseJSON([]byte(req))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(b.edits) != 2 {
		t.Fatalf("got %d edits", len(b.edits))
	}
	if b.State() != StateValidating {
		t.Fatalf("got state %s", b.State())
	}

	got, err := b.Apply(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if jsonpath.Canonical(got) == jsonpath.Canonical(root) {
		t.Fatalf("expected document to change")
	}
	if b.State() != StateDone {
		t.Fatalf("got state %s, want DONE", b.State())
	}
}

func TestParseJSONRejectsAmbiguousShape(t *testing.T) {
	req := `{"path":"f.json","edits":[{"set_path":{"anchor":"$:ab","value":1},"delete_path":{"anchor":"$.x:ab"}}]}`
	_, err := ParseJSON([]byte(req))
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestParseJSONRejectsMalformedValue(t *testing.T) {
	req := `{"path":"f.json","edits":[{"set_path":{"anchor":"$:ab","value":{not valid}}}]}`
	_, err := ParseJSON([]byte(req))
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestApplyJSONStaleAnchorRejectsBatch(t *testing.T) {
	root, _ := jsonpath.Parse([]byte(`{"a":1}`))
	req := `{"path":"f.json","edits":[{"set_path":{"anchor":"$.a:ff","value":2}}]}`
	b, err := ParseJSON([]byte(req))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := b.Apply(root); err == nil {
		t.Fatalf("expected hash mismatch error")
	}
	if b.State() != StateRejected {
		t.Fatalf("got state %s, want REJECTED", b.State())
	}
}

func mustGet(t *testing.T, root *jsonpath.Value, pathStr string) *jsonpath.Value {
	t.Helper()
	p, err := jsonpath.ParsePath(pathStr)
	if err != nil {
		t.Fatalf("bad path: %v", err)
	}
	v, err := jsonpath.Get(root, p)
	if err != nil {
		t.Fatalf("get %s: %v", pathStr, err)
	}
	return v
}
