package core

import "testing"

func TestContentDigestDeterministic(t *testing.T) {
	chunk := &Chunk{
		ID:      "transpose-gotcha",
		Type:    TypeMistakePattern,
		Title:   "Transpose operator",
		Summary: "The apostrophe transposes.",
		Content: "Use x' for transpose.",
		Wrong:   &CodeExample{Code: "y = transpose(x);", Explanation: "no such builtin"},
		Right:   &CodeExample{Code: "y = x';"},
	}

	first := ContentDigest(chunk)
	second := ContentDigest(chunk)
	if first != second {
		t.Fatalf("digest not deterministic: %s vs %s", first, second)
	}
	if len(first) != 64 {
		t.Errorf("expected 64 hex chars for a 256-bit digest, got %d", len(first))
	}
}

func TestContentDigestSensitiveToContent(t *testing.T) {
	a := &Chunk{ID: "a", Title: "t", Summary: "s", Content: "one"}
	b := &Chunk{ID: "a", Title: "t", Summary: "s", Content: "two"}
	if ContentDigest(a) == ContentDigest(b) {
		t.Error("different content must produce different digests")
	}
}
