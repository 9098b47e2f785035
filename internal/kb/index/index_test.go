package index

import (
	"reflect"
	"testing"

	"github.com/avasani/KnowledgeAPI/internal/domain/kbmodel"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "lowercases and strips punctuation",
			text: "Hello, World! Don't panic.",
			want: []string{"hello", "world", "dont", "panic"},
		},
		{
			name: "drops stop words and short terms",
			text: "the quick fox is at an OLD db",
			want: []string{"quick", "fox", "old"},
		},
		{
			name: "deduplicates preserving first-seen order",
			text: "apple banana apple cherry banana",
			want: []string{"apple", "banana", "cherry"},
		},
		{
			name: "only stop words",
			text: "the a is and",
			want: nil,
		},
		{
			name: "empty",
			text: "",
			want: nil,
		},
		{
			name: "digits kept",
			text: "error 50042 in module7",
			want: []string{"error", "50042", "module7"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v; want %v", tt.text, got, tt.want)
			}
		})
	}
}

func doc(id, owner, text string) *kbmodel.Document {
	return &kbmodel.Document{ID: id, OwnerID: owner, ExtractedText: text}
}

func TestIndex_AddAndLookup(t *testing.T) {
	ix := New()
	ix.Add(doc("d1", "alice", "authentication tokens expire quickly"))
	ix.Add(doc("d2", "alice", "session tokens rotate"))

	refs := ix.Lookup("tokens")
	if len(refs) != 2 {
		t.Fatalf("expected 2 refs for %q, got %d", "tokens", len(refs))
	}
	if refs[0].DocumentID != "d1" || refs[1].DocumentID != "d2" {
		t.Errorf("refs out of insertion order: %v", refs)
	}

	if refs := ix.Lookup("authentication"); len(refs) != 1 || refs[0].DocumentID != "d1" {
		t.Errorf("lookup authentication = %v; want just d1", refs)
	}
	if refs := ix.Lookup("missing"); refs != nil {
		t.Errorf("lookup of unknown term = %v; want nil", refs)
	}
}

func TestIndex_AddIsIdempotent(t *testing.T) {
	ix := New()
	d := doc("d1", "alice", "duplicate indexing test")
	ix.Add(d)
	ix.Add(d)

	for _, term := range []string{"duplicate", "indexing", "test"} {
		if refs := ix.Lookup(term); len(refs) != 1 {
			t.Errorf("term %q has %d refs after double add; want 1", term, len(refs))
		}
	}
}

func TestIndex_RemoveCleansEmptyEntries(t *testing.T) {
	ix := New()
	ix.Add(doc("d1", "alice", "shared unique1"))
	ix.Add(doc("d2", "alice", "shared unique2"))

	ix.Remove("d1")

	if refs := ix.Lookup("unique1"); refs != nil {
		t.Errorf("unique1 still referenced after remove: %v", refs)
	}
	if refs := ix.Lookup("shared"); len(refs) != 1 || refs[0].DocumentID != "d2" {
		t.Errorf("shared should reference only d2, got %v", refs)
	}

	ix.Remove("d2")
	if ix.TermCount() != 0 {
		t.Errorf("index should be empty, has %d terms", ix.TermCount())
	}
}

func TestIndex_RemoveUnknownDocument(t *testing.T) {
	ix := New()
	ix.Add(doc("d1", "alice", "content words"))
	ix.Remove("ghost")

	if refs := ix.Lookup("content"); len(refs) != 1 {
		t.Errorf("removing unknown doc changed index state: %v", refs)
	}
}
