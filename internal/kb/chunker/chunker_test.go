package chunker

import (
	"fmt"
	"strings"
	"testing"
)

func TestChunk_SmallWindowNoOverlap(t *testing.T) {
	chunks := Chunk("apple banana apple cherry", 2, 0)

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0].Text != "apple banana" {
		t.Errorf("chunk 0 = %q; want %q", chunks[0].Text, "apple banana")
	}
	if chunks[1].Text != "apple cherry" {
		t.Errorf("chunk 1 = %q; want %q", chunks[1].Text, "apple cherry")
	}
	if chunks[1].StartIndex != 2 {
		t.Errorf("chunk 1 start index = %d; want 2", chunks[1].StartIndex)
	}
}

func TestChunk_ShortTextSingleChunk(t *testing.T) {
	text := "only a handful of words here"
	chunks := Chunk(text, 1000, 100)

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk for short text, got %d", len(chunks))
	}
	if chunks[0].Text != text {
		t.Errorf("chunk text = %q; want the whole text", chunks[0].Text)
	}
	if chunks[0].WordCount != 6 {
		t.Errorf("word count = %d; want 6", chunks[0].WordCount)
	}
	if chunks[0].StartIndex != 0 {
		t.Errorf("start index = %d; want 0", chunks[0].StartIndex)
	}
}

func TestChunk_Overlap(t *testing.T) {
	words := make([]string, 10)
	for i := range words {
		words[i] = fmt.Sprintf("w%d", i)
	}
	chunks := Chunk(strings.Join(words, " "), 4, 2)

	// step = 2, so starts are 0, 2, 4, 6, 8
	wantStarts := []int{0, 2, 4, 6, 8}
	if len(chunks) != len(wantStarts) {
		t.Fatalf("expected %d chunks, got %d", len(wantStarts), len(chunks))
	}
	for i, c := range chunks {
		if c.StartIndex != wantStarts[i] {
			t.Errorf("chunk %d start = %d; want %d", i, c.StartIndex, wantStarts[i])
		}
	}
	// consecutive chunks share the overlap words
	if !strings.HasPrefix(chunks[1].Text, "w2 w3") {
		t.Errorf("chunk 1 should start with the overlap, got %q", chunks[1].Text)
	}
}

func TestChunk_CoversEveryWord(t *testing.T) {
	words := make([]string, 57)
	for i := range words {
		words[i] = fmt.Sprintf("word%d", i)
	}
	chunks := Chunk(strings.Join(words, " "), 10, 3)

	covered := make(map[int]bool)
	for _, c := range chunks {
		for w := c.StartIndex; w < c.StartIndex+c.WordCount; w++ {
			covered[w] = true
		}
	}
	for i := range words {
		if !covered[i] {
			t.Errorf("word %d not covered by any chunk", i)
		}
	}
	for i, c := range chunks {
		if strings.TrimSpace(c.Text) == "" {
			t.Errorf("chunk %d is empty after trimming", i)
		}
	}
}

func TestChunk_Deterministic(t *testing.T) {
	text := strings.Repeat("lorem ipsum dolor sit amet ", 200)
	first := Chunk(text, 50, 10)
	second := Chunk(text, 50, 10)

	if len(first) != len(second) {
		t.Fatalf("chunk counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("chunk %d differs between runs", i)
		}
	}
}

func TestChunk_EmptyAndWhitespace(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t  \n"} {
		if chunks := Chunk(text, 100, 10); chunks != nil {
			t.Errorf("Chunk(%q) = %d chunks; want none", text, len(chunks))
		}
	}
}

func TestChunk_OverlapGEWindow(t *testing.T) {
	// degenerate config must still terminate and advance
	chunks := Chunk("a b c d e", 2, 5)
	if len(chunks) == 0 {
		t.Fatal("expected chunks")
	}
	if chunks[len(chunks)-1].StartIndex+chunks[len(chunks)-1].WordCount != 5 {
		t.Error("last chunk should reach the end of the text")
	}
}
