package chunker

import (
	"fmt"
	"strings"
	"testing"
)

func TestSplit_EmptyInput(t *testing.T) {
	if got := Split("", 10); len(got) != 0 {
		t.Errorf("expected no chunks for empty input, got %d", len(got))
	}
	if got := Split("   \n\t ", 10); len(got) != 0 {
		t.Errorf("expected no chunks for whitespace-only input, got %d", len(got))
	}
}

func TestSplit_ChunkCount(t *testing.T) {
	cases := []struct {
		words    int
		maxWords int
		want     int
	}{
		{1, 1, 1},
		{10, 10, 1},
		{11, 10, 2},
		{20, 10, 2},
		{21, 10, 3},
		{1000, 1000, 1},
		{2500, 1000, 3},
	}
	for _, tc := range cases {
		text := strings.TrimSpace(strings.Repeat("w ", tc.words))
		got := Split(text, tc.maxWords)
		if len(got) != tc.want {
			t.Errorf("%d words / max %d: expected %d chunks, got %d",
				tc.words, tc.maxWords, tc.want, len(got))
		}
	}
}

// Concatenating the words of all chunks must reproduce the original word
// sequence exactly, in order.
func TestSplit_ReassemblesOriginalWords(t *testing.T) {
	var words []string
	for i := 0; i < 137; i++ {
		words = append(words, fmt.Sprintf("word%d", i))
	}
	text := strings.Join(words, "  \n ")

	for _, maxWords := range []int{1, 7, 50, 137, 500} {
		chunks := Split(text, maxWords)

		var got []string
		for _, c := range chunks {
			got = append(got, strings.Fields(c)...)
		}
		if len(got) != len(words) {
			t.Fatalf("max %d: expected %d words total, got %d", maxWords, len(words), len(got))
		}
		for i := range words {
			if got[i] != words[i] {
				t.Fatalf("max %d: word %d: expected %q, got %q", maxWords, i, words[i], got[i])
			}
		}
	}
}

func TestSplit_NoChunkExceedsMax(t *testing.T) {
	text := strings.Repeat("alpha beta gamma ", 100)
	for _, maxWords := range []int{1, 3, 17} {
		for i, c := range Split(text, maxWords) {
			if n := len(strings.Fields(c)); n > maxWords {
				t.Errorf("max %d: chunk %d has %d words", maxWords, i, n)
			}
		}
	}
}

func TestSplit_ChunksAreSingleSpaced(t *testing.T) {
	chunks := Split("a \t b\n\nc d e", 3)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0] != "a b c" || chunks[1] != "d e" {
		t.Errorf("unexpected chunks: %q", chunks)
	}
}

func TestSplit_DefaultsOnNonPositiveMax(t *testing.T) {
	text := strings.TrimSpace(strings.Repeat("w ", DefaultMaxWords+1))
	if got := Split(text, 0); len(got) != 2 {
		t.Errorf("expected default max words to apply, got %d chunks", len(got))
	}
}
