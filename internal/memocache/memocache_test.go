package memocache

import (
	"fmt"
	"testing"
)

func TestCache_HitOnIdenticalText(t *testing.T) {
	c := New[string](8)
	c.Add("some document text", "result")

	got, ok := c.Get("some document text")
	if !ok {
		t.Fatal("expected cache hit for identical text")
	}
	if got != "result" {
		t.Errorf("expected %q, got %q", "result", got)
	}
}

func TestCache_WhitespaceDifferenceMisses(t *testing.T) {
	c := New[string](8)
	c.Add("some document text", "result")

	if _, ok := c.Get("some document  text"); ok {
		t.Error("expected miss: inputs differing in whitespace are distinct keys")
	}
}

func TestCache_EvictsBeyondBound(t *testing.T) {
	c := New[int](4)
	for i := 0; i < 10; i++ {
		c.Add(fmt.Sprintf("doc-%d", i), i)
	}
	if c.Len() != 4 {
		t.Errorf("expected cache bounded to 4 entries, got %d", c.Len())
	}
	// Oldest entries are gone, newest survive.
	if _, ok := c.Get("doc-0"); ok {
		t.Error("expected doc-0 to be evicted")
	}
	if v, ok := c.Get("doc-9"); !ok || v != 9 {
		t.Errorf("expected doc-9 to survive, got (%v, %v)", v, ok)
	}
}

func TestCache_NonPositiveSizeFallsBack(t *testing.T) {
	c := New[string](0)
	c.Add("x", "y")
	if _, ok := c.Get("x"); !ok {
		t.Error("expected cache with default bound to store entries")
	}
}

func TestSizeFromEnv(t *testing.T) {
	t.Setenv("MEMO_CACHE_SIZE", "64")
	if got := SizeFromEnv(); got != 64 {
		t.Errorf("expected 64, got %d", got)
	}
	t.Setenv("MEMO_CACHE_SIZE", "not-a-number")
	if got := SizeFromEnv(); got != DefaultSize {
		t.Errorf("expected default %d, got %d", DefaultSize, got)
	}
}
