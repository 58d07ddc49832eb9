package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/revanthbethala/Pdf-Summarizer/internal/memocache"
	"github.com/revanthbethala/Pdf-Summarizer/internal/models"
)

// newTestClient builds a Client whose model calls are served by generate.
func newTestClient(chunkWords int, generate func(ctx context.Context, prompt string) (string, error)) *Client {
	return &Client{
		chunkWords: chunkWords,
		summaries:  memocache.New[models.Summary](16),
		quizzes:    memocache.New[[]models.Question](16),
		generate:   generate,
	}
}

func TestExtractJSON(t *testing.T) {
	cases := []struct{ name, in, want string }{
		{"plain", `{"title":"t"}`, `{"title":"t"}`},
		{"fenced", "```json\n{\"title\":\"t\"}\n```", `{"title":"t"}`},
		{"fenced no lang", "```\n{\"title\":\"t\"}\n```", `{"title":"t"}`},
		{"surrounding prose", "Here you go: {\"title\":\"t\"} hope it helps", `{"title":"t"}`},
		{"whitespace", "  \n{\"a\":1}\n ", `{"a":1}`},
	}
	for _, tc := range cases {
		if got := extractJSON(tc.in); got != tc.want {
			t.Errorf("%s: extractJSON(%q) = %q, want %q", tc.name, tc.in, got, tc.want)
		}
	}
}

func TestAggregateSummaries_TopicsDedupedInFirstSeenOrder(t *testing.T) {
	got := aggregateSummaries([]chunkSummary{
		{Title: "First", Topics: []string{"A", "B"}, Summary: "one."},
		{Title: "Second", Topics: []string{"B", "C"}, Summary: "two."},
	})

	if got.Title != "First" {
		t.Errorf("expected first chunk's title, got %q", got.Title)
	}
	want := []string{"A", "B", "C"}
	if len(got.Topics) != len(want) {
		t.Fatalf("expected topics %v, got %v", want, got.Topics)
	}
	for i := range want {
		if got.Topics[i] != want[i] {
			t.Errorf("topics[%d]: expected %q, got %q", i, want[i], got.Topics[i])
		}
	}
	if got.Summary != "one. two." {
		t.Errorf("expected summaries joined by single space, got %q", got.Summary)
	}
}

func TestAggregateSummaries_TitleFallback(t *testing.T) {
	got := aggregateSummaries([]chunkSummary{{Summary: "text."}})
	if got.Title != "Untitled" {
		t.Errorf("expected fallback title, got %q", got.Title)
	}
}

func summaryReply(title string, topics []string, summary string) string {
	b, _ := json.Marshal(chunkSummary{Title: title, Topics: topics, Summary: summary})
	return string(b)
}

func quizReplyJSON(prefix string, n int) string {
	var qs []models.Question
	for i := 0; i < n; i++ {
		opt := fmt.Sprintf("%s-opt-%d", prefix, i)
		qs = append(qs, models.Question{
			Question:      fmt.Sprintf("%s-q-%d", prefix, i),
			Options:       []string{opt, "b", "c", "d"},
			CorrectAnswer: opt,
			Explanation:   "because",
		})
	}
	b, _ := json.Marshal(quizReply{Questions: qs})
	return string(b)
}

func TestSummarize_AggregatesAcrossChunks(t *testing.T) {
	// 6 words with 3-word chunks -> 2 calls.
	text := "one two three four five six"
	calls := 0
	c := newTestClient(3, func(ctx context.Context, prompt string) (string, error) {
		calls++
		if calls == 1 {
			return summaryReply("Doc Title", []string{"A", "B"}, "part one."), nil
		}
		return summaryReply("ignored", []string{"B", "C"}, "part two."), nil
	})

	got, err := c.Summarize(context.Background(), text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected one call per chunk (2), got %d", calls)
	}
	if got.Title != "Doc Title" || got.Summary != "part one. part two." {
		t.Errorf("unexpected aggregate: %+v", got)
	}
	if len(got.Topics) != 3 {
		t.Errorf("expected 3 deduplicated topics, got %v", got.Topics)
	}
}

func TestSummarize_MemoizesByExactText(t *testing.T) {
	calls := 0
	c := newTestClient(1000, func(ctx context.Context, prompt string) (string, error) {
		calls++
		return summaryReply("T", nil, "s."), nil
	})

	text := "identical input text"
	if _, err := c.Summarize(context.Background(), text); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.Summarize(context.Background(), text); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected exactly 1 remote call for identical inputs, got %d", calls)
	}

	// Any difference, even whitespace, is a miss.
	if _, err := c.Summarize(context.Background(), text+" "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected a fresh call for different input, got %d total", calls)
	}
}

func TestSummarize_ChunkFailureAbortsAndDiscardsPartials(t *testing.T) {
	calls := 0
	c := newTestClient(2, func(ctx context.Context, prompt string) (string, error) {
		calls++
		if calls == 2 {
			return "", errors.New("quota exceeded")
		}
		return summaryReply("T", nil, "s."), nil
	})

	text := "one two three four" // 2 chunks
	_, err := c.Summarize(context.Background(), text)
	if err == nil {
		t.Fatal("expected error when a chunk fails")
	}
	var genErr *Error
	if !errors.As(err, &genErr) || genErr.Kind != KindRemote {
		t.Fatalf("expected remote-kind generation error, got %v", err)
	}

	// Failure must not be cached: the next call re-invokes the model.
	before := calls
	if _, err := c.Summarize(context.Background(), text); err == nil {
		t.Fatal("expected repeated failure")
	}
	if calls == before {
		t.Error("expected failed result not to be memoized")
	}
}

func TestSummarize_BadJSONIsParseError(t *testing.T) {
	c := newTestClient(1000, func(ctx context.Context, prompt string) (string, error) {
		return "not json at all", nil
	})
	_, err := c.Summarize(context.Background(), "text")
	var genErr *Error
	if !errors.As(err, &genErr) || genErr.Kind != KindParse {
		t.Fatalf("expected parse-kind generation error, got %v", err)
	}
}

func TestGenerateQuiz_TruncatesToFirstChunksQuestions(t *testing.T) {
	// 6 words with 2-word chunks -> 3 chunks, 10 questions each.
	text := "one two three four five six"
	calls := 0
	c := newTestClient(2, func(ctx context.Context, prompt string) (string, error) {
		calls++
		return quizReplyJSON(fmt.Sprintf("chunk%d", calls), 10), nil
	})

	quiz, err := c.GenerateQuiz(context.Background(), text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Errorf("expected all 3 chunks to be processed, got %d calls", calls)
	}
	if len(quiz) != MaxQuestions {
		t.Fatalf("expected quiz truncated to %d questions, got %d", MaxQuestions, len(quiz))
	}
	for i, q := range quiz {
		if !strings.HasPrefix(q.Question, "chunk1-") {
			t.Errorf("question %d: expected first chunk's output, got %q", i, q.Question)
		}
	}
}

func TestGenerateQuiz_Memoizes(t *testing.T) {
	calls := 0
	c := newTestClient(1000, func(ctx context.Context, prompt string) (string, error) {
		calls++
		return quizReplyJSON("only", 10), nil
	})

	text := "some document text"
	if _, err := c.GenerateQuiz(context.Background(), text); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.GenerateQuiz(context.Background(), text); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected exactly 1 remote call, got %d", calls)
	}
}

func TestGenerateQuiz_FencedReplyParses(t *testing.T) {
	c := newTestClient(1000, func(ctx context.Context, prompt string) (string, error) {
		return "```json\n" + quizReplyJSON("f", 3) + "\n```", nil
	})
	quiz, err := c.GenerateQuiz(context.Background(), "text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(quiz) != 3 {
		t.Errorf("expected 3 questions, got %d", len(quiz))
	}
}
