package gemini

import (
	"regexp"
	"strings"

	"github.com/revanthbethala/Pdf-Summarizer/internal/models"
)

// chunkSummary is the JSON shape the model is asked to emit per chunk.
type chunkSummary struct {
	Title   string   `json:"title"`
	Topics  []string `json:"topics"`
	Summary string   `json:"summary"`
}

// quizReply is the JSON shape of a per-chunk quiz response.
type quizReply struct {
	Questions []models.Question `json:"questions"`
}

var codeFenceRe = regexp.MustCompile("(?s)^```(?:json)?\\s*(.*?)\\s*```$")

// extractJSON strips markdown code fences the model sometimes wraps its
// JSON in, even though it is instructed to emit application/json. If the
// remainder still does not look like a JSON object, the outermost brace
// span is taken.
func extractJSON(s string) string {
	s = strings.TrimSpace(s)
	if m := codeFenceRe.FindStringSubmatch(s); len(m) > 1 {
		s = strings.TrimSpace(m[1])
	}
	if strings.HasPrefix(s, "{") {
		return s
	}
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return s
}

// aggregateSummaries folds per-chunk summaries into one record: the first
// chunk's title (or a fallback), topics deduplicated in first-seen order,
// and the chunk summaries joined with single spaces in chunk order.
func aggregateSummaries(parts []chunkSummary) models.Summary {
	out := models.Summary{Title: "Untitled"}

	seen := make(map[string]bool)
	var summaries []string
	for i, part := range parts {
		if i == 0 && part.Title != "" {
			out.Title = part.Title
		}
		for _, topic := range part.Topics {
			if topic == "" || seen[topic] {
				continue
			}
			seen[topic] = true
			out.Topics = append(out.Topics, topic)
		}
		if part.Summary != "" {
			summaries = append(summaries, part.Summary)
		}
	}
	out.Summary = strings.Join(summaries, " ")
	return out
}

// truncateQuestions caps a combined question list at max entries. With
// multiple chunks only the earliest chunks' questions survive.
func truncateQuestions(questions []models.Question, max int) []models.Question {
	if len(questions) <= max {
		return questions
	}
	return questions[:max]
}
