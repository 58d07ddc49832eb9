// Package gemini wraps the remote generative model used for document
// summarization and quiz generation. Long documents are chunked, one
// request is issued per chunk sequentially, and the per-chunk replies are
// folded into a single result.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/revanthbethala/Pdf-Summarizer/internal/chunker"
	"github.com/revanthbethala/Pdf-Summarizer/internal/memocache"
	"github.com/revanthbethala/Pdf-Summarizer/internal/models"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	// ModelName is the Gemini model to use
	ModelName = "gemini-2.0-flash"
	// MaxQuestions caps a generated quiz regardless of how many chunks
	// contributed questions.
	MaxQuestions = 10
)

// SummaryPrompt is the per-chunk instruction for summarization.
const SummaryPrompt = `You are an intelligent text summarizer. Summarize the document text that follows. Follow these requirements exactly:

1. Produce a short descriptive title for the text.
2. List the main topics covered, most important first.
3. Write a concise summary covering all significant points.

Format your response as a JSON object with the following structure:
{
  "title": "Descriptive Title Based on the Text",
  "topics": ["first topic", "second topic"],
  "summary": "Concise summary of the text."
}
`

// QuizPrompt is the per-chunk instruction for quiz generation.
const QuizPrompt = `Generate a multiple-choice quiz based on the document text that follows. Follow these requirements exactly:

1. Create exactly 10 questions covering the main concepts of the text.
2. Each question must have exactly 4 options with exactly one correct answer.
3. The "correct_answer" field must be a literal copy of one of the question's options.
4. For each question provide a concise "explanation" of why the correct answer is correct, based on the text.
5. Make incorrect options plausible; avoid obvious wrong answers or joke options.

Format your response as a JSON object with the following structure:
{
  "questions": [
    {
      "question": "Question text here?",
      "options": ["Option A", "Option B", "Option C", "Option D"],
      "correct_answer": "Option B",
      "explanation": "Explanation why Option B is correct."
    }
  ]
}
`

// Client wraps the Gemini client
type Client struct {
	client     *genai.Client
	model      *genai.GenerativeModel
	chunkWords int

	summaries *memocache.Cache[models.Summary]
	quizzes   *memocache.Cache[[]models.Question]

	// generate issues one model call; swapped out in tests.
	generate func(ctx context.Context, prompt string) (string, error)
}

// NewClient creates a new Gemini client. The API key is required; without
// it every generation call would fail, so construction fails instead.
func NewClient(ctx context.Context) (*Client, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(ModelName)
	model.ResponseMIMEType = "application/json"
	model.SetTemperature(0.2)
	model.SetTopK(40)
	model.SetTopP(0.95)
	model.SetMaxOutputTokens(8192)

	c := &Client{
		client:     client,
		model:      model,
		chunkWords: chunkWordsFromEnv(),
		summaries:  memocache.New[models.Summary](memocache.SizeFromEnv()),
		quizzes:    memocache.New[[]models.Question](memocache.SizeFromEnv()),
	}
	c.generate = c.generateContent
	return c, nil
}

// Close closes the Gemini client
func (c *Client) Close() {
	if c.client != nil {
		c.client.Close()
	}
}

// Summarize produces a structured summary of text. Results are memoized
// by exact input text: a repeated call with byte-identical input returns
// the cached record without touching the remote model.
func (c *Client) Summarize(ctx context.Context, text string) (models.Summary, error) {
	if cached, ok := c.summaries.Get(text); ok {
		return cached, nil
	}

	chunks := chunker.Split(text, c.chunkWords)
	parts := make([]chunkSummary, 0, len(chunks))
	for i, chunk := range chunks {
		raw, err := c.generate(ctx, SummaryPrompt+"\n"+chunk)
		if err != nil {
			return models.Summary{}, &Error{Kind: KindRemote, Op: "summarize",
				Err: fmt.Errorf("chunk %d/%d: %w", i+1, len(chunks), err)}
		}

		var part chunkSummary
		if err := json.Unmarshal([]byte(extractJSON(raw)), &part); err != nil {
			return models.Summary{}, &Error{Kind: KindParse, Op: "summarize",
				Err: fmt.Errorf("chunk %d/%d: %w", i+1, len(chunks), err)}
		}
		parts = append(parts, part)
	}

	summary := aggregateSummaries(parts)
	c.summaries.Add(text, summary)
	return summary, nil
}

// GenerateQuiz produces up to MaxQuestions multiple-choice questions from
// text. Per-chunk question lists are concatenated in chunk order before
// truncation, so with multiple chunks only the earliest chunks
// contribute. Memoized like Summarize.
func (c *Client) GenerateQuiz(ctx context.Context, text string) ([]models.Question, error) {
	if cached, ok := c.quizzes.Get(text); ok {
		return cached, nil
	}

	chunks := chunker.Split(text, c.chunkWords)
	var questions []models.Question
	for i, chunk := range chunks {
		raw, err := c.generate(ctx, QuizPrompt+"\n"+chunk)
		if err != nil {
			return nil, &Error{Kind: KindRemote, Op: "generate quiz",
				Err: fmt.Errorf("chunk %d/%d: %w", i+1, len(chunks), err)}
		}

		var reply quizReply
		if err := json.Unmarshal([]byte(extractJSON(raw)), &reply); err != nil {
			return nil, &Error{Kind: KindParse, Op: "generate quiz",
				Err: fmt.Errorf("chunk %d/%d: %w", i+1, len(chunks), err)}
		}
		questions = append(questions, reply.Questions...)
	}

	quiz := truncateQuestions(questions, MaxQuestions)
	c.quizzes.Add(text, quiz)
	return quiz, nil
}

// generateContent sends one request to Gemini and returns the reply text.
func (c *Client) generateContent(ctx context.Context, prompt string) (string, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content generated")
	}

	var text string
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text += string(t)
		}
	}
	if text == "" {
		return "", fmt.Errorf("no text content found in response")
	}
	return text, nil
}

func chunkWordsFromEnv() int {
	if v := os.Getenv("CHUNK_WORDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return chunker.DefaultMaxWords
}
