package models

import (
	"time"

	"github.com/google/uuid"
)

// Summary is the structured result of summarizing one document.
// Topics are deduplicated and kept in first-seen order across chunks.
type Summary struct {
	Title   string   `json:"title"`
	Topics  []string `json:"topics"`
	Summary string   `json:"summary"`
}

// Question is a single multiple-choice quiz question. CorrectAnswer is
// expected to be a literal match against one of Options; that contract is
// asked of the model but not enforced here.
type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

// Document describes an uploaded source file after text extraction.
type Document struct {
	ID        uuid.UUID `json:"id"`
	SessionID uuid.UUID `json:"session_id"`
	FileName  string    `json:"file_name"`
	Format    string    `json:"format"`
	WordCount int       `json:"word_count"`
	CreatedAt time.Time `json:"created_at"`
}

// HistoryEntry is one archived workflow run returned by the history endpoint.
type HistoryEntry struct {
	DocumentID uuid.UUID  `json:"document_id"`
	FileName   string     `json:"file_name"`
	Title      string     `json:"title"`
	Questions  int        `json:"questions"`
	Score      *float64   `json:"score,omitempty"`
	Tier       *string    `json:"tier,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}
