package session

import (
	"errors"

	"github.com/google/uuid"

	"github.com/revanthbethala/Pdf-Summarizer/internal/models"
)

// Page identifies the screen the workflow is currently on.
type Page string

const (
	PageHome    Page = "home"
	PageSummary Page = "summary"
	PageQuiz    Page = "quiz"
	PageResults Page = "results"
)

var (
	ErrNoDocument  = errors.New("no document has been processed")
	ErrNoQuiz      = errors.New("no quiz has been generated")
	ErrNoSelection = errors.New("an option must be selected before advancing")
	ErrWrongPage   = errors.New("operation not allowed on the current page")
)

// State is the per-session workflow state. It is stored in the session
// cookie store via gob, so every field must be gob-encodable.
type State struct {
	Page            Page
	DocumentID      uuid.UUID
	QuizID          uuid.UUID
	FileName        string
	DocumentText    string
	Summary         *models.Summary
	Questions       []models.Question
	CurrentQuestion int
	Answers         map[int]string
	QuizCompleted   bool
}

// New returns a fresh state on the home page.
func New() *State {
	return &State{Page: PageHome, Answers: map[int]string{}}
}

// Reset discards everything and returns to the home page.
func (s *State) Reset() {
	*s = *New()
}

// Normalize repairs state loaded from an untrusted store. A state whose
// page is unrecognized is fully reset rather than patched.
func (s *State) Normalize() {
	switch s.Page {
	case PageHome, PageSummary, PageQuiz, PageResults:
	default:
		s.Reset()
		return
	}
	if s.Answers == nil {
		s.Answers = map[int]string{}
	}
}

// SetSummary installs a processed document and moves to the summary page.
// Any quiz from a previous document is discarded.
func (s *State) SetSummary(fileName, text string, summary models.Summary) {
	s.Reset()
	s.Page = PageSummary
	s.FileName = fileName
	s.DocumentText = text
	s.Summary = &summary
}

// StartQuiz installs questions and moves to the quiz page at question 0
// with all progress cleared.
func (s *State) StartQuiz(questions []models.Question) error {
	if s.Summary == nil || s.DocumentText == "" {
		return ErrNoDocument
	}
	s.Page = PageQuiz
	s.QuizID = uuid.Nil
	s.Questions = questions
	s.CurrentQuestion = 0
	s.Answers = map[int]string{}
	s.QuizCompleted = false
	return nil
}

// RecordedAnswer returns the stored answer for the current question.
func (s *State) RecordedAnswer() (string, bool) {
	a, ok := s.Answers[s.CurrentQuestion]
	return a, ok
}

func (s *State) record(selected string) {
	if selected != "" {
		s.Answers[s.CurrentQuestion] = selected
	}
}

// Next records the selection and advances to the next question. On the
// last question it completes the quiz and moves to the results page.
// Advancing with no selection is allowed only when an answer for the
// current question was already recorded.
func (s *State) Next(selected string) error {
	if s.Page != PageQuiz {
		return ErrWrongPage
	}
	if len(s.Questions) == 0 {
		return ErrNoQuiz
	}
	s.record(selected)
	if _, ok := s.Answers[s.CurrentQuestion]; !ok {
		return ErrNoSelection
	}
	if s.CurrentQuestion == len(s.Questions)-1 {
		s.QuizCompleted = true
		s.Page = PageResults
		return nil
	}
	s.CurrentQuestion++
	return nil
}

// Previous records any selection and moves back one question. It is a
// no-op on the first question.
func (s *State) Previous(selected string) error {
	if s.Page != PageQuiz {
		return ErrWrongPage
	}
	if len(s.Questions) == 0 {
		return ErrNoQuiz
	}
	s.record(selected)
	if s.CurrentQuestion > 0 {
		s.CurrentQuestion--
	}
	return nil
}

// RetryQuiz restarts the same quiz from question 0 with answers cleared.
func (s *State) RetryQuiz() error {
	if len(s.Questions) == 0 {
		return ErrNoQuiz
	}
	s.Page = PageQuiz
	s.CurrentQuestion = 0
	s.Answers = map[int]string{}
	s.QuizCompleted = false
	return nil
}

// BackToSummary returns to the summary page. Quiz progress is kept
// untouched; only generating a new quiz clears it.
func (s *State) BackToSummary() error {
	if s.Summary == nil {
		return ErrNoDocument
	}
	s.Page = PageSummary
	return nil
}
