package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/revanthbethala/Pdf-Summarizer/internal/db"
	"github.com/revanthbethala/Pdf-Summarizer/internal/session"
)

// questionView is a quiz question as shown to the client while the quiz is
// in progress. The correct answer and explanation are withheld until results.
type questionView struct {
	Index    int      `json:"index"`
	Total    int      `json:"total"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Selected string   `json:"selected,omitempty"`
}

func currentQuestionView(st *session.State) questionView {
	q := st.Questions[st.CurrentQuestion]
	view := questionView{
		Index:    st.CurrentQuestion,
		Total:    len(st.Questions),
		Question: q.Question,
		Options:  q.Options,
	}
	if a, ok := st.RecordedAnswer(); ok {
		view.Selected = a
	}
	return view
}

// HandleGenerateQuiz builds a quiz from the current document and moves the
// session to the quiz page.
func (h *Handler) HandleGenerateQuiz(c *gin.Context) {
	// 1. A summarized document must be in the session
	st := loadState(c)
	if st.DocumentText == "" || st.Summary == nil {
		h.handleErrorAndNotify(c, http.StatusConflict, "Generate Quiz",
			errors.New("no document has been processed in this session"))
		return
	}

	// 2. Generate questions
	questions, err := h.Gemini.GenerateQuiz(c.Request.Context(), st.DocumentText)
	if err != nil {
		h.handleGenerationError(c, "Generate Quiz", err)
		return
	}
	if len(questions) == 0 {
		h.handleErrorAndNotify(c, http.StatusBadGateway, "Generate Quiz",
			errors.New("model returned no questions"))
		return
	}

	// 3. Start the quiz at question 0
	if err := st.StartQuiz(questions); err != nil {
		h.handleErrorAndNotify(c, http.StatusConflict, "Generate Quiz", err)
		return
	}
	st.QuizID = uuid.New()
	if err := saveState(c, st); err != nil {
		h.handleErrorAndNotify(c, http.StatusInternalServerError, "Save Session State", err)
		return
	}

	if h.DB != nil {
		if err := h.DB.Queries.CreateQuiz(c.Request.Context(), db.CreateQuizParams{
			ID:         st.QuizID,
			DocumentID: st.DocumentID,
			Questions:  questions,
		}); err != nil {
			log.Printf("WARN: Failed to persist quiz record: %v", err)
		}
	}

	h.sendDiscordNotification(DiscordEmbed{
		Title: "❓ Quiz Generated",
		Color: 0x00FF00,
		Fields: []DiscordEmbedField{
			{Name: "File", Value: st.FileName, Inline: true},
			{Name: "Questions", Value: fmt.Sprintf("%d", len(questions)), Inline: true},
		},
	})

	log.Printf("INFO: Generated quiz with %d questions for session %s", len(questions), sessionID(c))

	c.JSON(http.StatusOK, gin.H{
		"page":     st.Page,
		"question": currentQuestionView(st),
	})
}

// AnswerRequest is the body for quiz navigation. Action is one of
// "next", "previous" or "finish".
type AnswerRequest struct {
	SelectedOption string `json:"selected_option"`
	Action         string `json:"action" binding:"required"`
}

// HandleAnswer records a selection and navigates the quiz.
func (h *Handler) HandleAnswer(c *gin.Context) {
	// 1. Bind and validate the request
	var req AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleErrorAndNotify(c, http.StatusBadRequest, "Bind Answer Request", err)
		return
	}

	st := loadState(c)
	if st.Page != session.PageQuiz {
		h.handleErrorAndNotify(c, http.StatusConflict, "Answer Question",
			errors.New("no quiz is in progress"))
		return
	}

	// 2. Apply the navigation action
	var err error
	switch req.Action {
	case "next":
		err = st.Next(req.SelectedOption)
	case "previous":
		err = st.Previous(req.SelectedOption)
	case "finish":
		if st.CurrentQuestion != len(st.Questions)-1 {
			h.handleErrorAndNotify(c, http.StatusBadRequest, "Answer Question",
				errors.New("finish is only valid on the last question"))
			return
		}
		err = st.Next(req.SelectedOption)
	default:
		h.handleErrorAndNotify(c, http.StatusBadRequest, "Answer Question",
			fmt.Errorf("unknown action %q", req.Action))
		return
	}
	if err != nil {
		status := http.StatusConflict
		if errors.Is(err, session.ErrNoSelection) {
			status = http.StatusBadRequest
		}
		h.handleErrorAndNotify(c, status, "Answer Question", err)
		return
	}

	if err := saveState(c, st); err != nil {
		h.handleErrorAndNotify(c, http.StatusInternalServerError, "Save Session State", err)
		return
	}

	// 3. Completing the last question lands on results
	if st.Page == session.PageResults {
		h.finishQuiz(c, st)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":     st.Page,
		"question": currentQuestionView(st),
	})
}

// finishQuiz scores the completed quiz, persists the outcome and responds
// with the results payload.
func (h *Handler) finishQuiz(c *gin.Context, st *session.State) {
	res, err := st.Results()
	if err != nil {
		h.handleErrorAndNotify(c, http.StatusInternalServerError, "Score Quiz", err)
		return
	}

	if h.DB != nil && st.QuizID != uuid.Nil {
		if err := h.DB.Queries.CreateQuizResult(c.Request.Context(), db.CreateQuizResultParams{
			QuizID: st.QuizID,
			Score:  res.Percentage,
			Tier:   res.Tier,
			Review: res.Review,
		}); err != nil {
			log.Printf("WARN: Failed to persist quiz result: %v", err)
		}
	}

	h.sendDiscordNotification(DiscordEmbed{
		Title: "🏁 Quiz Finished",
		Color: 0x00BFFF,
		Fields: []DiscordEmbedField{
			{Name: "Score", Value: fmt.Sprintf("%d/%d (%.0f%%)", res.Correct, res.Total, res.Percentage), Inline: true},
			{Name: "Tier", Value: res.Tier, Inline: true},
		},
	})

	log.Printf("INFO: Quiz finished for session %s: %d/%d (%s)", sessionID(c), res.Correct, res.Total, res.Tier)

	c.JSON(http.StatusOK, gin.H{
		"page":    st.Page,
		"results": res,
	})
}

// HandleResults returns the scored outcome of the completed quiz.
func (h *Handler) HandleResults(c *gin.Context) {
	st := loadState(c)
	res, err := st.Results()
	if err != nil {
		h.handleErrorAndNotify(c, http.StatusConflict, "Get Quiz Results", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"page":    st.Page,
		"results": res,
	})
}

// HandleRetryQuiz restarts the same quiz with cleared progress.
func (h *Handler) HandleRetryQuiz(c *gin.Context) {
	st := loadState(c)
	if err := st.RetryQuiz(); err != nil {
		h.handleErrorAndNotify(c, http.StatusConflict, "Retry Quiz", err)
		return
	}
	if err := saveState(c, st); err != nil {
		h.handleErrorAndNotify(c, http.StatusInternalServerError, "Save Session State", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"page":     st.Page,
		"question": currentQuestionView(st),
	})
}

// HandleBackToSummary leaves the quiz and returns to the summary page.
func (h *Handler) HandleBackToSummary(c *gin.Context) {
	st := loadState(c)
	if err := st.BackToSummary(); err != nil {
		h.handleErrorAndNotify(c, http.StatusConflict, "Back To Summary", err)
		return
	}
	if err := saveState(c, st); err != nil {
		h.handleErrorAndNotify(c, http.StatusInternalServerError, "Save Session State", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"page":      st.Page,
		"file_name": st.FileName,
		"summary":   st.Summary,
	})
}
