package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/revanthbethala/Pdf-Summarizer/internal/models"
	"github.com/revanthbethala/Pdf-Summarizer/internal/session"
)

// HandleSessionView returns the current workflow state for the client to
// render, without ever exposing correct answers for an in-progress quiz.
func (h *Handler) HandleSessionView(c *gin.Context) {
	st := loadState(c)

	view := gin.H{"page": st.Page}
	switch st.Page {
	case session.PageSummary:
		view["file_name"] = st.FileName
		view["summary"] = st.Summary
	case session.PageQuiz:
		view["file_name"] = st.FileName
		view["question"] = currentQuestionView(st)
	case session.PageResults:
		res, err := st.Results()
		if err != nil {
			h.handleErrorAndNotify(c, http.StatusInternalServerError, "Get Session State", err)
			return
		}
		view["file_name"] = st.FileName
		view["results"] = res
	}

	c.JSON(http.StatusOK, view)
}

// HandleResetSession discards all workflow state and returns to the home page.
func (h *Handler) HandleResetSession(c *gin.Context) {
	st := loadState(c)
	st.Reset()
	if err := saveState(c, st); err != nil {
		h.handleErrorAndNotify(c, http.StatusInternalServerError, "Save Session State", err)
		return
	}
	log.Printf("INFO: Session %s reset", sessionID(c))
	c.JSON(http.StatusOK, gin.H{"page": st.Page})
}

// HandleHistory lists the session's previously processed documents with
// their quiz outcomes. Requires history persistence to be configured.
func (h *Handler) HandleHistory(c *gin.Context) {
	if h.DB == nil {
		h.handleErrorAndNotify(c, http.StatusNotImplemented, "List History",
			errors.New("history persistence is not configured"))
		return
	}

	sid := sessionID(c)
	if sid == uuid.Nil {
		h.handleErrorAndNotify(c, http.StatusInternalServerError, "List History",
			errors.New("session has no identifier"))
		return
	}

	entries, err := h.DB.Queries.ListHistoryBySession(c.Request.Context(), sid)
	if err != nil {
		h.handleErrorAndNotify(c, http.StatusInternalServerError, "List History", err)
		return
	}
	if entries == nil {
		entries = []models.HistoryEntry{}
	}

	c.JSON(http.StatusOK, gin.H{"history": entries})
}
