package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/revanthbethala/Pdf-Summarizer/internal/db"
	"github.com/revanthbethala/Pdf-Summarizer/internal/extract"
)

// HandleUploadDocument processes an uploaded file end to end: extract the
// text, summarize it, and move the session to the summary page.
func (h *Handler) HandleUploadDocument(c *gin.Context) {
	// 1. Read the multipart upload
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadSize)
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.handleErrorAndNotify(c, http.StatusBadRequest, "Read Uploaded File", err)
		return
	}

	// 2. Reject unsupported formats before reading any content
	format := extract.DetectFormat(fileHeader.Filename)
	if format == extract.FormatUnknown {
		h.handleErrorAndNotify(c, http.StatusUnsupportedMediaType, "Detect File Format",
			fmt.Errorf("unsupported file type %q, expected .pdf, .docx or .txt", fileHeader.Filename))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.handleErrorAndNotify(c, http.StatusInternalServerError, "Open Uploaded File", err)
		return
	}
	defer file.Close()

	// Keep the raw bytes so the original can be archived after extraction.
	raw, err := io.ReadAll(file)
	if err != nil {
		h.handleErrorAndNotify(c, http.StatusBadRequest, "Read Uploaded File", err)
		return
	}

	// 3. Extract plain text
	text, err := extract.Extract(bytes.NewReader(raw), format)
	if err != nil {
		h.handleErrorAndNotify(c, http.StatusUnprocessableEntity, "Extract Document Text", err)
		return
	}
	if text == "" {
		h.handleErrorAndNotify(c, http.StatusUnprocessableEntity, "Extract Document Text",
			errors.New("document contains no extractable text"))
		return
	}

	// 4. Summarize
	summary, err := h.Gemini.Summarize(c.Request.Context(), text)
	if err != nil {
		h.handleGenerationError(c, "Summarize Document", err)
		return
	}

	// 5. Install the new document in the session
	st := loadState(c)
	st.SetSummary(fileHeader.Filename, text, summary)
	st.DocumentID = uuid.New()
	if err := saveState(c, st); err != nil {
		h.handleErrorAndNotify(c, http.StatusInternalServerError, "Save Session State", err)
		return
	}

	sid := sessionID(c)
	wordCount := len(strings.Fields(text))

	// 6. Best-effort persistence and archival, never blocking the response
	if h.DB != nil {
		if err := h.DB.Queries.CreateDocument(c.Request.Context(), db.CreateDocumentParams{
			ID:        st.DocumentID,
			SessionID: sid,
			FileName:  fileHeader.Filename,
			Format:    string(format),
			WordCount: wordCount,
		}); err != nil {
			log.Printf("WARN: Failed to persist document record: %v", err)
		} else if err := h.DB.Queries.CreateSummary(c.Request.Context(), db.CreateSummaryParams{
			DocumentID: st.DocumentID,
			Summary:    summary,
		}); err != nil {
			log.Printf("WARN: Failed to persist summary record: %v", err)
		}
	}
	if h.Archive != nil {
		if _, err := h.Archive.StoreDocument(c.Request.Context(), sid, st.DocumentID, fileHeader.Filename, bytes.NewReader(raw)); err != nil {
			log.Printf("WARN: Failed to archive document: %v", err)
		}
	}

	h.sendDiscordNotification(DiscordEmbed{
		Title: "📄 Document Summarized",
		Color: 0x00FF00,
		Fields: []DiscordEmbedField{
			{Name: "File", Value: fileHeader.Filename, Inline: true},
			{Name: "Format", Value: string(format), Inline: true},
			{Name: "Words", Value: fmt.Sprintf("%d", wordCount), Inline: true},
		},
	})

	log.Printf("INFO: Summarized %q (%d words) for session %s", fileHeader.Filename, wordCount, sid)

	// 7. Return the summary view
	c.JSON(http.StatusOK, gin.H{
		"page":       st.Page,
		"file_name":  st.FileName,
		"word_count": wordCount,
		"summary":    summary,
	})
}
