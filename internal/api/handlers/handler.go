package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/revanthbethala/Pdf-Summarizer/internal/archive"
	"github.com/revanthbethala/Pdf-Summarizer/internal/db"
	"github.com/revanthbethala/Pdf-Summarizer/internal/gemini"
	"github.com/revanthbethala/Pdf-Summarizer/internal/models"
	"github.com/revanthbethala/Pdf-Summarizer/internal/session"
)

// Session keys - keep these consistent
const (
	StateSessionKey = "state"
	SIDSessionKey   = "sid"
)

// Generator produces summaries and quizzes from extracted document text.
// It is satisfied by *gemini.Client and stubbed in tests.
type Generator interface {
	Summarize(ctx context.Context, text string) (models.Summary, error)
	GenerateQuiz(ctx context.Context, text string) ([]models.Question, error)
}

// Discord Embed Structures (based on documentation)
type DiscordEmbedFooter struct {
	Text    string `json:"text,omitempty"`
	IconURL string `json:"icon_url,omitempty"`
}

type DiscordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type DiscordEmbed struct {
	Title       string              `json:"title,omitempty"`
	Description string              `json:"description,omitempty"`
	Timestamp   string              `json:"timestamp,omitempty"` // ISO8601 timestamp
	Color       int                 `json:"color,omitempty"`     // Decimal color code
	Footer      *DiscordEmbedFooter `json:"footer,omitempty"`
	Fields      []DiscordEmbedField `json:"fields,omitempty"`
}

// WebhookPayload is the structure Discord expects for webhook requests with embeds
type WebhookPayload struct {
	Username string         `json:"username,omitempty"`
	Embeds   []DiscordEmbed `json:"embeds"`
}

// Handler contains the API handlers dependencies
type Handler struct {
	DB            *db.DB
	Gemini        Generator
	Archive       *archive.Client
	DiscordClient *http.Client
	webhookURL    string
	maxUploadSize int64
}

// NewHandler creates a new Handler
func NewHandler(database *db.DB, generator Generator, archiveClient *archive.Client) *Handler {
	return &Handler{
		DB:            database,
		Gemini:        generator,
		Archive:       archiveClient,
		DiscordClient: &http.Client{Timeout: 5 * time.Second},
		webhookURL:    os.Getenv("DISCORD_WEBHOOK_URL"),
		maxUploadSize: maxUploadSizeFromEnv(),
	}
}

const defaultMaxUploadSize = 20 << 20 // 20 MiB

func maxUploadSizeFromEnv() int64 {
	raw := os.Getenv("MAX_UPLOAD_MB")
	if raw == "" {
		return defaultMaxUploadSize
	}
	var mb int64
	if _, err := fmt.Sscanf(raw, "%d", &mb); err != nil || mb <= 0 {
		log.Printf("WARN: Invalid MAX_UPLOAD_MB %q, using default", raw)
		return defaultMaxUploadSize
	}
	return mb << 20
}

// sendDiscordNotification sends an embed message to the configured Discord webhook.
// It runs asynchronously to avoid blocking the main request flow.
func (h *Handler) sendDiscordNotification(embed DiscordEmbed) {
	go func() {
		if h.webhookURL == "" {
			return
		}

		if embed.Timestamp == "" {
			embed.Timestamp = time.Now().Format(time.RFC3339)
		}

		payload := WebhookPayload{
			Username: "PdfSummarizer Notifier",
			Embeds:   []DiscordEmbed{embed},
		}

		jsonPayload, err := json.Marshal(payload)
		if err != nil {
			log.Printf("ERROR: Failed to marshal Discord embed payload: %v", err)
			return
		}

		req, err := http.NewRequest("POST", h.webhookURL, bytes.NewBuffer(jsonPayload))
		if err != nil {
			log.Printf("ERROR: Failed to create Discord embed request: %v", err)
			return
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := h.DiscordClient.Do(req)
		if err != nil {
			log.Printf("ERROR: Failed to send Discord embed notification: %v", err)
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 300 {
			bodyBytes, _ := io.ReadAll(resp.Body)
			log.Printf("ERROR: Discord embed notification failed with status %d: %s", resp.StatusCode, string(bodyBytes))
		}
	}()
}

// handleErrorAndNotify logs an error, sends a Discord notification, and aborts the request.
func (h *Handler) handleErrorAndNotify(c *gin.Context, statusCode int, errorContext string, err error) {
	sid := sessionID(c)
	log.Printf("ERROR: %s: %v (SessionID: %s)", errorContext, err, sid)

	errorEmbed := DiscordEmbed{
		Title:       fmt.Sprintf("🚨 API Error: %s", errorContext),
		Description: fmt.Sprintf("**Error Details:**\n```%s```", err.Error()),
		Color:       0xFF0000,
		Fields: []DiscordEmbedField{
			{Name: "HTTP Status", Value: fmt.Sprintf("%d", statusCode), Inline: true},
			{Name: "Path", Value: c.Request.URL.Path, Inline: false},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}
	if sid != uuid.Nil {
		errorEmbed.Fields = append(errorEmbed.Fields, DiscordEmbedField{Name: "Session", Value: fmt.Sprintf("`%s`", sid.String()), Inline: true})
	}
	h.sendDiscordNotification(errorEmbed)

	c.AbortWithStatusJSON(statusCode, gin.H{"error": fmt.Sprintf("%s: %v", errorContext, err)})
}

// handleGenerationError maps a content generation failure to a response that
// carries the failure kind so the client can distinguish remote outages from
// malformed model output.
func (h *Handler) handleGenerationError(c *gin.Context, errorContext string, err error) {
	kind := gemini.KindRemote
	var genErr *gemini.Error
	if errors.As(err, &genErr) {
		kind = genErr.Kind
	}

	sid := sessionID(c)
	log.Printf("ERROR: %s (%s): %v (SessionID: %s)", errorContext, kind, err, sid)

	h.sendDiscordNotification(DiscordEmbed{
		Title:       fmt.Sprintf("🚨 Generation Failed: %s", errorContext),
		Description: fmt.Sprintf("**Error Details:**\n```%s```", err.Error()),
		Color:       0xFF0000,
		Fields: []DiscordEmbedField{
			{Name: "Kind", Value: string(kind), Inline: true},
			{Name: "Path", Value: c.Request.URL.Path, Inline: false},
		},
	})

	c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{
		"error": fmt.Sprintf("%s: %v", errorContext, err),
		"kind":  string(kind),
	})
}

// sessionID returns the session UUID placed in the context by the
// SessionInit middleware.
func sessionID(c *gin.Context) uuid.UUID {
	v, exists := c.Get("sessionID")
	if !exists {
		return uuid.Nil
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}

// loadState fetches the workflow state from the session, normalizing
// anything unrecognized back to a fresh home state.
func loadState(c *gin.Context) *session.State {
	sess := sessions.Default(c)
	v := sess.Get(StateSessionKey)
	st, ok := v.(session.State)
	if !ok {
		return session.New()
	}
	st.Normalize()
	return &st
}

// saveState writes the workflow state back to the session store.
func saveState(c *gin.Context, st *session.State) error {
	sess := sessions.Default(c)
	sess.Set(StateSessionKey, *st)
	if err := sess.Save(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}
