package api

import (
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/revanthbethala/Pdf-Summarizer/internal/api/handlers"
)

// CORSMiddleware adds CORS headers to allow cross-origin requests
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Read the allowed origin from environment variable
		frontendURL := os.Getenv("FRONTEND_URL")
		if frontendURL == "" {
			// Fallback to the typical Vite dev server URL
			frontendURL = "http://localhost:5173"
		}
		c.Writer.Header().Set("Access-Control-Allow-Origin", strings.TrimSuffix(frontendURL, "/"))
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// SessionInit ensures every request carries a session UUID. Sessions are
// anonymous: the UUID only groups one browser's workflow and history.
func SessionInit() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)

		var sid uuid.UUID
		if v := sess.Get(handlers.SIDSessionKey); v != nil {
			if s, ok := v.(string); ok {
				if parsed, err := uuid.Parse(s); err == nil {
					sid = parsed
				}
			}
		}
		if sid == uuid.Nil {
			sid = uuid.New()
			sess.Set(handlers.SIDSessionKey, sid.String())
			if err := sess.Save(); err != nil {
				log.Printf("ERROR: Failed to initialize session: %v", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to initialize session"})
				return
			}
			log.Printf("INFO: New session %s", sid)
		}

		c.Set("sessionID", sid)
		c.Next()
	}
}
