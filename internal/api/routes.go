package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/revanthbethala/Pdf-Summarizer/internal/api/handlers"
)

// SetupRoutes sets up the API routes
func SetupRoutes(router *gin.Engine, handler *handlers.Handler) {
	router.Use(CORSMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	api.Use(SessionInit())
	{
		api.POST("/documents", handler.HandleUploadDocument) // Upload a document, get its summary
		api.GET("/session", handler.HandleSessionView)       // Current page and its data
		api.POST("/session/reset", handler.HandleResetSession)

		quiz := api.Group("/quiz")
		{
			quiz.POST("/generate", handler.HandleGenerateQuiz) // Build a quiz from the current document
			quiz.POST("/answer", handler.HandleAnswer)         // Record a selection and navigate
			quiz.GET("/results", handler.HandleResults)
			quiz.POST("/retry", handler.HandleRetryQuiz)
			quiz.POST("/back", handler.HandleBackToSummary)
		}

		api.GET("/history", handler.HandleHistory) // Past documents and quiz outcomes
	}
}
