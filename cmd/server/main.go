package main

import (
	"context"
	"database/sql" // Session store connection
	"encoding/gob"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/revanthbethala/Pdf-Summarizer/internal/api"
	"github.com/revanthbethala/Pdf-Summarizer/internal/api/handlers"
	"github.com/revanthbethala/Pdf-Summarizer/internal/archive"
	"github.com/revanthbethala/Pdf-Summarizer/internal/db"
	"github.com/revanthbethala/Pdf-Summarizer/internal/gemini"
	"github.com/revanthbethala/Pdf-Summarizer/internal/session"

	sessions "github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/memstore"
	gsessions "github.com/gin-contrib/sessions/postgres"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
)

const storeName = "pdfsummarizer_session"

var sessionSecretKey []byte

func init() {
	// Load environment variables FIRST
	err := godotenv.Load()
	if err != nil {
		if !os.IsNotExist(err) {
			log.Fatalf("FATAL: Error loading .env file: %v", err)
		}
		log.Println("Warning: .env file not found. Relying on system environment variables.")
	}

	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		log.Fatal("FATAL: SESSION_SECRET environment variable must be set.")
	}
	sessionSecretKey = []byte(secret)

	// Register types stored in the session so gob can encode them.
	gob.Register(session.State{})
}

// sessionStore prefers the postgres-backed store when DATABASE_URL is set,
// so sessions survive restarts. Without a database it falls back to an
// in-memory store; document text is far too large for cookie storage.
func sessionStore() sessions.Store {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Println("INFO: DATABASE_URL not set, using in-memory session store")
		return memstore.NewStore(sessionSecretKey)
	}

	sessionDB, err := sql.Open("pgx", dbURL)
	if err != nil {
		log.Fatalf("Failed to open database connection for session store: %v", err)
	}
	if err := sessionDB.Ping(); err != nil {
		log.Fatalf("Failed to ping database for session store: %v", err)
	}

	store, err := gsessions.NewStore(sessionDB, sessionSecretKey)
	if err != nil {
		log.Fatalf("Failed to create postgres session store: %v", err)
	}
	return store
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Connect to database (optional, enables history persistence)
	database, err := db.NewDB(ctx)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if database != nil {
		defer database.Close()
	} else {
		log.Println("INFO: DATABASE_URL not set, history persistence disabled")
	}

	// Initialize Gemini client
	geminiClient, err := gemini.NewClient(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Gemini client: %v", err)
	}
	defer geminiClient.Close()

	// Initialize the optional R2 archive client
	archiveClient, err := archive.NewClient()
	if err != nil {
		log.Fatalf("Failed to initialize archive client: %v", err)
	}

	// Set up Gin router
	router := gin.Default()

	store := sessionStore()
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		Secure:   os.Getenv("SESSION_SECURE") == "true",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	router.Use(sessions.Sessions(storeName, store))

	// Set up API handlers
	handler := handlers.NewHandler(database, geminiClient, archiveClient)
	api.SetupRoutes(router, handler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		log.Printf("Server listening on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel = context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited properly")
}
