package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/revanthbethala/Pdf-Summarizer/internal/models"
)

// Queries wraps the SQL executed against the history schema.
type Queries struct {
	pool *pgxpool.Pool
}

// New creates a Queries instance
func New(pool *pgxpool.Pool) *Queries {
	return &Queries{pool: pool}
}

type CreateDocumentParams struct {
	ID        uuid.UUID
	SessionID uuid.UUID
	FileName  string
	Format    string
	WordCount int
}

func (q *Queries) CreateDocument(ctx context.Context, arg CreateDocumentParams) error {
	_, err := q.pool.Exec(ctx,
		`INSERT INTO documents (id, session_id, file_name, format, word_count)
		 VALUES ($1, $2, $3, $4, $5)`,
		arg.ID, arg.SessionID, arg.FileName, arg.Format, arg.WordCount)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

type CreateSummaryParams struct {
	DocumentID uuid.UUID
	Summary    models.Summary
}

func (q *Queries) CreateSummary(ctx context.Context, arg CreateSummaryParams) error {
	_, err := q.pool.Exec(ctx,
		`INSERT INTO summaries (id, document_id, title, topics, summary)
		 VALUES ($1, $2, $3, $4, $5)`,
		uuid.New(), arg.DocumentID, arg.Summary.Title, arg.Summary.Topics, arg.Summary.Summary)
	if err != nil {
		return fmt.Errorf("insert summary: %w", err)
	}
	return nil
}

type CreateQuizParams struct {
	ID         uuid.UUID
	DocumentID uuid.UUID
	Questions  []models.Question
}

func (q *Queries) CreateQuiz(ctx context.Context, arg CreateQuizParams) error {
	payload, err := json.Marshal(arg.Questions)
	if err != nil {
		return fmt.Errorf("marshal questions: %w", err)
	}
	_, err = q.pool.Exec(ctx,
		`INSERT INTO quizzes (id, document_id, questions)
		 VALUES ($1, $2, $3)`,
		arg.ID, arg.DocumentID, payload)
	if err != nil {
		return fmt.Errorf("insert quiz: %w", err)
	}
	return nil
}

type CreateQuizResultParams struct {
	QuizID uuid.UUID
	Score  float64
	Tier   string
	Review any
}

func (q *Queries) CreateQuizResult(ctx context.Context, arg CreateQuizResultParams) error {
	review, err := json.Marshal(arg.Review)
	if err != nil {
		return fmt.Errorf("marshal review: %w", err)
	}
	_, err = q.pool.Exec(ctx,
		`INSERT INTO quiz_results (id, quiz_id, score, tier, review)
		 VALUES ($1, $2, $3, $4, $5)`,
		uuid.New(), arg.QuizID, arg.Score, arg.Tier, review)
	if err != nil {
		return fmt.Errorf("insert quiz result: %w", err)
	}
	return nil
}

// ListHistoryBySession returns the session's processed documents, newest
// first, with quiz outcomes where a quiz was finished.
func (q *Queries) ListHistoryBySession(ctx context.Context, sessionID uuid.UUID) ([]models.HistoryEntry, error) {
	rows, err := q.pool.Query(ctx,
		`SELECT d.id, d.file_name,
		        COALESCE(s.title, ''),
		        COALESCE(jsonb_array_length(qz.questions), 0),
		        qr.score, qr.tier, d.created_at, qr.created_at
		 FROM documents d
		 LEFT JOIN summaries s ON s.document_id = d.id
		 LEFT JOIN quizzes qz ON qz.document_id = d.id
		 LEFT JOIN quiz_results qr ON qr.quiz_id = qz.id
		 WHERE d.session_id = $1
		 ORDER BY d.created_at DESC`,
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []models.HistoryEntry
	for rows.Next() {
		var e models.HistoryEntry
		var score *float64
		var tier *string
		var finished *time.Time
		if err := rows.Scan(&e.DocumentID, &e.FileName, &e.Title, &e.Questions,
			&score, &tier, &e.CreatedAt, &finished); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		e.Score = score
		e.Tier = tier
		e.FinishedAt = finished
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history rows: %w", err)
	}
	return entries, nil
}
