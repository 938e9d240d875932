package querylog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ascleon/ascleon-backend/internal/models"
)

// Entry is one completed interaction headed for the query_logs table.
type Entry struct {
	UserID    uuid.UUID
	Question  string
	Answer    string
	Language  string
	QueryType string
}

type Service struct {
	db *pgxpool.Pool
}

func NewService(db *pgxpool.Pool) *Service {
	return &Service{db: db}
}

func (s *Service) Log(ctx context.Context, entry Entry) error {
	var userID *uuid.UUID
	if entry.UserID != uuid.Nil {
		userID = &entry.UserID
	}

	_, err := s.db.Exec(ctx,
		`INSERT INTO query_logs (user_id, question, answer, language, query_type)
		 VALUES ($1, $2, $3, $4, $5)`,
		userID, entry.Question, entry.Answer, entry.Language, entry.QueryType,
	)
	if err != nil {
		return fmt.Errorf("insert query log: %w", err)
	}
	return nil
}

// LogAsync dispatches the write on a detached context and discards any
// failure. The critical path never waits on it.
func (s *Service) LogAsync(entry Entry) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.Log(ctx, entry); err != nil {
			slog.Warn("query log write failed", "query_type", entry.QueryType, "error", err)
		}
	}()
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]models.QueryLog, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, user_id, question, answer, language, query_type, created_at
		 FROM query_logs ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list query logs: %w", err)
	}
	defer rows.Close()

	var logs []models.QueryLog
	for rows.Next() {
		var l models.QueryLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.Question, &l.Answer, &l.Language, &l.QueryType, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan query log: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
