package document

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ascleon/ascleon-backend/internal/models"
	"github.com/ascleon/ascleon-backend/internal/storage"
)

const docCols = `id, original_name, stored_filename, file_size_bytes, status,
	chunks_attempted, chunks_written, uploaded_at`

// Service owns the documents table and the stored originals. Chunk rows
// are deleted by the storage layer's FK cascade, not here.
type Service struct {
	db      *pgxpool.Pool
	storage storage.Storage
}

func NewService(db *pgxpool.Pool, store storage.Storage) *Service {
	return &Service{db: db, storage: store}
}

type CreateRequest struct {
	OriginalName  string
	FileSizeBytes int64
	Data          []byte
}

// Create stores the original bytes and inserts the document row in
// status=processing.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*models.Document, error) {
	docID := uuid.New()
	storedName := docID.String() + ".pdf"

	if err := s.storage.Upload(ctx, storedName, bytes.NewReader(req.Data), "application/pdf"); err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	var doc models.Document
	err := s.db.QueryRow(ctx,
		`INSERT INTO documents (id, original_name, stored_filename, file_size_bytes, status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+docCols,
		docID, req.OriginalName, storedName, req.FileSizeBytes, models.DocStatusProcessing,
	).Scan(&doc.ID, &doc.OriginalName, &doc.StoredFilename, &doc.FileSizeBytes,
		&doc.Status, &doc.ChunksAttempted, &doc.ChunksWritten, &doc.UploadedAt)
	if err != nil {
		return nil, fmt.Errorf("insert document: %w", err)
	}

	return &doc, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	var doc models.Document
	err := s.db.QueryRow(ctx,
		`SELECT `+docCols+` FROM documents WHERE id = $1`, id,
	).Scan(&doc.ID, &doc.OriginalName, &doc.StoredFilename, &doc.FileSizeBytes,
		&doc.Status, &doc.ChunksAttempted, &doc.ChunksWritten, &doc.UploadedAt)
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	return &doc, nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]models.Document, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+docCols+` FROM documents ORDER BY uploaded_at DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []models.Document
	for rows.Next() {
		var d models.Document
		if err := rows.Scan(&d.ID, &d.OriginalName, &d.StoredFilename, &d.FileSizeBytes,
			&d.Status, &d.ChunksAttempted, &d.ChunksWritten, &d.UploadedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// Delete removes the stored original (best-effort) and the document row.
// Chunks go with the row via ON DELETE CASCADE. Query logs are untouched.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	doc, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if doc.StoredFilename != "" {
		_ = s.storage.Delete(ctx, doc.StoredFilename)
	}

	if _, err := s.db.Exec(ctx, "DELETE FROM documents WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	_, err := s.db.Exec(ctx, "UPDATE documents SET status = $1 WHERE id = $2", status, id)
	if err != nil {
		return fmt.Errorf("update document status: %w", err)
	}
	return nil
}

// RecordIngestOutcome writes the terminal status plus the attempted/written
// chunk counts for one ingestion run.
func (s *Service) RecordIngestOutcome(ctx context.Context, id uuid.UUID, status string, attempted, written int) error {
	_, err := s.db.Exec(ctx,
		`UPDATE documents SET status = $1, chunks_attempted = $2, chunks_written = $3 WHERE id = $4`,
		status, attempted, written, id,
	)
	if err != nil {
		return fmt.Errorf("record ingest outcome: %w", err)
	}
	return nil
}

// ReadFile fetches the stored original for reprocessing.
func (s *Service) ReadFile(ctx context.Context, doc *models.Document) ([]byte, error) {
	reader, err := s.storage.Download(ctx, doc.StoredFilename)
	if err != nil {
		return nil, fmt.Errorf("download stored file: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read stored file: %w", err)
	}
	return data, nil
}
