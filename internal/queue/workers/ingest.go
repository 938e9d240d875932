package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/ascleon/ascleon-backend/internal/document"
	"github.com/ascleon/ascleon-backend/internal/models"
	"github.com/ascleon/ascleon-backend/internal/queue"
	"github.com/ascleon/ascleon-backend/internal/rag"
)

// IngestWorker re-runs ingestion for an already-uploaded document.
type IngestWorker struct {
	docs     *document.Service
	ingestor *rag.Ingestor
}

func NewIngestWorker(docs *document.Service, ingestor *rag.Ingestor) *IngestWorker {
	return &IngestWorker{docs: docs, ingestor: ingestor}
}

func (w *IngestWorker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload queue.DocumentIngestPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	docID, err := uuid.Parse(payload.DocumentID)
	if err != nil {
		return fmt.Errorf("parse document ID: %w", err)
	}

	slog.Info("ingesting document", "document_id", docID)

	doc, err := w.docs.GetByID(ctx, docID)
	if err != nil {
		return fmt.Errorf("get document: %w", err)
	}

	if err := w.docs.UpdateStatus(ctx, docID, models.DocStatusProcessing); err != nil {
		return fmt.Errorf("update status to processing: %w", err)
	}

	data, err := w.docs.ReadFile(ctx, doc)
	if err != nil {
		if recErr := w.docs.RecordIngestOutcome(ctx, docID, models.DocStatusFailed, 0, 0); recErr != nil {
			slog.Error("failed to mark document failed", "document_id", docID, "error", recErr)
		}
		return fmt.Errorf("read stored document: %w", err)
	}

	if _, err := w.ingestor.Ingest(ctx, docID, data); err != nil {
		return fmt.Errorf("ingest document: %w", err)
	}
	return nil
}
