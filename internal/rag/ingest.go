package rag

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ascleon/ascleon-backend/internal/llm"
	"github.com/ascleon/ascleon-backend/internal/models"
	"github.com/ascleon/ascleon-backend/internal/vectorstore"
	"github.com/ascleon/ascleon-backend/pkg/chunker"
)

// Extractor turns a binary document into plain text.
type Extractor interface {
	Extract(ctx context.Context, data []byte) (string, error)
}

// DocumentTracker records the outcome of an ingestion run on the document
// row.
type DocumentTracker interface {
	RecordIngestOutcome(ctx context.Context, id uuid.UUID, status string, attempted, written int) error
}

// Ingestor runs the ingestion sequence for one document: extract, chunk,
// embed and store each chunk, then record the terminal status.
type Ingestor struct {
	extractor Extractor
	embedder  llm.Embedder
	store     vectorstore.Store
	docs      DocumentTracker
	chunkSize int
}

func NewIngestor(extractor Extractor, embedder llm.Embedder, store vectorstore.Store, docs DocumentTracker, chunkSize int) *Ingestor {
	if chunkSize <= 0 {
		chunkSize = chunker.DefaultChunkSize
	}
	return &Ingestor{
		extractor: extractor,
		embedder:  embedder,
		store:     store,
		docs:      docs,
		chunkSize: chunkSize,
	}
}

type IngestResult struct {
	DocumentID      uuid.UUID `json:"document_id"`
	Status          string    `json:"status"`
	ChunksAttempted int       `json:"chunks_attempted"`
	ChunksWritten   int       `json:"chunks_written"`
}

// Ingest processes one document already in status=processing. Any chunks
// from a previous run are cleared first, so re-ingesting a document always
// yields a single zero-based chunk_index sequence. Extraction failure is
// fatal and leaves the document failed. Per-chunk embedding or insert
// failures are logged and skipped; chunk_index always reflects the
// chunker's emission order, so gaps mark the lost chunks.
func (g *Ingestor) Ingest(ctx context.Context, docID uuid.UUID, data []byte) (*IngestResult, error) {
	if err := g.store.DeleteByDocument(ctx, docID); err != nil {
		if recErr := g.docs.RecordIngestOutcome(ctx, docID, models.DocStatusFailed, 0, 0); recErr != nil {
			slog.Error("failed to mark document failed", "document_id", docID, "error", recErr)
		}
		return nil, fmt.Errorf("clear existing chunks: %w", err)
	}

	text, err := g.extractor.Extract(ctx, data)
	if err != nil {
		if recErr := g.docs.RecordIngestOutcome(ctx, docID, models.DocStatusFailed, 0, 0); recErr != nil {
			slog.Error("failed to mark document failed", "document_id", docID, "error", recErr)
		}
		return nil, fmt.Errorf("extract document: %w", err)
	}

	chunks := chunker.Split(text, g.chunkSize)

	written := 0
	for i, chunk := range chunks {
		vec, err := g.embedder.Embed(ctx, chunk)
		if err != nil || len(vec) == 0 {
			slog.Warn("embedding failed, skipping chunk", "document_id", docID, "chunk_index", i, "error", err)
			continue
		}

		err = g.store.Insert(ctx, vectorstore.Chunk{
			DocumentID: docID,
			ChunkIndex: i,
			Text:       chunk,
			Embedding:  vec,
		})
		if err != nil {
			slog.Warn("chunk insert failed, skipping chunk", "document_id", docID, "chunk_index", i, "error", err)
			continue
		}
		written++
	}

	status := ingestStatus(len(chunks), written)
	if err := g.docs.RecordIngestOutcome(ctx, docID, status, len(chunks), written); err != nil {
		return nil, fmt.Errorf("record ingest outcome: %w", err)
	}

	slog.Info("document ingested",
		"document_id", docID,
		"status", status,
		"chunks_attempted", len(chunks),
		"chunks_written", written,
	)

	return &IngestResult{
		DocumentID:      docID,
		Status:          status,
		ChunksAttempted: len(chunks),
		ChunksWritten:   written,
	}, nil
}

func ingestStatus(attempted, written int) string {
	switch {
	case attempted == 0:
		// Extraction produced text with no words. Degenerate but not an
		// error.
		return models.DocStatusCompleted
	case written == 0:
		return models.DocStatusFailed
	case written < attempted:
		return models.DocStatusPartial
	default:
		return models.DocStatusCompleted
	}
}
