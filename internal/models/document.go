package models

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	ID              uuid.UUID `json:"id" db:"id"`
	OriginalName    string    `json:"original_name" db:"original_name"`
	StoredFilename  string    `json:"stored_filename" db:"stored_filename"`
	FileSizeBytes   int64     `json:"file_size_bytes" db:"file_size_bytes"`
	Status          string    `json:"status" db:"status"`
	ChunksAttempted int       `json:"chunks_attempted" db:"chunks_attempted"`
	ChunksWritten   int       `json:"chunks_written" db:"chunks_written"`
	UploadedAt      time.Time `json:"uploaded_at" db:"uploaded_at"`
}

// Document status lifecycle: processing is the only initial state. A
// finished ingestion run lands on exactly one terminal state: completed
// (every chunk written), partial (some chunks lost to embedding or insert
// failures), or failed (extraction failed, or no chunk survived).
const (
	DocStatusProcessing = "processing"
	DocStatusCompleted  = "completed"
	DocStatusPartial    = "partial"
	DocStatusFailed     = "failed"
)
