package vectorstore

import (
	"context"

	"github.com/google/uuid"
)

// Chunk is one embedded span of a document, immutable once written and
// owned exclusively by its document.
type Chunk struct {
	DocumentID uuid.UUID
	ChunkIndex int
	Text       string
	Embedding  []float32
}

// Match is a retrieval hit, most-similar first.
type Match struct {
	Text       string  `json:"chunk_text"`
	Similarity float64 `json:"similarity"`
}

// Store persists chunks and answers nearest-neighbor queries. Index
// structure and distance metric are the backend's concern; Search must
// return the top matchCount chunks above threshold ordered by descending
// similarity.
type Store interface {
	Insert(ctx context.Context, chunk Chunk) error
	Search(ctx context.Context, embedding []float32, threshold float64, matchCount int) ([]Match, error)
	DeleteByDocument(ctx context.Context, documentID uuid.UUID) error
}
