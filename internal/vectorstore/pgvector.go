package vectorstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

// PgStore stores chunks in Postgres and delegates similarity search to the
// match_embeddings function defined in migrations.
type PgStore struct {
	db *pgxpool.Pool
}

func NewPgStore(db *pgxpool.Pool) *PgStore {
	return &PgStore{db: db}
}

func (s *PgStore) Insert(ctx context.Context, chunk Chunk) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO document_chunks (id, document_id, chunk_index, chunk_text, embedding)
		 VALUES ($1, $2, $3, $4, $5)`,
		uuid.New(), chunk.DocumentID, chunk.ChunkIndex, chunk.Text, pgvector.NewVector(chunk.Embedding),
	)
	if err != nil {
		return fmt.Errorf("insert chunk %d: %w", chunk.ChunkIndex, err)
	}
	return nil
}

func (s *PgStore) Search(ctx context.Context, embedding []float32, threshold float64, matchCount int) ([]Match, error) {
	if matchCount <= 0 {
		matchCount = 5
	}

	rows, err := s.db.Query(ctx,
		`SELECT chunk_text, similarity FROM match_embeddings($1, $2, $3)`,
		pgvector.NewVector(embedding), threshold, matchCount,
	)
	if err != nil {
		return nil, fmt.Errorf("match embeddings: %w", err)
	}
	defer rows.Close()

	var matches []Match
	for rows.Next() {
		var m Match
		if err := rows.Scan(&m.Text, &m.Similarity); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (s *PgStore) DeleteByDocument(ctx context.Context, documentID uuid.UUID) error {
	_, err := s.db.Exec(ctx, "DELETE FROM document_chunks WHERE document_id = $1", documentID)
	if err != nil {
		return fmt.Errorf("delete chunks for document %s: %w", documentID, err)
	}
	return nil
}
