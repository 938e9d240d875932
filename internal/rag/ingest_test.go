package rag

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ascleon/ascleon-backend/internal/models"
	"github.com/ascleon/ascleon-backend/internal/vectorstore"
)

type fakeExtractor struct {
	text string
	err  error
}

func (f *fakeExtractor) Extract(ctx context.Context, data []byte) (string, error) {
	return f.text, f.err
}

// fakeEmbedder fails deterministically on the call indices in failOn
// (zero-based).
type fakeEmbedder struct {
	failOn map[int]bool
	calls  int
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	call := f.calls
	f.calls++
	if f.failOn[call] {
		return nil, errors.New("embedding service unavailable")
	}
	return []float32{1, 0, 0}, nil
}

type memStore struct {
	chunks      []vectorstore.Chunk
	insertErrOn map[int]bool
	deleteErr   error

	matches       []vectorstore.Match
	searchErr     error
	lastThreshold float64
	lastCount     int
}

func (m *memStore) Insert(ctx context.Context, chunk vectorstore.Chunk) error {
	if m.insertErrOn[chunk.ChunkIndex] {
		return errors.New("insert failed")
	}
	m.chunks = append(m.chunks, chunk)
	return nil
}

func (m *memStore) Search(ctx context.Context, embedding []float32, threshold float64, matchCount int) ([]vectorstore.Match, error) {
	m.lastThreshold = threshold
	m.lastCount = matchCount
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.matches, nil
}

func (m *memStore) DeleteByDocument(ctx context.Context, documentID uuid.UUID) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	kept := m.chunks[:0]
	for _, c := range m.chunks {
		if c.DocumentID != documentID {
			kept = append(kept, c)
		}
	}
	m.chunks = kept
	return nil
}

type fakeTracker struct {
	id        uuid.UUID
	status    string
	attempted int
	written   int
}

func (f *fakeTracker) RecordIngestOutcome(ctx context.Context, id uuid.UUID, status string, attempted, written int) error {
	f.id = id
	f.status = status
	f.attempted = attempted
	f.written = written
	return nil
}

func textOfWords(n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("word%d", i)
	}
	return strings.Join(words, " ")
}

func TestIngestCompleteDocument(t *testing.T) {
	// 2400 words at chunk size 800 -> exactly 3 chunks, indexes 0,1,2.
	extractor := &fakeExtractor{text: textOfWords(2400)}
	store := &memStore{}
	tracker := &fakeTracker{}
	ing := NewIngestor(extractor, &fakeEmbedder{}, store, tracker, 800)

	docID := uuid.New()
	result, err := ing.Ingest(context.Background(), docID, []byte("%PDF"))
	require.NoError(t, err)

	assert.Equal(t, models.DocStatusCompleted, result.Status)
	assert.Equal(t, 3, result.ChunksAttempted)
	assert.Equal(t, 3, result.ChunksWritten)

	require.Len(t, store.chunks, 3)
	for i, c := range store.chunks {
		assert.Equal(t, i, c.ChunkIndex)
		assert.Equal(t, docID, c.DocumentID)
		assert.NotEmpty(t, c.Embedding)
	}
	assert.Equal(t, models.DocStatusCompleted, tracker.status)
	assert.Equal(t, 3, tracker.attempted)
	assert.Equal(t, 3, tracker.written)
}

func TestIngestSkipsChunksWithFailedEmbeddings(t *testing.T) {
	extractor := &fakeExtractor{text: textOfWords(2400)}
	store := &memStore{}
	tracker := &fakeTracker{}
	embedder := &fakeEmbedder{failOn: map[int]bool{1: true}}
	ing := NewIngestor(extractor, embedder, store, tracker, 800)

	result, err := ing.Ingest(context.Background(), uuid.New(), nil)
	require.NoError(t, err)

	assert.Equal(t, models.DocStatusPartial, result.Status)
	assert.Equal(t, 3, result.ChunksAttempted)
	assert.Equal(t, 2, result.ChunksWritten)

	// Indexes keep emission order; the lost chunk leaves a gap.
	require.Len(t, store.chunks, 2)
	assert.Equal(t, 0, store.chunks[0].ChunkIndex)
	assert.Equal(t, 2, store.chunks[1].ChunkIndex)
}

func TestIngestSkipsChunksWithFailedInserts(t *testing.T) {
	extractor := &fakeExtractor{text: textOfWords(1600)}
	store := &memStore{insertErrOn: map[int]bool{0: true}}
	tracker := &fakeTracker{}
	ing := NewIngestor(extractor, &fakeEmbedder{}, store, tracker, 800)

	result, err := ing.Ingest(context.Background(), uuid.New(), nil)
	require.NoError(t, err)

	assert.Equal(t, models.DocStatusPartial, result.Status)
	assert.Equal(t, 1, result.ChunksWritten)
}

func TestIngestExtractionFailureMarksDocumentFailed(t *testing.T) {
	extractor := &fakeExtractor{err: errors.New("model unreachable")}
	tracker := &fakeTracker{}
	ing := NewIngestor(extractor, &fakeEmbedder{}, &memStore{}, tracker, 800)

	docID := uuid.New()
	_, err := ing.Ingest(context.Background(), docID, nil)
	require.Error(t, err)

	assert.Equal(t, docID, tracker.id)
	assert.Equal(t, models.DocStatusFailed, tracker.status)
	assert.Zero(t, tracker.attempted)
	assert.Zero(t, tracker.written)
}

func TestIngestAllChunksLostMarksDocumentFailed(t *testing.T) {
	extractor := &fakeExtractor{text: textOfWords(800)}
	embedder := &fakeEmbedder{failOn: map[int]bool{0: true}}
	tracker := &fakeTracker{}
	ing := NewIngestor(extractor, embedder, &memStore{}, tracker, 800)

	result, err := ing.Ingest(context.Background(), uuid.New(), nil)
	require.NoError(t, err)

	assert.Equal(t, models.DocStatusFailed, result.Status)
	assert.Zero(t, result.ChunksWritten)
}

func TestIngestEmptyTextIsDegenerateCompletion(t *testing.T) {
	extractor := &fakeExtractor{text: "   "}
	store := &memStore{}
	tracker := &fakeTracker{}
	ing := NewIngestor(extractor, &fakeEmbedder{}, store, tracker, 800)

	result, err := ing.Ingest(context.Background(), uuid.New(), nil)
	require.NoError(t, err)

	assert.Equal(t, models.DocStatusCompleted, result.Status)
	assert.Zero(t, result.ChunksAttempted)
	assert.Empty(t, store.chunks)
}

func TestReingestReplacesExistingChunks(t *testing.T) {
	extractor := &fakeExtractor{text: textOfWords(1600)}
	store := &memStore{}
	tracker := &fakeTracker{}
	ing := NewIngestor(extractor, &fakeEmbedder{}, store, tracker, 800)

	docID := uuid.New()
	otherID := uuid.New()
	require.NoError(t, store.Insert(context.Background(), vectorstore.Chunk{DocumentID: otherID, ChunkIndex: 0}))

	_, err := ing.Ingest(context.Background(), docID, nil)
	require.NoError(t, err)
	result, err := ing.Ingest(context.Background(), docID, nil)
	require.NoError(t, err)

	assert.Equal(t, models.DocStatusCompleted, result.Status)
	assert.Equal(t, 2, result.ChunksWritten)

	// The second run replaces the first: one row per chunk_index, no
	// duplicates, and other documents' chunks are untouched.
	indexCounts := map[int]int{}
	docRows := 0
	otherRows := 0
	for _, c := range store.chunks {
		switch c.DocumentID {
		case docID:
			docRows++
			indexCounts[c.ChunkIndex]++
		case otherID:
			otherRows++
		}
	}
	assert.Equal(t, 2, docRows)
	assert.Equal(t, 1, otherRows)
	for idx, n := range indexCounts {
		assert.Equal(t, 1, n, "chunk_index %d stored %d times", idx, n)
	}
}

func TestIngestClearFailureMarksDocumentFailed(t *testing.T) {
	extractor := &fakeExtractor{text: textOfWords(800)}
	store := &memStore{deleteErr: errors.New("connection reset")}
	tracker := &fakeTracker{}
	ing := NewIngestor(extractor, &fakeEmbedder{}, store, tracker, 800)

	docID := uuid.New()
	_, err := ing.Ingest(context.Background(), docID, nil)
	require.Error(t, err)

	assert.Equal(t, docID, tracker.id)
	assert.Equal(t, models.DocStatusFailed, tracker.status)
}
