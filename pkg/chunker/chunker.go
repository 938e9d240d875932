package chunker

import "strings"

// DefaultChunkSize is the number of words per chunk used during ingestion.
const DefaultChunkSize = 800

// Split breaks text into consecutive groups of at most size words, each
// rejoined with single spaces. The final group may be shorter. Splitting is
// purely positional: no overlap, no sentence or paragraph awareness.
// Blank input yields no chunks.
func Split(text string, size int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	chunks := make([]string, 0, (len(words)+size-1)/size)
	for start := 0; start < len(words); start += size {
		end := start + size
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))
	}
	return chunks
}
