package chunker

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func words(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("w%d", i)
	}
	return strings.Join(parts, " ")
}

func TestSplitChunkCount(t *testing.T) {
	cases := []struct {
		wordCount int
		size      int
		want      int
	}{
		{2400, 800, 3},
		{2401, 800, 4},
		{799, 800, 1},
		{800, 800, 1},
		{801, 800, 2},
		{1, 800, 1},
		{10, 3, 4},
	}

	for _, tc := range cases {
		got := Split(words(tc.wordCount), tc.size)
		assert.Len(t, got, tc.want, "N=%d S=%d", tc.wordCount, tc.size)
	}
}

func TestSplitPreservesWordSequence(t *testing.T) {
	input := "the   quick\nbrown\t fox jumps over the lazy dog"
	chunks := Split(input, 3)

	var all []string
	for _, c := range chunks {
		all = append(all, strings.Fields(c)...)
	}
	require.Equal(t, strings.Fields(input), all)
}

func TestSplitLastChunkShorter(t *testing.T) {
	chunks := Split(words(10), 4)
	require.Len(t, chunks, 3)
	assert.Len(t, strings.Fields(chunks[0]), 4)
	assert.Len(t, strings.Fields(chunks[1]), 4)
	assert.Len(t, strings.Fields(chunks[2]), 2)
}

func TestSplitEmptyInput(t *testing.T) {
	assert.Empty(t, Split("", 800))
	assert.Empty(t, Split("   \n\t  ", 800))
}

func TestSplitRejoinsWithSingleSpaces(t *testing.T) {
	chunks := Split("a  b\tc\nd", 800)
	require.Len(t, chunks, 1)
	assert.Equal(t, "a b c d", chunks[0])
}

func TestSplitDefaultSize(t *testing.T) {
	chunks := Split(words(1601), 0)
	assert.Len(t, chunks, 3)
}
