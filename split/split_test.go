package split

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit_Empty(t *testing.T) {
	s := NewRecursiveSplitter(10, 2)
	assert.Nil(t, s.Split(""))
}

func TestSplit_ShortTextSingleChunk(t *testing.T) {
	s := NewRecursiveSplitter(100, 20)
	assert.Equal(t, []string{"short text"}, s.Split("short text"))
}

func TestSplit_CutsAtWordBoundaries(t *testing.T) {
	s := NewRecursiveSplitter(10, 0)

	chunks := s.Split("aaaa bbbb cccc")

	assert.Equal(t, []string{"aaaa bbbb ", "cccc"}, chunks)
}

func TestSplit_OverlapCarriesWholePieces(t *testing.T) {
	s := NewRecursiveSplitter(10, 5)

	chunks := s.Split("aaaa bbbb cccc")

	assert.Equal(t, []string{"aaaa bbbb ", "bbbb cccc"}, chunks)
}

func TestSplit_PrefersParagraphBoundaries(t *testing.T) {
	s := NewRecursiveSplitter(40, 0)
	text := "First paragraph here.\n\nSecond paragraph goes here."

	chunks := s.Split(text)

	require.Len(t, chunks, 2)
	assert.Equal(t, "First paragraph here.\n\n", chunks[0])
	assert.Equal(t, "Second paragraph goes here.", chunks[1])
}

func TestSplit_UnbrokenRunFallsBackToWindows(t *testing.T) {
	s := NewRecursiveSplitter(5, 0)

	chunks := s.Split("abcdefghij")

	assert.Equal(t, []string{"abcde", "fghij"}, chunks)
}

func TestSplit_MultibyteWindows(t *testing.T) {
	s := NewRecursiveSplitter(4, 0)

	chunks := s.Split("日本語のテキスト")

	assert.Equal(t, []string{"日本語の", "テキスト"}, chunks)
	for _, c := range chunks {
		assert.True(t, utf8.ValidString(c))
	}
}

func TestSplit_ChunksNeverExceedSize(t *testing.T) {
	tests := []struct {
		name string
		size int
		text string
	}{
		{"words", 12, strings.Repeat("lorem ipsum dolor sit amet ", 20)},
		{"lines", 30, strings.Repeat("one line of text\n", 15)},
		{"paragraphs", 50, strings.Repeat("a paragraph of text here\n\n", 10)},
		{"unbroken", 7, strings.Repeat("x", 100)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewRecursiveSplitter(tt.size, 3)
			for _, c := range s.Split(tt.text) {
				assert.LessOrEqual(t, utf8.RuneCountInString(c), tt.size)
			}
		})
	}
}

func TestSplit_ZeroOverlapReassemblesText(t *testing.T) {
	s := NewRecursiveSplitter(15, 0)
	text := "Alpha beta gamma.\n\nDelta epsilon zeta eta theta.\nIota kappa lambda mu nu xi omicron pi."

	chunks := s.Split(text)

	assert.Equal(t, text, strings.Join(chunks, ""))
}

func TestSplit_WordsStayIntact(t *testing.T) {
	s := NewRecursiveSplitter(12, 4)
	words := []string{"lorem", "ipsum", "dolor", "sit", "amet", "consectetur"}
	text := strings.Join(words, " ")
	allowed := map[string]struct{}{}
	for _, w := range words {
		allowed[w] = struct{}{}
	}

	for _, chunk := range s.Split(text) {
		for _, tok := range strings.Fields(chunk) {
			_, ok := allowed[tok]
			assert.True(t, ok, "chunk boundary split the word %q", tok)
		}
	}
}

func TestNewRecursiveSplitter_ClampsDegenerateSettings(t *testing.T) {
	s := NewRecursiveSplitter(0, 0)
	assert.Equal(t, 1000, s.ChunkSize)
	assert.Equal(t, 200, s.ChunkOverlap)

	s = NewRecursiveSplitter(10, 10)
	assert.Equal(t, 9, s.ChunkOverlap)

	s = NewRecursiveSplitter(10, -5)
	assert.Equal(t, 0, s.ChunkOverlap)
}
