// Package split turns extracted document text into overlapping chunks, the
// unit stored in the similarity index. Text is cut at the coarsest boundary
// available (paragraph, then line, then word) and only degrades to fixed
// rune windows for unbroken runs, so chunk edges land on natural boundaries
// whenever the text has any.
package split

import (
	"strings"
	"unicode/utf8"
)

// Splitter cuts a text into an ordered sequence of chunk strings.
type Splitter interface {
	Split(text string) []string
}

// defaultSeparators orders the boundaries tried when cutting text: paragraph
// breaks first, then line breaks, then word breaks.
var defaultSeparators = []string{"\n\n", "\n", " "}

// RecursiveSplitter cuts text at the coarsest separator that keeps pieces
// within ChunkSize runes, descending to finer separators only for pieces
// that are still too long. Adjacent chunks share up to ChunkOverlap trailing
// runes of context, carried as whole pieces so the overlap never starts
// mid-word.
type RecursiveSplitter struct {
	// ChunkSize is the maximum chunk length in runes.
	ChunkSize int
	// ChunkOverlap is the maximum number of trailing runes repeated at the
	// start of the next chunk. Must be smaller than ChunkSize.
	ChunkOverlap int
	// Separators are tried in order; pieces still longer than ChunkSize
	// after the last separator are cut at fixed rune windows.
	Separators []string
}

// NewRecursiveSplitter constructs a splitter with the default separators,
// clamping degenerate settings: non-positive sizes fall back to 1000/200
// defaults and the overlap is capped below the size so splitting always
// advances.
func NewRecursiveSplitter(size, overlap int) *RecursiveSplitter {
	if size <= 0 {
		size = 1000
		overlap = 200
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= size {
		overlap = size - 1
	}
	return &RecursiveSplitter{ChunkSize: size, ChunkOverlap: overlap, Separators: defaultSeparators}
}

// Split returns the ordered chunks of text. Empty input yields no chunks; a
// text within one chunk is returned whole.
func (s *RecursiveSplitter) Split(text string) []string {
	if text == "" {
		return nil
	}
	return s.assemble(s.decompose(text, s.Separators))
}

// decompose recursively breaks text into pieces of at most ChunkSize runes.
// Separators stay attached to the piece they terminate, so the concatenation
// of all pieces reproduces the text exactly.
func (s *RecursiveSplitter) decompose(text string, separators []string) []string {
	if utf8.RuneCountInString(text) <= s.ChunkSize {
		return []string{text}
	}
	if len(separators) == 0 {
		return runeWindows(text, s.ChunkSize)
	}

	parts := strings.SplitAfter(text, separators[0])
	if len(parts) == 1 {
		return s.decompose(text, separators[1:])
	}
	var pieces []string
	for _, part := range parts {
		if part == "" {
			continue
		}
		pieces = append(pieces, s.decompose(part, separators[1:])...)
	}
	return pieces
}

// assemble greedily merges consecutive pieces into chunks of at most
// ChunkSize runes. When a chunk closes, its trailing pieces seed the next
// chunk as overlap.
func (s *RecursiveSplitter) assemble(pieces []string) []string {
	var chunks []string
	var window []string
	total := 0
	for _, piece := range pieces {
		n := utf8.RuneCountInString(piece)
		if total > 0 && total+n > s.ChunkSize {
			chunks = append(chunks, strings.Join(window, ""))
			window, total = s.carry(window, n)
		}
		window = append(window, piece)
		total += n
	}
	if total > 0 {
		chunks = append(chunks, strings.Join(window, ""))
	}
	return chunks
}

// carry selects the trailing pieces of a closed chunk that start the next
// one: as many whole pieces as fit in ChunkOverlap runes while leaving room
// for the upcoming piece of length next.
func (s *RecursiveSplitter) carry(window []string, next int) ([]string, int) {
	keep := len(window)
	kept := 0
	for keep > 0 {
		n := utf8.RuneCountInString(window[keep-1])
		if kept+n > s.ChunkOverlap || kept+n+next > s.ChunkSize {
			break
		}
		kept += n
		keep--
	}
	carried := make([]string, len(window)-keep)
	copy(carried, window[keep:])
	return carried, kept
}

// runeWindows cuts text into consecutive windows of size runes without
// crossing rune boundaries.
func runeWindows(text string, size int) []string {
	runes := []rune(text)
	windows := make([]string, 0, (len(runes)+size-1)/size)
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		windows = append(windows, string(runes[start:end]))
	}
	return windows
}
