package index

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/hupe1980/ragmesh/core"
	"github.com/hupe1980/ragmesh/embedding"
)

// entry pairs an indexed chunk with its embedding vector.
type entry struct {
	chunk  core.Chunk
	vector []float32
}

// Memory is a process-local Index ranking by cosine similarity over an
// injected Embedder. Safe for concurrent use; contents live for the process
// lifetime only.
type Memory struct {
	mu       sync.RWMutex
	entries  []entry
	embedder embedding.Embedder
}

// NewMemory constructs an empty in-memory index.
func NewMemory(embedder embedding.Embedder) *Memory {
	return &Memory{embedder: embedder}
}

// Add implements Index. Chunks are embedded in one batch before insertion.
func (m *Memory) Add(ctx context.Context, chunks []core.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Content
	}
	vectors, err := m.embedder.Embed(ctx, texts)
	if err != nil {
		return fmt.Errorf("%w: embed chunks: %v", core.ErrIndexFailure, err)
	}
	if len(vectors) != len(chunks) {
		return fmt.Errorf("%w: got %d vectors for %d chunks", core.ErrIndexFailure, len(vectors), len(chunks))
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for i, c := range chunks {
		m.entries = append(m.entries, entry{chunk: c, vector: vectors[i]})
	}
	return nil
}

// Search implements Index. Results are ordered by descending cosine
// similarity with insertion order breaking ties, so repeated searches over an
// unchanged index are order-stable.
func (m *Memory) Search(ctx context.Context, query string, k int) ([]core.ScoredChunk, error) {
	if k <= 0 {
		return nil, nil
	}
	vectors, err := m.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("%w: embed query: %v", core.ErrIndexFailure, err)
	}
	qv := vectors[0]

	m.mu.RLock()
	defer m.mu.RUnlock()

	type ranked struct {
		pos   int
		score float32
	}
	scores := make([]ranked, len(m.entries))
	for i, e := range m.entries {
		scores[i] = ranked{pos: i, score: cosine(qv, e.vector)}
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].score > scores[j].score })

	if k > len(scores) {
		k = len(scores)
	}
	results := make([]core.ScoredChunk, 0, k)
	for _, r := range scores[:k] {
		results = append(results, core.ScoredChunk{Chunk: m.entries[r.pos].chunk, Score: r.score})
	}
	return results, nil
}

// Len reports the number of indexed chunks.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

func cosine(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float32
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / float32(math.Sqrt(float64(na))*math.Sqrt(float64(nb)))
}
