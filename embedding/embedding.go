// Package embedding defines the embedding-vector collaborator consumed by the
// similarity index, plus a TTL cache decorator and a deterministic fake for
// tests. Provider adapters live in subpackages so higher layers stay
// decoupled from vendor SDKs.
package embedding

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Embedder computes one vector per input text, preserving order.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Cached wraps an Embedder with an in-process TTL cache keyed by exact text.
// Repeated ingestion of identical chunks and repeated queries skip the
// provider round trip until the entry expires.
type Cached struct {
	inner Embedder
	cache *gocache.Cache
}

// NewCached constructs the cache decorator. ttl bounds entry lifetime;
// entries are purged at twice the ttl.
func NewCached(inner Embedder, ttl time.Duration) *Cached {
	return &Cached{inner: inner, cache: gocache.New(ttl, 2*ttl)}
}

// Embed returns cached vectors where available and delegates only the misses
// to the wrapped embedder.
func (c *Cached) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	result := make([][]float32, len(texts))
	var (
		missing    []string
		missingIdx []int
	)
	for i, text := range texts {
		if v, ok := c.cache.Get(text); ok {
			result[i] = v.([]float32)
			continue
		}
		missing = append(missing, text)
		missingIdx = append(missingIdx, i)
	}
	if len(missing) == 0 {
		return result, nil
	}

	vectors, err := c.inner.Embed(ctx, missing)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(missing) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d texts", len(vectors), len(missing))
	}
	for j, v := range vectors {
		c.cache.SetDefault(missing[j], v)
		result[missingIdx[j]] = v
	}
	return result, nil
}

// Fake is a deterministic Embedder for tests and local development. Vectors
// are derived from token hashes, so texts sharing words land near each other
// while unrelated texts do not.
type Fake struct {
	// Dim is the vector dimensionality (default 64 when zero).
	Dim int
}

// Embed implements Embedder.
func (f *Fake) Embed(_ context.Context, texts []string) ([][]float32, error) {
	dim := f.Dim
	if dim <= 0 {
		dim = 64
	}
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vec := make([]float32, dim)
		for _, tok := range tokens(text) {
			h := fnv.New32a()
			h.Write([]byte(tok))
			vec[int(h.Sum32())%dim]++
		}
		normalize(vec)
		vectors[i] = vec
	}
	return vectors, nil
}

func tokens(text string) []string {
	var (
		toks []string
		cur  []rune
	)
	for _, r := range text {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			if r >= 'A' && r <= 'Z' {
				r += 'a' - 'A'
			}
			cur = append(cur, r)
		default:
			if len(cur) > 0 {
				toks = append(toks, string(cur))
				cur = cur[:0]
			}
		}
	}
	if len(cur) > 0 {
		toks = append(toks, string(cur))
	}
	return toks
}

func normalize(vec []float32) {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return
	}
	norm := float32(math.Sqrt(sum))
	for i := range vec {
		vec[i] /= norm
	}
}
