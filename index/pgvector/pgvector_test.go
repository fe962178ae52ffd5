package pgvector

import (
	"context"
	"testing"

	"github.com/hupe1980/ragmesh/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// shortEmbedder returns fewer vectors than texts, as a misbehaving backend
// would.
type shortEmbedder struct{}

func (shortEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts)-1)
	for i := range vectors {
		vectors[i] = []float32{1, 0}
	}
	return vectors, nil
}

func TestStore_AddRejectsVectorCountMismatch(t *testing.T) {
	s := &Store{embedder: shortEmbedder{}}

	err := s.Add(context.Background(), []core.Chunk{
		{Content: "first", Metadata: core.ChunkMetadata{ChunkID: "a"}},
		{Content: "second", Metadata: core.ChunkMetadata{ChunkID: "b"}},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrIndexFailure)
}
