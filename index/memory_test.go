package index

import (
	"context"
	"testing"

	"github.com/hupe1980/ragmesh/core"
	"github.com/hupe1980/ragmesh/embedding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ Index = (*Memory)(nil)

func chunk(content, source string) core.Chunk {
	return core.Chunk{
		Content:  content,
		Metadata: core.ChunkMetadata{Source: source, ChunkID: content, DocumentPath: "/docs/" + source},
	}
}

func TestMemory_AddAndSearch(t *testing.T) {
	idx := NewMemory(&embedding.Fake{})
	ctx := context.Background()

	require.NoError(t, idx.Add(ctx, []core.Chunk{
		chunk("The capital of Freedonia is Sylvania.", "atlas.txt"),
		chunk("Quarterly revenue grew by nine percent.", "report.txt"),
		chunk("Sylvania is the largest city of Freedonia.", "atlas.txt"),
	}))
	assert.Equal(t, 3, idx.Len())

	results, err := idx.Search(ctx, "What is the capital of Freedonia?", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Contains(t, results[0].Content, "Freedonia")
	assert.GreaterOrEqual(t, results[0].Score, results[1].Score)
}

func TestMemory_SearchEmptyIndex(t *testing.T) {
	idx := NewMemory(&embedding.Fake{})

	results, err := idx.Search(context.Background(), "anything", 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestMemory_SearchOrderStable(t *testing.T) {
	idx := NewMemory(&embedding.Fake{})
	ctx := context.Background()

	require.NoError(t, idx.Add(ctx, []core.Chunk{
		chunk("alpha beta gamma", "a.txt"),
		chunk("delta epsilon zeta", "b.txt"),
		chunk("alpha delta", "c.txt"),
	}))

	first, err := idx.Search(ctx, "alpha", 3)
	require.NoError(t, err)
	second, err := idx.Search(ctx, "alpha", 3)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestMemory_DuplicateAddsCreateDuplicateEntries(t *testing.T) {
	idx := NewMemory(&embedding.Fake{})
	ctx := context.Background()

	c := chunk("same content", "dup.txt")
	require.NoError(t, idx.Add(ctx, []core.Chunk{c}))
	require.NoError(t, idx.Add(ctx, []core.Chunk{c}))

	assert.Equal(t, 2, idx.Len())

	results, err := idx.Search(ctx, "same content", 5)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestMemory_KLargerThanIndex(t *testing.T) {
	idx := NewMemory(&embedding.Fake{})
	ctx := context.Background()

	require.NoError(t, idx.Add(ctx, []core.Chunk{chunk("only one", "x.txt")}))

	results, err := idx.Search(ctx, "only", 10)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestMemory_EmbedderFailureWrapsIndexFailure(t *testing.T) {
	idx := NewMemory(failingEmbedder{})

	err := idx.Add(context.Background(), []core.Chunk{chunk("x", "x.txt")})
	assert.ErrorIs(t, err, core.ErrIndexFailure)

	_, err = idx.Search(context.Background(), "x", 1)
	assert.ErrorIs(t, err, core.ErrIndexFailure)
}

type failingEmbedder struct{}

func (failingEmbedder) Embed(context.Context, []string) ([][]float32, error) {
	return nil, assert.AnError
}
